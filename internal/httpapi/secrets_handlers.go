package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"plugboard-engine/internal/config"
	"plugboard-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setAdminPasswordReq struct {
	Password string `json:"password"`
}

func (h SecretsHandler) SetAdminPassword(w http.ResponseWriter, r *http.Request) {
	var req setAdminPasswordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if err := secrets.SetAdminPassword(cfg.Admin.KeyringAccount, req.Password); err != nil {
		http.Error(w, "failed to store password: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
