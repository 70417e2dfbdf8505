package httpapi

import (
	"database/sql"
	"net/http"

	"plugboard-engine/internal/store"
)

type HealthHandler struct {
	DB *sql.DB
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	counts, err := store.CountByStatus(r.Context(), h.DB)
	if err != nil {
		writeJSON(w, map[string]any{"ok": false, "error": err.Error()})
		return
	}
	writeJSON(w, map[string]any{
		"ok":     true,
		"counts": counts,
	})
}
