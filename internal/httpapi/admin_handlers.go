package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"plugboard-engine/internal/config"
	"plugboard-engine/internal/domain"
	"plugboard-engine/internal/events"
	"plugboard-engine/internal/review"
	"plugboard-engine/internal/store"
)

type AdminHandler struct {
	DB     *sql.DB
	Hub    *events.Hub
	CfgVal *atomic.Value // config.Config
}

// Pending lists the review queue, newest import first.
func (h AdminHandler) Pending(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.ListByStatus(r.Context(), h.DB, domain.StatusPending)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if jobs == nil {
		jobs = []domain.JobRecord{}
	}
	writeJSON(w, map[string]any{"jobs": jobs})
}

// Rejected lists the reject history. Nothing leaves this list.
func (h AdminHandler) Rejected(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.ListByStatus(r.Context(), h.DB, domain.StatusRejected)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if jobs == nil {
		jobs = []domain.JobRecord{}
	}
	writeJSON(w, map[string]any{"jobs": jobs})
}

// JobAction routes /admin/jobs/{id} and /admin/jobs/{id}/{action}.
func (h AdminHandler) JobAction(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/admin/jobs/")
	idStr, action, _ := strings.Cut(rest, "/")

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "bad_id", "invalid id")
		return
	}

	switch {
	case action == "" && r.Method == http.MethodPatch:
		h.edit(w, r, id)
	case action == "approve" && r.Method == http.MethodPost:
		h.approve(w, r, id)
	case action == "reject" && r.Method == http.MethodPost:
		h.reject(w, r, id)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h AdminHandler) approve(w http.ResponseWriter, r *http.Request, id int64) {
	var body struct {
		By string `json:"by"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.By == "" {
		body.By = "admin"
	}

	rec, err := review.Approve(r.Context(), h.DB, h.Hub, id, body.By)
	if err != nil {
		writeReviewError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "job": rec})
}

func (h AdminHandler) reject(w http.ResponseWriter, r *http.Request, id int64) {
	var body struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	rec, err := review.Reject(r.Context(), h.DB, h.Hub, id, body.Reason)
	if err != nil {
		writeReviewError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "job": rec})
}

func (h AdminHandler) edit(w http.ResponseWriter, r *http.Request, id int64) {
	var e review.Edit
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON: "+err.Error())
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	rec, err := review.ApplyEdit(r.Context(), h.DB, cfg, h.Hub, id, e)
	if err != nil {
		writeReviewError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "job": rec})
}

func writeReviewError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, review.ErrNotFound):
		WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, review.ErrBadTransition):
		WriteError(w, r, http.StatusConflict, "bad_transition", err.Error())
	default:
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
	}
}
