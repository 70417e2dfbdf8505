package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"sync/atomic"
	"time"

	"plugboard-engine/internal/config"
	"plugboard-engine/internal/review"
)

type ImportHandler struct {
	DB           *sql.DB
	CfgVal       *atomic.Value // config.Config
	ImportStatus *atomic.Value // httpapi.ImportStatus
	FetchURLs    func(ctx context.Context, sources []string) []string
	RunImport    func(ctx context.Context, db *sql.DB, cfg config.Config, urls []string) review.Summary
}

func (h ImportHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.ImportStatus.Load().(ImportStatus)
	writeJSON(w, st)
}

// Run kicks off one import pass in the background. A second run while one is
// in flight is refused, not queued.
func (h ImportHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.ImportStatus.Load().(ImportStatus)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	h.ImportStatus.Store(ImportStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		cfg := h.CfgVal.Load().(config.Config)
		urls := h.FetchURLs(ctx, cfg.Importing.Sources)
		sum := h.RunImport(ctx, h.DB, cfg, urls)

		now := time.Now().Format(time.RFC3339)
		next := h.ImportStatus.Load().(ImportStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastFetched = sum.Fetched
		next.LastAdded = sum.Added
		next.LastPending = sum.Pending
		next.LastSkipped = sum.Skipped
		if sum.Fetched == 0 && len(cfg.Importing.Sources) > 0 {
			next.LastError = "no urls fetched from any source"
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.ImportStatus.Store(next)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
