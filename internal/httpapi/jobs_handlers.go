package httpapi

import (
	"database/sql"
	"net/http"

	"plugboard-engine/internal/domain"
	"plugboard-engine/internal/review"
	"plugboard-engine/internal/store"
)

type JobsHandler struct {
	DB *sql.DB
}

// List serves the public board: approved records only, optionally narrowed
// by ?category= and ?q=. Counts cover all approved records so the category
// tabs stay stable while filtering.
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	jobs, err := store.ListByStatus(r.Context(), h.DB, domain.StatusApproved)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	counts := review.CategoryCounts(jobs)
	filtered := review.Filter(jobs, review.FilterOpts{
		Category: q.Get("category"),
		Query:    q.Get("q"),
	})
	if filtered == nil {
		filtered = []domain.JobRecord{}
	}

	writeJSON(w, map[string]any{
		"jobs":   filtered,
		"counts": counts,
		"total":  len(jobs),
	})
}
