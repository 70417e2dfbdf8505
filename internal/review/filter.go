package review

import (
	"strings"

	"plugboard-engine/internal/domain"
)

// FilterOpts narrow the public board view. Both filters are AND-ed; empty
// values mean "no filter".
type FilterOpts struct {
	Category string
	Query    string
}

// Filter applies category and free-text filters to a listing slice, keeping
// input order. The text filter is a case-insensitive substring match over
// title, company and modifier tag.
func Filter(recs []domain.JobRecord, opts FilterOpts) []domain.JobRecord {
	q := strings.ToLower(strings.TrimSpace(opts.Query))

	var out []domain.JobRecord
	for _, r := range recs {
		if opts.Category != "" && r.Category != opts.Category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Title), q) &&
			!strings.Contains(strings.ToLower(r.Company), q) &&
			!strings.Contains(strings.ToLower(r.Modifier), q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CategoryCounts tallies records per category, for the board's tab badges.
func CategoryCounts(recs []domain.JobRecord) map[string]int {
	out := map[string]int{}
	for _, r := range recs {
		out[r.Category]++
	}
	return out
}
