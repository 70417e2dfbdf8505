package classify

import (
	"strings"

	"plugboard-engine/internal/config"
)

// Classifier maps a listing URL and derived title onto one of the fixed
// board categories. It is pure: same input, same output, no state.
type Classifier struct {
	Cfg config.Config
}

// Classify walks the category list in priority order and returns the first
// category with a keyword found as a substring of the lowercased url+title.
// First keyword hit wins; ties between categories are settled purely by
// category order, never by match count or keyword length. The last category
// is the unconditional fallback.
func (c Classifier) Classify(rawURL, title string) string {
	text := strings.ToLower(rawURL) + " " + strings.ToLower(title)

	for _, cat := range c.Cfg.Categories {
		for _, kw := range cat.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(text, strings.ToLower(kw)) {
				return cat.Name
			}
		}
	}
	return c.Cfg.FallbackCategory()
}
