package detect

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"plugboard-engine/internal/classify"
	"plugboard-engine/internal/config"
	"plugboard-engine/internal/domain"
)

// Issue types. Routing only cares whether the list is empty; types and
// severities are surfaced to the reviewer for prioritisation.
const (
	TypeInvalidURL       = "invalid_url"
	TypeWeirdTitle       = "weird_title"
	TypeShortTitle       = "short_title"
	TypeLongTitle        = "long_title"
	TypeSuspiciousDomain = "suspicious_domain"
	TypeCategoryMismatch = "category_mismatch"
	TypeGenericCompany   = "generic_company"
)

// weirdTitlePatterns catch titles that are really system IDs or un-cleaned
// tracking artifacts: leading digit runs, query-string leftovers, hex-looking
// IDs, all-caps runs, mixed letter/digit noise.
var weirdTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{10,}`),
	regexp.MustCompile(`^\d{8,}\s*$`),
	regexp.MustCompile(`(?i)\?source=`),
	regexp.MustCompile(`(?i)&new=yes`),
	regexp.MustCompile(`(?i)^[a-f0-9]{8,}`),
	regexp.MustCompile(`^[A-Z0-9]{15,}`),
	regexp.MustCompile(`[xXyYzZ]{2,}[0-9]{5,}`),
	regexp.MustCompile(`^\d{4,}\s*\*{0,}$`),
}

// Detector runs the quality checks over a record's url/title/category/company
// fields. Pure: it never mutates the record or touches the store.
type Detector struct {
	Cfg config.Config
}

// Detect appends one issue per failed check, in stable order. A record with
// zero issues is clean and eligible for the public board; anything else is
// routed to manual review.
func (d Detector) Detect(rec domain.JobRecord) []domain.Issue {
	var issues []domain.Issue

	if !strings.HasPrefix(rec.URL, "http") {
		issues = append(issues, domain.Issue{
			Type:        TypeInvalidURL,
			Severity:    domain.SeverityHigh,
			Description: "URL format is invalid",
		})
	}

	if hasWeirdTitle(rec.Title) {
		issues = append(issues, domain.Issue{
			Type:        TypeWeirdTitle,
			Severity:    domain.SeverityHigh,
			Description: fmt.Sprintf("Title looks like a system ID: %q", rec.Title),
		})
	}

	if len(rec.Title) < d.Cfg.Detect.MinTitleLen {
		issues = append(issues, domain.Issue{
			Type:        TypeShortTitle,
			Severity:    domain.SeverityMedium,
			Description: fmt.Sprintf("Title too short: %q", rec.Title),
		})
	}
	if len(rec.Title) > d.Cfg.Detect.MaxTitleLen {
		issues = append(issues, domain.Issue{
			Type:        TypeLongTitle,
			Severity:    domain.SeverityMedium,
			Description: fmt.Sprintf("Title too long: %q...", truncate(rec.Title, 50)),
		})
	}

	if host := hostOf(rec.URL); host != "" {
		for _, sus := range d.Cfg.Detect.SuspiciousDomains {
			if host == sus {
				issues = append(issues, domain.Issue{
					Type:        TypeSuspiciousDomain,
					Severity:    domain.SeverityMedium,
					Description: fmt.Sprintf("Listing from %s - often has noisy titles", host),
				})
				break
			}
		}
	}

	if mismatch, want := d.categoryMismatch(rec.Title, rec.Category); mismatch {
		issues = append(issues, domain.Issue{
			Type:        TypeCategoryMismatch,
			Severity:    domain.SeverityHigh,
			Description: fmt.Sprintf("%q categorized as %s but has no %s words", rec.Title, rec.Category, want),
		})
	}

	if rec.Company == classify.GenericCompany {
		issues = append(issues, domain.Issue{
			Type:        TypeGenericCompany,
			Severity:    domain.SeverityLow,
			Description: "Company name could not be extracted",
		})
	}

	return issues
}

func (d Detector) categoryMismatch(title, category string) (bool, string) {
	lower := strings.ToLower(title)

	switch category {
	case "I.T.":
		if !containsAnyWord(lower, d.Cfg.Detect.TechWords) {
			return true, "tech"
		}
	case "Sales":
		if !containsAnyWord(lower, d.Cfg.Detect.SalesWords) {
			return true, "sales"
		}
	}
	return false, ""
}

// LooksLikeID reports whether a title trips the system-ID patterns. The
// import pipeline uses it to decide when page-title enrichment is worth a
// fetch.
func LooksLikeID(title string) bool {
	return hasWeirdTitle(title)
}

func hasWeirdTitle(title string) bool {
	for _, p := range weirdTitlePatterns {
		if p.MatchString(title) {
			return true
		}
	}
	return false
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func containsAnyWord(text string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
