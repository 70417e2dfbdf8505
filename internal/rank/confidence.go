package rank

import (
	"strings"

	"plugboard-engine/internal/config"
)

// seniorityMarkers are matched against the title as-is; extracted titles are
// always title-cased.
var seniorityMarkers = []string{"Senior", "Lead"}

type ConfidenceScorer struct {
	Cfg config.Config
}

// Score starts from the configured base and stacks bonuses: trusted source
// tiers (substring match on the URL), a non-trivial title length, and
// seniority markers. All bonuses are non-negative, so only the upper clamp
// is needed.
func (s ConfidenceScorer) Score(rawURL, title string) float64 {
	sc := s.Cfg.Scoring.Base

	if containsAny(rawURL, s.Cfg.Scoring.TierOneDomains) {
		sc += s.Cfg.Scoring.TierOneBonus
	}
	if containsAny(rawURL, s.Cfg.Scoring.TierTwoDomains) {
		sc += s.Cfg.Scoring.TierTwoBonus
	}

	if len(title) > 10 {
		sc += s.Cfg.Scoring.LongTitleBonus
	}
	for _, m := range seniorityMarkers {
		if strings.Contains(title, m) {
			sc += s.Cfg.Scoring.SeniorityBonus
			break
		}
	}

	if sc > 1.0 {
		sc = 1.0
	}
	return sc
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}
