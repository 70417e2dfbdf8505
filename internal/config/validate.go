package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything a UI should
// surface before saving.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	for i := range out.Categories {
		out.Categories[i].Keywords = trimList(out.Categories[i].Keywords)
	}
	for i := range out.Modifiers {
		out.Modifiers[i].Any = trimList(out.Modifiers[i].Any)
	}
	out.Scoring.TierOneDomains = trimList(out.Scoring.TierOneDomains)
	out.Scoring.TierTwoDomains = trimList(out.Scoring.TierTwoDomains)
	out.Detect.SuspiciousDomains = trimList(out.Detect.SuspiciousDomains)
	out.Detect.TechWords = trimList(out.Detect.TechWords)
	out.Detect.SalesWords = trimList(out.Detect.SalesWords)
	out.Importing.Sources = trimList(out.Importing.Sources)

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if len(out.Categories) < 2 {
		res.addErr("categories needs at least a real category and a fallback")
	}
	seenCat := map[string]bool{}
	for i, c := range out.Categories {
		if strings.TrimSpace(c.Name) == "" {
			res.addErr("categories[%d].name is required", i)
			continue
		}
		if seenCat[c.Name] {
			res.addErr("duplicate category %q", c.Name)
		}
		seenCat[c.Name] = true
		if len(c.Keywords) == 0 && i != len(out.Categories)-1 {
			res.addWarn("category %q has no keywords and can never match", c.Name)
		}
	}

	for i, m := range out.Modifiers {
		if strings.TrimSpace(m.Label) == "" {
			res.addErr("modifiers[%d].label is required", i)
		}
		if len(m.Any) == 0 {
			res.addErr("modifiers[%d].any must have at least 1 phrase", i)
		}
	}

	if out.Scoring.Base < 0 || out.Scoring.Base > 1 {
		res.addErr("scoring.base must be within [0,1]")
	}
	for name, b := range map[string]float64{
		"tier_one_bonus":   out.Scoring.TierOneBonus,
		"tier_two_bonus":   out.Scoring.TierTwoBonus,
		"long_title_bonus": out.Scoring.LongTitleBonus,
		"seniority_bonus":  out.Scoring.SeniorityBonus,
	} {
		if b < 0 {
			res.addErr("scoring.%s must be >= 0", name)
		}
	}

	if out.Detect.MinTitleLen <= 0 {
		res.addErr("detect.min_title_len must be > 0")
	}
	if out.Detect.MaxTitleLen <= out.Detect.MinTitleLen {
		res.addErr("detect.max_title_len must be > detect.min_title_len")
	}

	switch out.Notify.Trigger {
	case "", "every", "high_only", "batch_only":
	default:
		res.addErr("notify.trigger must be one of every, high_only, batch_only")
	}
	if out.Notify.AdminPhone == "" {
		res.addWarn("notify.admin_phone is empty; notification links will be disabled")
	}

	if out.Importing.InsertDelayMS < 0 {
		res.addErr("importing.insert_delay_ms must be >= 0")
	}
	if len(out.Importing.Sources) == 0 {
		res.addWarn("importing.sources is empty; manual import runs will find nothing")
	}

	return out, res
}
