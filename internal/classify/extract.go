package classify

import (
	"net/url"
	"strings"
	"unicode"

	"plugboard-engine/internal/config"
)

const (
	// GenericCompany is the placeholder when no company can be derived from
	// the URL. The issue detector flags records that carry it.
	GenericCompany = "Remote Company"

	// GenericModifier is the default attribute tag.
	GenericModifier = "General"
)

// ExtractTitle derives a display title from the last non-empty path segment
// of the URL: hyphens become spaces, each word is title-cased. A trailing
// slash falls back to the second-to-last segment.
func ExtractTitle(rawURL string) string {
	parts := strings.Split(rawURL, "/")
	seg := ""
	if n := len(parts); n > 0 {
		seg = parts[n-1]
		if seg == "" && n > 1 {
			seg = parts[n-2]
		}
	}
	return titleCase(strings.ReplaceAll(seg, "-", " "))
}

// ExtractCompany maps the URL to a friendly company label: known job boards
// first (substring match), then the first DNS label of the hostname. Malformed
// URLs degrade to GenericCompany, never an error.
func ExtractCompany(rawURL string, boards []config.BoardLabel) string {
	for _, b := range boards {
		if b.Match != "" && strings.Contains(rawURL, b.Match) {
			return b.Label
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return GenericCompany
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	label := strings.SplitN(host, ".", 2)[0]
	if label == "" {
		return GenericCompany
	}
	return titleCase(label)
}

// ExtractModifier scans the lowercased url+title against the configured
// phrase groups in order; the first group with any phrase hit supplies the
// tag. GenericModifier when nothing matches.
func ExtractModifier(rawURL, title string, modifiers []config.ModifierRule) string {
	text := strings.ToLower(rawURL) + " " + strings.ToLower(title)
	for _, m := range modifiers {
		for _, phrase := range m.Any {
			if phrase == "" {
				continue
			}
			if strings.Contains(text, strings.ToLower(phrase)) {
				return m.Label
			}
		}
	}
	return GenericModifier
}

func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevWord := false
	for _, r := range s {
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		if isWord && !prevWord {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		prevWord = isWord
	}
	return b.String()
}
