package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Enricher fetches a listing page and reads its <title> tag. Used when the
// slug-derived title looks weak (too short, or flagged as an ID). Strictly
// best-effort: any failure keeps the slug title.
type Enricher struct {
	HTTP    *http.Client
	Limiter *HostLimiter
}

func NewEnricher() *Enricher {
	return &Enricher{
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Limiter: NewHostLimiter(1, 2),
	}
}

// PageTitle returns the cleaned <title> of the listing page, or an error when
// the page is unreachable or carries no usable title.
func (e *Enricher) PageTitle(ctx context.Context, rawURL string) (string, error) {
	if err := e.Limiter.WaitURL(ctx, rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; plugboard-engine)")

	resp, err := e.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page title: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	title := CleanPageTitle(doc.Find("title").First().Text())
	if title == "" {
		return "", fmt.Errorf("page title: empty")
	}
	return title, nil
}

// CleanPageTitle strips the board-name suffix most job pages append
// ("Python Developer - Acme | WeWorkRemotely" -> "Python Developer").
func CleanPageTitle(raw string) string {
	t := strings.TrimSpace(raw)
	for _, sep := range []string{" | ", " – ", " - "} {
		if idx := strings.Index(t, sep); idx > 0 {
			t = t[:idx]
		}
	}
	return strings.TrimSpace(t)
}
