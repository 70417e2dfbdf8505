package source

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Client pulls listing URLs from published CSV exports (Google Sheets style:
// a header row followed by one URL per line).
type Client struct {
	HTTP *http.Client
}

func New() *Client {
	return &Client{HTTP: &http.Client{Timeout: 30 * time.Second}}
}

// FetchURLs downloads one CSV export and returns the usable URLs in file
// order. The header row, blank lines and non-http(s) lines are skipped.
// Quoting applied by the exporter is stripped.
func (c *Client) FetchURLs(ctx context.Context, sheetURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sheetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("sheet request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sheet: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read sheet body: %w", err)
	}

	return ParseLines(string(body)), nil
}

// ParseLines extracts listing URLs from raw CSV text. The first line is
// always the header row and is discarded. Only the first column matters;
// anything that doesn't start with http after unquoting is dropped.
func ParseLines(text string) []string {
	var out []string
	for i, line := range strings.Split(text, "\n") {
		if i == 0 {
			continue
		}
		cell := line
		if idx := strings.IndexByte(cell, ','); idx >= 0 {
			cell = cell[:idx]
		}
		cell = strings.TrimSpace(strings.Trim(strings.TrimSpace(cell), `"`))
		if cell == "" {
			continue
		}
		if !strings.HasPrefix(cell, "http") {
			continue
		}
		out = append(out, cell)
	}
	return out
}

// FetchAll runs every configured source concurrently and merges the results
// in source order. A failing source logs and contributes nothing; siblings
// are never cancelled.
func (c *Client) FetchAll(ctx context.Context, sources []string) []string {
	results := make([][]string, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			defer cancel()

			urls, err := c.FetchURLs(fctx, src)
			if err != nil {
				log.Printf("[source] fetch error: %v", err)
				return nil // best-effort: don't cancel siblings
			}
			results[i] = urls
			return nil
		})
	}
	_ = g.Wait()

	var merged []string
	seen := map[string]bool{}
	for _, urls := range results {
		for _, u := range urls {
			if seen[u] {
				continue
			}
			seen[u] = true
			merged = append(merged, u)
		}
	}
	return merged
}
