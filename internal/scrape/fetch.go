package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultUserAgent masquerades as a browser; plenty of sites refuse
// obviously robotic agents.
const DefaultUserAgent = "Mozilla/5.0"

const DefaultTimeout = 10 * time.Second

// Fetcher issues single-attempt GETs. There is deliberately no retry or
// backoff: this is a best-effort bulk scraper and callers treat a failed
// fetch as "skip this target".
type Fetcher struct {
	hc *http.Client
	ua string
}

func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		hc: &http.Client{Timeout: timeout},
		ua: userAgent,
	}
}

// Fetch GETs rawURL and returns the body. A bare hostname is promoted to
// https. Non-2xx statuses are errors; the caller decides whether that
// dooms the target or just empties a few fields.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u := NormalizeTargetURL(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("fetch build request %q: %w", u, err)
	}
	req.Header.Set("User-Agent", f.ua)

	res, err := f.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", u, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: status %d", u, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("fetch %s: read body: %w", u, err)
	}
	return string(body), nil
}

// NormalizeTargetURL turns a user-supplied seed (often a bare domain)
// into a fetchable URL.
func NormalizeTargetURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}
