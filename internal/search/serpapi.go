package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const serpAPIBaseURL = "https://serpapi.com/search"

// Result is one organic search hit. It lives just long enough to be
// deduplicated and enriched.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Backend is one search engine flavor the fan-out queries.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, start int) ([]Result, error)
}

// SerpClient calls the SerpAPI endpoint with a given engine parameter.
type SerpClient struct {
	hc      *http.Client
	apiKey  string
	baseURL string
}

// NewSerpClient builds a client for the hosted endpoint. baseURL is
// overridable for tests; empty means production.
func NewSerpClient(apiKey, baseURL string) *SerpClient {
	if baseURL == "" {
		baseURL = serpAPIBaseURL
	}
	return &SerpClient{
		hc:      &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

type serpResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

func (c *SerpClient) search(ctx context.Context, engine, query string, start int) ([]Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("engine", engine)
	params.Set("api_key", c.apiKey)
	params.Set("start", strconv.Itoa(start))
	params.Set("num", "100")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi build request: %w", err)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi %s start=%d: %w", engine, start, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("serpapi %s start=%d: status %d", engine, start, res.StatusCode)
	}

	var sr serpResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("serpapi %s start=%d: decode: %w", engine, start, err)
	}

	out := make([]Result, 0, len(sr.OrganicResults))
	for _, r := range sr.OrganicResults {
		out = append(out, Result{Title: r.Title, URL: r.Link, Snippet: r.Snippet})
	}
	return out, nil
}

// GoogleBackend is the general web engine.
type GoogleBackend struct{ Client *SerpClient }

func (b GoogleBackend) Name() string { return "google" }

func (b GoogleBackend) Search(ctx context.Context, query string, start int) ([]Result, error) {
	return b.Client.search(ctx, "google", query, start)
}

// LinkedInBackend is the LinkedIn-flavored engine.
type LinkedInBackend struct{ Client *SerpClient }

func (b LinkedInBackend) Name() string { return "linkedin" }

func (b LinkedInBackend) Search(ctx context.Context, query string, start int) ([]Result, error) {
	return b.Client.search(ctx, "linkedin", query, start)
}
