// Package aggregator adapts the ScrapingDog hosted company-data API
// into the common lead record shape.
package aggregator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"leadscout-engine/internal/domain"
)

const (
	scrapingDogBaseURL = "https://api.scrapingdog.com/linkedin"

	// companyMarker splits a LinkedIn company URL into its identifier.
	companyMarker = "linkedin.com/company/"
)

// Client calls the ScrapingDog LinkedIn company endpoint.
type Client struct {
	hc      *http.Client
	apiKey  string
	baseURL string
}

// New builds a client. baseURL is overridable for tests; empty means
// production.
func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = scrapingDogBaseURL
	}
	return &Client{
		hc:      &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

// CompanyID extracts the company identifier from a LinkedIn company URL:
// everything after the last "linkedin.com/company/" marker. An input
// without the marker is assumed to already be an identifier.
func CompanyID(linkedInURL string) string {
	s := strings.TrimSpace(linkedInURL)
	if i := strings.LastIndex(s, companyMarker); i >= 0 {
		s = s[i+len(companyMarker):]
	}
	return strings.Trim(s, "/")
}

type companyPayload struct {
	CompanyName  string      `json:"company_name"`
	Website      string      `json:"website"`
	Industry     string      `json:"industry"`
	CompanySize  string      `json:"company_size"`
	Headquarters string      `json:"headquarters"`
	Founded      json.Number `json:"founded"`
	ContactEmail string      `json:"contact_email"`
	Phone        string      `json:"phone"`

	Employees []struct {
		Name       string `json:"employee_name"`
		Position   string `json:"employee_position"`
		ProfileURL string `json:"employee_profile_url"`
	} `json:"employees"`

	Updates []struct {
		Text string `json:"text"`
	} `json:"updates"`

	SimilarCompanies []struct {
		Name string `json:"name"`
	} `json:"similar_companies"`
}

// FetchCompany looks up one company identifier and reshapes the response
// into lead records. The endpoint returns a JSON array of company
// objects; nested collections are flattened into semicolon-joined
// strings. Callers treat any error as zero leads from this source.
func (c *Client) FetchCompany(ctx context.Context, companyID string) ([]domain.LeadRecord, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("type", "company")
	params.Set("linkId", companyID)
	params.Set("private", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("scrapingdog build request: %w", err)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrapingdog lookup %q: %w", companyID, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("scrapingdog lookup %q: status %d", companyID, res.StatusCode)
	}

	var companies []companyPayload
	if err := json.NewDecoder(res.Body).Decode(&companies); err != nil {
		return nil, fmt.Errorf("scrapingdog lookup %q: decode: %w", companyID, err)
	}

	out := make([]domain.LeadRecord, 0, len(companies))
	for _, co := range companies {
		out = append(out, flatten(co))
	}
	return out, nil
}

func flatten(co companyPayload) domain.LeadRecord {
	names := make([]string, 0, len(co.Employees))
	positions := make([]string, 0, len(co.Employees))
	profiles := make([]string, 0, len(co.Employees))
	for _, e := range co.Employees {
		names = append(names, e.Name)
		positions = append(positions, e.Position)
		profiles = append(profiles, e.ProfileURL)
	}

	updates := make([]string, 0, len(co.Updates))
	for _, u := range co.Updates {
		updates = append(updates, u.Text)
	}

	similar := make([]string, 0, len(co.SimilarCompanies))
	for _, s := range co.SimilarCompanies {
		similar = append(similar, s.Name)
	}

	lead := domain.LeadRecord{
		Website:           co.Website,
		CompanyName:       co.CompanyName,
		Industry:          co.Industry,
		CompanySize:       co.CompanySize,
		Location:          co.Headquarters,
		Founded:           co.Founded.String(),
		Employees:         strings.Join(names, "; "),
		EmployeePositions: strings.Join(positions, "; "),
		ProfileURLs:       strings.Join(profiles, "; "),
		Updates:           strings.Join(updates, "; "),
		SimilarCompanies:  strings.Join(similar, "; "),
		Source:            domain.SourceAggregator,
	}
	if co.ContactEmail != "" {
		lead.Emails = []string{co.ContactEmail}
	}
	if co.Phone != "" {
		lead.Phones = []string{co.Phone}
	}
	return lead
}
