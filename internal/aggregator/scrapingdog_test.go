package aggregator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"leadscout-engine/internal/domain"
)

func TestCompanyID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"full url", "https://www.linkedin.com/company/acme-corp/", "acme-corp"},
		{"no trailing slash", "https://linkedin.com/company/acme-corp", "acme-corp"},
		{"bare identifier passes through", "acme-corp", "acme-corp"},
		{"last marker wins", "https://x.com/linkedin.com/company/old/linkedin.com/company/new", "new"},
		{"whitespace trimmed", "  linkedin.com/company/acme/  ", "acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompanyID(tt.url); got != tt.want {
				t.Errorf("CompanyID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestFetchCompanyFlattens(t *testing.T) {
	var gotParams url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotParams = r.URL.Query()
		w.Write([]byte(`[{
			"company_name": "Acme Corp",
			"website": "https://acme.com",
			"industry": "Fintech",
			"company_size": "201-500 employees",
			"headquarters": "Berlin, Germany",
			"founded": 2012,
			"contact_email": "hello@acme.com",
			"phone": "+49 30 1234567",
			"employees": [
				{"employee_name": "Jane Smith", "employee_position": "CTO", "employee_profile_url": "https://linkedin.com/in/janesmith"},
				{"employee_name": "John Doe", "employee_position": "VP Sales", "employee_profile_url": "https://linkedin.com/in/johndoe"}
			],
			"updates": [
				{"text": "We raised a Series B"},
				{"text": "Hiring in Berlin"}
			],
			"similar_companies": [
				{"name": "Globex"},
				{"name": "Initech"}
			]
		}]`))
	}))
	defer srv.Close()

	c := New("test-key", srv.URL)
	leads, err := c.FetchCompany(context.Background(), "acme-corp")
	if err != nil {
		t.Fatalf("FetchCompany() error: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("FetchCompany() returned %d leads, want 1", len(leads))
	}

	want := domain.LeadRecord{
		Website:           "https://acme.com",
		CompanyName:       "Acme Corp",
		Industry:          "Fintech",
		Location:          "Berlin, Germany",
		CompanySize:       "201-500 employees",
		Founded:           "2012",
		Emails:            []string{"hello@acme.com"},
		Phones:            []string{"+49 30 1234567"},
		Employees:         "Jane Smith; John Doe",
		EmployeePositions: "CTO; VP Sales",
		ProfileURLs:       "https://linkedin.com/in/janesmith; https://linkedin.com/in/johndoe",
		Updates:           "We raised a Series B; Hiring in Berlin",
		SimilarCompanies:  "Globex; Initech",
		Source:            domain.SourceAggregator,
	}
	if diff := cmp.Diff(want, leads[0]); diff != "" {
		t.Errorf("FetchCompany() mismatch (-want +got):\n%s", diff)
	}

	for key, want := range map[string]string{
		"api_key": "test-key",
		"type":    "company",
		"linkId":  "acme-corp",
		"private": "false",
	} {
		if got := gotParams.Get(key); got != want {
			t.Errorf("param %s = %q, want %q", key, got, want)
		}
	}
}

func TestFetchCompanyEmptyCollections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"company_name": "Bare Co"}]`))
	}))
	defer srv.Close()

	c := New("k", srv.URL)
	leads, err := c.FetchCompany(context.Background(), "bare-co")
	if err != nil {
		t.Fatalf("FetchCompany() error: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("FetchCompany() returned %d leads, want 1", len(leads))
	}

	l := leads[0]
	if l.Employees != "" || l.Updates != "" || l.SimilarCompanies != "" {
		t.Errorf("empty collections should flatten to empty strings, got %q %q %q",
			l.Employees, l.Updates, l.SimilarCompanies)
	}
	if l.HasContact() {
		t.Error("no contact fields should mean HasContact() == false")
	}
}

func TestFetchCompanyErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "object instead of array",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"company_name": "Acme"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := New("k", srv.URL)
			if _, err := c.FetchCompany(context.Background(), "acme"); err == nil {
				t.Error("FetchCompany() want error, got nil")
			}
		})
	}
}
