package search

import (
	"testing"

	"leadscout-engine/internal/domain"
)

func TestBuildQuery(t *testing.T) {
	icp := domain.Query{
		Industry:    "fintech",
		Location:    "Germany",
		CompanySize: "100+ employees",
		TechStack:   "react",
	}
	base := `"fintech" "Germany" "100+ employees" "react"`

	tests := []struct {
		name string
		q    domain.Query
		want string
	}{
		{
			name: "plain query",
			q:    icp,
			want: base,
		},
		{
			name: "site restriction",
			q: func() domain.Query {
				q := icp
				q.Type = domain.SearchSite
				q.Website = "acme.com"
				return q
			}(),
			want: "site:acme.com " + base,
		},
		{
			name: "site type without website falls back to plain",
			q: func() domain.Query {
				q := icp
				q.Type = domain.SearchSite
				return q
			}(),
			want: base,
		},
		{
			name: "linkedin company directory",
			q: func() domain.Query {
				q := icp
				q.Type = domain.SearchLinkedInCompany
				return q
			}(),
			want: "site:linkedin.com/company/ " + base,
		},
		{
			name: "explicit linkedin url",
			q: func() domain.Query {
				q := icp
				q.Type = domain.SearchLinkedInURL
				q.LinkedInURL = "linkedin.com/company/acme"
				return q
			}(),
			want: "site:linkedin.com/company/acme " + base,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(tt.q); got != tt.want {
				t.Errorf("BuildQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}
