package search

import (
	"fmt"

	"leadscout-engine/internal/domain"
)

// BuildQuery turns an ICP tuple into one search query string: the four
// criteria quoted and conjoined, optionally prefixed with a site
// restriction chosen by the query's search type. Built once per run and
// reused across every (backend, page) call.
func BuildQuery(q domain.Query) string {
	base := fmt.Sprintf("%q %q %q %q", q.Industry, q.Location, q.CompanySize, q.TechStack)

	switch q.Type {
	case domain.SearchSite:
		if q.Website != "" {
			return fmt.Sprintf("site:%s %s", q.Website, base)
		}
	case domain.SearchLinkedInCompany:
		return "site:linkedin.com/company/ " + base
	case domain.SearchLinkedInURL:
		if q.LinkedInURL != "" {
			return fmt.Sprintf("site:%s %s", q.LinkedInURL, base)
		}
	}
	return base
}
