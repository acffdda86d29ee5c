package domain

// SearchType selects how the built query is site-restricted.
type SearchType string

const (
	// SearchSite restricts results to one website.
	SearchSite SearchType = "site"
	// SearchLinkedInCompany restricts results to linkedin.com/company/ pages.
	SearchLinkedInCompany SearchType = "linkedin-company"
	// SearchLinkedInURL restricts results to one LinkedIn URL.
	SearchLinkedInURL SearchType = "linkedin-url"
)

// Query is the ICP tuple a search run is built from. It is constructed
// once per run and reused across the paginated fan-out.
type Query struct {
	Industry    string
	Location    string
	CompanySize string
	TechStack   string

	Type        SearchType
	Website     string // SearchSite restriction target
	LinkedInURL string // SearchLinkedInURL restriction target
}
