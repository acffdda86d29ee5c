package domain

// Unknown is the sentinel written for string fields that no heuristic
// could fill. It is part of the output contract (it ends up in the
// exported sheets as-is), not an internal marker.
const Unknown = "unknown"

// Fixed social platform keys. Social maps only ever carry these.
const (
	PlatformLinkedIn  = "LinkedIn"
	PlatformTwitter   = "Twitter"
	PlatformFacebook  = "Facebook"
	PlatformInstagram = "Instagram"
	PlatformYouTube   = "YouTube"
)

// Source tags for the three pipelines.
const (
	SourceSite       = "site"
	SourceSearch     = "search"
	SourceAggregator = "aggregator"
)

// LeadRecord is the common output unit of every pipeline. It is fully
// populated by one assembly pass and never mutated afterwards.
type LeadRecord struct {
	Website       string
	CompanyName   string
	ContactPerson string
	Industry      string
	Location      string
	CompanySize   string
	Founded       string

	Emails []string
	Phones []string

	Social map[string]string // keyed by the Platform* constants

	ContactPage string
	CareersPage string

	TechStack     []string
	PartnerLinks  []string
	WhatsAppLinks []string

	// Aggregator pipeline only: nested collections flattened into
	// semicolon-joined strings.
	Employees         string
	EmployeePositions string
	ProfileURLs       string
	Updates           string
	SimilarCompanies  string

	Source string
}

// HasContact reports whether the record carries any reachable contact
// field. It decides which partition a lead lands in and is computed
// exactly once, at routing time.
func (l LeadRecord) HasContact() bool {
	return len(l.Emails) > 0 || len(l.Phones) > 0
}

// Partition holds the two ordered output buckets of the search and
// aggregator pipelines.
type Partition struct {
	With    []LeadRecord
	Without []LeadRecord
}

// Add routes a lead into the matching bucket.
func (p *Partition) Add(l LeadRecord) {
	if l.HasContact() {
		p.With = append(p.With, l)
		return
	}
	p.Without = append(p.Without, l)
}

// All returns both buckets as one sequence, contactable leads first.
func (p *Partition) All() []LeadRecord {
	out := make([]LeadRecord, 0, len(p.With)+len(p.Without))
	out = append(out, p.With...)
	out = append(out, p.Without...)
	return out
}

// PartitionLeads routes a batch.
func PartitionLeads(leads []LeadRecord) Partition {
	var p Partition
	for _, l := range leads {
		p.Add(l)
	}
	return p
}
