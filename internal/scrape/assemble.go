package scrape

import (
	"context"
	"log"

	"leadscout-engine/internal/domain"
)

// SiteScraper is the direct-scrape pipeline: fetch one site, run every
// field extractor over the parsed page, assemble one LeadRecord.
type SiteScraper struct {
	fetcher *Fetcher
}

func NewSiteScraper(f *Fetcher) *SiteScraper {
	return &SiteScraper{fetcher: f}
}

// ScrapeSite fetches host and assembles its lead record in a single
// pass. Extractors only read the shared page, so the record is complete
// and immutable when this returns.
func (s *SiteScraper) ScrapeSite(ctx context.Context, host string) (domain.LeadRecord, error) {
	body, err := s.fetcher.Fetch(ctx, host)
	if err != nil {
		return domain.LeadRecord{}, err
	}

	page, err := ParsePage(host, body)
	if err != nil {
		return domain.LeadRecord{}, err
	}

	links := page.Links()

	return domain.LeadRecord{
		Website:       host,
		CompanyName:   ExtractCompanyName(page),
		ContactPerson: ExtractContactPerson(page.Text),
		Industry:      ExtractIndustry(MetaDescription(page), page.Text),
		Location:      ExtractAddress(page.Text),
		Emails:        ExtractEmails(page.Text),
		Phones:        ExtractPhones(page),
		Social:        ExtractSocialLinks(links),
		ContactPage:   ExtractPageLink(page, links, "contact"),
		CareersPage:   ExtractPageLink(page, links, "career", "jobs"),
		TechStack:     ExtractTechStack(page.RawHTML),
		PartnerLinks:  ExtractPartnerLinks(links),
		WhatsAppLinks: ExtractWhatsAppLinks(links),
		Source:        domain.SourceSite,
	}, nil
}

// ScrapeSites runs the pipeline over a batch of hosts sequentially. A
// failing host is logged and skipped; it never stops the batch.
func (s *SiteScraper) ScrapeSites(ctx context.Context, hosts []string) []domain.LeadRecord {
	var out []domain.LeadRecord
	for _, h := range hosts {
		log.Printf("[scrape] site %s", h)
		lead, err := s.ScrapeSite(ctx, h)
		if err != nil {
			log.Printf("[scrape] skipping %s: %v", h, err)
			continue
		}
		out = append(out, lead)
	}
	return out
}
