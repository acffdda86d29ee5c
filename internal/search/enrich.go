package search

import (
	"context"
	"log"
	"regexp"
	"strings"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/scrape"
)

// Snippet-level guess vocabularies. Like the extractor lists these are
// priority-ordered, first-match-wins contracts.

var snippetLocations = []string{
	"USA", "India", "Canada", "UK", "Germany", "Australia", "Singapore",
}

var snippetIndustries = []string{
	"software", "cybersecurity", "healthcare", "fintech", "education",
	"consulting", "ai",
}

var snippetTech = []string{
	"Python", "Django", "React", "Vue", "Node.js", "Java", "C#", "Ruby",
	"PHP", "Laravel", "Angular", "AWS", "Azure", "Google Cloud",
}

// The enrichment phone pattern is looser than the site extractor's and
// requires a trailing digit; the two pipelines deliberately differ.
var reEnrichPhone = regexp.MustCompile(`\+?\d[\d -]{7,}\d`)

// Enricher follows each deduplicated search result to its page and
// pulls a single email and phone candidate.
type Enricher struct {
	Fetcher *scrape.Fetcher
}

// Enrich builds a lead from one search result. A failed fetch degrades
// to empty contact fields; the lead is still emitted and lands in the
// "without" partition.
func (e *Enricher) Enrich(ctx context.Context, r Result) domain.LeadRecord {
	lead := guessFromResult(r)

	email, phone, err := e.contactInfo(ctx, r.URL)
	if err != nil {
		log.Printf("[search] contact info from %s: %v", r.URL, err)
	}
	if email != "" {
		lead.Emails = []string{email}
	}
	if phone != "" {
		lead.Phones = []string{phone}
	}
	return lead
}

// guessFromResult fills the cheap fields from the result title and
// snippet alone.
func guessFromResult(r Result) domain.LeadRecord {
	name := strings.TrimSpace(r.Title)
	if i := strings.Index(r.Title, "|"); i >= 0 {
		name = strings.TrimSpace(strings.Split(r.Title, " |")[0])
	}

	titleLow := strings.ToLower(r.Title)
	snippetLow := strings.ToLower(r.Snippet)

	location := domain.Unknown
	for _, kw := range snippetLocations {
		k := strings.ToLower(kw)
		if strings.Contains(titleLow, k) || strings.Contains(snippetLow, k) {
			location = kw
			break
		}
	}

	industry := domain.Unknown
	for _, kw := range snippetIndustries {
		if strings.Contains(snippetLow, kw) {
			industry = strings.ToUpper(kw[:1]) + kw[1:]
			break
		}
	}

	var tech []string
	for _, kw := range snippetTech {
		if strings.Contains(snippetLow, strings.ToLower(kw)) {
			tech = []string{kw}
			break
		}
	}

	size := domain.Unknown
	if strings.Contains(r.Snippet, "100+") {
		size = "100+ employees"
	}

	return domain.LeadRecord{
		Website:     r.URL,
		CompanyName: name,
		Industry:    industry,
		Location:    location,
		CompanySize: size,
		TechStack:   tech,
		Source:      domain.SourceSearch,
	}
}

// contactInfo fetches the result page and returns only the first email
// and first phone match. Single-candidate on purpose: this pipeline
// trades the full set semantics for speed across many results.
func (e *Enricher) contactInfo(ctx context.Context, pageURL string) (email, phone string, err error) {
	body, err := e.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return "", "", err
	}
	page, err := scrape.ParsePage(pageURL, body)
	if err != nil {
		return "", "", err
	}

	if m := scrape.FirstEmail(page.Text); m != "" {
		email = m
	}
	if m := reEnrichPhone.FindString(page.Text); m != "" {
		phone = m
	}
	return email, phone, nil
}
