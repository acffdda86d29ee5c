package scrape

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"leadscout-engine/internal/domain"
)

// The keyword lists below are priority-ordered contracts, not tuning
// knobs. Matching is first-match-wins and substring-based, so reordering
// an entry changes the output for ambiguous pages.

// IndustryKeywords is scanned in order against the meta description and
// the page text.
var IndustryKeywords = []string{
	"software", "ai", "cloud", "data", "e-learning", "cybersecurity",
	"healthcare", "fintech", "education", "devops", "iot", "blockchain",
	"logistics", "consulting",
}

// TechVocabulary is scanned in order against the lowercased raw HTML.
var TechVocabulary = []string{
	"wordpress", "shopify", "react", "vue", "django", "laravel",
	"jquery", "bootstrap",
}

var addressKeywords = []string{"address", "location", "hq", "head office"}

var partnerMarkers = []string{".gov", ".org", ".edu", "partner", "ngo", "ministry"}

var (
	reEmail      = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	rePhoneText  = regexp.MustCompile(`\+?\d[\d\s\-().]{7,}`)
	reProperName = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)
)

// ExtractCompanyName returns the first <h1> text, falling back to the
// document title.
func ExtractCompanyName(p *Page) string {
	if h1 := cleanText(p.Doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	if title := cleanText(p.Doc.Find("title").First().Text()); title != "" {
		return title
	}
	return domain.Unknown
}

// ExtractContactPerson finds the first run of two or more capitalized
// words in the visible text. A crude proper-name detector, by contract.
func ExtractContactPerson(text string) string {
	if m := reProperName.FindString(text); m != "" {
		return m
	}
	return domain.Unknown
}

// MetaDescription returns the page's meta description, preferring
// name=description over og:description.
func MetaDescription(p *Page) string {
	var desc string
	p.Doc.Find(`meta[name="description"], meta[property="og:description"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if c, ok := s.Attr("content"); ok && strings.TrimSpace(c) != "" {
			desc = strings.TrimSpace(c)
			return false
		}
		return true
	})
	return desc
}

// ExtractIndustry scans IndustryKeywords in priority order against the
// meta description and the full text; the earliest-listed keyword wins
// regardless of position in the page.
func ExtractIndustry(metaDescription, text string) string {
	descLow := strings.ToLower(metaDescription)
	textLow := strings.ToLower(text)
	for _, kw := range IndustryKeywords {
		if strings.Contains(descLow, kw) || strings.Contains(textLow, kw) {
			return capitalize(kw)
		}
	}
	return domain.Unknown
}

// ExtractEmails returns every email-shaped substring, deduplicated,
// first-seen order.
func ExtractEmails(text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range reEmail.FindAllString(text, -1) {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// FirstEmail returns the first email-shaped substring, or "".
func FirstEmail(text string) string {
	return reEmail.FindString(text)
}

// ExtractPhones unions loose phone matches from the text with tel: link
// targets, normalizes each candidate, and keeps the ones whose
// normalized length lands in [7,15].
func ExtractPhones(p *Page) []string {
	candidates := rePhoneText.FindAllString(p.Text, -1)
	p.Doc.Find(`a[href]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if strings.HasPrefix(href, "tel:") {
			candidates = append(candidates, strings.TrimPrefix(href, "tel:"))
		}
	})

	seen := map[string]bool{}
	var out []string
	for _, c := range candidates {
		n := NormalizePhone(c)
		if len(n) < 7 || len(n) > 15 {
			continue
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// NormalizePhone strips everything except digits, keeping at most one
// leading plus.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExtractSocialLinks classifies every link against the five fixed
// platforms. The last matching link per platform wins; that sequential
// overwrite is preserved source behavior.
func ExtractSocialLinks(links []string) map[string]string {
	socials := map[string]string{
		domain.PlatformLinkedIn:  "",
		domain.PlatformTwitter:   "",
		domain.PlatformFacebook:  "",
		domain.PlatformInstagram: "",
		domain.PlatformYouTube:   "",
	}
	for _, href := range links {
		switch {
		case strings.Contains(href, "linkedin.com"):
			socials[domain.PlatformLinkedIn] = href
		case strings.Contains(href, "twitter.com"):
			socials[domain.PlatformTwitter] = href
		case strings.Contains(href, "facebook.com"):
			socials[domain.PlatformFacebook] = href
		case strings.Contains(href, "instagram.com"):
			socials[domain.PlatformInstagram] = href
		case strings.Contains(href, "youtube.com"):
			socials[domain.PlatformYouTube] = href
		}
	}
	return socials
}

// ExtractPageLink returns the first link containing any of the markers,
// resolved absolute.
func ExtractPageLink(p *Page, links []string, markers ...string) string {
	for _, href := range links {
		low := strings.ToLower(href)
		for _, m := range markers {
			if strings.Contains(low, m) {
				return p.resolveURL(href)
			}
		}
	}
	return domain.Unknown
}

// ExtractPartnerLinks keeps links that smell institutional (.gov, .org,
// .edu, partner, ngo, ministry), deduplicated.
func ExtractPartnerLinks(links []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, href := range links {
		for _, m := range partnerMarkers {
			if strings.Contains(href, m) {
				if !seen[href] {
					seen[href] = true
					out = append(out, href)
				}
				break
			}
		}
	}
	return out
}

// ExtractWhatsAppLinks keeps wa.me / whatsapp.com links.
func ExtractWhatsAppLinks(links []string) []string {
	var out []string
	for _, href := range links {
		if strings.Contains(href, "wa.me") || strings.Contains(href, "whatsapp.com") {
			out = append(out, href)
		}
	}
	return out
}

// ExtractAddress returns the first text line that mentions an address
// keyword and is shorter than 150 characters.
func ExtractAddress(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if len(line) >= 150 {
			continue
		}
		low := strings.ToLower(line)
		for _, kw := range addressKeywords {
			if strings.Contains(low, kw) {
				return strings.TrimSpace(line)
			}
		}
	}
	return domain.Unknown
}

// ExtractTechStack scans the lowercased raw HTML for the fixed
// vocabulary and records every match, capitalized, in vocabulary order.
func ExtractTechStack(rawHTML string) []string {
	low := strings.ToLower(rawHTML)
	var out []string
	for _, t := range TechVocabulary {
		if strings.Contains(low, t) {
			out = append(out, capitalize(t))
		}
	}
	return out
}

// capitalize uppercases the first rune and lowercases the rest,
// matching the casing the vocabularies are reported in ("e-learning"
// becomes "E-learning").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
