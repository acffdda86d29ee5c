package scrape

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is the parsed form of one fetched document. Every field extractor
// reads from it; none of them write to it.
type Page struct {
	// URL the document was fetched from; relative links resolve against it.
	URL string

	Doc *goquery.Document

	// Text is the document's text content with markup stripped. Line
	// breaks from the source survive, which the address heuristic
	// depends on.
	Text string

	// RawHTML is the unparsed body, kept for vocabulary scans that look
	// at markup (tech stack fingerprints live in script tags and class
	// names, not in visible text).
	RawHTML string
}

// ParsePage parses html fetched from pageURL.
func ParsePage(pageURL, html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page html: %w", err)
	}
	return &Page{
		URL:     NormalizeTargetURL(pageURL),
		Doc:     doc,
		Text:    doc.Text(),
		RawHTML: html,
	}, nil
}

// Links returns every hyperlink target in document order.
func (p *Page) Links() []string {
	var hrefs []string
	p.Doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href != "" {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

// resolveURL makes href absolute against the page URL. Unparseable
// hrefs come back unchanged; a wrong link beats a dropped one here.
func (p *Page) resolveURL(href string) string {
	base, err := url.Parse(p.URL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
