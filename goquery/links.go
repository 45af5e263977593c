package goquery

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fwojciec/sitetext"
)

// Compile-time interface verification.
var _ sitetext.LinkExtractor = (*LinkSelector)(nil)

// LinkSelector discovers same-domain hyperlinks in HTML documents.
type LinkSelector struct{}

// NewLinkSelector creates a new LinkSelector.
func NewLinkSelector() *LinkSelector {
	return &LinkSelector{}
}

// ExtractLinks parses anchor elements with an href attribute, resolves
// relative hrefs against baseURL, and returns the normalized set of
// links whose host exactly matches scopeHost. Fragment-only, mailto:,
// and other non-HTTP hrefs are discarded; malformed individual hrefs
// are skipped without aborting discovery for the page.
func (s *LinkSelector) ExtractLinks(htmlBytes []byte, baseURL string, scopeHost string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBytes))
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINVALID, "parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)

		// Same-domain scoping: exact host match only, subdomains are
		// considered external.
		if resolved.Host != scopeHost {
			return
		}

		normalized, err := sitetext.Normalize(resolved.String())
		if err != nil {
			return
		}

		if !seen[normalized] {
			seen[normalized] = true
			links = append(links, normalized)
		}
	})

	return links, nil
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
