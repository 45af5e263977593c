// Package goquery provides HTML text extraction and link discovery
// built on goquery CSS selection.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/fwojciec/sitetext"
)

// Compile-time interface verification.
var _ sitetext.HTMLExtractor = (*Extractor)(nil)

// Extractor extracts plain text from HTML documents.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the text of heading, paragraph, and list-item
// elements in document order, one element per line. Script and style
// content is removed and each element's text is whitespace-collapsed.
func (e *Extractor) ExtractText(htmlBytes []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBytes))
	if err != nil {
		return "", sitetext.Errorf(sitetext.EINVALID, "parse HTML: %v", err)
	}

	doc.Find("script, style").Remove()

	var parts []string
	doc.Find("h1, h2, h3, h4, h5, h6, p, li").Each(func(_ int, sel *goquery.Selection) {
		if text := collapseWhitespace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return strings.Join(parts, "\n"), nil
}

// ExtractAllText returns all visible text in the document,
// whitespace-collapsed. Script and style subtrees are excluded.
func (e *Extractor) ExtractAllText(htmlBytes []byte) (string, error) {
	root, err := html.Parse(bytes.NewReader(htmlBytes))
	if err != nil {
		return "", sitetext.Errorf(sitetext.EINVALID, "parse HTML: %v", err)
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return collapseWhitespace(b.String()), nil
}

// collapseWhitespace reduces runs of whitespace to a single space and
// trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
