package sitetext

import "strings"

// Document holds the extracted text for one URL, ready to be persisted.
type Document struct {
	// SourceURL is the final effective URL the text was extracted from.
	SourceURL string

	// Text is the extracted plain text, including any table sections.
	Text string
}

// Empty reports whether the document contains no text worth persisting.
func (d *Document) Empty() bool {
	return strings.TrimSpace(d.Text) == ""
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	return nil
}

// HTMLExtractor extracts plain text from HTML bytes.
type HTMLExtractor interface {
	// ExtractText returns the text of heading, paragraph, and list-item
	// elements in document order, one element per line, with script and
	// style content removed and whitespace collapsed.
	ExtractText(html []byte) (string, error)

	// ExtractAllText returns all visible text in the document,
	// whitespace-collapsed. Used as a fallback when ExtractText yields
	// nothing.
	ExtractAllText(html []byte) (string, error)
}

// PDFExtractor extracts plain text from PDF bytes, page by page, with
// table-like content rendered as labeled sections. A page that cannot
// be read contributes nothing; a document that cannot be opened at all
// returns an error.
type PDFExtractor interface {
	ExtractText(pdf []byte) (string, error)
}

// LinkExtractor discovers same-domain hyperlinks in HTML bytes.
type LinkExtractor interface {
	// ExtractLinks parses anchor elements, resolves relative hrefs
	// against baseURL, discards fragment-only, mailto:, and
	// out-of-scope links (exact host match against scopeHost), and
	// returns the normalized, deduplicated set. Malformed individual
	// hrefs are skipped.
	ExtractLinks(html []byte, baseURL string, scopeHost string) ([]string, error)
}
