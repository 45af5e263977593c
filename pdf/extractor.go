// Package pdf provides PDF text and table extraction using the
// ledongthuc/pdf reader.
package pdf

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/fwojciec/sitetext"
)

// Compile-time interface verification.
var _ sitetext.PDFExtractor = (*Extractor)(nil)

// Extractor extracts plain text from PDF documents, page by page.
// Table-like content is rendered as labeled sections after each page's
// prose. A page that cannot be read contributes nothing and is logged;
// a document that cannot be opened returns an error.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates a new Extractor that logs per-page failures to
// the given logger.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// ExtractText extracts the text of every page in page order. Pages are
// joined with a blank line.
func (e *Extractor) ExtractText(data []byte) (string, error) {
	r, err := open(data)
	if err != nil {
		return "", sitetext.Errorf(sitetext.EINVALID, "open PDF: %v", err)
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		text, err := e.extractPage(r, i)
		if err != nil {
			e.logger.Warn("pdf page extraction failed", "page", i, "error", err)
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}

// open constructs a reader over the document bytes. The reader panics
// on some malformed inputs, so panics are converted to errors here.
func open(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// extractPage extracts one page's prose followed by its table sections.
// The underlying reader panics on malformed content streams, so panics
// are converted to errors here to keep page failures contained.
func (e *Extractor) extractPage(r *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page %d: %v", num, rec)
		}
	}()

	p := r.Page(num)
	if p.V.IsNull() {
		return "", nil
	}

	var b strings.Builder
	plain, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d: %w", num, err)
	}
	b.WriteString(collapseWhitespace(plain))

	rows, err := p.GetTextByRow()
	if err == nil {
		for _, table := range detectTables(rows) {
			b.WriteString("\nTable:\n")
			b.WriteString(renderTable(table))
		}
	}

	return strings.TrimSpace(b.String()), nil
}

// collapseWhitespace reduces runs of whitespace to a single space and
// trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
