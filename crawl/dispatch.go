package crawl

import (
	"log/slog"
	"strings"

	"github.com/fwojciec/sitetext"
)

// Dispatcher routes fetched bytes to the extractor for their declared
// content type. Extraction never fails a worker: parse errors degrade
// to an empty result plus a log entry.
type Dispatcher struct {
	HTML   sitetext.HTMLExtractor
	PDF    sitetext.PDFExtractor
	Logger *slog.Logger
}

// Extract produces the document for a fetch result, or nil when the
// resource yields no text (unsupported content type, empty page, or
// unrecoverable parse failure).
func (d *Dispatcher) Extract(res *sitetext.FetchResult) *sitetext.Document {
	switch res.ContentType {
	case sitetext.ContentTypeHTML:
		return d.extractHTML(res)
	case sitetext.ContentTypePDF:
		return d.extractPDF(res)
	default:
		d.Logger.Info("skipping unsupported content type", "url", res.URL)
		return nil
	}
}

func (d *Dispatcher) extractHTML(res *sitetext.FetchResult) *sitetext.Document {
	text, err := d.HTML.ExtractText(res.Body)
	if err != nil {
		d.Logger.Warn("html extraction failed", "url", res.URL, "error", err)
		text = ""
	}

	// Pages without headings, paragraphs, or list items fall back to
	// all visible text.
	if strings.TrimSpace(text) == "" {
		text, err = d.HTML.ExtractAllText(res.Body)
		if err != nil {
			d.Logger.Warn("html fallback extraction failed", "url", res.URL, "error", err)
			return nil
		}
	}

	if strings.TrimSpace(text) == "" {
		d.Logger.Warn("empty html content", "url", res.URL)
		return nil
	}
	return &sitetext.Document{SourceURL: res.URL, Text: text}
}

func (d *Dispatcher) extractPDF(res *sitetext.FetchResult) *sitetext.Document {
	text, err := d.PDF.ExtractText(res.Body)
	if err != nil {
		d.Logger.Error("pdf extraction failed", "url", res.URL, "error", err)
		return nil
	}
	if strings.TrimSpace(text) == "" {
		d.Logger.Warn("empty pdf content", "url", res.URL)
		return nil
	}
	return &sitetext.Document{SourceURL: res.URL, Text: text}
}
