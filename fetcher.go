package sitetext

import "context"

// ContentType classifies a fetched resource by its declared content type.
type ContentType int

// Content types the crawler knows how to extract.
const (
	ContentTypeOther ContentType = iota
	ContentTypeHTML
	ContentTypePDF
)

// String returns a human-readable name for logging.
func (t ContentType) String() string {
	switch t {
	case ContentTypeHTML:
		return "html"
	case ContentTypePDF:
		return "pdf"
	default:
		return "other"
	}
}

// FetchResult holds the outcome of a single successful fetch.
// It is transient: owned by the worker that produced it and discarded
// after extraction.
type FetchResult struct {
	// URL is the final effective URL after redirects.
	URL string

	// ContentType is normalized from the response Content-Type header.
	ContentType ContentType

	// Body is the raw response body.
	Body []byte
}

// Fetcher performs one HTTP GET for a URL.
// Non-2xx responses and transport failures return ETRANSPORT.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}
