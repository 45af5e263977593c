// Package http provides the HTTP-based implementations of the crawler's
// network-facing interfaces: the page fetcher and sitemap discovery.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/sitetext"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// defaultUserAgent identifies the crawler to servers.
const defaultUserAgent = "sitetext/1.0 (+https://github.com/fwojciec/sitetext)"

// Ensure Fetcher implements sitetext.Fetcher at compile time.
var _ sitetext.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw content from URLs with a single HTTP GET per
// call. Redirects are followed and the final effective URL is reported
// in the result.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch performs one GET for the URL. Transport failures, timeouts, and
// non-2xx responses return ETRANSPORT.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*sitetext.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINVALID, "invalid request for %s: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.ETRANSPORT, "fetch %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, sitetext.Errorf(sitetext.ETRANSPORT, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.ETRANSPORT, "read body of %s: %v", rawURL, err)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &sitetext.FetchResult{
		URL:         finalURL,
		ContentType: classifyContentType(resp.Header.Get("Content-Type"), finalURL),
		Body:        body,
	}, nil
}

// classifyContentType normalizes the declared content type to the small
// set the crawler dispatches on. URLs ending in .pdf are treated as PDF
// even when the server declares a generic content type.
func classifyContentType(header, finalURL string) sitetext.ContentType {
	ct := strings.ToLower(header)
	switch {
	case strings.Contains(ct, "text/html"):
		return sitetext.ContentTypeHTML
	case strings.Contains(ct, "application/pdf"):
		return sitetext.ContentTypePDF
	}
	if u, err := url.Parse(finalURL); err == nil {
		if strings.HasSuffix(strings.ToLower(u.Path), ".pdf") {
			return sitetext.ContentTypePDF
		}
	}
	return sitetext.ContentTypeOther
}
