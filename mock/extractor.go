package mock

import "github.com/fwojciec/sitetext"

var _ sitetext.HTMLExtractor = (*HTMLExtractor)(nil)

// HTMLExtractor is a mock implementation of sitetext.HTMLExtractor.
type HTMLExtractor struct {
	ExtractTextFn    func(html []byte) (string, error)
	ExtractAllTextFn func(html []byte) (string, error)
}

func (e *HTMLExtractor) ExtractText(html []byte) (string, error) {
	return e.ExtractTextFn(html)
}

func (e *HTMLExtractor) ExtractAllText(html []byte) (string, error) {
	return e.ExtractAllTextFn(html)
}

var _ sitetext.PDFExtractor = (*PDFExtractor)(nil)

// PDFExtractor is a mock implementation of sitetext.PDFExtractor.
type PDFExtractor struct {
	ExtractTextFn func(pdf []byte) (string, error)
}

func (e *PDFExtractor) ExtractText(pdf []byte) (string, error) {
	return e.ExtractTextFn(pdf)
}

var _ sitetext.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of sitetext.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html []byte, baseURL string, scopeHost string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html []byte, baseURL string, scopeHost string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL, scopeHost)
}
