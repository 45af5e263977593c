package crawl_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/sitetext"
	"github.com/fwojciec/sitetext/crawl"
	"github.com/fwojciec/sitetext/goquery"
	"github.com/fwojciec/sitetext/mock"
)

// countingFetcher serves canned HTML pages and records every fetch.
type countingFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls map[string]int
}

func newCountingFetcher(pages map[string]string) *countingFetcher {
	return &countingFetcher{pages: pages, calls: make(map[string]int)}
}

func (f *countingFetcher) Fetch(ctx context.Context, url string) (*sitetext.FetchResult, error) {
	f.mu.Lock()
	f.calls[url]++
	body, ok := f.pages[url]
	f.mu.Unlock()

	if !ok {
		return nil, sitetext.Errorf(sitetext.ETRANSPORT, "HTTP 404 for %s", url)
	}
	return &sitetext.FetchResult{
		URL:         url,
		ContentType: sitetext.ContentTypeHTML,
		Body:        []byte(body),
	}, nil
}

func (f *countingFetcher) count(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func (f *countingFetcher) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func newTestCrawler(fetcher sitetext.Fetcher, visited sitetext.VisitedStore, writer sitetext.DocumentWriter, workers int) *crawl.Crawler {
	return &crawl.Crawler{
		Visited: visited,
		Fetcher: fetcher,
		Dispatch: &crawl.Dispatcher{
			HTML:   goquery.NewExtractor(),
			Logger: discardLogger(),
		},
		Links:   goquery.NewLinkSelector(),
		Writer:  writer,
		Logger:  discardLogger(),
		Workers: workers,
	}
}

func TestCrawler_follows_same_domain_links_and_terminates(t *testing.T) {
	t.Parallel()

	seed := `<html><body>
		<p>Welcome to the site.</p>
		<a href="/about">About</a>
		<a href="https://example.com/contact">Contact</a>
		<a href="https://other.com/external">External</a>
		<a href="mailto:foo@bar.com">Mail</a>
		<a href="#section1">Jump</a>
	</body></html>`

	fetcher := newCountingFetcher(map[string]string{
		"https://example.com":         seed,
		"https://example.com/about":   `<html><body><p>About us.</p></body></html>`,
		"https://example.com/contact": `<html><body><p>Contact page.</p></body></html>`,
	})
	visited := mock.NewMemoryVisitedStore()
	writer := &mock.MemoryDocumentWriter{}

	c := newTestCrawler(fetcher, visited, writer, 1)
	result, err := c.Run(context.Background(), "https://example.com", nil)
	require.NoError(t, err)

	// Seed plus the two local links; the external, mailto, and
	// fragment links are never fetched.
	assert.Equal(t, 3, result.Saved)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 3, fetcher.total())
	assert.Equal(t, 0, fetcher.count("https://other.com/external"))

	docs := writer.Documents()
	require.Len(t, docs, 3)
}

func TestCrawler_processes_each_URL_at_most_once(t *testing.T) {
	t.Parallel()

	// Every page links back to every other page, so the frontier sees
	// each URL many times.
	pages := make(map[string]string)
	var links string
	for i := 0; i < 10; i++ {
		links += fmt.Sprintf(`<a href="/page%d">p</a>`, i)
	}
	pages["https://example.com"] = `<html><body><p>root</p>` + links + `</body></html>`
	for i := 0; i < 10; i++ {
		pages[fmt.Sprintf("https://example.com/page%d", i)] =
			fmt.Sprintf(`<html><body><p>page %d</p>%s</body></html>`, i, links)
	}

	fetcher := newCountingFetcher(pages)
	visited := mock.NewMemoryVisitedStore()
	writer := &mock.MemoryDocumentWriter{}

	c := newTestCrawler(fetcher, visited, writer, 4)
	result, err := c.Run(context.Background(), "https://example.com", nil)
	require.NoError(t, err)

	assert.Equal(t, 11, result.Saved)
	for url := range pages {
		assert.Equal(t, 1, fetcher.count(url), "URL fetched more than once: %s", url)
	}
}

func TestCrawler_resumes_without_refetching_visited_URLs(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"https://example.com":       `<html><body><p>root</p><a href="/about">a</a></body></html>`,
		"https://example.com/about": `<html><body><p>about</p></body></html>`,
	}
	visited := mock.NewMemoryVisitedStore()

	first := newCountingFetcher(pages)
	c := newTestCrawler(first, visited, &mock.MemoryDocumentWriter{}, 2)
	_, err := c.Run(context.Background(), "https://example.com", nil)
	require.NoError(t, err)
	require.Equal(t, 2, first.total())

	// Second run against the same visited store: nothing is fetched.
	second := newCountingFetcher(pages)
	c2 := newTestCrawler(second, visited, &mock.MemoryDocumentWriter{}, 2)
	result, err := c2.Run(context.Background(), "https://example.com", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, second.total())
	assert.Equal(t, 0, result.Saved)
	assert.Equal(t, 1, result.Skipped)
}

func TestCrawler_fetch_failures_are_contained(t *testing.T) {
	t.Parallel()

	fetcher := newCountingFetcher(map[string]string{
		"https://example.com": `<html><body><p>root</p>
			<a href="/missing">gone</a>
			<a href="/about">a</a></body></html>`,
		"https://example.com/about": `<html><body><p>about</p></body></html>`,
	})
	visited := mock.NewMemoryVisitedStore()
	writer := &mock.MemoryDocumentWriter{}

	c := newTestCrawler(fetcher, visited, writer, 2)
	result, err := c.Run(context.Background(), "https://example.com", nil)
	require.NoError(t, err, "per-URL fetch failures must not fail the run")

	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, 1, result.Failed)

	// The failed URL stays visited: one-shot, no retry.
	assert.True(t, visited.Visited("https://example.com/missing"))
}

func TestCrawler_storage_failure_aborts_the_crawl(t *testing.T) {
	t.Parallel()

	fetcher := newCountingFetcher(map[string]string{
		"https://example.com": `<html><body><p>root</p></body></html>`,
	})
	visited := &mock.VisitedStore{
		CheckAndMarkFn: func(ctx context.Context, url string) (bool, error) {
			return false, sitetext.Errorf(sitetext.ESTORAGE, "disk failure")
		},
	}

	c := newTestCrawler(fetcher, visited, &mock.MemoryDocumentWriter{}, 2)
	_, err := c.Run(context.Background(), "https://example.com", nil)

	require.Error(t, err)
	assert.Equal(t, sitetext.ESTORAGE, sitetext.ErrorCode(err))
}

func TestCrawler_rejects_invalid_seed(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(newCountingFetcher(nil), mock.NewMemoryVisitedStore(), &mock.MemoryDocumentWriter{}, 1)

	_, err := c.Run(context.Background(), "not-a-url", nil)
	require.Error(t, err)
	assert.Equal(t, sitetext.EINVALID, sitetext.ErrorCode(err))
}

func TestCrawler_extra_seeds_are_scoped_and_crawled(t *testing.T) {
	t.Parallel()

	fetcher := newCountingFetcher(map[string]string{
		"https://example.com":        `<html><body><p>root</p></body></html>`,
		"https://example.com/orphan": `<html><body><p>unlinked page</p></body></html>`,
	})
	visited := mock.NewMemoryVisitedStore()
	writer := &mock.MemoryDocumentWriter{}

	extra := []string{
		"https://example.com/orphan/", // normalized before enqueue
		"https://other.com/ignored",   // out of scope
		"not a url",
	}

	c := newTestCrawler(fetcher, visited, writer, 2)
	result, err := c.Run(context.Background(), "https://example.com", extra)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, 1, fetcher.count("https://example.com/orphan"))
	assert.Equal(t, 0, fetcher.count("https://other.com/ignored"))
}

func TestCrawler_cancellation_stops_promptly(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := newCountingFetcher(map[string]string{
		"https://example.com": `<html><body><p>root</p></body></html>`,
	})
	c := newTestCrawler(fetcher, mock.NewMemoryVisitedStore(), &mock.MemoryDocumentWriter{}, 2)

	_, err := c.Run(ctx, "https://example.com", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
