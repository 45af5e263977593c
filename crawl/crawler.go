// Package crawl provides site crawling orchestration. It coordinates
// the frontier of discovered URLs, the durable visited set, a fixed
// pool of fetch workers, and content extraction dispatch.
package crawl

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/sitetext"
)

// Frontier sizing for the enqueue-side Bloom filter.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 100000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.001
)

// Crawler orchestrates a crawl: it owns the frontier and a fixed-size
// worker pool, and terminates when the frontier is empty and no worker
// has work in flight.
type Crawler struct {
	Visited  sitetext.VisitedStore
	Fetcher  sitetext.Fetcher
	Dispatch *Dispatcher
	Links    sitetext.LinkExtractor
	Writer   sitetext.DocumentWriter
	Pacer    *Pacer
	Logger   *slog.Logger
	Workers  int
}

// Result holds the outcome of a crawl.
type Result struct {
	// Saved counts URLs that produced an artifact.
	Saved int
	// Skipped counts URLs already recorded as visited, plus fetched
	// resources that yielded no text.
	Skipped int
	// Failed counts URLs whose fetch failed.
	Failed int
}

// outcome holds what a worker produced for a single URL.
type outcome struct {
	url        string
	discovered []string
	saved      bool
	skipped    bool
	err        error
}

// Run crawls the site reachable from seed, scoped to the seed's host.
// Extra seed URLs (e.g., from a sitemap) may be supplied; out-of-scope
// extras are ignored. Per-URL fetch and parse failures are logged and
// contained; storage failures abort the crawl because they threaten
// the deduplication guarantee.
func (c *Crawler) Run(ctx context.Context, seed string, extra []string) (*Result, error) {
	normalizedSeed, err := sitetext.Normalize(seed)
	if err != nil {
		return nil, err
	}
	parsedSeed, err := url.Parse(normalizedSeed)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINVALID, "invalid seed URL %q: %v", seed, err)
	}
	scopeHost := parsedSeed.Host

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(normalizedSeed)
	for _, u := range extra {
		normalized, err := sitetext.Normalize(u)
		if err != nil {
			continue
		}
		if host, err := sitetext.Host(normalized); err != nil || host != scopeHost {
			continue
		}
		frontier.Push(normalized)
	}

	workers := c.Workers
	if workers <= 0 {
		workers = 5
	}

	workCh := make(chan string, workers)
	resultCh := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range workCh {
				out := c.process(ctx, u, scopeHost)
				select {
				case resultCh <- out:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Close the result channel once all workers have exited.
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var result Result
	var fatal error

	// Coordinator loop. pending counts URLs dispatched to workers whose
	// full cycle (including link hand-back) has not completed yet: the
	// crawl is quiescent when the frontier is empty and pending is zero.
	pending := 0
	var next string
	haveNext := false
	if u, ok := frontier.Pop(); ok {
		next, haveNext = u, true
	}

coordinatorLoop:
	for {
		if !haveNext && pending == 0 {
			break
		}
		if ctx.Err() != nil {
			break
		}

		if haveNext {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- next:
				pending++
				haveNext = false
			case out := <-resultCh:
				pending--
				fatal = c.collect(&out, frontier, &result)
				if fatal != nil {
					break coordinatorLoop
				}
			}
		} else {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case out, ok := <-resultCh:
				if !ok {
					break coordinatorLoop
				}
				pending--
				fatal = c.collect(&out, frontier, &result)
				if fatal != nil {
					break coordinatorLoop
				}
			}
		}

		if !haveNext {
			if u, ok := frontier.Pop(); ok {
				next, haveNext = u, true
			}
		}
	}

	// Signal workers to stop and drain in-flight results so no outcome
	// is lost on the floor.
	close(workCh)
	drainTimeout := time.After(5 * time.Second)
drainLoop:
	for {
		select {
		case out, ok := <-resultCh:
			if !ok {
				break drainLoop
			}
			if fatal == nil {
				if err := c.collect(&out, frontier, &result); err != nil {
					fatal = err
				}
			}
		case <-drainTimeout:
			break drainLoop
		}
	}

	if fatal != nil {
		return &result, fatal
	}
	return &result, ctx.Err()
}

// process runs one worker cycle for a URL: claim it in the visited
// store, fetch, extract, persist, and discover links.
func (c *Crawler) process(ctx context.Context, rawURL string, scopeHost string) outcome {
	out := outcome{url: rawURL}

	if c.Pacer != nil {
		host, err := sitetext.Host(rawURL)
		if err != nil {
			host = scopeHost
		}
		if err := c.Pacer.Wait(ctx, host); err != nil {
			out.err = err
			return out
		}
	}

	// Claim the URL before fetching. A URL is marked visited exactly
	// once, so at most one worker ever passes this point per URL.
	visited, err := c.Visited.CheckAndMark(ctx, rawURL)
	if err != nil {
		out.err = err
		return out
	}
	if visited {
		out.skipped = true
		return out
	}

	c.Logger.Info("crawling", "url", rawURL)

	res, err := c.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		// One-shot policy: the URL stays marked visited and is not
		// retried within this run or on restart.
		c.Logger.Error("fetch failed", "url", rawURL, "error", err)
		out.err = err
		return out
	}

	doc := c.Dispatch.Extract(res)
	if doc != nil && !doc.Empty() {
		if err := c.Writer.WriteDocument(ctx, doc); err != nil {
			out.err = err
			return out
		}
		out.saved = true
	} else {
		out.skipped = true
	}

	if res.ContentType == sitetext.ContentTypeHTML {
		links, err := c.Links.ExtractLinks(res.Body, res.URL, scopeHost)
		if err != nil {
			c.Logger.Warn("link discovery failed", "url", res.URL, "error", err)
		} else {
			out.discovered = links
		}
	}

	return out
}

// collect folds a worker outcome into the crawl result and feeds
// discovered links back into the frontier. It returns a non-nil error
// only for storage failures, which abort the crawl.
func (c *Crawler) collect(out *outcome, frontier *Frontier, result *Result) error {
	for _, link := range out.discovered {
		frontier.Push(link)
	}

	switch {
	case out.err != nil:
		if sitetext.ErrorCode(out.err) == sitetext.ESTORAGE {
			c.Logger.Error("storage failure, aborting crawl", "url", out.url, "error", out.err)
			return out.err
		}
		if errors.Is(out.err, context.Canceled) || errors.Is(out.err, context.DeadlineExceeded) {
			return nil
		}
		result.Failed++
	case out.saved:
		result.Saved++
	case out.skipped:
		result.Skipped++
	}
	return nil
}
