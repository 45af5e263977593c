package sitetext

import "context"

// VisitedStore is the durable set of normalized URLs that have been
// claimed for processing. It is the crawl's deduplication authority:
// a URL is processed by at most one worker for the lifetime of the
// store's backing storage, across process restarts.
type VisitedStore interface {
	// CheckAndMark atomically tests whether url is already recorded.
	// If not, it records the URL and returns false: the caller now owns
	// processing it. If the URL is already recorded it returns true
	// without side effect. The operation must be indivisible under
	// concurrent calls. Storage failures return ESTORAGE.
	CheckAndMark(ctx context.Context, url string) (visited bool, err error)

	// Close releases the backing storage. Safe to call once, after all
	// workers have stopped.
	Close() error
}
