// Package bloom provides a probabilistic seen-set for enqueued URLs.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a best-effort seen-set over URL strings: false positives
// are possible, false negatives are not. It is not safe for concurrent
// use; callers synchronize.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// TestAndAdd records the URL and reports whether it may have been
// recorded before. A true result can be a false positive.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestOrAddString(url)
}

// Test reports whether the URL may have been recorded, without
// recording it.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs recorded.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
