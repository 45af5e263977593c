package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/sitetext"
)

var _ sitetext.VisitedStore = (*VisitedStore)(nil)

// VisitedStore is a mock implementation of sitetext.VisitedStore.
type VisitedStore struct {
	CheckAndMarkFn func(ctx context.Context, url string) (bool, error)
	CloseFn        func() error
}

func (s *VisitedStore) CheckAndMark(ctx context.Context, url string) (bool, error) {
	return s.CheckAndMarkFn(ctx, url)
}

func (s *VisitedStore) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

var _ sitetext.VisitedStore = (*MemoryVisitedStore)(nil)

// MemoryVisitedStore is an in-memory, thread-safe VisitedStore for
// tests that need real check-and-mark semantics without a database.
type MemoryVisitedStore struct {
	mu   sync.Mutex
	urls map[string]bool
}

// NewMemoryVisitedStore creates an empty MemoryVisitedStore.
func NewMemoryVisitedStore() *MemoryVisitedStore {
	return &MemoryVisitedStore{urls: make(map[string]bool)}
}

func (s *MemoryVisitedStore) CheckAndMark(ctx context.Context, url string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.urls[url] {
		return true, nil
	}
	s.urls[url] = true
	return false, nil
}

func (s *MemoryVisitedStore) Close() error {
	return nil
}

// Visited reports whether a URL has been marked.
func (s *MemoryVisitedStore) Visited(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.urls[url]
}
