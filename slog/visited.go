package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/sitetext"
)

// Ensure VisitedStore implements sitetext.VisitedStore at compile time.
var _ sitetext.VisitedStore = (*VisitedStore)(nil)

// VisitedStore wraps a sitetext.VisitedStore with logging for skipped
// URLs and storage failures.
type VisitedStore struct {
	next   sitetext.VisitedStore
	logger *slog.Logger
}

// NewVisitedStore creates a new logging VisitedStore.
func NewVisitedStore(next sitetext.VisitedStore, logger *slog.Logger) *VisitedStore {
	return &VisitedStore{next: next, logger: logger}
}

// CheckAndMark delegates to the wrapped store and logs the outcome.
func (s *VisitedStore) CheckAndMark(ctx context.Context, url string) (bool, error) {
	visited, err := s.next.CheckAndMark(ctx, url)
	if err != nil {
		s.logger.Error("visited store failure", "url", url, "error", err)
		return visited, err
	}
	if visited {
		s.logger.Debug("already visited", "url", url)
	}
	return visited, nil
}

// Close delegates to the wrapped store.
func (s *VisitedStore) Close() error {
	return s.next.Close()
}
