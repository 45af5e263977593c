package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/sitetext"
)

// Compile-time interface verification.
var _ sitetext.VisitedStore = (*VisitedStore)(nil)

// VisitedStore implements sitetext.VisitedStore using SQLite. Records
// are created exactly once, never updated, never deleted, and persist
// across process restarts so a re-run skips completed URLs.
type VisitedStore struct {
	db *DB
}

// NewVisitedStore creates a new VisitedStore backed by db.
func NewVisitedStore(db *DB) *VisitedStore {
	return &VisitedStore{db: db}
}

// CheckAndMark atomically records url as visited. It returns true if
// the URL was already recorded (the insert changed nothing) and false
// if this call claimed it. The conflict-tolerant insert plus SQLite's
// single-writer discipline make the test-and-set indivisible under
// concurrent calls.
func (s *VisitedStore) CheckAndMark(ctx context.Context, url string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO visited_urls (url, visited_at) VALUES (?, ?)
		ON CONFLICT (url) DO NOTHING
	`, url, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, sitetext.Errorf(sitetext.ESTORAGE, "mark visited %s: %v", url, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, sitetext.Errorf(sitetext.ESTORAGE, "mark visited %s: %v", url, err)
	}
	return n == 0, nil
}

// Close releases the backing database handle.
func (s *VisitedStore) Close() error {
	return s.db.Close()
}
