package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/sitetext"
)

var _ sitetext.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of sitetext.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *sitetext.Document) error
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *sitetext.Document) error {
	return w.WriteDocumentFn(ctx, doc)
}

var _ sitetext.DocumentWriter = (*MemoryDocumentWriter)(nil)

// MemoryDocumentWriter collects written documents for assertions.
type MemoryDocumentWriter struct {
	mu   sync.Mutex
	docs []*sitetext.Document
}

func (w *MemoryDocumentWriter) WriteDocument(ctx context.Context, doc *sitetext.Document) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs = append(w.docs, doc)
	return nil
}

// Documents returns a copy of the written documents.
func (w *MemoryDocumentWriter) Documents() []*sitetext.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*sitetext.Document(nil), w.docs...)
}
