package sitetext

import "context"

// DocumentWriter persists extracted documents, one artifact per URL.
// The artifact name is derived deterministically from the source URL,
// so re-runs overwrite rather than duplicate. Write failures return
// ESTORAGE.
type DocumentWriter interface {
	WriteDocument(ctx context.Context, doc *Document) error
}
