// Package fs provides file-based storage for extracted text artifacts.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/fwojciec/sitetext"
)

// maxNamePrefix bounds the readable part of an artifact filename.
const maxNamePrefix = 50

// Filename derives a stable artifact filename from a URL. The name is a
// sanitized, truncated form of the URL followed by an xxHash of the
// full URL, so distinct URLs never collide and the same URL always maps
// to the same file across runs.
func Filename(rawURL string) string {
	decoded := rawURL
	if d, err := url.QueryUnescape(rawURL); err == nil {
		decoded = d
	}

	var b strings.Builder
	for _, r := range decoded {
		if b.Len() >= maxNamePrefix {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.' || r == '(' || r == ')':
			b.WriteRune(r)
		}
	}
	prefix := strings.TrimRight(b.String(), ".")

	return fmt.Sprintf("%s_%016x.txt", prefix, xxhash.Sum64String(rawURL))
}

// Ensure Writer implements sitetext.DocumentWriter at compile time.
var _ sitetext.DocumentWriter = (*Writer)(nil)

// Writer writes extracted documents as text files to a directory,
// one artifact per URL. Re-runs overwrite existing artifacts.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base
// directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteDocument writes a document to disk. The artifact begins with a
// source line naming the final effective URL the text came from.
func (w *Writer) WriteDocument(ctx context.Context, doc *sitetext.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(w.baseDir, 0o755); err != nil {
		return sitetext.Errorf(sitetext.ESTORAGE, "create output directory: %v", err)
	}

	var b strings.Builder
	b.WriteString("source: ")
	b.WriteString(doc.SourceURL)
	b.WriteString("\n\n")
	b.WriteString(doc.Text)
	b.WriteString("\n")

	path := filepath.Join(w.baseDir, Filename(doc.SourceURL))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return sitetext.Errorf(sitetext.ESTORAGE, "write artifact for %s: %v", doc.SourceURL, err)
	}
	return nil
}
