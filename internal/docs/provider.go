// ABOUTME: Document provider abstraction over raw case materials
// ABOUTME: FSProvider lists and reads .pdf/.txt/.md files from a directory
package docs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Document identifies one raw case document.
type Document struct {
	Filename string // base name, unique within the corpus
	Path     string // absolute or provider-relative path
}

// Page is one unit of extractable text. Number is nil for plain-text
// documents, 1-based for paged formats.
type Page struct {
	Number *int
	Text   string
}

// Provider supplies raw documents to the ingestion pipeline. Implementations
// other than the local filesystem (object stores, sync connectors) plug in
// behind this interface.
type Provider interface {
	ListDocuments(ctx context.Context) ([]Document, error)
	Read(ctx context.Context, doc Document) ([]Page, error)
}

// Extensions the filesystem provider ingests.
var supportedExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
	".md":  true,
}

// FSProvider reads documents from a local directory.
type FSProvider struct {
	dir string
}

// NewFSProvider creates a provider rooted at dir.
func NewFSProvider(dir string) *FSProvider {
	return &FSProvider{dir: dir}
}

// ListDocuments returns the supported documents in the directory, sorted by
// filename so ingestion order (and chunk insertion order) is deterministic.
func (p *FSProvider) ListDocuments(ctx context.Context) ([]Document, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("listing documents in %s: %w", p.dir, err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !supportedExtensions[ext] {
			continue
		}
		docs = append(docs, Document{
			Filename: entry.Name(),
			Path:     filepath.Join(p.dir, entry.Name()),
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Filename < docs[j].Filename })
	return docs, nil
}

// Read extracts the document's pages. PDFs yield one Page per PDF page with
// 1-based numbers; plain text and markdown yield a single unnumbered Page.
// Pages that extract to only whitespace are dropped.
func (p *FSProvider) Read(ctx context.Context, doc Document) ([]Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(doc.Filename)) {
	case ".pdf":
		return readPDF(doc.Path)
	case ".txt", ".md":
		return readText(doc.Path)
	default:
		return nil, fmt.Errorf("unsupported document type: %s", doc.Filename)
	}
}

func readText(path string) ([]Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}
	return []Page{{Number: nil, Text: text}}, nil
}
