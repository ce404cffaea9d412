// ABOUTME: Tests for filesystem document listing and text extraction
// ABOUTME: Verifies extension filtering, sorted listing, and empty handling
package docs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestListDocuments_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "zebra.txt", "z")
	writeFile(t, dir, "alpha.md", "a")
	writeFile(t, dir, "skipped.csv", "nope")
	writeFile(t, dir, "image.png", "nope")
	if err := os.Mkdir(filepath.Join(dir, "subdir.txt"), 0755); err != nil {
		t.Fatal(err)
	}

	docs, err := NewFSProvider(dir).ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("documents = %d, want 2", len(docs))
	}
	if docs[0].Filename != "alpha.md" || docs[1].Filename != "zebra.txt" {
		t.Errorf("order = %s, %s; want alpha.md, zebra.txt", docs[0].Filename, docs[1].Filename)
	}
}

func TestListDocuments_MissingDirectory(t *testing.T) {
	p := NewFSProvider(filepath.Join(t.TempDir(), "nope"))
	if _, err := p.ListDocuments(context.Background()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestRead_TextFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "  line one\nline two  \n")

	p := NewFSProvider(dir)
	pages, err := p.Read(context.Background(), Document{
		Filename: "notes.txt",
		Path:     filepath.Join(dir, "notes.txt"),
	})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if len(pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(pages))
	}
	if pages[0].Number != nil {
		t.Error("text documents must have nil page numbers")
	}
	if pages[0].Text != "line one\nline two" {
		t.Errorf("text = %q, want trimmed content", pages[0].Text)
	}
}

func TestRead_EmptyTextFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blank.txt", "   \n\t\n")

	pages, err := NewFSProvider(dir).Read(context.Background(), Document{
		Filename: "blank.txt",
		Path:     filepath.Join(dir, "blank.txt"),
	})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("pages = %d, want 0 for whitespace-only file", len(pages))
	}
}

func TestRead_UnsupportedType(t *testing.T) {
	p := NewFSProvider(t.TempDir())
	if _, err := p.Read(context.Background(), Document{Filename: "data.csv"}); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestRead_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewFSProvider(t.TempDir())
	if _, err := p.Read(ctx, Document{Filename: "a.txt"}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
