// ABOUTME: Tests for the JSON file market-data provider
// ABOUTME: Verifies ticker casing, missing files, and partial snapshots
package marketdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/caselens/internal/models"
)

func writeSnapshot(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestFileProvider_Snapshot(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "MA.json", `{
		"operating_margin": 0.58,
		"roe": 1.7,
		"trailing_pe": 38.2,
		"extra_metric": 42
	}`)

	p := NewFileProvider(dir)
	snap, err := p.Snapshot(context.Background(), "MA")
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if v, ok := snap.Get(models.MetricOperatingMargin); !ok || v != 0.58 {
		t.Errorf("operating_margin = %v, %v; want 0.58, true", v, ok)
	}
	// Unknown keys survive; scorers just ignore them.
	if _, ok := snap.Get("extra_metric"); !ok {
		t.Error("unknown metrics should be preserved")
	}
	// Absent keys stay absent.
	if _, ok := snap.Get(models.MetricRSI); ok {
		t.Error("rsi should be missing from a partial snapshot")
	}
}

func TestFileProvider_LowercaseTicker(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "MA.json", `{"price": 420.5}`)

	snap, err := NewFileProvider(dir).Snapshot(context.Background(), "ma")
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if v, _ := snap.Get(models.MetricPrice); v != 420.5 {
		t.Errorf("price = %v, want 420.5", v)
	}
}

func TestFileProvider_MissingTicker(t *testing.T) {
	p := NewFileProvider(t.TempDir())
	if _, err := p.Snapshot(context.Background(), "NOPE"); err == nil {
		t.Fatal("expected error for missing ticker file")
	}
}

func TestFileProvider_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "BAD.json", `{"price": "not a number"}`)

	if _, err := NewFileProvider(dir).Snapshot(context.Background(), "BAD"); err == nil {
		t.Fatal("expected error for malformed metrics")
	}
}

func TestFileProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewFileProvider(t.TempDir()).Snapshot(ctx, "MA"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
