// ABOUTME: Tests for citation validation and fabricated-source stripping
// ABOUTME: Verifies canonical formats, first-use ordering, and deduplication
package answer

import (
	"strings"
	"testing"

	"github.com/harper/caselens/internal/models"
)

func intPtr(n int) *int { return &n }

func excerptFor(filename string, page *int) models.RetrievalResult {
	return models.RetrievalResult{
		Chunk: models.Chunk{
			ChunkID:  models.ChunkID(filename, page, 0),
			Filename: filename,
			Page:     page,
			Text:     "excerpt text",
		},
	}
}

func TestValidateCitations_KeepsValid(t *testing.T) {
	excerpts := []models.RetrievalResult{
		excerptFor("10-K.pdf", intPtr(12)),
		excerptFor("notes.txt", nil),
	}

	text := "Revenue grew 13% (10-K.pdf, 12). Management flagged churn (notes.txt)."
	cleaned, citations := validateCitations(text, excerpts)

	if cleaned != text {
		t.Errorf("cleaned = %q, want unchanged text", cleaned)
	}
	if len(citations) != 2 {
		t.Fatalf("citations = %d, want 2", len(citations))
	}
	if citations[0].String() != "(10-K.pdf, 12)" {
		t.Errorf("citation 0 = %s, want (10-K.pdf, 12)", citations[0].String())
	}
	if citations[1].String() != "(notes.txt)" {
		t.Errorf("citation 1 = %s, want (notes.txt)", citations[1].String())
	}
}

func TestValidateCitations_StripsFabricated(t *testing.T) {
	excerpts := []models.RetrievalResult{excerptFor("10-K.pdf", intPtr(12))}

	text := "Revenue grew (10-K.pdf, 12) but margins fell (fabricated.pdf, 99)."
	cleaned, citations := validateCitations(text, excerpts)

	if strings.Contains(cleaned, "fabricated.pdf") {
		t.Errorf("fabricated citation survived: %q", cleaned)
	}
	if !strings.Contains(cleaned, "(10-K.pdf, 12)") {
		t.Errorf("valid citation lost: %q", cleaned)
	}
	if len(citations) != 1 {
		t.Fatalf("citations = %d, want 1", len(citations))
	}
}

func TestValidateCitations_WrongPageIsFabricated(t *testing.T) {
	// The file is real but page 99 was never retrieved.
	excerpts := []models.RetrievalResult{excerptFor("10-K.pdf", intPtr(12))}

	cleaned, citations := validateCitations("Margins fell (10-K.pdf, 99).", excerpts)
	if strings.Contains(cleaned, "99") {
		t.Errorf("unretrieved page survived: %q", cleaned)
	}
	if len(citations) != 0 {
		t.Errorf("citations = %d, want 0", len(citations))
	}
}

func TestValidateCitations_NormalizesPageFormat(t *testing.T) {
	excerpts := []models.RetrievalResult{excerptFor("10-K.pdf", intPtr(12))}

	cleaned, citations := validateCitations("Revenue grew (10-K.pdf, p.12).", excerpts)
	if !strings.Contains(cleaned, "(10-K.pdf, 12)") {
		t.Errorf("citation not normalized: %q", cleaned)
	}
	if len(citations) != 1 {
		t.Fatalf("citations = %d, want 1", len(citations))
	}
}

func TestValidateCitations_DedupFirstUseOrder(t *testing.T) {
	excerpts := []models.RetrievalResult{
		excerptFor("a.pdf", intPtr(1)),
		excerptFor("b.pdf", intPtr(2)),
	}

	text := "Claim one (b.pdf, 2). Claim two (a.pdf, 1). Claim three (b.pdf, 2)."
	_, citations := validateCitations(text, excerpts)

	if len(citations) != 2 {
		t.Fatalf("citations = %d, want 2 (deduplicated)", len(citations))
	}
	if citations[0].Filename != "b.pdf" || citations[1].Filename != "a.pdf" {
		t.Errorf("order = %s, %s; want b.pdf, a.pdf (first use wins)",
			citations[0].Filename, citations[1].Filename)
	}
}

func TestValidateCitations_PreservesLineStructure(t *testing.T) {
	excerpts := []models.RetrievalResult{excerptFor("a.pdf", intPtr(1))}

	text := "- Point one (fake.pdf, 3)\n- Point two (a.pdf, 1)"
	cleaned, _ := validateCitations(text, excerpts)

	if !strings.Contains(cleaned, "\n") {
		t.Errorf("newlines lost during cleanup: %q", cleaned)
	}
	if strings.Contains(cleaned, "  ") {
		t.Errorf("double spaces left after stripping: %q", cleaned)
	}
}

func TestValidateCitations_NoCitations(t *testing.T) {
	excerpts := []models.RetrievalResult{excerptFor("a.pdf", intPtr(1))}

	cleaned, citations := validateCitations("An answer with no citations at all.", excerpts)
	if len(citations) != 0 {
		t.Errorf("citations = %d, want 0", len(citations))
	}
	if cleaned != "An answer with no citations at all." {
		t.Errorf("cleaned = %q, want unchanged", cleaned)
	}
}
