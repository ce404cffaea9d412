// ABOUTME: Deterministic citation validation over generated answer text
// ABOUTME: Strips fabricated citations, orders valid ones by first use
package answer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/harper/caselens/internal/models"
)

// citationPattern matches citation-shaped tokens the grounding prompt asks
// for: "(report.pdf, 4)", "(report.pdf, p.4)", or "(notes.txt)".
var citationPattern = regexp.MustCompile(`\(([^(),]+\.(?:pdf|txt|md))(?:,\s*(?:p\.\s*)?(\d+))?\)`)

// validateCitations scans text for citation tokens, keeps those matching a
// retrieved excerpt, and strips the rest from the text. The returned
// citations are deduplicated in order of first use. Fabricated citations
// are removed silently (the answer proceeds with whatever remains valid).
func validateCitations(text string, excerpts []models.RetrievalResult) (string, []models.Citation) {
	valid := make(map[string]models.Citation, len(excerpts))
	for _, res := range excerpts {
		c := res.Chunk.Citation()
		valid[c.String()] = c
	}

	var citations []models.Citation
	seen := make(map[string]bool)

	cleaned := citationPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := citationPattern.FindStringSubmatch(match)
		citation := models.Citation{Filename: strings.TrimSpace(groups[1])}
		if groups[2] != "" {
			page, err := strconv.Atoi(groups[2])
			if err == nil {
				citation.Page = &page
			}
		}

		key := citation.String()
		if _, ok := valid[key]; !ok {
			return "" // fabricated source: strip
		}
		if !seen[key] {
			seen[key] = true
			citations = append(citations, valid[key])
		}
		return key
	})

	// Tidy space runs left behind by stripped citations, preserving line
	// structure.
	cleaned = spaceRuns.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	return cleaned, citations
}

var spaceRuns = regexp.MustCompile(`[ \t]{2,}`)
