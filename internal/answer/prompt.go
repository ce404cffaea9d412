// ABOUTME: Prompt construction for grounded answers
// ABOUTME: Excerpt-tagged context and the strict grounding contract
package answer

import (
	"fmt"
	"strings"

	"github.com/harper/caselens/internal/models"
)

// Sentinels re-exported for callers that work at the answerer level.
const (
	NotFoundSentinel         = models.NotFoundSentinel
	GenerationFailedSentinel = models.GenerationFailedSentinel
)

// systemPrompt is the grounding contract for the generation capability.
var systemPrompt = fmt.Sprintf(`You are a financial research assistant answering questions about a set of case documents.

Rules:
- Answer using ONLY the numbered excerpts provided. Do not use outside knowledge.
- If the excerpts are insufficient to answer, reply with exactly: %s
- Cite the source of every substantive claim inline using the citation shown
  in that excerpt's header, e.g. (report.pdf, 4) or (notes.txt).
- Never cite a document that does not appear in the excerpts.
- Be specific and data-driven; quote figures from the excerpts where relevant.`, NotFoundSentinel)

// buildContext renders the retrieved chunks in rank order, each tagged with
// its provenance citation.
func buildContext(results []models.RetrievalResult) string {
	var b strings.Builder
	for i, res := range results {
		fmt.Fprintf(&b, "--- Excerpt %d %s ---\n%s\n\n", i+1, res.Chunk.Citation(), res.Chunk.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildUserMessage combines the question with the grounded context.
func buildUserMessage(query string, results []models.RetrievalResult) string {
	return fmt.Sprintf("Question: %s\n\nCase document excerpts:\n%s\n\nAnswer the question from the excerpts above, citing sources.",
		query, buildContext(results))
}
