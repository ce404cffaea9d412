// ABOUTME: GroundedAnswer is the structured output of the grounded answerer
// ABOUTME: Citations render in the fixed "(filename, page)" wire format
package models

import "fmt"

// NotFoundSentinel is the fixed response when the provided case materials
// cannot ground an answer. Callers compare against it verbatim.
const NotFoundSentinel = "Not found in provided case materials"

// GenerationFailedSentinel marks answers that failed because the generation
// service failed, distinct from NotFoundSentinel so callers can tell "no
// docs" from "service down".
const GenerationFailedSentinel = "Generation failed; no grounded answer available"

// Citation points at the document (and page, for paged formats) an answer
// claim came from.
type Citation struct {
	Filename string `json:"filename"`
	Page     *int   `json:"page"`
}

// String renders the citation in the compatibility format: "(10-K.pdf, 12)"
// for paged documents, "(notes.txt)" otherwise.
func (c Citation) String() string {
	if c.Page != nil {
		return fmt.Sprintf("(%s, %d)", c.Filename, *c.Page)
	}
	return fmt.Sprintf("(%s)", c.Filename)
}

// GroundedAnswer is the ephemeral result of one answer() call. Citations are
// ordered by first use in the answer text; Excerpts are the retrieved chunks
// the answer was grounded on, in rank order.
type GroundedAnswer struct {
	AnswerText string            `json:"answer_text"`
	Citations  []Citation        `json:"citations"`
	Excerpts   []RetrievalResult `json:"excerpts"`
	// NotFound is set when there was no usable grounding (empty index, no
	// retrieval hits, or all generated citations were invalid).
	NotFound bool `json:"not_found"`
	// GenerationFailed distinguishes "service failed" from "no docs".
	GenerationFailed bool `json:"generation_failed,omitempty"`
	// Err carries the underlying generation failure when GenerationFailed is
	// set. Diagnostic only; never serialized.
	Err error `json:"-"`
}
