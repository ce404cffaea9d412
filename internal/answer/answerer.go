// ABOUTME: GroundedAnswerer produces cited answers from retrieved excerpts
// ABOUTME: Sentinel short-circuits, grounding prompt, citation enforcement
package answer

import (
	"context"
	"errors"
	"strings"

	"github.com/harper/caselens/internal/index"
	"github.com/harper/caselens/internal/models"
)

// Generator is the generation capability behind the grounding contract.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Retriever supplies ranked chunks for a query.
type Retriever interface {
	Query(ctx context.Context, text string, k int) ([]models.RetrievalResult, error)
}

// GenerationError wraps a failed generation call. It is carried inside the
// returned GroundedAnswer rather than failing the request, so callers can
// distinguish "service failed" from "nothing found".
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Config tunes the answerer.
type Config struct {
	// TopK chunks retrieved per question. <= 0 uses the retriever default.
	TopK int
	// MinSimilarity drops retrieved chunks scoring below it before
	// grounding. 0 disables the cutoff.
	MinSimilarity float64
}

// GroundedAnswerer assembles retrieved excerpts into a bounded context and
// invokes the generation capability under the grounding contract. It never
// mutates the index.
type GroundedAnswerer struct {
	retriever Retriever
	generator Generator
	cfg       Config
}

// NewGroundedAnswerer creates a GroundedAnswerer.
func NewGroundedAnswerer(retriever Retriever, generator Generator, cfg Config) *GroundedAnswerer {
	return &GroundedAnswerer{retriever: retriever, generator: generator, cfg: cfg}
}

// Answer answers a query grounded in the document index.
//
// An empty index or empty retrieval yields the NotFoundSentinel without any
// generation call. A generation failure yields the GenerationFailedSentinel.
// Generated citations that do not correspond to a retrieved chunk are
// stripped; if no valid citation remains, the answer degrades to the
// NotFoundSentinel.
func (a *GroundedAnswerer) Answer(ctx context.Context, query string) (*models.GroundedAnswer, error) {
	return a.AnswerK(ctx, query, a.cfg.TopK)
}

// AnswerK is Answer with a per-call retrieval depth. k <= 0 falls back to the
// configured TopK.
func (a *GroundedAnswerer) AnswerK(ctx context.Context, query string, k int) (*models.GroundedAnswer, error) {
	if k <= 0 {
		k = a.cfg.TopK
	}
	results, err := a.retriever.Query(ctx, query, k)
	if err != nil {
		if errors.Is(err, index.ErrEmptyIndex) {
			return notFound(nil), nil
		}
		return nil, err
	}

	if a.cfg.MinSimilarity > 0 {
		kept := results[:0:0]
		for _, res := range results {
			if res.Score >= a.cfg.MinSimilarity {
				kept = append(kept, res)
			}
		}
		results = kept
	}
	if len(results) == 0 {
		return notFound(nil), nil
	}

	text, err := a.generator.Generate(ctx, systemPrompt, buildUserMessage(query, results))
	if err != nil {
		return &models.GroundedAnswer{
			AnswerText:       GenerationFailedSentinel,
			Citations:        []models.Citation{},
			Excerpts:         results,
			GenerationFailed: true,
			Err:              &GenerationError{Err: err},
		}, nil
	}

	text = strings.TrimSpace(text)
	if text == "" || strings.Contains(text, NotFoundSentinel) {
		return notFound(results), nil
	}

	cleaned, citations := validateCitations(text, results)
	if len(citations) == 0 {
		// Nothing attributable survived validation.
		return notFound(results), nil
	}

	return &models.GroundedAnswer{
		AnswerText: cleaned,
		Citations:  citations,
		Excerpts:   results,
	}, nil
}

func notFound(excerpts []models.RetrievalResult) *models.GroundedAnswer {
	return &models.GroundedAnswer{
		AnswerText: NotFoundSentinel,
		Citations:  []models.Citation{},
		Excerpts:   excerpts,
		NotFound:   true,
	}
}
