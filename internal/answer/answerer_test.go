// ABOUTME: Tests for the grounded answerer's sentinel and failure semantics
// ABOUTME: Verifies no-generation short-circuits and citation enforcement
package answer

import (
	"context"
	"errors"
	"testing"

	"github.com/harper/caselens/internal/index"
	"github.com/harper/caselens/internal/models"
)

// scriptedRetriever returns preset results or an error.
type scriptedRetriever struct {
	results []models.RetrievalResult
	err     error
}

func (r *scriptedRetriever) Query(ctx context.Context, text string, k int) ([]models.RetrievalResult, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := r.results
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out, nil
}

// scriptedGenerator returns a preset response or error and records calls.
type scriptedGenerator struct {
	response string
	err      error
	calls    int
}

func (g *scriptedGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func someExcerpts() []models.RetrievalResult {
	return []models.RetrievalResult{
		{Chunk: models.Chunk{ChunkID: "a.pdf::p1::c0", Filename: "a.pdf", Page: intPtr(1), Text: "alpha"}, Score: 0.9, Rank: 1},
		{Chunk: models.Chunk{ChunkID: "b.txt::c0", Filename: "b.txt", Text: "beta"}, Score: 0.4, Rank: 2},
	}
}

func TestAnswer_EmptyIndexSkipsGeneration(t *testing.T) {
	gen := &scriptedGenerator{response: "should never run"}
	a := NewGroundedAnswerer(&scriptedRetriever{err: index.ErrEmptyIndex}, gen, Config{})

	ans, err := a.Answer(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !ans.NotFound {
		t.Error("NotFound should be set for an empty index")
	}
	if ans.AnswerText != NotFoundSentinel {
		t.Errorf("AnswerText = %q, want sentinel", ans.AnswerText)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times, want 0", gen.calls)
	}
}

func TestAnswer_NoResultsSkipsGeneration(t *testing.T) {
	gen := &scriptedGenerator{response: "should never run"}
	a := NewGroundedAnswerer(&scriptedRetriever{}, gen, Config{})

	ans, err := a.Answer(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !ans.NotFound || gen.calls != 0 {
		t.Errorf("NotFound = %v, generator calls = %d; want true, 0", ans.NotFound, gen.calls)
	}
}

func TestAnswer_MinSimilarityFiltersAll(t *testing.T) {
	gen := &scriptedGenerator{response: "should never run"}
	a := NewGroundedAnswerer(&scriptedRetriever{results: someExcerpts()}, gen, Config{MinSimilarity: 0.95})

	ans, err := a.Answer(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !ans.NotFound || gen.calls != 0 {
		t.Errorf("NotFound = %v, generator calls = %d; want true, 0", ans.NotFound, gen.calls)
	}
}

func TestAnswer_GenerationFailure(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("service down")}
	a := NewGroundedAnswerer(&scriptedRetriever{results: someExcerpts()}, gen, Config{})

	ans, err := a.Answer(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Answer() error = %v (failure must surface in the answer, not the error)", err)
	}
	if !ans.GenerationFailed {
		t.Error("GenerationFailed should be set")
	}
	if ans.AnswerText != GenerationFailedSentinel {
		t.Errorf("AnswerText = %q, want generation-failed sentinel", ans.AnswerText)
	}
	if ans.NotFound {
		t.Error("generation failure must be distinct from not-found")
	}
	var genErr *GenerationError
	if !errors.As(ans.Err, &genErr) {
		t.Fatalf("ans.Err = %v, want a *GenerationError", ans.Err)
	}
	if !errors.Is(ans.Err, gen.err) {
		t.Errorf("ans.Err should wrap the generator error, got %v", ans.Err)
	}
}

func TestAnswer_ModelReturnsSentinel(t *testing.T) {
	gen := &scriptedGenerator{response: "  " + NotFoundSentinel + "  "}
	a := NewGroundedAnswerer(&scriptedRetriever{results: someExcerpts()}, gen, Config{})

	ans, err := a.Answer(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !ans.NotFound {
		t.Error("NotFound should be set when the model replies with the sentinel")
	}
	if len(ans.Citations) != 0 {
		t.Errorf("citations = %d, want 0", len(ans.Citations))
	}
	if len(ans.Excerpts) == 0 {
		t.Error("excerpts should still be reported for inspection")
	}
}

func TestAnswer_ValidCitationsKept(t *testing.T) {
	gen := &scriptedGenerator{response: "Alpha happened (a.pdf, 1). Beta too (b.txt)."}
	a := NewGroundedAnswerer(&scriptedRetriever{results: someExcerpts()}, gen, Config{})

	ans, err := a.Answer(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if ans.NotFound || ans.GenerationFailed {
		t.Fatalf("unexpected degradation: NotFound=%v GenerationFailed=%v", ans.NotFound, ans.GenerationFailed)
	}
	if len(ans.Citations) != 2 {
		t.Fatalf("citations = %d, want 2", len(ans.Citations))
	}
}

func TestAnswer_AllCitationsFabricatedDegradesToSentinel(t *testing.T) {
	gen := &scriptedGenerator{response: "Numbers improved (made-up.pdf, 7)."}
	a := NewGroundedAnswerer(&scriptedRetriever{results: someExcerpts()}, gen, Config{})

	ans, err := a.Answer(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !ans.NotFound {
		t.Error("an answer with zero valid citations must degrade to not-found")
	}
	if ans.AnswerText != NotFoundSentinel {
		t.Errorf("AnswerText = %q, want sentinel", ans.AnswerText)
	}
}

func TestAnswer_UncitedAnswerDegradesToSentinel(t *testing.T) {
	gen := &scriptedGenerator{response: "An entirely uncited claim about revenue."}
	a := NewGroundedAnswerer(&scriptedRetriever{results: someExcerpts()}, gen, Config{})

	ans, err := a.Answer(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !ans.NotFound {
		t.Error("uncited answers must degrade to not-found")
	}
}

func TestAnswerK_OverridesTopK(t *testing.T) {
	retriever := &scriptedRetriever{results: someExcerpts()}
	gen := &scriptedGenerator{response: "Alpha (a.pdf, 1)."}
	a := NewGroundedAnswerer(retriever, gen, Config{TopK: 2})

	ans, err := a.AnswerK(context.Background(), "anything", 1)
	if err != nil {
		t.Fatalf("AnswerK() error = %v", err)
	}
	if len(ans.Excerpts) != 1 {
		t.Errorf("excerpts = %d, want 1 (per-call k)", len(ans.Excerpts))
	}
}

func TestAnswer_RetrieverErrorPropagates(t *testing.T) {
	a := NewGroundedAnswerer(&scriptedRetriever{err: errors.New("db broken")}, &scriptedGenerator{}, Config{})

	if _, err := a.Answer(context.Background(), "anything"); err == nil {
		t.Fatal("non-empty-index retrieval errors must propagate")
	}
}
