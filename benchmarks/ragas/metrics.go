// ABOUTME: Grounding metrics for faithfulness, context recall, and citations
// ABOUTME: Deterministic evaluation against scenario ground truth
package ragas

import (
	"fmt"
	"strings"

	"github.com/harper/caselens/internal/models"
)

// MetricsCalculator computes grounding scores for benchmark tests
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateFaithfulness computes faithfulness score (0.0-1.0).
// Faithfulness = does the answer state what the documents state, and nothing
// they don't?
func (m *MetricsCalculator) CalculateFaithfulness(
	answer string,
	expectedInAnswer []string,
	forbiddenInAnswer []string,
) (float64, string) {
	answerUpper := strings.ToUpper(answer)

	missingItems := []string{}
	for _, expected := range expectedInAnswer {
		if !strings.Contains(answerUpper, strings.ToUpper(expected)) {
			missingItems = append(missingItems, expected)
		}
	}

	forbiddenFound := []string{}
	for _, forbidden := range forbiddenInAnswer {
		if strings.Contains(answerUpper, strings.ToUpper(forbidden)) {
			forbiddenFound = append(forbiddenFound, forbidden)
		}
	}

	if len(missingItems) == 0 && len(forbiddenFound) == 0 {
		return 1.0, "Perfect faithfulness - answer matches expected ground truth"
	}

	if len(missingItems) > 0 && len(forbiddenFound) > 0 {
		return 0.0, fmt.Sprintf(
			"Faithfulness failure - missing expected items: %v, forbidden items found: %v",
			missingItems, forbiddenFound,
		)
	}

	if len(missingItems) > 0 {
		return 0.5, fmt.Sprintf("Partial faithfulness - missing expected items: %v", missingItems)
	}

	return 0.5, fmt.Sprintf("Partial faithfulness - forbidden items found: %v", forbiddenFound)
}

// CalculateContextRecall computes context recall score (0.0-1.0).
// Context recall = did retrieval surface the excerpts the answer needs?
func (m *MetricsCalculator) CalculateContextRecall(
	retrievedContext []string,
	expectedContextItems []string,
) (float64, string) {
	if len(expectedContextItems) == 0 {
		return 1.0, "No context retrieval required"
	}

	allContext := strings.ToUpper(strings.Join(retrievedContext, " "))

	foundCount := 0
	missingItems := []string{}
	for _, expectedItem := range expectedContextItems {
		if strings.Contains(allContext, strings.ToUpper(expectedItem)) {
			foundCount++
		} else {
			missingItems = append(missingItems, expectedItem)
		}
	}

	recall := float64(foundCount) / float64(len(expectedContextItems))
	if recall == 1.0 {
		return 1.0, "Perfect context recall - all expected items retrieved"
	}

	return recall, fmt.Sprintf("Partial context recall (%.2f) - missing items: %v", recall, missingItems)
}

// CalculateCitationValidity scores the answer's citations (0.0-1.0): every
// citation must point at a file that exists in the scenario corpus, and a
// grounded (non-refusal) answer must cite at least one file.
func (m *MetricsCalculator) CalculateCitationValidity(
	citations []models.Citation,
	corpus []CorpusFile,
	expectNotFound bool,
) (float64, string) {
	if expectNotFound {
		if len(citations) == 0 {
			return 1.0, "Refusal carries no citations, as required"
		}
		return 0.0, fmt.Sprintf("Refusal should carry no citations, found %d", len(citations))
	}

	if len(citations) == 0 {
		return 0.0, "Grounded answer carries no citations"
	}

	known := map[string]bool{}
	for _, f := range corpus {
		known[f.Filename] = true
	}

	invalid := []string{}
	for _, c := range citations {
		if !known[c.Filename] {
			invalid = append(invalid, c.String())
		}
	}
	if len(invalid) > 0 {
		return 0.0, fmt.Sprintf("Citations reference files outside the corpus: %v", invalid)
	}

	return 1.0, fmt.Sprintf("All %d citations reference corpus files", len(citations))
}

// TestResult holds the scored outcome of one benchmark scenario
type TestResult struct {
	TestID             string                 `json:"test_id"`
	TestName           string                 `json:"test_name"`
	FaithfulnessScore  float64                `json:"faithfulness_score"`
	ContextRecallScore float64                `json:"context_recall_score"`
	CitationScore      float64                `json:"citation_score"`
	OverallScore       float64                `json:"overall_score"`
	Status             string                 `json:"status"`
	Details            map[string]interface{} `json:"details"`
}

// EvaluateTest runs the full grounding evaluation for a scenario
func (m *MetricsCalculator) EvaluateTest(
	scenario TestScenario,
	answer *models.GroundedAnswer,
) TestResult {
	retrievedContext := make([]string, 0, len(answer.Excerpts))
	for _, res := range answer.Excerpts {
		retrievedContext = append(retrievedContext, res.Chunk.Text)
	}

	var faithfulness float64
	var faithfulnessDetail string
	if scenario.GroundTruth.ExpectNotFound {
		// The only faithful refusal is the sentinel itself.
		if answer.NotFound && strings.Contains(answer.AnswerText, models.NotFoundSentinel) {
			faithfulness, faithfulnessDetail = 1.0, "Correctly refused with the not-found sentinel"
		} else {
			faithfulness, faithfulnessDetail = 0.0, "Expected the not-found sentinel, got a substantive answer"
		}
	} else {
		faithfulness, faithfulnessDetail = m.CalculateFaithfulness(
			answer.AnswerText,
			scenario.GroundTruth.ExpectedInAnswer,
			scenario.GroundTruth.ForbiddenInAnswer,
		)
	}

	recall, recallDetail := m.CalculateContextRecall(
		retrievedContext,
		scenario.GroundTruth.ExpectedContextItems,
	)

	citation, citationDetail := m.CalculateCitationValidity(
		answer.Citations,
		scenario.Corpus,
		scenario.GroundTruth.ExpectNotFound,
	)

	overallScore := (faithfulness + recall + citation) / 3.0

	// Production bar: every dimension must hold, not just the average.
	status := "FAIL"
	if faithfulness >= 0.9 && recall >= 0.9 && citation >= 0.9 {
		status = "PASS"
	}

	preview := answer.AnswerText
	if len(preview) > 200 {
		preview = preview[:200]
	}

	return TestResult{
		TestID:             scenario.ID,
		TestName:           scenario.Name,
		FaithfulnessScore:  faithfulness,
		ContextRecallScore: recall,
		CitationScore:      citation,
		OverallScore:       overallScore,
		Status:             status,
		Details: map[string]interface{}{
			"faithfulness_detail": faithfulnessDetail,
			"recall_detail":       recallDetail,
			"citation_detail":     citationDetail,
			"answer_preview":      preview,
			"excerpt_count":       len(answer.Excerpts),
		},
	}
}
