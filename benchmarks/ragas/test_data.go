// ABOUTME: Test scenario data for grounding benchmarks
// ABOUTME: Defines corpus files, questions, and ground truth for each test
package ragas

// TestScenario represents one grounding benchmark test: a small corpus, a
// question asked against it, and the ground truth the answer is scored on.
type TestScenario struct {
	ID          string
	Name        string
	Description string
	Corpus      []CorpusFile
	Question    string
	GroundTruth GroundTruth
}

// CorpusFile is one document written into the scenario's corpus directory.
type CorpusFile struct {
	Filename string
	Text     string
}

// GroundTruth defines expected outcomes for the evaluation.
type GroundTruth struct {
	// Strings that MUST appear in the answer
	ExpectedInAnswer []string
	// Strings that MUST NOT appear in the answer (hallucination markers)
	ForbiddenInAnswer []string
	// Content that should be among the retrieved excerpts
	ExpectedContextItems []string
	// ExpectNotFound marks questions the corpus cannot answer; the correct
	// behavior is the not-found sentinel with no citations.
	ExpectNotFound bool
}

// GetRecallTest exercises basic retrieval and grounded answering: the fact
// is stated once in one file and must surface with a citation.
func GetRecallTest() TestScenario {
	return TestScenario{
		ID:          "recall",
		Name:        "Grounded fact recall",
		Description: "A dollar figure stated in one document must appear in the answer, cited.",
		Corpus: []CorpusFile{
			{
				Filename: "annual-results.txt",
				Text: `Consolidated results for fiscal year 2023.

Net revenue for fiscal 2023 was $25.1 billion, an increase of 13 percent
over the prior year. Growth was driven by cross-border volume recovery
and continued expansion of value-added services.

Operating expenses rose 9 percent, primarily from personnel costs.`,
			},
			{
				Filename: "press-release.txt",
				Text: `The company announced a new partnership with a regional bank
consortium to expand acceptance in Southeast Asia. The agreement covers
co-branded issuance and tokenized payment credentials.`,
			},
		},
		Question: "What was net revenue in fiscal 2023?",
		GroundTruth: GroundTruth{
			ExpectedInAnswer:     []string{"$25.1 billion", "annual-results.txt"},
			ForbiddenInAnswer:    []string{"press-release.txt"},
			ExpectedContextItems: []string{"$25.1 billion", "13 percent"},
		},
	}
}

// GetRefusalTest verifies the answerer refuses instead of guessing when the
// corpus cannot support an answer.
func GetRefusalTest() TestScenario {
	return TestScenario{
		ID:          "refusal",
		Name:        "Refusal on ungrounded question",
		Description: "A question the corpus cannot answer must yield the not-found sentinel, not a guess.",
		Corpus: []CorpusFile{
			{
				Filename: "supply-chain.txt",
				Text: `The logistics review covers warehouse throughput, carrier
performance, and fuel cost trends for the distribution network. Average
dwell time fell to 1.8 days across all regional hubs.`,
			},
		},
		Question: "What is the CEO's compensation package?",
		GroundTruth: GroundTruth{
			ForbiddenInAnswer: []string{"salary", "compensation package includes"},
			ExpectNotFound:    true,
		},
	}
}

// GetAttributionTest checks that multi-document answers attribute claims to
// the right files.
func GetAttributionTest() TestScenario {
	return TestScenario{
		ID:          "attribution",
		Name:        "Cross-document attribution",
		Description: "Facts drawn from two documents must each carry a citation to their source file.",
		Corpus: []CorpusFile{
			{
				Filename: "risk-factors.txt",
				Text: `Principal risks include regulatory scrutiny of interchange
pricing in the European Union and pending litigation over merchant
routing rules. An adverse ruling could require changes to the core
network fee structure.`,
			},
			{
				Filename: "growth-outlook.txt",
				Text: `Management expects double-digit growth in value-added
services, led by fraud analytics and open banking APIs. Cross-border
travel volume has recovered above pre-pandemic levels.`,
			},
		},
		Question: "What are the main risks and growth drivers described in the materials?",
		GroundTruth: GroundTruth{
			ExpectedInAnswer:     []string{"risk-factors.txt", "growth-outlook.txt"},
			ExpectedContextItems: []string{"interchange", "value-added"},
		},
	}
}

// GetAllTests returns every benchmark scenario.
func GetAllTests() []TestScenario {
	return []TestScenario{
		GetRecallTest(),
		GetRefusalTest(),
		GetAttributionTest(),
	}
}
