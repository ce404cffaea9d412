// ABOUTME: Tests for chunk IDs, citation rendering, and enum parsing
// ABOUTME: Verifies the fixed wire formats callers compare against verbatim
package models

import "testing"

func intPtr(n int) *int { return &n }

func TestChunkID(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		page     *int
		ordinal  int
		want     string
	}{
		{"paged first chunk", "report.pdf", intPtr(3), 0, "report.pdf::p3::c0"},
		{"paged later chunk", "10-K.pdf", intPtr(12), 7, "10-K.pdf::p12::c7"},
		{"unpaged", "notes.txt", nil, 2, "notes.txt::c2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChunkID(tt.filename, tt.page, tt.ordinal)
			if got != tt.want {
				t.Errorf("ChunkID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCitation_String(t *testing.T) {
	paged := Citation{Filename: "10-K.pdf", Page: intPtr(12)}
	if got := paged.String(); got != "(10-K.pdf, 12)" {
		t.Errorf("paged citation = %q, want %q", got, "(10-K.pdf, 12)")
	}

	unpaged := Citation{Filename: "notes.txt"}
	if got := unpaged.String(); got != "(notes.txt)" {
		t.Errorf("unpaged citation = %q, want %q", got, "(notes.txt)")
	}
}

func TestChunk_Citation(t *testing.T) {
	chunk := Chunk{Filename: "deck.pdf", Page: intPtr(4)}
	if got := chunk.Citation().String(); got != "(deck.pdf, 4)" {
		t.Errorf("Citation() = %q, want %q", got, "(deck.pdf, 4)")
	}
}

func TestMetricsSnapshot_HasAll(t *testing.T) {
	snap := MetricsSnapshot{MetricPrice: 410.5, MetricSMA50: 398.2}

	if !snap.HasAll(MetricPrice, MetricSMA50) {
		t.Error("HasAll should be true when every key is present")
	}
	if snap.HasAll(MetricPrice, MetricRSI) {
		t.Error("HasAll should be false when any key is missing")
	}

	if v, ok := snap.Get(MetricPrice); !ok || v != 410.5 {
		t.Errorf("Get(price) = %v, %v; want 410.5, true", v, ok)
	}
	if _, ok := snap.Get(MetricRSI); ok {
		t.Error("Get(rsi) should report missing")
	}
}

func TestParseRiskProfile(t *testing.T) {
	tests := []struct {
		in   string
		want RiskProfile
	}{
		{"Conservative", RiskConservative},
		{"conservative", RiskConservative},
		{"AGGRESSIVE", RiskAggressive},
		{"Balanced", RiskBalanced},
		{"", RiskBalanced},
		{"bogus", RiskBalanced},
	}

	for _, tt := range tests {
		if got := ParseRiskProfile(tt.in); got != tt.want {
			t.Errorf("ParseRiskProfile(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseHorizon(t *testing.T) {
	tests := []struct {
		in   string
		want Horizon
	}{
		{"1W", Horizon1W},
		{"1m", Horizon1M},
		{"6M", Horizon6M},
		{"3M", Horizon3M},
		{"", Horizon3M},
		{"1Y", Horizon3M},
	}

	for _, tt := range tests {
		if got := ParseHorizon(tt.in); got != tt.want {
			t.Errorf("ParseHorizon(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSignalScore_Complete(t *testing.T) {
	complete := SignalScore{Checks: []CheckResult{{Name: "a"}, {Name: "b", Passed: true}}}
	if !complete.Complete() {
		t.Error("Complete() should be true with no skipped checks")
	}

	degraded := SignalScore{Checks: []CheckResult{{Name: "a"}, {Name: "b", Skipped: true}}}
	if degraded.Complete() {
		t.Error("Complete() should be false when a check was skipped")
	}
}
