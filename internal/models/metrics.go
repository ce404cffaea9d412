// ABOUTME: MetricsSnapshot is the flat key-value market data for one ticker
// ABOUTME: Missing keys are valid; scorers skip checks they cannot evaluate
package models

// Metric keys the scorers read. Providers may supply any superset.
const (
	MetricOperatingMargin = "operating_margin"
	MetricROE             = "roe"
	MetricFCF             = "fcf"
	MetricTrailingPE      = "trailing_pe"
	MetricPrice           = "price"
	MetricSMA50           = "sma50"
	MetricSMA200          = "sma200"
	MetricRSI             = "rsi"
)

// MetricsSnapshot is a flat per-ticker snapshot from the market-data
// provider.
type MetricsSnapshot map[string]float64

// Get returns the metric value and whether it is present.
func (m MetricsSnapshot) Get(key string) (float64, bool) {
	v, ok := m[key]
	return v, ok
}

// HasAll reports whether every named metric is present.
func (m MetricsSnapshot) HasAll(keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}
