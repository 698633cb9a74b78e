package reporter

import (
	"math"

	"invoice-reconciler/internal/domain"
)

// ReportConfig controls which sections each generator renders.
type ReportConfig struct {
	IncludeMatchedItems    bool
	IncludeUnmatchedItems  bool
	IncludeSummary         bool
	IncludeAlerts          bool
	HighlightDiscrepancies bool
}

// DefaultReportConfig enables every section.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		IncludeMatchedItems:    true,
		IncludeUnmatchedItems:  true,
		IncludeSummary:         true,
		IncludeAlerts:          true,
		HighlightDiscrepancies: true,
	}
}

// Generator renders a comparison result to a file. Generators treat the
// result as read-only.
type Generator interface {
	Generate(comparison *domain.ComparisonResult, outputPath string) error
}

// derivedSeverity grades one discrepancy row for tabular output: HIGH when
// the total-value difference is at least 5% of the PO total, LOW for any
// smaller flagged discrepancy, empty when nothing is flagged.
func derivedSeverity(disc *domain.Discrepancy) string {
	if !disc.HasDiscrepancy || disc.TotalValueDiff == nil {
		return ""
	}
	if disc.POItem.TotalValue == nil || disc.POItem.TotalValue.IsZero() {
		return ""
	}

	percent := math.Abs(disc.TotalValueDiff.Div(*disc.POItem.TotalValue).InexactFloat64()) * 100
	if percent >= 5.0 {
		return "HIGH"
	}
	return "LOW"
}
