package domain

import "github.com/shopspring/decimal"

// AlertSeverity grades an alert for human triage.
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// Discrepancy holds the signed differences (PI minus PO) for one matched
// pair. A nil difference means one side had no data for that field.
type Discrepancy struct {
	POItem              *NormalizedLineItem `json:"po_item"`
	PIItem              *NormalizedLineItem `json:"pi_item"`
	QuantityDiff        *float64            `json:"quantity_diff,omitempty"`
	UnitPriceDiff       *decimal.Decimal    `json:"unit_price_diff,omitempty"`
	TotalValueDiff      *decimal.Decimal    `json:"total_value_diff,omitempty"`
	HasQuantityMismatch bool                `json:"has_quantity_mismatch"`
	HasPriceMismatch    bool                `json:"has_price_mismatch"`
	// HasDiscrepancy is true when any financial difference exceeds 0.01,
	// independent of whether an alert fires.
	HasDiscrepancy bool `json:"has_discrepancy"`
}

// Alert is a severity-tagged notification derived from one discrepancy.
type Alert struct {
	Severity        AlertSeverity `json:"severity"`
	Message         string        `json:"message"`
	SuggestedAction string        `json:"suggested_action"`
	RelatedItem     string        `json:"related_item"`
}

// ComparisonSummary aggregates totals across all discrepancies.
type ComparisonSummary struct {
	TotalQuantityOrdered   float64         `json:"total_quantity_ordered"`
	TotalQuantityInvoiced  float64         `json:"total_quantity_invoiced"`
	TotalValueOrdered      decimal.Decimal `json:"total_value_ordered"`
	TotalValueInvoiced     decimal.Decimal `json:"total_value_invoiced"`
	QuantityDifference     float64         `json:"quantity_difference"`
	ValueDifference        decimal.Decimal `json:"value_difference"`
	ItemsWithDiscrepancies int             `json:"items_with_discrepancies"`
}

// ComparisonResult is the terminal artifact handed to the reporting layer.
type ComparisonResult struct {
	Discrepancies []Discrepancy     `json:"discrepancies"`
	Summary       ComparisonSummary `json:"summary"`
	Alerts        []Alert           `json:"alerts"`
}

// ComparisonReport wraps the comparison output together with everything the
// orchestration layer needs to surface: document headers, validation errors
// and the match partition (unmatched items live there, not in the summary).
type ComparisonReport struct {
	POMetadata         DocumentMetadata  `json:"po_metadata"`
	PIMetadata         DocumentMetadata  `json:"pi_metadata"`
	POValidationErrors []string          `json:"po_validation_errors,omitempty"`
	PIValidationErrors []string          `json:"pi_validation_errors,omitempty"`
	Match              *MatchResult      `json:"match_result"`
	Comparison         *ComparisonResult `json:"comparison_result"`
}
