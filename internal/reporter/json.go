package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"invoice-reconciler/internal/domain"
)

// JSONReportGenerator renders a comparison result as nested JSON. Decimal
// fields are serialized as their exact string form so downstream consumers
// never re-encode them through binary floating point.
type JSONReportGenerator struct {
	config ReportConfig
}

// NewJSONReportGenerator creates a generator with the given config.
func NewJSONReportGenerator(config ReportConfig) *JSONReportGenerator {
	return &JSONReportGenerator{config: config}
}

type jsonItem struct {
	SKU         string   `json:"sku,omitempty"`
	Description string   `json:"description"`
	Quantity    *float64 `json:"quantity"`
	UnitPrice   *string  `json:"unit_price"`
	TotalValue  *string  `json:"total_value"`
}

type jsonDiscrepancy struct {
	POItem              jsonItem        `json:"po_item"`
	PIItem              jsonItem        `json:"pi_item"`
	Differences         jsonDifferences `json:"differences"`
	HasDiscrepancy      bool            `json:"has_discrepancy"`
	HasQuantityMismatch bool            `json:"has_quantity_mismatch"`
	HasPriceMismatch    bool            `json:"has_price_mismatch"`
	AlertSeverity       string          `json:"alert_severity,omitempty"`
	Flagged             bool            `json:"flagged,omitempty"`
}

type jsonDifferences struct {
	QuantityDiff   *float64 `json:"quantity_diff"`
	UnitPriceDiff  *string  `json:"unit_price_diff"`
	TotalValueDiff *string  `json:"total_value_diff"`
}

type jsonSummary struct {
	TotalQuantityOrdered   float64 `json:"total_quantity_ordered"`
	TotalQuantityInvoiced  float64 `json:"total_quantity_invoiced"`
	QuantityDifference     float64 `json:"quantity_difference"`
	TotalValueOrdered      string  `json:"total_value_ordered"`
	TotalValueInvoiced     string  `json:"total_value_invoiced"`
	ValueDifference        string  `json:"value_difference"`
	ItemsWithDiscrepancies int     `json:"items_with_discrepancies"`
	TotalItemsCompared     int     `json:"total_items_compared"`
}

type jsonReport struct {
	ReportID      string            `json:"report_id"`
	GeneratedAt   string            `json:"generated_at"`
	Summary       *jsonSummary      `json:"summary,omitempty"`
	Discrepancies []jsonDiscrepancy `json:"discrepancies,omitempty"`
	Alerts        []domain.Alert    `json:"alerts,omitempty"`
}

// Generate writes the JSON report to outputPath.
func (g *JSONReportGenerator) Generate(comparison *domain.ComparisonResult, outputPath string) error {
	report := g.buildReport(comparison)

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}

	return nil
}

func (g *JSONReportGenerator) buildReport(comparison *domain.ComparisonResult) jsonReport {
	report := jsonReport{
		ReportID:    uuid.NewString(),
		GeneratedAt: time.Now().Format(time.RFC3339),
	}

	if g.config.IncludeSummary {
		s := comparison.Summary
		report.Summary = &jsonSummary{
			TotalQuantityOrdered:   s.TotalQuantityOrdered,
			TotalQuantityInvoiced:  s.TotalQuantityInvoiced,
			QuantityDifference:     s.QuantityDifference,
			TotalValueOrdered:      s.TotalValueOrdered.String(),
			TotalValueInvoiced:     s.TotalValueInvoiced.String(),
			ValueDifference:        s.ValueDifference.String(),
			ItemsWithDiscrepancies: s.ItemsWithDiscrepancies,
			TotalItemsCompared:     len(comparison.Discrepancies),
		}
	}

	if g.config.IncludeMatchedItems {
		report.Discrepancies = make([]jsonDiscrepancy, 0, len(comparison.Discrepancies))
		for i := range comparison.Discrepancies {
			disc := &comparison.Discrepancies[i]
			entry := jsonDiscrepancy{
				POItem: buildJSONItem(disc.POItem),
				PIItem: buildJSONItem(disc.PIItem),
				Differences: jsonDifferences{
					QuantityDiff:   disc.QuantityDiff,
					UnitPriceDiff:  decimalString(disc.UnitPriceDiff),
					TotalValueDiff: decimalString(disc.TotalValueDiff),
				},
				HasDiscrepancy:      disc.HasDiscrepancy,
				HasQuantityMismatch: disc.HasQuantityMismatch,
				HasPriceMismatch:    disc.HasPriceMismatch,
				AlertSeverity:       strings.ToLower(derivedSeverity(disc)),
			}
			if g.config.HighlightDiscrepancies && disc.HasDiscrepancy {
				entry.Flagged = true
			}
			report.Discrepancies = append(report.Discrepancies, entry)
		}
	}

	if g.config.IncludeAlerts {
		report.Alerts = comparison.Alerts
	}

	return report
}

func buildJSONItem(item *domain.NormalizedLineItem) jsonItem {
	return jsonItem{
		SKU:         item.SKU,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   decimalString(item.UnitPrice),
		TotalValue:  decimalString(item.TotalValue),
	}
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
