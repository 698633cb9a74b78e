package reporter

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"invoice-reconciler/internal/domain"
)

const (
	sheetSummary       = "Summary"
	sheetDiscrepancies = "Discrepancies"
	sheetAlerts        = "Alerts"
)

// ExcelReportGenerator renders the comparison into an XLSX workbook with a
// Summary, Discrepancies and Alerts sheet. Discrepancy rows are filled red
// for HIGH severity and yellow for LOW when highlighting is enabled.
type ExcelReportGenerator struct {
	config ReportConfig
}

// NewExcelReportGenerator creates a generator with the given config.
func NewExcelReportGenerator(config ReportConfig) *ExcelReportGenerator {
	return &ExcelReportGenerator{config: config}
}

// Generate writes the XLSX report to outputPath.
func (g *ExcelReportGenerator) Generate(comparison *domain.ComparisonResult, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if g.config.IncludeSummary {
		if err := g.writeSummarySheet(f, comparison); err != nil {
			return err
		}
	}
	if g.config.IncludeMatchedItems {
		if err := g.writeDiscrepanciesSheet(f, comparison); err != nil {
			return err
		}
	}
	if g.config.IncludeAlerts {
		if err := g.writeAlertsSheet(f, comparison); err != nil {
			return err
		}
	}

	// Drop the default sheet excelize creates.
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		f.DeleteSheet("Sheet1")
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save Excel report: %w", err)
	}
	return nil
}

func (g *ExcelReportGenerator) writeSummarySheet(f *excelize.File, comparison *domain.ComparisonResult) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	s := comparison.Summary
	rows := [][]any{
		{"Metric", "Value"},
		{"Total Quantity Ordered", s.TotalQuantityOrdered},
		{"Total Quantity Invoiced", s.TotalQuantityInvoiced},
		{"Quantity Difference", s.QuantityDifference},
		{"Total Value Ordered", "$" + s.TotalValueOrdered.StringFixed(2)},
		{"Total Value Invoiced", "$" + s.TotalValueInvoiced.StringFixed(2)},
		{"Value Difference", "$" + s.ValueDifference.StringFixed(2)},
		{"Items with Discrepancies", s.ItemsWithDiscrepancies},
		{"Total Items Compared", len(comparison.Discrepancies)},
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	return g.styleHeader(f, sheetSummary, 2)
}

func (g *ExcelReportGenerator) writeDiscrepanciesSheet(f *excelize.File, comparison *domain.ComparisonResult) error {
	if _, err := f.NewSheet(sheetDiscrepancies); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header := []any{
		"PO SKU", "PO Description", "PO Quantity", "PO Unit Price", "PO Total",
		"PI SKU", "PI Description", "PI Quantity", "PI Unit Price", "PI Total",
		"Qty Diff", "Price Diff", "Total Diff",
		"Has Discrepancy", "Qty Mismatch", "Price Mismatch", "Alert Severity",
	}
	if err := f.SetSheetRow(sheetDiscrepancies, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	var highStyle, lowStyle int
	var err error
	if g.config.HighlightDiscrepancies {
		highStyle, err = f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#FF6B6B"}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("failed to create style: %w", err)
		}
		lowStyle, err = f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFFF00"}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("failed to create style: %w", err)
		}
	}

	for i := range comparison.Discrepancies {
		disc := &comparison.Discrepancies[i]
		severity := derivedSeverity(disc)
		rowIdx := i + 2

		row := []any{
			disc.POItem.SKU, disc.POItem.Description,
			floatValue(disc.POItem.Quantity), decimalValue(disc.POItem.UnitPrice), decimalValue(disc.POItem.TotalValue),
			disc.PIItem.SKU, disc.PIItem.Description,
			floatValue(disc.PIItem.Quantity), decimalValue(disc.PIItem.UnitPrice), decimalValue(disc.PIItem.TotalValue),
			floatValue(disc.QuantityDiff), decimalValue(disc.UnitPriceDiff), decimalValue(disc.TotalValueDiff),
			yesNo(disc.HasDiscrepancy), yesNo(disc.HasQuantityMismatch), yesNo(disc.HasPriceMismatch),
			severity,
		}

		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := f.SetSheetRow(sheetDiscrepancies, cell, &row); err != nil {
			return fmt.Errorf("failed to write discrepancy row: %w", err)
		}

		if g.config.HighlightDiscrepancies && severity != "" {
			style := lowStyle
			if severity == "HIGH" {
				style = highStyle
			}
			first, _ := excelize.CoordinatesToCellName(1, rowIdx)
			last, _ := excelize.CoordinatesToCellName(len(row), rowIdx)
			if err := f.SetCellStyle(sheetDiscrepancies, first, last, style); err != nil {
				return fmt.Errorf("failed to style discrepancy row: %w", err)
			}
		}
	}

	return g.styleHeader(f, sheetDiscrepancies, 17)
}

func (g *ExcelReportGenerator) writeAlertsSheet(f *excelize.File, comparison *domain.ComparisonResult) error {
	if _, err := f.NewSheet(sheetAlerts); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header := []any{"Severity", "Message", "Suggested Action", "Related Item"}
	if err := f.SetSheetRow(sheetAlerts, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	var urgentStyle int
	var err error
	if g.config.HighlightDiscrepancies {
		urgentStyle, err = f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#FF6B6B"}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("failed to create style: %w", err)
		}
	}

	for i, alert := range comparison.Alerts {
		rowIdx := i + 2
		row := []any{string(alert.Severity), alert.Message, alert.SuggestedAction, alert.RelatedItem}

		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := f.SetSheetRow(sheetAlerts, cell, &row); err != nil {
			return fmt.Errorf("failed to write alert row: %w", err)
		}

		if g.config.HighlightDiscrepancies && (alert.Severity == domain.SeverityHigh || alert.Severity == domain.SeverityCritical) {
			first, _ := excelize.CoordinatesToCellName(1, rowIdx)
			last, _ := excelize.CoordinatesToCellName(len(row), rowIdx)
			if err := f.SetCellStyle(sheetAlerts, first, last, urgentStyle); err != nil {
				return fmt.Errorf("failed to style alert row: %w", err)
			}
		}
	}

	return g.styleHeader(f, sheetAlerts, 4)
}

func (g *ExcelReportGenerator) styleHeader(f *excelize.File, sheet string, columns int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	last, _ := excelize.CoordinatesToCellName(columns, 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func floatValue(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func decimalValue(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	v, _ := d.Float64()
	return v
}
