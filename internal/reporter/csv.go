package reporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"invoice-reconciler/internal/domain"
)

// CSVReportGenerator renders the discrepancies as a flat table, one row per
// matched pair, with a derived HIGH/LOW severity column.
type CSVReportGenerator struct {
	config ReportConfig
}

// NewCSVReportGenerator creates a generator with the given config.
func NewCSVReportGenerator(config ReportConfig) *CSVReportGenerator {
	return &CSVReportGenerator{config: config}
}

var csvHeader = []string{
	"PO_SKU", "PO_Description", "PO_Quantity", "PO_Unit_Price", "PO_Total_Value",
	"PI_SKU", "PI_Description", "PI_Quantity", "PI_Unit_Price", "PI_Total_Value",
	"Quantity_Difference", "Unit_Price_Difference", "Total_Value_Difference",
	"Has_Discrepancy", "Has_Quantity_Mismatch", "Has_Price_Mismatch",
	"Alert_Severity",
}

// Generate writes the CSV report to outputPath.
func (g *CSVReportGenerator) Generate(comparison *domain.ComparisonResult, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range comparison.Discrepancies {
		disc := &comparison.Discrepancies[i]
		record := []string{
			disc.POItem.SKU,
			disc.POItem.Description,
			floatCell(disc.POItem.Quantity),
			decimalCell(disc.POItem.UnitPrice),
			decimalCell(disc.POItem.TotalValue),
			disc.PIItem.SKU,
			disc.PIItem.Description,
			floatCell(disc.PIItem.Quantity),
			decimalCell(disc.PIItem.UnitPrice),
			decimalCell(disc.PIItem.TotalValue),
			floatCell(disc.QuantityDiff),
			decimalCell(disc.UnitPriceDiff),
			decimalCell(disc.TotalValueDiff),
			strconv.FormatBool(disc.HasDiscrepancy),
			strconv.FormatBool(disc.HasQuantityMismatch),
			strconv.FormatBool(disc.HasPriceMismatch),
			derivedSeverity(disc),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func floatCell(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func decimalCell(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
