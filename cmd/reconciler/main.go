package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"invoice-reconciler/internal/gateway"
	"invoice-reconciler/internal/matcher"
	"invoice-reconciler/internal/reporter"
	"invoice-reconciler/internal/usecase"
)

func main() {
	// Define command-line flags
	poFile := flag.String("po", "", "Path to the purchase order extract (JSON or CSV) (required)")
	piFile := flag.String("pi", "", "Path to the proforma invoice extract (JSON or CSV) (required)")
	outputDir := flag.String("output", "output", "Directory where reports are written")
	baseFilename := flag.String("filename", "comparison_report", "Base filename for reports")
	threshold := flag.Float64("threshold", matcher.DefaultFuzzyThreshold, "Fuzzy matching threshold (0-100)")
	flag.Parse()

	if *poFile == "" || *piFile == "" {
		fmt.Println("Error: Both -po and -pi flags are required.")
		flag.Usage()
		os.Exit(1)
	}

	// --- Dependency Injection (Wiring the application) ---

	// 1. Create the repository (the outermost layer)
	docRepo := gateway.NewFileDocumentRepository()

	// 2. Create the usecase and inject the repository (the core logic layer)
	comparisonUseCase := usecase.NewComparisonUseCase(docRepo, *threshold)

	// --- Execute the Usecase ---
	report, err := comparisonUseCase.Compare(context.Background(), *poFile, *piFile)
	if err != nil {
		log.Fatalf("Comparison failed: %v", err)
	}

	if len(report.POValidationErrors) > 0 {
		log.Printf("PO validation errors: %d", len(report.POValidationErrors))
	}
	if len(report.PIValidationErrors) > 0 {
		log.Printf("PI validation errors: %d", len(report.PIValidationErrors))
	}

	// --- Generate Reports ---
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	config := reporter.DefaultReportConfig()
	generators := []struct {
		ext string
		gen reporter.Generator
	}{
		{".json", reporter.NewJSONReportGenerator(config)},
		{".csv", reporter.NewCSVReportGenerator(config)},
		{".xlsx", reporter.NewExcelReportGenerator(config)},
	}
	for _, g := range generators {
		path := filepath.Join(*outputDir, *baseFilename+g.ext)
		if err := g.gen.Generate(report.Comparison, path); err != nil {
			log.Printf("Failed to generate %s report: %v", g.ext, err)
			continue
		}
		fmt.Printf("Report written: %s\n", path)
	}

	// --- Present the Summary ---
	summary := report.Comparison.Summary
	stats := report.Match.Statistics
	fmt.Println("\nCOMPARISON SUMMARY")
	fmt.Printf("Matched items: %d (PO: %d, PI: %d)\n", stats.MatchedCount, stats.TotalPOItems, stats.TotalPIItems)
	fmt.Printf("Unmatched PO items: %d\n", stats.UnmatchedPOCount)
	fmt.Printf("Unmatched PI items: %d\n", stats.UnmatchedPICount)
	fmt.Printf("Total Quantity Ordered: %v\n", summary.TotalQuantityOrdered)
	fmt.Printf("Total Quantity Invoiced: %v\n", summary.TotalQuantityInvoiced)
	fmt.Printf("Total Value Ordered: $%s\n", summary.TotalValueOrdered.StringFixed(2))
	fmt.Printf("Total Value Invoiced: $%s\n", summary.TotalValueInvoiced.StringFixed(2))
	fmt.Printf("Value Difference: $%s\n", summary.ValueDifference.StringFixed(2))
	fmt.Printf("Items with Discrepancies: %d\n", summary.ItemsWithDiscrepancies)

	alerts := report.Comparison.Alerts
	if len(alerts) > 0 {
		fmt.Printf("\nALERTS (%d)\n", len(alerts))
		shown := alerts
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for _, alert := range shown {
			fmt.Printf("[%s] %s\n", alert.Severity, alert.Message)
		}
		if len(alerts) > 5 {
			fmt.Printf("... and %d more alerts\n", len(alerts)-5)
		}
	}
}
