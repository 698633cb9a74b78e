package gateway

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"invoice-reconciler/internal/domain"
)

const (
	methodJSON = "json"
	methodCSV  = "csv"
)

// FileDocumentRepository loads extracted documents from files produced by
// the extraction collaborator. JSON extracts are the primary format; flat
// CSV line-item extracts are the fallback for pipelines that only emit
// tables.
type FileDocumentRepository struct{}

// NewFileDocumentRepository creates a new repository instance.
func NewFileDocumentRepository() *FileDocumentRepository {
	return &FileDocumentRepository{}
}

// GetDocument reads an extracted document from the given path. The format
// is chosen by extension; for unknown extensions JSON is attempted first
// and CSV used as a fallback, with the failed attempt recorded on the
// document's error list.
func (r *FileDocumentRepository) GetDocument(ctx context.Context, path string) (*domain.ExtractedDocument, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return r.readJSONDocument(path)
	case ".csv":
		return r.readCSVDocument(path)
	default:
		doc, jsonErr := r.readJSONDocument(path)
		if jsonErr == nil {
			return doc, nil
		}
		doc, csvErr := r.readCSVDocument(path)
		if csvErr != nil {
			return nil, fmt.Errorf("could not read %s as JSON (%v) or CSV: %w", path, jsonErr, csvErr)
		}
		doc.Errors = append(doc.Errors, fmt.Sprintf("json extract failed, used csv fallback: %v", jsonErr))
		return doc, nil
	}
}

// readJSONDocument decodes a full extract: metadata, line items and the
// extraction-method tag. Untyped scalar fields stay as decoded (float64,
// string or nil) so the normalizer sees the raw mixture.
func (r *FileDocumentRepository) readJSONDocument(path string) (*domain.ExtractedDocument, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document extract %s: %w", path, err)
	}
	defer file.Close()

	var doc domain.ExtractedDocument
	if err := json.NewDecoder(file).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document extract %s: %w", path, err)
	}

	if doc.ExtractionMethod == "" {
		doc.ExtractionMethod = methodJSON
	}

	// Extracts without explicit row numbers get list positions, 1-based.
	for i := range doc.LineItems {
		if doc.LineItems[i].RowNumber == 0 {
			doc.LineItems[i].RowNumber = i + 1
		}
	}

	return &doc, nil
}

// readCSVDocument reads a flat line-item table with the header
// sku,description,quantity,unit_price,total_value. All cells arrive as raw
// strings; empty cells become absent values. No metadata is available in
// this format.
func (r *FileDocumentRepository) readCSVDocument(path string) (*domain.ExtractedDocument, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open line item extract %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"description", "quantity", "unit_price"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing column %q in %s", required, path)
		}
	}

	var items []domain.RawLineItem
	rowNumber := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}

		rowNumber++
		items = append(items, domain.RawLineItem{
			SKU:         cell(record, columns, "sku"),
			Description: cell(record, columns, "description"),
			Quantity:    rawCell(record, columns, "quantity"),
			UnitPrice:   rawCell(record, columns, "unit_price"),
			TotalValue:  rawCell(record, columns, "total_value"),
			RowNumber:   rowNumber,
		})
	}

	return &domain.ExtractedDocument{
		LineItems:        items,
		ExtractionMethod: methodCSV,
	}, nil
}

func cell(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// rawCell returns the cell as an untyped value: nil when the cell is empty
// or the column absent, the raw string otherwise. Sentinel text like "N/A"
// passes through for the normalizer to reject.
func rawCell(record []string, columns map[string]int, name string) any {
	s := cell(record, columns, name)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
