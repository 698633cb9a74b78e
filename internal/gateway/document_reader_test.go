package gateway

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileDocumentRepository_JSONDocument(t *testing.T) {
	repo := NewFileDocumentRepository()
	ctx := context.Background()

	path := writeTempFile(t, "po.json", `{
		"metadata": {
			"document_number": "PO-1001",
			"vendor_name": "Acme Industrial",
			"date": "2026-08-01"
		},
		"line_items": [
			{"sku": "ABC-1", "description": "Steel Bolt M8", "quantity": 100, "unit_price": "$2.50", "total_value": "$250.00", "row_number": 1},
			{"description": "USB-C Hub", "quantity": "N/A", "unit_price": 45.00}
		]
	}`)

	doc, err := repo.GetDocument(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, "PO-1001", doc.Metadata.DocumentNumber)
	assert.Equal(t, "Acme Industrial", doc.Metadata.VendorName)
	assert.Equal(t, "json", doc.ExtractionMethod)

	require.Len(t, doc.LineItems, 2)
	first := doc.LineItems[0]
	assert.Equal(t, "ABC-1", first.SKU)
	assert.Equal(t, 100.0, first.Quantity) // JSON numbers decode as float64
	assert.Equal(t, "$2.50", first.UnitPrice)

	// Missing row numbers fall back to 1-based list positions.
	second := doc.LineItems[1]
	assert.Equal(t, 2, second.RowNumber)
	assert.Equal(t, "N/A", second.Quantity)
}

func TestFileDocumentRepository_CSVDocument(t *testing.T) {
	repo := NewFileDocumentRepository()
	ctx := context.Background()

	path := writeTempFile(t, "pi.csv",
		"sku,description,quantity,unit_price,total_value\n"+
			"ABC-1,Steel Bolt M8,100,\"$2.50\",\"$250.00\"\n"+
			",USB-C Hub,5,45.00,\n")

	doc, err := repo.GetDocument(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "csv", doc.ExtractionMethod)

	require.Len(t, doc.LineItems, 2)

	first := doc.LineItems[0]
	assert.Equal(t, "ABC-1", first.SKU)
	assert.Equal(t, "Steel Bolt M8", first.Description)
	assert.Equal(t, "100", first.Quantity) // CSV cells stay raw strings
	assert.Equal(t, "$2.50", first.UnitPrice)
	assert.Equal(t, 1, first.RowNumber)

	second := doc.LineItems[1]
	assert.Equal(t, "", second.SKU)
	assert.Nil(t, second.TotalValue) // empty cell is absent, not ""
	assert.Equal(t, 2, second.RowNumber)
}

func TestFileDocumentRepository_CSVMissingColumn(t *testing.T) {
	repo := NewFileDocumentRepository()

	path := writeTempFile(t, "bad.csv", "sku,description\nABC-1,Widget\n")

	_, err := repo.GetDocument(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
}

func TestFileDocumentRepository_UnknownExtensionFallsBack(t *testing.T) {
	repo := NewFileDocumentRepository()

	path := writeTempFile(t, "extract.dat",
		"sku,description,quantity,unit_price,total_value\n"+
			"X1,Widget,10,1.00,10.00\n")

	doc, err := repo.GetDocument(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "csv", doc.ExtractionMethod)
	require.Len(t, doc.LineItems, 1)
	require.Len(t, doc.Errors, 1)
	assert.Contains(t, doc.Errors[0], "csv fallback")
}

func TestFileDocumentRepository_FileNotFound(t *testing.T) {
	repo := NewFileDocumentRepository()

	_, err := repo.GetDocument(context.Background(), "nonexistent.json")
	assert.Error(t, err)
}
