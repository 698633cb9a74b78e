package domain

import "github.com/shopspring/decimal"

// DocumentMetadata holds best-effort header fields extracted from a document.
// All fields are optional; they are consumed only for report headers.
type DocumentMetadata struct {
	DocumentNumber string   `json:"document_number,omitempty"`
	Date           string   `json:"date,omitempty"`
	VendorName     string   `json:"vendor_name,omitempty"`
	TotalAmount    *float64 `json:"total_amount,omitempty"`
}

// RawLineItem is one row as extracted, before any validation. Quantity and
// price fields are untyped because extracts mix numbers, strings with
// currency symbols or thousands separators, and sentinel text like "N/A".
type RawLineItem struct {
	SKU         string `json:"sku,omitempty"`
	Description string `json:"description"`
	Quantity    any    `json:"quantity"`
	UnitPrice   any    `json:"unit_price"`
	TotalValue  any    `json:"total_value"`
	RowNumber   int    `json:"row_number"` // 1-based, for traceability
}

// NormalizedLineItem is the canonical unit consumed by matching and
// comparison. Absent values are nil, never zero, so "no data" stays
// distinguishable from "confirmed zero".
type NormalizedLineItem struct {
	SKU              string           `json:"sku,omitempty"`
	Description      string           `json:"description"`
	Quantity         *float64         `json:"quantity,omitempty"`
	UnitPrice        *decimal.Decimal `json:"unit_price,omitempty"`
	TotalValue       *decimal.Decimal `json:"total_value,omitempty"`
	RowNumber        int              `json:"row_number"`
	IsValid          bool             `json:"is_valid"`
	ValidationErrors []string         `json:"validation_errors,omitempty"`
}

// ExtractedDocument is a document as produced by the extraction collaborator.
type ExtractedDocument struct {
	Metadata         DocumentMetadata `json:"metadata"`
	LineItems        []RawLineItem    `json:"line_items"`
	ExtractionMethod string           `json:"extraction_method,omitempty"`
	Errors           []string         `json:"errors,omitempty"`
}

// NormalizedDocument is a document after normalization and validation.
// ValidationErrors aggregates per-row errors prefixed with the row number.
type NormalizedDocument struct {
	Metadata         DocumentMetadata      `json:"metadata"`
	LineItems        []*NormalizedLineItem `json:"line_items"`
	ValidationErrors []string              `json:"validation_errors,omitempty"`
}
