package normalizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"invoice-reconciler/internal/domain"
)

// Sentinel values that mean "no data" in extracted cells, compared
// case-insensitively after trimming.
var sentinelValues = map[string]struct{}{
	"N/A":     {},
	"TBD":     {},
	"PENDING": {},
	"":        {},
}

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	// Everything outside letters, digits, whitespace and the punctuation
	// that carries meaning in product descriptions. Keeps tokens like
	// "USB-C", "7-in-1" and "1080p" intact.
	descriptionNoise = regexp.MustCompile(`[^\p{L}\p{N}_\s\-.,()&/]`)
)

// DataNormalizer converts raw extracted line items into validated typed
// ones. A row that fails to parse becomes an invalid item plus recorded
// errors; one bad row never aborts the batch.
type DataNormalizer struct{}

// NewDataNormalizer creates a new normalizer instance.
func NewDataNormalizer() *DataNormalizer {
	return &DataNormalizer{}
}

// NormalizeDocument normalizes every line item of an extracted document,
// collecting row-prefixed validation errors at the document level.
func (n *DataNormalizer) NormalizeDocument(extracted *domain.ExtractedDocument) *domain.NormalizedDocument {
	items := make([]*domain.NormalizedLineItem, 0, len(extracted.LineItems))
	var validationErrors []string

	for i := range extracted.LineItems {
		raw := &extracted.LineItems[i]
		item := n.NormalizeLineItem(raw)
		items = append(items, item)

		for _, e := range item.ValidationErrors {
			validationErrors = append(validationErrors, fmt.Sprintf("Row %d: %s", raw.RowNumber, e))
		}
	}

	return &domain.NormalizedDocument{
		Metadata:         extracted.Metadata,
		LineItems:        items,
		ValidationErrors: validationErrors,
	}
}

// NormalizeLineItem normalizes a single raw line item. The returned item is
// flagged invalid when the description is empty, the quantity is absent, or
// the unit price is absent; a missing total value alone is tolerated since
// it can be derived.
func (n *DataNormalizer) NormalizeLineItem(raw *domain.RawLineItem) *domain.NormalizedLineItem {
	var errors []string

	description := n.NormalizeDescription(raw.Description)

	quantity := n.ParseQuantity(raw.Quantity)
	if quantity == nil && raw.Quantity != nil {
		errors = append(errors, fmt.Sprintf("Invalid quantity: %v", raw.Quantity))
	}

	unitPrice := n.ParsePrice(raw.UnitPrice)
	if unitPrice == nil && raw.UnitPrice != nil {
		errors = append(errors, fmt.Sprintf("Invalid unit price: %v", raw.UnitPrice))
	}

	totalValue := n.ParsePrice(raw.TotalValue)
	if totalValue == nil && raw.TotalValue != nil {
		errors = append(errors, fmt.Sprintf("Invalid total value: %v", raw.TotalValue))
	}

	isValid := true
	if description == "" {
		errors = append(errors, "Missing description")
		isValid = false
	}
	if quantity == nil {
		errors = append(errors, "Missing or invalid quantity")
		isValid = false
	}
	if unitPrice == nil {
		errors = append(errors, "Missing or invalid unit price")
		isValid = false
	}

	return &domain.NormalizedLineItem{
		SKU:              strings.TrimSpace(raw.SKU),
		Description:      description,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		TotalValue:       totalValue,
		RowNumber:        raw.RowNumber,
		IsValid:          isValid,
		ValidationErrors: errors,
	}
}

// ParseQuantity coerces a raw quantity value to a float. Returns nil for
// absent, sentinel or unparseable values; no failure escapes.
func (n *DataNormalizer) ParseQuantity(value any) *float64 {
	if value == nil {
		return nil
	}

	if f, ok := asFloat(value); ok {
		return &f
	}

	s := strings.TrimSpace(fmt.Sprintf("%v", value))
	if isSentinel(s) {
		return nil
	}

	// Strip thousands separators.
	s = strings.ReplaceAll(s, ",", "")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParsePrice coerces a raw price value to an exact decimal rounded to two
// fractional digits. Currency symbols and thousands separators are stripped
// before parsing. Returns nil for absent, sentinel or unparseable values.
func (n *DataNormalizer) ParsePrice(value any) *decimal.Decimal {
	if value == nil {
		return nil
	}

	if d, ok := value.(decimal.Decimal); ok {
		r := d.Round(2)
		return &r
	}

	if f, ok := asFloat(value); ok {
		r := decimal.NewFromFloat(f).Round(2)
		return &r
	}

	s := strings.TrimSpace(fmt.Sprintf("%v", value))
	if isSentinel(s) {
		return nil
	}

	for _, symbol := range []string{"$", "€", "£"} {
		s = strings.ReplaceAll(s, symbol, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	r := d.Round(2)
	return &r
}

// NormalizeDescription trims, collapses whitespace runs and drops decorative
// extraction artifacts while preserving meaningful alphanumeric tokens.
func (n *DataNormalizer) NormalizeDescription(text string) string {
	if text == "" {
		return ""
	}

	text = strings.TrimSpace(text)
	text = whitespaceRuns.ReplaceAllString(text, " ")
	text = descriptionNoise.ReplaceAllString(text, "")
	text = whitespaceRuns.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

func isSentinel(s string) bool {
	_, ok := sentinelValues[strings.ToUpper(s)]
	return ok
}

// asFloat reports whether the value is already numeric. JSON decoding
// produces float64; CSV gateways hand over strings, covered elsewhere.
func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
