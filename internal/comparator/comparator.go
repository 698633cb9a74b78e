package comparator

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"invoice-reconciler/internal/domain"
)

// Thresholds for flagging and alerting. Money comparisons run on exact
// decimals so the boundary behaves the same regardless of batch size.
var (
	centThreshold     = decimal.New(1, -2)  // 0.01
	criticalThreshold = decimal.New(1000, 0)
)

const (
	quantityAlertPercent = 10.0
	priceAlertPercent    = 5.0
	lowAlertPercent      = 5.0

	relatedItemMaxLen = 50
)

// ComparisonEngine computes discrepancies and alerts for matched pairs.
// Compare is a pure function of its input.
type ComparisonEngine struct{}

// NewComparisonEngine creates a new engine instance.
func NewComparisonEngine() *ComparisonEngine {
	return &ComparisonEngine{}
}

// Compare produces one discrepancy per matched pair, the alerts the alert
// policy raises for them, and the aggregate summary.
func (e *ComparisonEngine) Compare(matchResult *domain.MatchResult) *domain.ComparisonResult {
	discrepancies := make([]domain.Discrepancy, 0, len(matchResult.MatchedPairs))
	var alerts []domain.Alert

	for i := range matchResult.MatchedPairs {
		discrepancy := e.CalculateDiscrepancy(&matchResult.MatchedPairs[i])
		discrepancies = append(discrepancies, discrepancy)
		alerts = append(alerts, e.GenerateAlerts(&discrepancy)...)
	}

	return &domain.ComparisonResult{
		Discrepancies: discrepancies,
		Summary:       e.calculateSummary(discrepancies),
		Alerts:        alerts,
	}
}

// CalculateDiscrepancy computes the signed PI-minus-PO differences for one
// pair. A field absent on either side yields a nil difference, not zero,
// so "no data" never reads as "confirmed equal".
func (e *ComparisonEngine) CalculateDiscrepancy(pair *domain.MatchedPair) domain.Discrepancy {
	po := pair.POItem
	pi := pair.PIItem

	var quantityDiff *float64
	if po.Quantity != nil && pi.Quantity != nil {
		d := *pi.Quantity - *po.Quantity
		quantityDiff = &d
	}

	var unitPriceDiff *decimal.Decimal
	if po.UnitPrice != nil && pi.UnitPrice != nil {
		d := pi.UnitPrice.Sub(*po.UnitPrice)
		unitPriceDiff = &d
	}

	var totalValueDiff *decimal.Decimal
	if po.TotalValue != nil && pi.TotalValue != nil {
		d := pi.TotalValue.Sub(*po.TotalValue)
		totalValueDiff = &d
	}

	return domain.Discrepancy{
		POItem:              po,
		PIItem:              pi,
		QuantityDiff:        quantityDiff,
		UnitPriceDiff:       unitPriceDiff,
		TotalValueDiff:      totalValueDiff,
		HasQuantityMismatch: quantityDiff != nil && *quantityDiff != 0,
		HasPriceMismatch:    unitPriceDiff != nil && unitPriceDiff.Abs().GreaterThan(centThreshold),
		HasDiscrepancy:      totalValueDiff != nil && totalValueDiff.Abs().GreaterThan(centThreshold),
	}
}

// GenerateAlerts evaluates the alert policy for one discrepancy, in fixed
// order: high quantity (>10%), high price (>5%), critical total value
// (>1000 absolute), then a low fallback (<5%) that fires only when nothing
// above did. More than one high/critical alert may fire for the same pair.
func (e *ComparisonEngine) GenerateAlerts(discrepancy *domain.Discrepancy) []domain.Alert {
	var alerts []domain.Alert
	po := discrepancy.POItem

	itemDesc := relatedItem(po.Description)

	if discrepancy.QuantityDiff != nil && po.Quantity != nil && *po.Quantity != 0 {
		qtyPercent := math.Abs(*discrepancy.QuantityDiff / *po.Quantity) * 100
		if qtyPercent > quantityAlertPercent {
			alerts = append(alerts, domain.Alert{
				Severity:        domain.SeverityHigh,
				Message:         fmt.Sprintf("Quantity discrepancy of %.2f (%.1f%%) for '%s'", *discrepancy.QuantityDiff, qtyPercent, itemDesc),
				SuggestedAction: "Contact vendor to clarify quantity difference",
				RelatedItem:     itemDesc,
			})
		}
	}

	if discrepancy.UnitPriceDiff != nil && po.UnitPrice != nil && !po.UnitPrice.IsZero() {
		pricePercent := math.Abs(discrepancy.UnitPriceDiff.Div(*po.UnitPrice).InexactFloat64()) * 100
		if pricePercent > priceAlertPercent {
			alerts = append(alerts, domain.Alert{
				Severity:        domain.SeverityHigh,
				Message:         fmt.Sprintf("Unit price discrepancy of $%s (%.1f%%) for '%s'", discrepancy.UnitPriceDiff.StringFixed(2), pricePercent, itemDesc),
				SuggestedAction: "Verify pricing with vendor and check for price changes",
				RelatedItem:     itemDesc,
			})
		}
	}

	if discrepancy.TotalValueDiff != nil && discrepancy.TotalValueDiff.Abs().GreaterThan(criticalThreshold) {
		alerts = append(alerts, domain.Alert{
			Severity:        domain.SeverityCritical,
			Message:         fmt.Sprintf("Large total value discrepancy of $%s for '%s'", discrepancy.TotalValueDiff.StringFixed(2), itemDesc),
			SuggestedAction: "Immediate review required - contact vendor and verify order details",
			RelatedItem:     itemDesc,
		})
	}

	// Low fallback: small total-value discrepancies stay visible without
	// duplicating an alert already raised above.
	if discrepancy.HasDiscrepancy && len(alerts) == 0 {
		if po.TotalValue != nil && !po.TotalValue.IsZero() && discrepancy.TotalValueDiff.Abs().GreaterThan(centThreshold) {
			valuePercent := math.Abs(discrepancy.TotalValueDiff.Div(*po.TotalValue).InexactFloat64()) * 100
			if valuePercent < lowAlertPercent {
				alerts = append(alerts, domain.Alert{
					Severity:        domain.SeverityLow,
					Message:         fmt.Sprintf("Minor total value discrepancy of $%s (%.2f%%) for '%s'", discrepancy.TotalValueDiff.StringFixed(2), valuePercent, itemDesc),
					SuggestedAction: "Review during routine reconciliation",
					RelatedItem:     itemDesc,
				})
			}
		}
	}

	return alerts
}

func (e *ComparisonEngine) calculateSummary(discrepancies []domain.Discrepancy) domain.ComparisonSummary {
	totalQtyOrdered := 0.0
	totalQtyInvoiced := 0.0
	totalValueOrdered := decimal.Zero
	totalValueInvoiced := decimal.Zero
	itemsWithDiscrepancies := 0

	for i := range discrepancies {
		disc := &discrepancies[i]

		if disc.POItem.Quantity != nil {
			totalQtyOrdered += *disc.POItem.Quantity
		}
		if disc.PIItem.Quantity != nil {
			totalQtyInvoiced += *disc.PIItem.Quantity
		}

		if disc.POItem.TotalValue != nil {
			totalValueOrdered = totalValueOrdered.Add(*disc.POItem.TotalValue)
		}
		if disc.PIItem.TotalValue != nil {
			totalValueInvoiced = totalValueInvoiced.Add(*disc.PIItem.TotalValue)
		}

		if disc.HasDiscrepancy {
			itemsWithDiscrepancies++
		}
	}

	return domain.ComparisonSummary{
		TotalQuantityOrdered:   totalQtyOrdered,
		TotalQuantityInvoiced:  totalQtyInvoiced,
		TotalValueOrdered:      totalValueOrdered,
		TotalValueInvoiced:     totalValueInvoiced,
		QuantityDifference:     totalQtyInvoiced - totalQtyOrdered,
		ValueDifference:        totalValueInvoiced.Sub(totalValueOrdered),
		ItemsWithDiscrepancies: itemsWithDiscrepancies,
	}
}

func relatedItem(description string) string {
	if description == "" {
		return "Unknown item"
	}
	if len(description) > relatedItemMaxLen {
		return description[:relatedItemMaxLen]
	}
	return description
}
