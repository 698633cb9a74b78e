package comparator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-reconciler/internal/domain"
)

func lineItem(description string, quantity float64, unitPrice, totalValue string) *domain.NormalizedLineItem {
	up := decimal.RequireFromString(unitPrice)
	tv := decimal.RequireFromString(totalValue)
	return &domain.NormalizedLineItem{
		Description: description,
		Quantity:    &quantity,
		UnitPrice:   &up,
		TotalValue:  &tv,
		IsValid:     true,
	}
}

func pairOf(po, pi *domain.NormalizedLineItem) domain.MatchedPair {
	return domain.MatchedPair{POItem: po, PIItem: pi, MatchType: domain.MatchTypeSKU, MatchScore: 1.0}
}

func resultOf(pairs ...domain.MatchedPair) *domain.MatchResult {
	return &domain.MatchResult{
		MatchedPairs: pairs,
		Statistics: domain.MatchStatistics{
			TotalPOItems: len(pairs),
			TotalPIItems: len(pairs),
			MatchedCount: len(pairs),
		},
	}
}

func TestComparisonEngine_DiscrepancySigns(t *testing.T) {
	e := NewComparisonEngine()

	// PI minus PO convention: PO qty 10, PI qty 7 gives -3.
	pair := pairOf(
		lineItem("Widget", 10, "5.00", "50.00"),
		lineItem("Widget", 7, "4.50", "31.50"),
	)

	disc := e.CalculateDiscrepancy(&pair)

	require.NotNil(t, disc.QuantityDiff)
	assert.Equal(t, -3.0, *disc.QuantityDiff)
	require.NotNil(t, disc.UnitPriceDiff)
	assert.Equal(t, "-0.50", disc.UnitPriceDiff.StringFixed(2))
	require.NotNil(t, disc.TotalValueDiff)
	assert.Equal(t, "-18.50", disc.TotalValueDiff.StringFixed(2))

	assert.True(t, disc.HasQuantityMismatch)
	assert.True(t, disc.HasPriceMismatch)
	assert.True(t, disc.HasDiscrepancy)
}

func TestComparisonEngine_AbsentFieldsYieldNilDifferences(t *testing.T) {
	e := NewComparisonEngine()

	po := lineItem("Widget", 10, "5.00", "50.00")
	pi := &domain.NormalizedLineItem{Description: "Widget"} // nothing parsed

	disc := e.CalculateDiscrepancy(&domain.MatchedPair{POItem: po, PIItem: pi})

	// Absent on one side is "no data", never a zero difference.
	assert.Nil(t, disc.QuantityDiff)
	assert.Nil(t, disc.UnitPriceDiff)
	assert.Nil(t, disc.TotalValueDiff)
	assert.False(t, disc.HasQuantityMismatch)
	assert.False(t, disc.HasPriceMismatch)
	assert.False(t, disc.HasDiscrepancy)
}

func TestComparisonEngine_PriceMismatchThreshold(t *testing.T) {
	e := NewComparisonEngine()

	t.Run("exactly one cent is not a mismatch", func(t *testing.T) {
		pair := pairOf(
			lineItem("Widget", 1, "5.00", "5.00"),
			lineItem("Widget", 1, "5.01", "5.01"),
		)
		disc := e.CalculateDiscrepancy(&pair)
		assert.False(t, disc.HasPriceMismatch)
		assert.False(t, disc.HasDiscrepancy)
	})

	t.Run("two cents is a mismatch", func(t *testing.T) {
		pair := pairOf(
			lineItem("Widget", 1, "5.00", "5.00"),
			lineItem("Widget", 1, "5.02", "5.02"),
		)
		disc := e.CalculateDiscrepancy(&pair)
		assert.True(t, disc.HasPriceMismatch)
		assert.True(t, disc.HasDiscrepancy)
	})
}

func TestComparisonEngine_HighQuantityAlert(t *testing.T) {
	e := NewComparisonEngine()

	// 20% quantity jump, prices identical.
	result := e.Compare(resultOf(pairOf(
		lineItem("Steel Bolt", 100, "1.00", "100.00"),
		lineItem("Steel Bolt", 120, "1.00", "120.00"),
	)))

	severities := alertSeverities(result.Alerts)
	assert.Contains(t, severities, domain.SeverityHigh)
	assert.NotContains(t, severities, domain.SeverityLow)
}

func TestComparisonEngine_HighPriceAlertEndToEnd(t *testing.T) {
	e := NewComparisonEngine()

	// Spec scenario: 10.00 -> 10.60 is a 6% unit price increase.
	result := e.Compare(resultOf(pairOf(
		lineItem("Widget X1", 100, "10.00", "1000.00"),
		lineItem("Widget X1", 100, "10.60", "1060.00"),
	)))

	require.Len(t, result.Alerts, 1)
	alert := result.Alerts[0]
	assert.Equal(t, domain.SeverityHigh, alert.Severity)
	assert.Contains(t, alert.Message, "$0.60")
	assert.Contains(t, alert.Message, "6.0%")
	assert.Contains(t, alert.Message, "Widget X1")

	require.Len(t, result.Discrepancies, 1)
	assert.True(t, result.Discrepancies[0].HasDiscrepancy)
	assert.Equal(t, 1, result.Summary.ItemsWithDiscrepancies)
}

func TestComparisonEngine_CriticalValueAlert(t *testing.T) {
	e := NewComparisonEngine()

	result := e.Compare(resultOf(pairOf(
		lineItem("Server Rack", 1, "5000.00", "5000.00"),
		lineItem("Server Rack", 1, "6200.00", "6200.00"),
	)))

	severities := alertSeverities(result.Alerts)
	assert.Contains(t, severities, domain.SeverityCritical)
	// 24% price jump fires the high alert too; both may coexist.
	assert.Contains(t, severities, domain.SeverityHigh)
	assert.NotContains(t, severities, domain.SeverityLow)
}

func TestComparisonEngine_LowAlertFallback(t *testing.T) {
	e := NewComparisonEngine()

	t.Run("small discrepancy yields exactly one low alert", func(t *testing.T) {
		// 3% total value drift, quantity equal, price within 5%.
		result := e.Compare(resultOf(pairOf(
			lineItem("Widget", 10, "10.00", "100.00"),
			lineItem("Widget", 10, "10.30", "103.00"),
		)))

		require.Len(t, result.Alerts, 1)
		assert.Equal(t, domain.SeverityLow, result.Alerts[0].Severity)
		assert.Contains(t, result.Alerts[0].Message, "3.00%")
	})

	t.Run("high alert suppresses the low fallback", func(t *testing.T) {
		// >10% quantity discrepancy but <5% value discrepancy: the high
		// quantity alert must fire and the low fallback must stay silent.
		result := e.Compare(resultOf(pairOf(
			lineItem("Widget", 10, "10.00", "100.00"),
			lineItem("Widget", 12, "8.60", "103.20"),
		)))

		severities := alertSeverities(result.Alerts)
		assert.Contains(t, severities, domain.SeverityHigh)
		assert.NotContains(t, severities, domain.SeverityLow)
	})

	t.Run("no alert when totals agree", func(t *testing.T) {
		result := e.Compare(resultOf(pairOf(
			lineItem("Widget", 10, "10.00", "100.00"),
			lineItem("Widget", 10, "10.00", "100.00"),
		)))
		assert.Empty(t, result.Alerts)
		assert.Equal(t, 0, result.Summary.ItemsWithDiscrepancies)
	})
}

func TestComparisonEngine_RelatedItemTruncated(t *testing.T) {
	e := NewComparisonEngine()

	longDesc := "Industrial Grade Stainless Steel Hex Bolt M8 x 40mm Zinc Plated"
	require.Greater(t, len(longDesc), 50)

	result := e.Compare(resultOf(pairOf(
		lineItem(longDesc, 100, "1.00", "100.00"),
		lineItem(longDesc, 150, "1.00", "150.00"),
	)))

	require.NotEmpty(t, result.Alerts)
	assert.Len(t, result.Alerts[0].RelatedItem, 50)
}

func TestComparisonEngine_Summary(t *testing.T) {
	e := NewComparisonEngine()

	result := e.Compare(resultOf(
		pairOf(
			lineItem("Widget A", 10, "2.00", "20.00"),
			lineItem("Widget A", 10, "2.00", "20.00"),
		),
		pairOf(
			lineItem("Widget B", 5, "4.00", "20.00"),
			lineItem("Widget B", 8, "4.00", "32.00"),
		),
	))

	s := result.Summary
	assert.Equal(t, 15.0, s.TotalQuantityOrdered)
	assert.Equal(t, 18.0, s.TotalQuantityInvoiced)
	assert.Equal(t, 3.0, s.QuantityDifference)
	assert.Equal(t, "40.00", s.TotalValueOrdered.StringFixed(2))
	assert.Equal(t, "52.00", s.TotalValueInvoiced.StringFixed(2))
	assert.Equal(t, "12.00", s.ValueDifference.StringFixed(2))
	assert.Equal(t, 1, s.ItemsWithDiscrepancies)
}

func TestComparisonEngine_SummaryTreatsAbsentAsZero(t *testing.T) {
	e := NewComparisonEngine()

	po := lineItem("Widget", 10, "1.00", "10.00")
	pi := &domain.NormalizedLineItem{Description: "Widget"}

	result := e.Compare(resultOf(domain.MatchedPair{POItem: po, PIItem: pi}))

	s := result.Summary
	assert.Equal(t, 10.0, s.TotalQuantityOrdered)
	assert.Equal(t, 0.0, s.TotalQuantityInvoiced)
	assert.Equal(t, "10.00", s.TotalValueOrdered.StringFixed(2))
	assert.Equal(t, "0.00", s.TotalValueInvoiced.StringFixed(2))
	assert.Equal(t, 0, s.ItemsWithDiscrepancies)
}

func alertSeverities(alerts []domain.Alert) []domain.AlertSeverity {
	severities := make([]domain.AlertSeverity, 0, len(alerts))
	for _, a := range alerts {
		severities = append(severities, a.Severity)
	}
	return severities
}
