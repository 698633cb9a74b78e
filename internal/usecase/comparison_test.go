package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-reconciler/internal/domain"
	"invoice-reconciler/internal/matcher"
	"invoice-reconciler/internal/usecase"
	mock_usecase "invoice-reconciler/internal/usecase/mocks"
)

const poPath = "/extracts/po-1001.json"
const piPath = "/extracts/pi-2001.json"

func poDocument() *domain.ExtractedDocument {
	return &domain.ExtractedDocument{
		Metadata: domain.DocumentMetadata{DocumentNumber: "PO-1001", VendorName: "Acme"},
		LineItems: []domain.RawLineItem{
			{SKU: "X1", Description: "Widget", Quantity: "100", UnitPrice: "$10.00", TotalValue: "$1,000.00", RowNumber: 1},
			{Description: "Orphan Item", Quantity: "5", UnitPrice: "$2.00", TotalValue: "$10.00", RowNumber: 2},
		},
	}
}

func piDocument() *domain.ExtractedDocument {
	return &domain.ExtractedDocument{
		Metadata: domain.DocumentMetadata{DocumentNumber: "PI-2001", VendorName: "Acme"},
		LineItems: []domain.RawLineItem{
			{SKU: "x1", Description: "Widget (export)", Quantity: "100", UnitPrice: "$10.60", TotalValue: "$1,060.00", RowNumber: 1},
		},
	}
}

func TestComparisonUseCase_Compare(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mRepo := mock_usecase.NewMockDocumentRepository(ctrl)
	mRepo.EXPECT().GetDocument(gomock.Any(), poPath).Return(poDocument(), nil)
	mRepo.EXPECT().GetDocument(gomock.Any(), piPath).Return(piDocument(), nil)

	uc := usecase.NewComparisonUseCase(mRepo, matcher.DefaultFuzzyThreshold)
	report, err := uc.Compare(context.Background(), poPath, piPath)

	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, "PO-1001", report.POMetadata.DocumentNumber)
	assert.Equal(t, "PI-2001", report.PIMetadata.DocumentNumber)

	// SKU match despite differing case and description.
	stats := report.Match.Statistics
	assert.Equal(t, 1, stats.MatchedCount)
	assert.Equal(t, 1, stats.UnmatchedPOCount)
	assert.Equal(t, 0, stats.UnmatchedPICount)
	require.Len(t, report.Match.MatchedPairs, 1)
	assert.Equal(t, domain.MatchTypeSKU, report.Match.MatchedPairs[0].MatchType)

	// The 6% unit price increase surfaces as one high alert.
	require.NotNil(t, report.Comparison)
	require.Len(t, report.Comparison.Alerts, 1)
	assert.Equal(t, domain.SeverityHigh, report.Comparison.Alerts[0].Severity)
	assert.Equal(t, 1, report.Comparison.Summary.ItemsWithDiscrepancies)
}

func TestComparisonUseCase_ValidationErrorsSurfacedAsData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poDoc := &domain.ExtractedDocument{
		LineItems: []domain.RawLineItem{
			{Description: "Widget", Quantity: "N/A", UnitPrice: "$1.00", RowNumber: 1},
		},
	}
	piDoc := &domain.ExtractedDocument{}

	mRepo := mock_usecase.NewMockDocumentRepository(ctrl)
	mRepo.EXPECT().GetDocument(gomock.Any(), poPath).Return(poDoc, nil)
	mRepo.EXPECT().GetDocument(gomock.Any(), piPath).Return(piDoc, nil)

	uc := usecase.NewComparisonUseCase(mRepo, matcher.DefaultFuzzyThreshold)
	report, err := uc.Compare(context.Background(), poPath, piPath)

	// Imperfect input still yields a best-effort result, never an error.
	require.NoError(t, err)
	assert.NotEmpty(t, report.POValidationErrors)
	assert.Empty(t, report.PIValidationErrors)
	assert.Equal(t, 1, report.Match.Statistics.UnmatchedPOCount)
}

func TestComparisonUseCase_RepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("purchase order load failure", func(t *testing.T) {
		mRepo := mock_usecase.NewMockDocumentRepository(ctrl)
		mRepo.EXPECT().GetDocument(gomock.Any(), poPath).Return(nil, errors.New("boom"))

		uc := usecase.NewComparisonUseCase(mRepo, matcher.DefaultFuzzyThreshold)
		report, err := uc.Compare(context.Background(), poPath, piPath)

		assert.Error(t, err)
		assert.Nil(t, report)
		assert.Contains(t, err.Error(), "purchase order")
	})

	t.Run("proforma invoice load failure", func(t *testing.T) {
		mRepo := mock_usecase.NewMockDocumentRepository(ctrl)
		mRepo.EXPECT().GetDocument(gomock.Any(), poPath).Return(poDocument(), nil)
		mRepo.EXPECT().GetDocument(gomock.Any(), piPath).Return(nil, errors.New("boom"))

		uc := usecase.NewComparisonUseCase(mRepo, matcher.DefaultFuzzyThreshold)
		report, err := uc.Compare(context.Background(), poPath, piPath)

		assert.Error(t, err)
		assert.Nil(t, report)
		assert.Contains(t, err.Error(), "proforma invoice")
	})
}
