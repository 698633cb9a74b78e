package usecase

import (
	"context"
	"fmt"

	"invoice-reconciler/internal/comparator"
	"invoice-reconciler/internal/domain"
	"invoice-reconciler/internal/matcher"
	"invoice-reconciler/internal/normalizer"
)

// ComparisonUseCase orchestrates the reconciliation pipeline: load both
// extracts, normalize, match, compare.
type ComparisonUseCase struct {
	repo       DocumentRepository
	normalizer *normalizer.DataNormalizer
	matcher    *matcher.ItemMatcher
	comparator *comparator.ComparisonEngine
}

// NewComparisonUseCase creates a new instance of the usecase. The fuzzy
// threshold (0-100) is the single tunable of the reconciliation core.
func NewComparisonUseCase(repo DocumentRepository, fuzzyThreshold float64) *ComparisonUseCase {
	return &ComparisonUseCase{
		repo:       repo,
		normalizer: normalizer.NewDataNormalizer(),
		matcher:    matcher.NewItemMatcher(fuzzyThreshold),
		comparator: comparator.NewComparisonEngine(),
	}
}

// Compare reconciles a purchase order extract against a proforma invoice
// extract. Validation errors and unmatched items are surfaced as data on
// the report, never as a refusal to run; only failures to load a document
// are returned as errors.
func (uc *ComparisonUseCase) Compare(ctx context.Context, poPath, piPath string) (*domain.ComparisonReport, error) {
	poExtracted, err := uc.repo.GetDocument(ctx, poPath)
	if err != nil {
		return nil, fmt.Errorf("could not load purchase order: %w", err)
	}

	piExtracted, err := uc.repo.GetDocument(ctx, piPath)
	if err != nil {
		return nil, fmt.Errorf("could not load proforma invoice: %w", err)
	}

	poNormalized := uc.normalizer.NormalizeDocument(poExtracted)
	piNormalized := uc.normalizer.NormalizeDocument(piExtracted)

	matchResult := uc.matcher.Match(poNormalized.LineItems, piNormalized.LineItems)
	comparisonResult := uc.comparator.Compare(matchResult)

	return &domain.ComparisonReport{
		POMetadata:         poNormalized.Metadata,
		PIMetadata:         piNormalized.Metadata,
		POValidationErrors: poNormalized.ValidationErrors,
		PIValidationErrors: piNormalized.ValidationErrors,
		Match:              matchResult,
		Comparison:         comparisonResult,
	}, nil
}
