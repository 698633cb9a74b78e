package matcher

import (
	"strings"

	"invoice-reconciler/internal/domain"
)

// matchStrategy attempts to pair one PO item against the pool of still
// unmatched PI candidates. Strategies are run in a fixed order; each phase
// only ever sees the candidates left over by the previous one.
type matchStrategy interface {
	MatchType() domain.MatchType
	// FindMatch returns the matched candidate and a score on a 0-1 scale,
	// or nil when no candidate qualifies.
	FindMatch(poItem *domain.NormalizedLineItem, candidates []*domain.NormalizedLineItem) (*domain.NormalizedLineItem, float64)
}

// skuStrategy matches by trimmed, uppercased SKU equality. First exact
// match in list order wins.
type skuStrategy struct{}

func (skuStrategy) MatchType() domain.MatchType { return domain.MatchTypeSKU }

func (skuStrategy) FindMatch(poItem *domain.NormalizedLineItem, candidates []*domain.NormalizedLineItem) (*domain.NormalizedLineItem, float64) {
	if poItem.SKU == "" {
		return nil, 0
	}

	poSKU := strings.ToUpper(strings.TrimSpace(poItem.SKU))
	for _, candidate := range candidates {
		if candidate.SKU == "" {
			continue
		}
		if strings.ToUpper(strings.TrimSpace(candidate.SKU)) == poSKU {
			return candidate, 1.0
		}
	}
	return nil, 0
}

// exactDescriptionStrategy matches by trimmed, lowercased description
// equality. First exact match in list order wins.
type exactDescriptionStrategy struct{}

func (exactDescriptionStrategy) MatchType() domain.MatchType { return domain.MatchTypeExactDescription }

func (exactDescriptionStrategy) FindMatch(poItem *domain.NormalizedLineItem, candidates []*domain.NormalizedLineItem) (*domain.NormalizedLineItem, float64) {
	if poItem.Description == "" {
		return nil, 0
	}

	poDesc := strings.ToLower(strings.TrimSpace(poItem.Description))
	for _, candidate := range candidates {
		if candidate.Description == "" {
			continue
		}
		if strings.ToLower(strings.TrimSpace(candidate.Description)) == poDesc {
			return candidate, 1.0
		}
	}
	return nil, 0
}

// fuzzyStrategy matches by token-order-insensitive description similarity.
// The candidate with the strictly highest score at or above the threshold
// wins; ties keep the first-encountered maximum.
type fuzzyStrategy struct {
	threshold float64 // 0-100 scale
}

func (fuzzyStrategy) MatchType() domain.MatchType { return domain.MatchTypeFuzzy }

func (s fuzzyStrategy) FindMatch(poItem *domain.NormalizedLineItem, candidates []*domain.NormalizedLineItem) (*domain.NormalizedLineItem, float64) {
	if poItem.Description == "" {
		return nil, 0
	}

	poDesc := strings.ToLower(strings.TrimSpace(poItem.Description))

	var best *domain.NormalizedLineItem
	bestScore := 0.0

	for _, candidate := range candidates {
		if candidate.Description == "" {
			continue
		}
		piDesc := strings.ToLower(strings.TrimSpace(candidate.Description))

		score := TokenSortRatio(poDesc, piDesc)
		if score > bestScore && score >= s.threshold {
			bestScore = score
			best = candidate
		}
	}

	if best == nil {
		return nil, 0
	}
	// Normalize the 0-100 similarity to the pair's 0-1 match score.
	return best, bestScore / 100.0
}
