package matcher

import "invoice-reconciler/internal/domain"

// DefaultFuzzyThreshold is the minimum similarity (0-100) a fuzzy candidate
// must reach to be considered a match.
const DefaultFuzzyThreshold = 80.0

// ItemMatcher pairs PO line items with PI line items in three ordered
// phases: SKU, exact description, fuzzy description. Each phase only
// consumes PI items left unmatched by earlier phases, so a pair is always
// one-to-one. The algorithm is greedy and phase-ordered, not a global
// optimum assignment; that trade-off keeps it deterministic and O(n*m).
type ItemMatcher struct {
	strategies []matchStrategy
}

// NewItemMatcher creates a matcher with the given fuzzy threshold (0-100).
func NewItemMatcher(fuzzyThreshold float64) *ItemMatcher {
	return &ItemMatcher{
		strategies: []matchStrategy{
			skuStrategy{},
			exactDescriptionStrategy{},
			fuzzyStrategy{threshold: fuzzyThreshold},
		},
	}
}

// Match partitions the two lists into matched pairs plus leftovers and
// derives the run statistics. Deterministic for a fixed input ordering.
func (m *ItemMatcher) Match(poItems, piItems []*domain.NormalizedLineItem) *domain.MatchResult {
	var matchedPairs []domain.MatchedPair

	unmatchedPO := make([]*domain.NormalizedLineItem, len(poItems))
	copy(unmatchedPO, poItems)
	unmatchedPI := make([]*domain.NormalizedLineItem, len(piItems))
	copy(unmatchedPI, piItems)

	for _, strategy := range m.strategies {
		var poRemaining []*domain.NormalizedLineItem

		for _, poItem := range unmatchedPO {
			piMatch, score := strategy.FindMatch(poItem, unmatchedPI)
			if piMatch == nil {
				poRemaining = append(poRemaining, poItem)
				continue
			}

			matchedPairs = append(matchedPairs, domain.MatchedPair{
				POItem:     poItem,
				PIItem:     piMatch,
				MatchType:  strategy.MatchType(),
				MatchScore: score,
			})
			unmatchedPI = removeItem(unmatchedPI, piMatch)
		}

		unmatchedPO = poRemaining
	}

	return &domain.MatchResult{
		MatchedPairs:     matchedPairs,
		UnmatchedPOItems: unmatchedPO,
		UnmatchedPIItems: unmatchedPI,
		Statistics: domain.MatchStatistics{
			TotalPOItems:     len(poItems),
			TotalPIItems:     len(piItems),
			MatchedCount:     len(matchedPairs),
			UnmatchedPOCount: len(unmatchedPO),
			UnmatchedPICount: len(unmatchedPI),
		},
	}
}

// removeItem drops one item from the candidate pool by identity, preserving
// order. Identity comparison keeps duplicate-looking rows distinct.
func removeItem(items []*domain.NormalizedLineItem, target *domain.NormalizedLineItem) []*domain.NormalizedLineItem {
	for i, item := range items {
		if item == target {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return items
}
