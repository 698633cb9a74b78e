package domain

// MatchType identifies which matching phase produced a pair.
type MatchType string

const (
	MatchTypeSKU              MatchType = "sku"
	MatchTypeExactDescription MatchType = "exact_description"
	MatchTypeFuzzy            MatchType = "fuzzy"
)

// MatchedPair associates a PO line item with a PI line item. Score is 1.0
// for SKU and exact-description matches; fuzzy matches carry the similarity
// normalized to [0,1]. Each item belongs to at most one pair per run.
type MatchedPair struct {
	POItem     *NormalizedLineItem `json:"po_item"`
	PIItem     *NormalizedLineItem `json:"pi_item"`
	MatchType  MatchType           `json:"match_type"`
	MatchScore float64             `json:"match_score"`
}

// MatchStatistics summarizes a matching run. Derived from the final
// partition, never mutated independently.
type MatchStatistics struct {
	TotalPOItems     int `json:"total_po_items"`
	TotalPIItems     int `json:"total_pi_items"`
	MatchedCount     int `json:"matched_count"`
	UnmatchedPOCount int `json:"unmatched_po_count"`
	UnmatchedPICount int `json:"unmatched_pi_count"`
}

// MatchResult partitions the two input lists into matched pairs and
// leftovers. Immutable once returned by the matcher.
type MatchResult struct {
	MatchedPairs     []MatchedPair         `json:"matched_pairs"`
	UnmatchedPOItems []*NormalizedLineItem `json:"unmatched_po_items"`
	UnmatchedPIItems []*NormalizedLineItem `json:"unmatched_pi_items"`
	Statistics       MatchStatistics       `json:"match_statistics"`
}
