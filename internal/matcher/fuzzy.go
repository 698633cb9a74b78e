package matcher

import (
	"sort"
	"strings"
)

// TokenSortRatio scores two strings on a 0-100 scale, insensitive to word
// order: tokens are sorted before the sequences are compared, so
// "steel bolt m8" and "m8 steel bolt" score 100.
func TokenSortRatio(a, b string) float64 {
	return ratio(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// ratio is the normalized indel similarity: 100 * (len(a)+len(b)-d) /
// (len(a)+len(b)), where d is the minimum number of insertions and
// deletions turning a into b.
func ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}

	lcs := longestCommonSubsequence(ra, rb)
	// indel distance = total - 2*lcs
	return float64(2*lcs) / float64(total) * 100
}

func longestCommonSubsequence(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
