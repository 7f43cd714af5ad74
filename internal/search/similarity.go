package search

import "strings"

// Coincidence returns the similarity of query to value as a ratio in [0, 1].
// The ratio is 2*M / (len(value)+len(query)) where M is the length of the
// longest common subsequence of the case-folded rune sequences. Identical
// non-empty strings score 1, an empty side scores 0, and a query that is a
// literal substring of value scores the maximum reachable for that length pair.
func Coincidence(value, query string) float64 {
	runesA := []rune(strings.ToLower(value))
	runesB := []rune(strings.ToLower(query))

	lenA := len(runesA)
	lenB := len(runesB)

	if lenA == 0 || lenB == 0 {
		return 0.0
	}

	matched := longestCommonSubsequence(runesA, runesB)
	return 2.0 * float64(matched) / float64(lenA+lenB)
}

// longestCommonSubsequence computes the LCS length keeping only two matrix rows.
func longestCommonSubsequence(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
