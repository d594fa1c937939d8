// Package fuzzy implements the string similarity primitives and the
// typo-correction pass used by the classifier.
package fuzzy

// JaroWinkler returns the Jaro-Winkler similarity of two strings in
// [0,1]. The common-prefix bonus is capped at 4 characters with the
// standard 0.1 scaling factor.
func JaroWinkler(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}
	matches, transpositions, prefix := jaroMatches(s1, s2)
	m := float64(matches)
	if m == 0 {
		return 0
	}
	j := (m/float64(len(s1)) + m/float64(len(s2)) + (m-float64(transpositions))/m) / 3.0
	const p = 0.1
	l := float64(min(prefix, 4))
	return j + l*p*(1-j)
}

// jaroMatches computes the match count, transposition count, and common
// prefix length for the Jaro algorithm.
func jaroMatches(s1, s2 string) (matches, transpositions, prefix int) {
	maxS, minS := s1, s2
	if len(s1) < len(s2) {
		maxS, minS = s2, s1
	}
	window := max(len(maxS)/2-1, 0)

	matchIndexes := make([]int, len(minS))
	for i := range matchIndexes {
		matchIndexes[i] = -1
	}
	matchFlags := make([]bool, len(maxS))

	for i := 0; i < len(minS); i++ {
		start := max(0, i-window)
		end := min(i+window+1, len(maxS))
		for j := start; j < end; j++ {
			if !matchFlags[j] && minS[i] == maxS[j] {
				matchIndexes[i] = j
				matchFlags[j] = true
				matches++
				break
			}
		}
	}

	ms1 := make([]byte, 0, matches)
	ms2 := make([]byte, 0, matches)
	for i := 0; i < len(minS); i++ {
		if matchIndexes[i] != -1 {
			ms1 = append(ms1, minS[i])
		}
	}
	for j := 0; j < len(maxS); j++ {
		if matchFlags[j] {
			ms2 = append(ms2, maxS[j])
		}
	}

	raw := 0
	for i := 0; i < matches; i++ {
		if ms1[i] != ms2[i] {
			raw++
		}
	}
	transpositions = raw / 2

	for i := 0; i < min(len(s1), len(s2)); i++ {
		if s1[i] != s2[i] {
			break
		}
		prefix++
	}
	return matches, transpositions, prefix
}

// Levenshtein returns the minimum number of single-character inserts,
// deletes, and substitutions needed to turn a into b.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	dp := make([]int, len(b)+1)
	for j := range dp {
		dp[j] = j
	}
	for i := 1; i <= len(a); i++ {
		prev := i - 1
		dp[0] = i
		for j := 1; j <= len(b); j++ {
			tmp := dp[j]
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			dp[j] = min(min(dp[j]+1, dp[j-1]+1), prev+cost)
			prev = tmp
		}
	}
	return dp[len(b)]
}

// LevenshteinSimilarity normalizes edit distance to a [0,1] similarity.
func LevenshteinSimilarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(Levenshtein(a, b))/float64(longest)
}
