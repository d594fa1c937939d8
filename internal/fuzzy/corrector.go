package fuzzy

import (
	"github.com/ledgersense/ledgersense/internal/text"
)

const (
	// snapThreshold is the minimum blended score for accepting a snap.
	snapThreshold = 0.86
	// jwWeight and levWeight blend the two similarity measures when the
	// candidate is within the edit-distance budget.
	jwWeight  = 0.65
	levWeight = 0.35
)

// Corrector snaps noisy tokens and phrases to the nearest entry of a
// canonical keyword universe. A Corrector is immutable once built; the
// classifier swaps in a fresh one after lexicon growth.
type Corrector struct {
	keywordSet map[string]struct{}
	stopWords  map[string]struct{}
	keywords   []string
}

// NewCorrector builds a corrector over the given keyword universe and
// stop-word set. Keywords are expected lowercase.
func NewCorrector(keywords []string, stopWords []string) *Corrector {
	c := &Corrector{
		keywordSet: make(map[string]struct{}, len(keywords)),
		stopWords:  make(map[string]struct{}, len(stopWords)),
	}
	for _, kw := range keywords {
		if _, seen := c.keywordSet[kw]; seen {
			continue
		}
		c.keywordSet[kw] = struct{}{}
		c.keywords = append(c.keywords, kw)
	}
	for _, w := range stopWords {
		c.stopWords[w] = struct{}{}
	}
	return c
}

// Snap returns the nearest keyword for s and true, or ("", false) when
// nothing scores above the acceptance threshold. Exact keyword members
// snap to themselves; stop words never snap.
//
// The lookup scans the full keyword universe per candidate, pruned by
// length. That is the dominant cost of classification and is fine at
// lexicon sizes in the low hundreds; index by length bucket before
// growing the lexicon far beyond that.
func (c *Corrector) Snap(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if _, ok := c.keywordSet[s]; ok {
		return s, true
	}
	if _, ok := c.stopWords[s]; ok {
		return "", false
	}

	budget := editBudget(s)
	bestKw := ""
	bestScore := 0.0

	for _, kw := range c.keywords {
		if abs(len(kw)-len(s)) > budget {
			continue
		}

		var score float64
		if ed := Levenshtein(s, kw); ed <= budget {
			jw := JaroWinkler(s, kw)
			levSim := 1.0 - float64(ed)/float64(max(len(s), len(kw)))
			score = jw*jwWeight + levSim*levWeight
		} else {
			score = JaroWinkler(s, kw)
		}
		if score > bestScore {
			bestScore = score
			bestKw = kw
		}
	}

	if bestScore >= snapThreshold {
		return bestKw, true
	}
	return "", false
}

// Correct snaps each token, then derives bigrams and trigrams from the
// corrected tokens and snaps those too. It returns the corrected tokens
// and the combined n-gram list (tokens + bigrams + trigrams).
func (c *Corrector) Correct(tokens []string) (corrected, ngrams []string) {
	corrected = make([]string, len(tokens))
	for i, tok := range tokens {
		corrected[i] = c.snapOrKeep(tok)
	}

	bigrams := text.Bigrams(corrected)
	trigrams := text.Trigrams(corrected)

	ngrams = make([]string, 0, len(corrected)+len(bigrams)+len(trigrams))
	ngrams = append(ngrams, corrected...)
	for _, phrase := range bigrams {
		ngrams = append(ngrams, c.snapOrKeep(phrase))
	}
	for _, phrase := range trigrams {
		ngrams = append(ngrams, c.snapOrKeep(phrase))
	}
	return corrected, ngrams
}

func (c *Corrector) snapOrKeep(s string) string {
	if snapped, ok := c.Snap(s); ok {
		return snapped
	}
	return s
}

// editBudget returns the length-based edit-distance budget.
func editBudget(s string) int {
	switch {
	case len(s) <= 4:
		return 1
	case len(s) <= 8:
		return 2
	default:
		return 3
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
