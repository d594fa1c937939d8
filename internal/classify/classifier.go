// Package classify implements the typo-tolerant category classifier for
// free-text transaction descriptions.
package classify

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/ledgersense/ledgersense/internal/common"
	"github.com/ledgersense/ledgersense/internal/fuzzy"
	"github.com/ledgersense/ledgersense/internal/model"
	"github.com/ledgersense/ledgersense/internal/text"
)

// Config holds the classifier's scoring knobs. The defaults are tuned
// values carried over from production use; change them only against
// labeled data.
type Config struct {
	// SimCutoff discards fuzzy contributions below this similarity.
	SimCutoff float64
	// ExactBonus is added to a contribution when the keyword matched exactly.
	ExactBonus float64
	// PhraseWeight multiplies contributions from multi-word keywords.
	PhraseWeight float64
	// TopK caps how many contributions per category are summed.
	TopK int
	// MinBestScore, MinMargin, and MinConfidence gate the final category;
	// failing any of them forces the default category.
	MinBestScore  float64
	MinMargin     float64
	MinConfidence float64
	// LearnMinSimilarity rejects feedback keywords already this close to
	// an existing keyword of any category.
	LearnMinSimilarity float64
	// LearnCrossCategoryCeiling rejects feedback keywords this close to
	// another category's keywords.
	LearnCrossCategoryCeiling float64
	// LearnMaxKeywordLength caps the length of learned keywords.
	LearnMaxKeywordLength int
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() Config {
	return Config{
		SimCutoff:                 0.80,
		ExactBonus:                0.35,
		PhraseWeight:              1.25,
		TopK:                      5,
		MinBestScore:              0.60,
		MinMargin:                 0.15,
		MinConfidence:             0.55,
		LearnMinSimilarity:        0.90,
		LearnCrossCategoryCeiling: 0.75,
		LearnMaxKeywordLength:     24,
	}
}

// Classifier maps transaction descriptions to spending categories using
// hard rules, direct name matches, and a fuzzy scoring fallback.
//
// The lexicon is the only mutable state. Classify takes a read lock and
// Learn takes the write lock, rebuilding the corrector snapshot, so
// concurrent reads never observe a torn lexicon.
type Classifier struct {
	corrector *fuzzy.Corrector
	lexicon   map[string]map[string]struct{}
	cfg       Config
	mu        sync.RWMutex
}

// New creates a classifier seeded with the built-in lexicon and hard rules.
func New(cfg Config) *Classifier {
	c := &Classifier{
		cfg:     cfg,
		lexicon: make(map[string]map[string]struct{}, len(seedLexicon)),
	}
	for cat, kws := range seedLexicon {
		set := make(map[string]struct{}, len(kws))
		for _, kw := range kws {
			set[strings.ToLower(kw)] = struct{}{}
		}
		c.lexicon[cat] = set
	}
	c.corrector = c.buildCorrector()
	return c
}

// buildCorrector snapshots the keyword universe (hard rules plus lexicon)
// into a fresh corrector. Callers must hold at least a read lock.
func (c *Classifier) buildCorrector() *fuzzy.Corrector {
	var universe []string
	for _, kws := range hardRules {
		universe = append(universe, kws...)
	}
	for _, set := range c.lexicon {
		for kw := range set {
			universe = append(universe, kw)
		}
	}
	return fuzzy.NewCorrector(universe, stopWords)
}

// Classify maps a raw description to a category with a confidence value.
// Blank input degrades to the default category with confidence 0.
func (c *Classifier) Classify(rawDescription string) model.ClassificationResult {
	normalized := text.Normalize(rawDescription)
	if normalized == "" {
		return model.ClassificationResult{
			Category:   model.DefaultCategory,
			Confidence: 0.0,
			Scores:     map[string]float64{},
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	tokens, ngrams := c.corrector.Correct(text.Tokenize(normalized))
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = struct{}{}
	}

	// Hard rules first: a single high-precision hit decides immediately.
	for _, cat := range model.Categories {
		for _, key := range hardRules[cat] {
			if containsKeyword(key, tokenSet, ngrams) {
				return model.ClassificationResult{
					Category:   cat,
					Confidence: 0.98,
					Scores:     map[string]float64{cat: 1.0},
				}
			}
		}
	}

	// If the category name itself appears, honor it.
	for _, cat := range model.Categories {
		nameTok := strings.ToLower(cat)
		if _, ok := tokenSet[nameTok]; ok {
			return directNameResult(cat)
		}
		for _, ng := range ngrams {
			if strings.Contains(ng, nameTok) {
				return directNameResult(cat)
			}
		}
	}

	scores := c.fuzzyScores(tokenSet, ngrams)

	bestCat, bestScore := model.DefaultCategory, math.Inf(-1)
	for _, cat := range model.Categories {
		if scores[cat] > bestScore {
			bestCat, bestScore = cat, scores[cat]
		}
	}
	second := secondBest(scores, bestCat)
	margin := math.Max(bestScore-second, 0)

	conf := 0.55*sigmoid(bestScore/2.0) + 0.45*sigmoid(margin*3.0)

	finalCat := bestCat
	if bestScore < c.cfg.MinBestScore || margin < c.cfg.MinMargin || conf < c.cfg.MinConfidence {
		finalCat = model.DefaultCategory
	}

	return model.ClassificationResult{
		Category:   finalCat,
		Confidence: conf,
		Scores:     scores,
	}
}

// fuzzyScores computes the summed top-K keyword contributions per
// category, plus the per-category prior. Callers must hold a read lock.
func (c *Classifier) fuzzyScores(tokenSet map[string]struct{}, ngrams []string) map[string]float64 {
	scores := make(map[string]float64, len(model.Categories))

	for _, cat := range model.Categories {
		var contributions []float64

		for kw := range c.lexicon[cat] {
			best := 0.0
			exact := false
			isPhrase := strings.Contains(kw, " ")

			for _, ng := range ngrams {
				if ng == kw {
					exact = true
					best = 1.0
					break
				}
				s := math.Max(fuzzy.JaroWinkler(kw, ng), fuzzy.LevenshteinSimilarity(kw, ng))
				if s > best {
					best = s
				}
			}
			if !isPhrase {
				if _, ok := tokenSet[kw]; ok {
					exact = true
					best = 1.0
				}
			}

			if best >= c.cfg.SimCutoff {
				contribution := best
				if isPhrase {
					contribution *= c.cfg.PhraseWeight
				}
				if exact {
					contribution += c.cfg.ExactBonus
				}
				contributions = append(contributions, contribution)
			}
		}

		sort.Sort(sort.Reverse(sort.Float64Slice(contributions)))
		sum := 0.0
		for i, contribution := range contributions {
			if i >= c.cfg.TopK {
				break
			}
			sum += contribution
		}
		scores[cat] = sum + categoryPrior(cat)
	}
	return scores
}

// Learn extracts candidate keywords from a corrected description and adds
// them to the category's lexicon. A candidate is rejected when it is
// short or generic, too similar to another category's keywords, already
// close to any existing keyword, or too long. It returns the keywords
// that were admitted.
func (c *Classifier) Learn(description, category string) ([]string, error) {
	if !model.IsValidCategory(category) {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownCategory, category)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tokens := text.Tokenize(text.Normalize(description))
	corrTokens, corrNgrams := c.corrector.Correct(tokens)

	// Admission is order-dependent: an admitted keyword blocks later
	// candidates within LearnMinSimilarity of it. Candidates keep their
	// sequence order, tokens before phrases, so identical feedback always
	// admits the identical keyword set.
	seen := make(map[string]struct{}, len(corrTokens)+len(corrNgrams))
	candidates := make([]string, 0, len(corrTokens)+len(corrNgrams))
	for _, cand := range corrTokens {
		if _, dup := seen[cand]; !dup {
			seen[cand] = struct{}{}
			candidates = append(candidates, cand)
		}
	}
	for _, cand := range corrNgrams {
		if _, dup := seen[cand]; !dup {
			seen[cand] = struct{}{}
			candidates = append(candidates, cand)
		}
	}

	set := c.lexicon[category]
	if set == nil {
		set = make(map[string]struct{})
		c.lexicon[category] = set
	}

	var admitted []string
	for _, cand := range candidates {
		if len(cand) < 3 {
			continue
		}
		if _, generic := genericWords[cand]; generic {
			continue
		}
		if c.maxSimilarityToOtherCategories(cand, category) >= c.cfg.LearnCrossCategoryCeiling {
			continue
		}
		if c.maxSimilarityToAnyKeyword(cand) >= c.cfg.LearnMinSimilarity {
			continue
		}
		if len(cand) > c.cfg.LearnMaxKeywordLength {
			continue
		}
		if _, exists := set[cand]; exists {
			continue
		}
		set[cand] = struct{}{}
		admitted = append(admitted, cand)
	}

	if len(admitted) > 0 {
		c.corrector = c.buildCorrector()
		sort.Strings(admitted)
		slog.Debug("lexicon grew from feedback",
			"category", category,
			"keywords", admitted)
	}
	return admitted, nil
}

// AddKeywords inserts previously learned keywords, e.g. restored from
// storage at startup. Invalid categories are rejected; duplicates are
// ignored.
func (c *Classifier) AddKeywords(category string, keywords []string) error {
	if !model.IsValidCategory(category) {
		return fmt.Errorf("%w: %q", common.ErrUnknownCategory, category)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	set := c.lexicon[category]
	if set == nil {
		set = make(map[string]struct{})
		c.lexicon[category] = set
	}
	for _, kw := range keywords {
		set[strings.ToLower(strings.TrimSpace(kw))] = struct{}{}
	}
	c.corrector = c.buildCorrector()
	return nil
}

// Keywords returns the category's current lexicon entries, sorted.
func (c *Classifier) Keywords(category string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.lexicon[category]))
	for kw := range c.lexicon[category] {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

func (c *Classifier) maxSimilarityToOtherCategories(cand, category string) float64 {
	best := 0.0
	for _, cat := range model.Categories {
		if cat == category {
			continue
		}
		for kw := range c.lexicon[cat] {
			if jw := fuzzy.JaroWinkler(kw, cand); jw > best {
				best = jw
			}
		}
	}
	return best
}

func (c *Classifier) maxSimilarityToAnyKeyword(cand string) float64 {
	best := 0.0
	for _, cat := range model.Categories {
		for kw := range c.lexicon[cat] {
			if jw := fuzzy.JaroWinkler(kw, cand); jw > best {
				best = jw
			}
		}
	}
	return best
}

func containsKeyword(key string, tokenSet map[string]struct{}, ngrams []string) bool {
	if strings.Contains(key, " ") {
		for _, ng := range ngrams {
			if ng == key {
				return true
			}
		}
		return false
	}
	_, ok := tokenSet[key]
	return ok
}

func directNameResult(cat string) model.ClassificationResult {
	return model.ClassificationResult{
		Category:   cat,
		Confidence: 0.90,
		Scores:     map[string]float64{cat: 1.0},
	}
}

func secondBest(scores map[string]float64, bestCat string) float64 {
	second := math.Inf(-1)
	for cat, s := range scores {
		if cat == bestCat {
			continue
		}
		if s > second {
			second = s
		}
	}
	if math.IsInf(second, -1) {
		return 0
	}
	return second
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
