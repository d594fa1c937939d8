package model

// ClassificationResult is the outcome of classifying one description.
// It is produced fresh per call and never mutated afterward.
type ClassificationResult struct {
	// Scores holds the per-category debug scores that fed the decision.
	// Empty for hard-rule and direct-name matches except the winner.
	Scores map[string]float64
	// Category is the chosen category, always a member of Categories.
	Category string
	// Confidence is in [0,1]. For fuzzy matches it is the blended
	// sigmoid of best score and margin, even when the category was
	// overridden to the default.
	Confidence float64
}
