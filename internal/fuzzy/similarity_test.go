package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaroWinkler(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "bescom", b: "bescom", want: 1.0},
		{name: "classic martha", a: "martha", b: "marhta", want: 0.9611},
		{name: "classic dwayne", a: "dwayne", b: "duane", want: 0.84},
		{name: "no common characters", a: "abc", b: "xyz", want: 0.0},
		{name: "empty against word", a: "", b: "word", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, JaroWinkler(tt.a, tt.b), 0.0001)
		})
	}
}

func TestJaroWinklerSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"swiggy", "swigy"},
		{"electricity", "electricty"},
		{"rent", "rant"},
	}
	for _, p := range pairs {
		assert.InDelta(t, JaroWinkler(p[0], p[1]), JaroWinkler(p[1], p[0]), 1e-12)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"kitten", "sitting", 3},
		{"bescom", "bescm", 1},
		{"", "abc", 3},
		{"abc", "", 3},
		{"same", "same", 0},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestLevenshteinSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, LevenshteinSimilarity("", ""), 1e-12)
	assert.InDelta(t, 1.0-1.0/6.0, LevenshteinSimilarity("bescom", "bescm"), 1e-12)
}
