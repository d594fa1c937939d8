package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases and strips punctuation",
			input: "Paid RENT, March!!",
			want:  "paid rent march",
		},
		{
			name:  "keeps digits and ampersand",
			input: "Food & Drinks x2",
			want:  "food & drinks x2",
		},
		{
			name:  "collapses whitespace and trims",
			input: "  swiggy \t  order  ",
			want:  "swiggy order",
		},
		{
			name:  "rewrites elec bill to electricity",
			input: "paid elec bill online",
			want:  "paid electricity online",
		},
		{
			name:  "rewrites power bill to electricity",
			input: "power bill for march",
			want:  "electricity for march",
		},
		{
			name:  "rewrites fuel to petrol",
			input: "fuel refill",
			want:  "petrol refill",
		},
		{
			name:  "rewrites biryani spelling",
			input: "chicken biryani",
			want:  "chicken biriyani",
		},
		{
			name:  "blank input",
			input: "   ",
			want:  "",
		},
		{
			name:  "only punctuation",
			input: "!!??..",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"paid", "rent"}, Tokenize("paid rent"))
	assert.Empty(t, Tokenize(""))
}

func TestNgramWindows(t *testing.T) {
	tokens := []string{"big", "bazaar", "grocery", "run"}

	assert.Equal(t,
		[]string{"big bazaar", "bazaar grocery", "grocery run"},
		Bigrams(tokens))
	assert.Equal(t,
		[]string{"big bazaar grocery", "bazaar grocery run"},
		Trigrams(tokens))

	// No partial windows at sequence boundaries.
	assert.Nil(t, Bigrams([]string{"solo"}))
	assert.Nil(t, Trigrams([]string{"two", "tokens"}))
}
