package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCorrector() *Corrector {
	return NewCorrector(
		[]string{"bescom", "swiggy", "electricity", "grocery", "big bazaar"},
		[]string{"the", "bill", "paid", "upi"},
	)
}

func TestCorrectorSnap(t *testing.T) {
	c := newTestCorrector()

	tests := []struct {
		name    string
		input   string
		want    string
		snapped bool
	}{
		{name: "exact member snaps to itself", input: "bescom", want: "bescom", snapped: true},
		{name: "stop word never snaps", input: "bill", snapped: false},
		{name: "single edit within budget", input: "bescm", want: "bescom", snapped: true},
		{name: "too many edits", input: "bscmmm", snapped: false},
		{name: "phrase snaps", input: "big bazar", want: "big bazaar", snapped: true},
		{name: "unrelated word", input: "zzzzz", snapped: false},
		{name: "empty", input: "", snapped: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Snap(tt.input)
			require.Equal(t, tt.snapped, ok)
			if tt.snapped {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCorrectorCorrect(t *testing.T) {
	c := newTestCorrector()

	corrected, ngrams := c.Correct([]string{"bescm", "electricty"})

	assert.Equal(t, []string{"bescom", "electricity"}, corrected)
	// N-grams are built from the corrected tokens.
	assert.Contains(t, ngrams, "bescom")
	assert.Contains(t, ngrams, "electricity")
	assert.Contains(t, ngrams, "bescom electricity")
}

func TestCorrectorCorrectEmpty(t *testing.T) {
	c := newTestCorrector()

	corrected, ngrams := c.Correct(nil)
	assert.Empty(t, corrected)
	assert.Empty(t, ngrams)
}

func TestEditBudget(t *testing.T) {
	assert.Equal(t, 1, editBudget("food"))
	assert.Equal(t, 2, editBudget("biriyani"))
	assert.Equal(t, 3, editBudget("electricity"))
}
