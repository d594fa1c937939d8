package classify

import (
	"sync"
	"testing"

	"github.com/ledgersense/ledgersense/internal/common"
	"github.com/ledgersense/ledgersense/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyHardRules(t *testing.T) {
	c := New(DefaultConfig())

	tests := []struct {
		name        string
		description string
		want        string
	}{
		{name: "biller name", description: "bescom", want: "Electricity"},
		{name: "biller in sentence", description: "paid bescom for march", want: "Electricity"},
		{name: "food delivery", description: "swiggy order", want: "Food & Drinks"},
		{name: "ride hailing", description: "uber to airport", want: "Travel"},
		{name: "rent keyword", description: "rent for flat", want: "Rent"},
		{name: "multi-word rule", description: "monthly water bill", want: "Water"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.description)
			assert.Equal(t, tt.want, result.Category)
			assert.InDelta(t, 0.98, result.Confidence, 1e-12)
		})
	}
}

func TestClassifyBlankInput(t *testing.T) {
	c := New(DefaultConfig())

	for _, input := range []string{"", "   ", "\t", "!!??"} {
		result := c.Classify(input)
		assert.Equal(t, model.DefaultCategory, result.Category)
		assert.Zero(t, result.Confidence)
		assert.Empty(t, result.Scores)
	}
}

func TestClassifyTypoTolerance(t *testing.T) {
	c := New(DefaultConfig())

	// One edit inside the length budget snaps to the hard-rule keyword.
	result := c.Classify("paid bescm")
	assert.Equal(t, "Electricity", result.Category)
	assert.InDelta(t, 0.98, result.Confidence, 1e-12)

	// Too many edits: no snap, no evidence, falls back to the default.
	result = c.Classify("bscmmm")
	assert.Equal(t, model.DefaultCategory, result.Category)
}

func TestClassifyDirectCategoryName(t *testing.T) {
	c := New(DefaultConfig())

	result := c.Classify("furniture shopping spree")
	assert.Equal(t, "Furniture", result.Category)
	assert.InDelta(t, 0.90, result.Confidence, 1e-12)
}

func TestClassifyFuzzyFallback(t *testing.T) {
	c := New(DefaultConfig())

	result := c.Classify("sofa and mattress")
	assert.Equal(t, "Furniture", result.Category)
	assert.Greater(t, result.Confidence, 0.55)
	assert.NotEmpty(t, result.Scores)
	assert.Greater(t, result.Scores["Furniture"], result.Scores["Movies"])
}

func TestClassifyIdempotent(t *testing.T) {
	c := New(DefaultConfig())

	first := c.Classify("sofa and mattress")
	second := c.Classify("sofa and mattress")

	assert.Equal(t, first.Category, second.Category)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.Scores, second.Scores)
}

func TestLearnAddsKeyword(t *testing.T) {
	c := New(DefaultConfig())

	before := c.Classify("xyzcorp")
	require.Equal(t, model.DefaultCategory, before.Category)

	admitted, err := c.Learn("xyzcorp", "Travel")
	require.NoError(t, err)
	assert.Contains(t, admitted, "xyzcorp")

	after := c.Classify("xyzcorp")
	assert.Equal(t, "Travel", after.Category)
	assert.GreaterOrEqual(t, after.Scores["Travel"], before.Scores["Travel"])
}

func TestLearnRejectsAmbiguousAndGeneric(t *testing.T) {
	c := New(DefaultConfig())

	admitted, err := c.Learn("paid swiggy", "Travel")
	require.NoError(t, err)

	// "swiggy" belongs to Food & Drinks; "paid" is generic filler.
	assert.NotContains(t, admitted, "swiggy")
	assert.NotContains(t, admitted, "paid")
	assert.NotContains(t, c.Keywords("Travel"), "swiggy")
}

func TestLearnRejectsExistingKeyword(t *testing.T) {
	c := New(DefaultConfig())

	admitted, err := c.Learn("petrol", "Travel")
	require.NoError(t, err)
	assert.Empty(t, admitted)
}

func TestLearnAdmitsDeterministically(t *testing.T) {
	// "brandxy" and "brandxyz" sit within LearnMinSimilarity of each
	// other, so whichever is admitted first blocks the other. Sequence
	// order decides: the first token always wins, on every run.
	want, err := New(DefaultConfig()).Learn("brandxy brandxyz", "Travel")
	require.NoError(t, err)
	require.Equal(t, []string{"brandxy", "brandxy brandxyz"}, want)

	for i := 0; i < 50; i++ {
		got, err := New(DefaultConfig()).Learn("brandxy brandxyz", "Travel")
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestLearnUnknownCategory(t *testing.T) {
	c := New(DefaultConfig())

	_, err := c.Learn("something", "Lottery")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnknownCategory)
}

func TestAddKeywords(t *testing.T) {
	c := New(DefaultConfig())

	require.NoError(t, c.AddKeywords("Travel", []string{"Redbus", " ixigo "}))
	kws := c.Keywords("Travel")
	assert.Contains(t, kws, "redbus")
	assert.Contains(t, kws, "ixigo")

	err := c.AddKeywords("Nope", []string{"x"})
	assert.ErrorIs(t, err, common.ErrUnknownCategory)
}

func TestConcurrentClassifyAndLearn(t *testing.T) {
	c := New(DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = c.Classify("swiggy dinner order")
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 10; j++ {
			_, _ = c.Learn("unseen merchant name", "Travel")
		}
	}()
	wg.Wait()
}
