// Package text provides the normalization and tokenization pass that
// precedes classification. All functions are pure.
package text

import "strings"

// rewrite is a literal substring replacement applied after cleanup.
type rewrite struct {
	from string
	to   string
}

// rewrites are applied in declaration order. They are plain substring
// replacements, not regexes, so overlapping entries must keep this order
// for reproducible output.
var rewrites = []rewrite{
	{"elec bill", "electricity"},
	{"power bill", "electricity"},
	{"current bill", "electricity"},
	{"fuel", "petrol"},
	{"biryani", "biriyani"},
}

// Normalize lowercases the input, replaces every character outside
// [a-z0-9 &] with a space, collapses whitespace, trims, and applies the
// fixed phrase rewrites.
func Normalize(raw string) string {
	lowered := strings.ToLower(raw)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '&':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	cleaned := strings.Join(strings.Fields(b.String()), " ")
	for _, rw := range rewrites {
		cleaned = strings.ReplaceAll(cleaned, rw.from, rw.to)
	}
	return cleaned
}

// Tokenize splits normalized text on spaces, dropping empty tokens.
func Tokenize(s string) []string {
	return strings.Fields(s)
}

// Bigrams returns every contiguous pair of tokens joined by a space.
// Sequences shorter than two tokens produce no windows.
func Bigrams(tokens []string) []string {
	return windows(tokens, 2)
}

// Trigrams returns every contiguous triple of tokens joined by a space.
func Trigrams(tokens []string) []string {
	return windows(tokens, 3)
}

func windows(tokens []string, size int) []string {
	if len(tokens) < size {
		return nil
	}
	out := make([]string, 0, len(tokens)-size+1)
	for i := 0; i+size <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+size], " "))
	}
	return out
}
