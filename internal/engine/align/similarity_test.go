package align_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/escalopa/tajweed-coach/internal/engine/align"
)

func TestLevenshtein(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"كتب", "كتب", 0},
		{"كتب", "ذهب", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, align.Levenshtein(tt.a, tt.b), "Levenshtein(%q, %q)", tt.a, tt.b)
		// Edit distance is symmetric.
		assert.Equal(t, align.Levenshtein(tt.a, tt.b), align.Levenshtein(tt.b, tt.a))
	}
}

func TestWordSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "قل", b: "قل", want: 1},
		{name: "harakat only difference", a: "الْحَمْدُ", b: "الحمد", want: 1},
		{name: "both empty", a: "", b: "", want: 1},
		{name: "one empty", a: "", b: "قل", want: 0},
		{name: "diacritics-only token vs word", a: "ًٌٍ", b: "قل", want: 0},
		{name: "diacritics-only vs punctuation-only", a: "ًٌٍ", b: "!؟", want: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, align.WordSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestWordSimilarityBounds(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"قال", "فال"},
		{"بسم", "الرحيم"},
		{"a", "xyz"},
		{"", "؟"},
		{"الْعَالَمِينَ", "العالمين"},
	}

	for _, p := range pairs {
		s := align.WordSimilarity(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0, "WordSimilarity(%q, %q)", p[0], p[1])
		assert.LessOrEqual(t, s, 1.0, "WordSimilarity(%q, %q)", p[0], p[1])
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tokens := align.Tokenize("  بِسْمِ اللَّهِ ")
	assert.Len(t, tokens, 2)
	assert.Equal(t, "بِسْمِ", tokens[0].Raw)
	assert.Equal(t, "بسم", tokens[0].Normalized)
	assert.Equal(t, "الله", tokens[1].Normalized)

	assert.Empty(t, align.Tokenize(""))
	assert.Empty(t, align.Tokenize("   \n\t"))
}
