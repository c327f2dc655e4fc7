// Package align implements word-level sequence alignment between an expected
// verse and a detected transcription.
//
// Alignment runs a Wagner-Fischer dynamic program at word granularity where
// the substitution cost between two words is graded by character-level edit
// distance instead of a fixed unit cost. Near-identical words therefore align
// as cheap matches while genuinely different words fall back to delete/insert
// steps.
package align

import (
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"

	"github.com/escalopa/tajweed-coach/internal/domain"
	"github.com/escalopa/tajweed-coach/internal/engine/arabic"
)

// Levenshtein returns the classic single-character edit distance between a
// and b.
func Levenshtein(a, b string) int {
	return matchr.Levenshtein(a, b)
}

// WordSimilarity grades how close two surface words are, in [0,1].
// Both words are coarse-normalized first, so harakat-only differences score
// a full 1.0.
func WordSimilarity(a, b string) float64 {
	return keySimilarity(
		arabic.Normalize(a, arabic.ModeCoarse),
		arabic.Normalize(b, arabic.ModeCoarse),
	)
}

// keySimilarity compares two already-normalized keys. Empty keys carry no
// comparable content: empty-vs-empty is 1, empty-vs-non-empty is 0.
func keySimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}

	return 1 - float64(Levenshtein(a, b))/float64(maxLen)
}

// Tokenize splits text on whitespace into tokens carrying both the surface
// form and the coarse comparison key.
func Tokenize(text string) []domain.Token {
	fields := strings.Fields(text)
	tokens := make([]domain.Token, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, domain.Token{
			Raw:        f,
			Normalized: arabic.Normalize(f, arabic.ModeCoarse),
		})
	}
	return tokens
}
