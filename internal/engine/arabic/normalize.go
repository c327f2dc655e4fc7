// Package arabic provides the text normalization and letter classification
// primitives used by the recitation analysis engine.
//
// Normalization produces comparison keys at two granularities: coarse keys
// drop all harakat so that words differing only in vowel marks compare equal,
// strict keys keep harakat so that vowel-mark slips remain detectable.
package arabic

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Mode selects the normalization granularity.
type Mode int

const (
	// ModeCoarse strips harakat and every non letter/mark/number rune.
	// This is the key used for word identity and edit distance.
	ModeCoarse Mode = iota

	// ModeStrict keeps harakat but still removes punctuation and invisible
	// formatting noise. Comparing strict keys of coarse-equal words detects
	// vowel-mark-only differences.
	ModeStrict
)

const (
	tatweel = '\u0640'
	zwsp    = '\u200b'
	zwnj    = '\u200c'
	zwj     = '\u200d'
	bom     = '\ufeff'
)

// Normalize produces the comparison key for a single word. Empty input
// yields empty output; a word consisting entirely of diacritics or
// punctuation normalizes to the empty string, which callers must treat as
// "no comparable content".
func Normalize(word string, mode Mode) string {
	if word == "" {
		return ""
	}

	word = norm.NFC.String(word)

	var b strings.Builder
	b.Grow(len(word))

	for _, r := range word {
		switch r {
		case tatweel, zwsp, zwnj, zwj, bom:
			continue
		}

		if mode == ModeCoarse && IsDiacritic(r) {
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsMark(r) && !unicode.IsNumber(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// IsDiacritic reports whether r is an Arabic combining mark: harakat,
// tanwin, shadda, sukun, maddah, superscript alef, or a Quranic annotation
// sign.
func IsDiacritic(r rune) bool {
	switch {
	case r >= 0x064b && r <= 0x065f: // harakat, tanwin, shadda, sukun, maddah
		return true
	case r == 0x0670: // superscript alef (dagger alif)
		return true
	case r >= 0x0610 && r <= 0x061a: // honorifics and Quranic signs
		return true
	case r >= 0x06d6 && r <= 0x06dc: // small high ligatures
		return true
	case r >= 0x06df && r <= 0x06e8: // small high/low marks
		return true
	case r >= 0x06ea && r <= 0x06ed: // empty centre marks
		return true
	}
	return false
}

// CountLetters returns the number of Arabic letters in text, ignoring
// harakat, punctuation, and whitespace.
func CountLetters(text string) int {
	n := 0
	for _, r := range text {
		if unicode.Is(unicode.Arabic, r) && unicode.IsLetter(r) && r != tatweel {
			n++
		}
	}
	return n
}
