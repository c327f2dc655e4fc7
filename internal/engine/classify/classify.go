// Package classify turns an alignment edit script into typed mistake
// records with category tags and tajweed cues.
//
// All tajweed signals here are textual heuristics derived from the verse
// letters and harakat; they do not verify articulation against the audio
// signal.
package classify

import (
	"fmt"

	"github.com/escalopa/tajweed-coach/internal/domain"
	"github.com/escalopa/tajweed-coach/internal/engine/arabic"
)

// Options tune the classifier.
type Options struct {
	// MatchThreshold is the minimum similarity for a match entry to count
	// as correct. Matches below it become substitution mistakes.
	MatchThreshold float64

	// StrictHarakat enables the harakat-aware comparison: coarse-equal words
	// whose strict keys differ produce a lower-severity harakat mistake.
	// Off by default since transcription services often drop harakat.
	StrictHarakat bool
}

// DefaultMatchThreshold is the similarity below which an aligned word pair
// is treated as a substitution rather than a correct match.
const DefaultMatchThreshold = 0.75

// Classify walks the alignment script and emits mistakes in expected-word
// order. Match entries at or above the threshold produce no mistake.
func Classify(alignment []domain.AlignmentEntry, opts Options) []domain.Mistake {
	if opts.MatchThreshold <= 0 {
		opts.MatchThreshold = DefaultMatchThreshold
	}

	mistakes := make([]domain.Mistake, 0, len(alignment))
	expIdx := 0

	for _, entry := range alignment {
		switch entry.Kind {
		case domain.EntryMissing:
			mistakes = append(mistakes, missingMistake(expIdx, entry.Expected))
			expIdx++

		case domain.EntryExtra:
			mistakes = append(mistakes, domain.Mistake{
				Index:      expIdx,
				Kind:       domain.MistakeExtra,
				SpokenWord: entry.Detected.Raw,
				Categories: domain.NewCategorySet(domain.CategoryExtraWord),
			})

		case domain.EntryMatch:
			if m, ok := matchMistake(expIdx, entry, opts); ok {
				mistakes = append(mistakes, m)
			}
			expIdx++
		}
	}

	return mistakes
}

// missingMistake records a skipped expected word, with tajweed cues when the
// word carries a madd position or a shadda over a nasal letter.
func missingMistake(index int, expected domain.Token) domain.Mistake {
	m := domain.Mistake{
		Index:        index,
		Kind:         domain.MistakeMissing,
		ExpectedWord: expected.Raw,
		Categories:   domain.NewCategorySet(domain.CategoryMissedWord),
	}

	if arabic.RequiresElongation(expected.Raw) {
		m.Categories.Add(domain.CategoryTajweed)
		m.Cues = append(m.Cues, domain.CueMadd)
		m.Note = "skipped word contains an elongation (madd) position"
	}
	if arabic.HasGhunnah(expected.Raw) {
		m.Categories.Add(domain.CategoryTajweed)
		m.Cues = append(m.Cues, domain.CueGhunnah)
		if m.Note == "" {
			m.Note = "skipped word carries a nasalization (ghunnah) position"
		}
	}

	return m
}

// matchMistake decides whether an aligned pair is a mistake. Pairs below
// the threshold become substitutions; coarse-equal pairs with differing
// strict keys become harakat mistakes when strict checking is on.
func matchMistake(index int, entry domain.AlignmentEntry, opts Options) (domain.Mistake, bool) {
	if entry.Similarity >= opts.MatchThreshold {
		if !opts.StrictHarakat {
			return domain.Mistake{}, false
		}

		expStrict := arabic.Normalize(entry.Expected.Raw, arabic.ModeStrict)
		detStrict := arabic.Normalize(entry.Detected.Raw, arabic.ModeStrict)
		if entry.Expected.Normalized == entry.Detected.Normalized && expStrict != detStrict {
			return domain.Mistake{
				Index:        index,
				Kind:         domain.MistakeSubstitution,
				SpokenWord:   entry.Detected.Raw,
				ExpectedWord: entry.Expected.Raw,
				Similarity:   entry.Similarity,
				Categories:   domain.NewCategorySet(domain.CategoryHarakat),
				Note:         "same letters, different vowel marks",
			}, true
		}
		return domain.Mistake{}, false
	}

	m := domain.Mistake{
		Index:        index,
		Kind:         domain.MistakeSubstitution,
		SpokenWord:   entry.Detected.Raw,
		ExpectedWord: entry.Expected.Raw,
		Similarity:   entry.Similarity,
		Categories:   domain.NewCategorySet(domain.CategoryIncorrectWord),
	}
	annotateSubstitution(&m, entry.Expected.Normalized, entry.Detected.Normalized)
	return m, true
}

// annotateSubstitution inspects the first differing letter of a substituted
// pair and attaches pronunciation/tajweed cues.
func annotateSubstitution(m *domain.Mistake, expectedKey, detectedKey string) {
	expRune, detRune, ok := firstDiff(expectedKey, detectedKey)
	if !ok {
		return
	}

	expGroup, expOK := arabic.ArticulationGroupOf(expRune)
	detGroup, detOK := arabic.ArticulationGroupOf(detRune)
	if expOK && detOK && expGroup != detGroup {
		m.Categories.Add(domain.CategoryPronunciation)
		m.Categories.Add(domain.CategoryTajweed)
		m.Cues = append(m.Cues, domain.CueMakhraj)
		m.Note = fmt.Sprintf("articulation point differs: expected %s letter %q, heard %s letter %q",
			expGroup, expRune, detGroup, detRune)
	}

	if arabic.IsHeavy(expRune) {
		m.Categories.Add(domain.CategoryTajweed)
		m.Cues = append(m.Cues, domain.CueTafkhim)
		if m.Note == "" {
			m.Note = fmt.Sprintf("heavy letter %q needs tafkhim emphasis", expRune)
		}
	}

	if arabic.IsQalqalah(expRune) {
		m.Categories.Add(domain.CategoryTajweed)
		m.Cues = append(m.Cues, domain.CueQalqalah)
		if m.Note == "" {
			m.Note = fmt.Sprintf("echo letter %q needs a crisp qalqalah bounce", expRune)
		}
	}
}

// firstDiff returns the letters at the first position where the two keys
// diverge. When one key is a prefix of the other, the longer key's next
// letter is reported on both sides.
func firstDiff(a, b string) (ra, rb rune, ok bool) {
	ar, br := []rune(a), []rune(b)
	for i := 0; i < len(ar) && i < len(br); i++ {
		if ar[i] != br[i] {
			return ar[i], br[i], true
		}
	}
	switch {
	case len(ar) > len(br):
		r := ar[len(br)]
		return r, r, true
	case len(br) > len(ar):
		r := br[len(ar)]
		return r, r, true
	}
	return 0, 0, false
}
