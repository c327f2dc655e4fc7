package align_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escalopa/tajweed-coach/internal/domain"
	"github.com/escalopa/tajweed-coach/internal/engine/align"
)

func TestAlignIdentity(t *testing.T) {
	t.Parallel()

	texts := []string{
		"قُلْ هُوَ اللَّهُ أَحَدٌ",
		"بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ",
		"الْحَمْدُ لِلَّهِ رَبِّ الْعَالَمِينَ",
	}

	for _, text := range texts {
		entries := align.Align(text, text)
		require.Len(t, entries, len(align.Tokenize(text)))
		for i, e := range entries {
			assert.Equal(t, domain.EntryMatch, e.Kind, "entry %d of %q", i, text)
			assert.InDelta(t, 1.0, e.Similarity, 1e-9)
			assert.Equal(t, e.Expected.Raw, e.Detected.Raw)
		}
	}
}

func TestAlignCoverageInvariant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected string
		detected string
	}{
		{name: "identical", expected: "قل هو الله أحد", detected: "قل هو الله أحد"},
		{name: "empty detected", expected: "بسم الله الرحمن الرحيم", detected: ""},
		{name: "empty expected", expected: "", detected: "بسم الله"},
		{name: "extra word", expected: "رب العالمين", detected: "رب العالمين زائد"},
		{name: "missing word", expected: "الحمد لله رب العالمين", detected: "الحمد رب العالمين"},
		{name: "garbled", expected: "قل هو الله أحد", detected: "كل هي زائد"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			entries := align.Align(tt.expected, tt.detected)

			var matches, missing, extra int
			for _, e := range entries {
				switch e.Kind {
				case domain.EntryMatch:
					matches++
				case domain.EntryMissing:
					missing++
				case domain.EntryExtra:
					extra++
				}
			}

			// The projections of the edit script must cover each token
			// stream exactly once.
			assert.Equal(t, len(align.Tokenize(tt.expected)), matches+missing)
			assert.Equal(t, len(align.Tokenize(tt.detected)), matches+extra)
		})
	}
}

func TestAlignProjectionOrder(t *testing.T) {
	t.Parallel()

	expected := "الحمد لله رب العالمين"
	detected := "الحمد رب العالمين زائد"

	entries := align.Align(expected, detected)

	var expSeq, detSeq []string
	for _, e := range entries {
		if e.Kind == domain.EntryMatch || e.Kind == domain.EntryMissing {
			expSeq = append(expSeq, e.Expected.Raw)
		}
		if e.Kind == domain.EntryMatch || e.Kind == domain.EntryExtra {
			detSeq = append(detSeq, e.Detected.Raw)
		}
	}

	assert.Equal(t, []string{"الحمد", "لله", "رب", "العالمين"}, expSeq)
	assert.Equal(t, []string{"الحمد", "رب", "العالمين", "زائد"}, detSeq)
}

func TestAlignEmptyDetected(t *testing.T) {
	t.Parallel()

	entries := align.Align("بسم الله الرحمن الرحيم", "")
	require.Len(t, entries, 4)
	for _, e := range entries {
		assert.Equal(t, domain.EntryMissing, e.Kind)
	}
}

func TestAlignNearWordPairsAsMatch(t *testing.T) {
	t.Parallel()

	// A one-letter slip should align as a degraded match, not as a
	// missing/extra pair.
	entries := align.Align("قال هو", "فال هو")
	require.Len(t, entries, 2)
	assert.Equal(t, domain.EntryMatch, entries[0].Kind)
	assert.Less(t, entries[0].Similarity, 1.0)
	assert.Equal(t, domain.EntryMatch, entries[1].Kind)
	assert.InDelta(t, 1.0, entries[1].Similarity, 1e-9)
}

func TestAlignUnrelatedWordPrefersDeleteInsert(t *testing.T) {
	t.Parallel()

	// When no detected word resembles the expected one, a substitution
	// costs nearly 1 on its own; match still wins ties, so a completely
	// unrelated single word pairs up as one low-similarity match rather
	// than a delete+insert pair costing 2.
	entries := align.Align("العالمين", "زد")
	require.Len(t, entries, 1)
	assert.Equal(t, domain.EntryMatch, entries[0].Kind)
}
