package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escalopa/tajweed-coach/internal/domain"
	"github.com/escalopa/tajweed-coach/internal/engine/align"
	"github.com/escalopa/tajweed-coach/internal/engine/classify"
)

func classifyText(t *testing.T, expected, detected string, opts classify.Options) []domain.Mistake {
	t.Helper()
	return classify.Classify(align.Align(expected, detected), opts)
}

func TestClassifyCleanMatch(t *testing.T) {
	t.Parallel()

	mistakes := classifyText(t, "قُلْ هُوَ اللَّهُ أَحَدٌ", "قُلْ هُوَ اللَّهُ أَحَدٌ", classify.Options{})
	assert.Empty(t, mistakes)
}

func TestClassifyMissingWord(t *testing.T) {
	t.Parallel()

	mistakes := classifyText(t, "الحمد لله رب العالمين", "الحمد لله رب", classify.Options{})
	require.Len(t, mistakes, 1)

	m := mistakes[0]
	assert.Equal(t, domain.MistakeMissing, m.Kind)
	assert.Equal(t, 3, m.Index)
	assert.Equal(t, "العالمين", m.ExpectedWord)
	assert.True(t, m.Categories.Has(domain.CategoryMissedWord))
	// "العالمين" contains an elongation position, so the miss carries a
	// madd cue as well.
	assert.True(t, m.Categories.Has(domain.CategoryTajweed))
	assert.Contains(t, m.Cues, domain.CueMadd)
}

func TestClassifyMissingWordWithGhunnah(t *testing.T) {
	t.Parallel()

	mistakes := classifyText(t, "إِنَّ الله", "الله", classify.Options{})
	require.Len(t, mistakes, 1)

	m := mistakes[0]
	assert.Equal(t, domain.MistakeMissing, m.Kind)
	assert.Contains(t, m.Cues, domain.CueGhunnah)
	assert.True(t, m.Categories.Has(domain.CategoryTajweed))
}

func TestClassifyExtraWord(t *testing.T) {
	t.Parallel()

	mistakes := classifyText(t, "رب العالمين", "رب العالمين زائد", classify.Options{})
	require.Len(t, mistakes, 1)

	m := mistakes[0]
	assert.Equal(t, domain.MistakeExtra, m.Kind)
	assert.Equal(t, "زائد", m.SpokenWord)
	assert.Equal(t, []domain.MistakeCategory{domain.CategoryExtraWord}, m.Categories.Slice())
}

func TestClassifySubstitution(t *testing.T) {
	t.Parallel()

	// قال -> فال : similarity 2/3, below threshold. The first differing
	// letter pair is qaf (tongue back, heavy, qalqalah) vs fa (lips).
	mistakes := classifyText(t, "قال هو", "فال هو", classify.Options{})
	require.Len(t, mistakes, 1)

	m := mistakes[0]
	assert.Equal(t, domain.MistakeSubstitution, m.Kind)
	assert.Equal(t, 0, m.Index)
	assert.Equal(t, "قال", m.ExpectedWord)
	assert.Equal(t, "فال", m.SpokenWord)
	assert.True(t, m.Categories.Has(domain.CategoryIncorrectWord))
	assert.True(t, m.Categories.Has(domain.CategoryPronunciation))
	assert.True(t, m.Categories.Has(domain.CategoryTajweed))
	assert.Contains(t, m.Cues, domain.CueMakhraj)
	assert.Contains(t, m.Cues, domain.CueTafkhim)
	assert.Contains(t, m.Cues, domain.CueQalqalah)
	assert.NotEmpty(t, m.Note)
}

func TestClassifySameGroupSubstitution(t *testing.T) {
	t.Parallel()

	// ت and د share the tongue-tip group: no makhraj cue, plain
	// incorrect_word only.
	mistakes := classifyText(t, "تار هو", "دار هو", classify.Options{})
	require.Len(t, mistakes, 1)

	m := mistakes[0]
	assert.Equal(t, domain.MistakeSubstitution, m.Kind)
	assert.True(t, m.Categories.Has(domain.CategoryIncorrectWord))
	assert.False(t, m.Categories.Has(domain.CategoryPronunciation))
	assert.NotContains(t, m.Cues, domain.CueMakhraj)
}

func TestClassifyHarakatOnlyDefaultOff(t *testing.T) {
	t.Parallel()

	// Harakat-only differences are not mistakes under the default config.
	mistakes := classifyText(t, "الْحَمْدُ لِلَّهِ", "الحمد لله", classify.Options{})
	assert.Empty(t, mistakes)
}

func TestClassifyHarakatStrictMode(t *testing.T) {
	t.Parallel()

	mistakes := classifyText(t, "الْحَمْدُ لِلَّهِ", "الحمد لله", classify.Options{StrictHarakat: true})
	require.Len(t, mistakes, 2)

	for _, m := range mistakes {
		assert.Equal(t, domain.MistakeSubstitution, m.Kind)
		assert.True(t, m.Categories.Has(domain.CategoryHarakat))
		// Lower severity: no incorrect_word tag.
		assert.False(t, m.Categories.Has(domain.CategoryIncorrectWord))
	}
}

func TestClassifyMonotonicIndex(t *testing.T) {
	t.Parallel()

	mistakes := classifyText(t,
		"بسم الله الرحمن الرحيم",
		"بسم زائد الرحيم",
		classify.Options{})

	prev := -1
	for _, m := range mistakes {
		assert.GreaterOrEqual(t, m.Index, prev, "mistake indexes must be non-decreasing")
		prev = m.Index
	}
	assert.NotEmpty(t, mistakes)
}
