package engine_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escalopa/tajweed-coach/internal/domain"
	"github.com/escalopa/tajweed-coach/internal/engine"
)

func TestAnalyzeExactMatch(t *testing.T) {
	t.Parallel()

	a := engine.New()
	verse := "قُلْ هُوَ اللَّهُ أَحَدٌ"

	s := a.Analyze(verse, verse)

	assert.Equal(t, 100, s.Metrics.Accuracy)
	assert.Equal(t, 100, s.Metrics.Overall)
	assert.Empty(t, s.Mistakes)
	assert.Empty(t, s.MistakeBreakdown)
	assert.Equal(t, domain.FeedbackExcellent, s.FeedbackLevel)
	// 100% accuracy over 4 words at 4 points per word.
	assert.Equal(t, 16, s.RewardPoints)
}

func TestAnalyzeEmptyTranscription(t *testing.T) {
	t.Parallel()

	a := engine.New()

	s := a.Analyze("", "بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ")

	assert.Equal(t, 0, s.Metrics.Accuracy)
	require.Len(t, s.Mistakes, 4)
	for _, m := range s.Mistakes {
		assert.Equal(t, domain.MistakeMissing, m.Kind)
	}
	assert.Equal(t, domain.FeedbackNoSpeech, s.FeedbackLevel)
	assert.Equal(t, "No recitation was captured. Check your microphone and try again.", s.QualitativeFeedback)
	// Any attempt earns at least the reward floor.
	assert.Equal(t, 5, s.RewardPoints)
	assert.Equal(t, 19, s.LetterCount)
}

func TestAnalyzeHarakatOnlyMismatch(t *testing.T) {
	t.Parallel()

	a := engine.New()

	// A transcription with the diacritics stripped matches fully under the
	// default coarse comparison.
	s := a.Analyze("الحمد لله", "الْحَمْدُ لِلَّهِ")

	assert.Empty(t, s.Mistakes)
	assert.Equal(t, 100, s.Metrics.Accuracy)

	// The harakat-aware check is a distinct, opt-in mode.
	strict := engine.New(engine.WithStrictHarakat(true))
	s = strict.Analyze("الحمد لله", "الْحَمْدُ لِلَّهِ")

	require.NotEmpty(t, s.Mistakes)
	for _, m := range s.Mistakes {
		assert.True(t, m.Categories.Has(domain.CategoryHarakat))
	}
	// Harakat slips keep the coarse word identity, so accuracy holds.
	assert.Equal(t, 100, s.Metrics.Accuracy)
}

func TestAnalyzeExtraWord(t *testing.T) {
	t.Parallel()

	a := engine.New()

	s := a.Analyze("رب العالمين زائد", "رَبِّ الْعَالَمِينَ")

	require.Len(t, s.Mistakes, 1)
	assert.Equal(t, domain.MistakeExtra, s.Mistakes[0].Kind)
	assert.Equal(t, "زائد", s.Mistakes[0].SpokenWord)

	// Both core words were correct; the extra word only dents fluency.
	assert.Equal(t, 100, s.Metrics.Accuracy)
	assert.Equal(t, 96, s.Metrics.Fluency)

	require.Len(t, s.MistakeBreakdown, 1)
	assert.Equal(t, domain.CategoryExtraWord, s.MistakeBreakdown[0].Category)
	assert.Equal(t, 1, s.MistakeBreakdown[0].Count)
}

func TestAnalyzeSubstitution(t *testing.T) {
	t.Parallel()

	a := engine.New()

	s := a.Analyze("فال هو", "قال هو")

	require.Len(t, s.Mistakes, 1)
	m := s.Mistakes[0]
	assert.Equal(t, domain.MistakeSubstitution, m.Kind)
	assert.True(t, m.Categories.Has(domain.CategoryIncorrectWord))

	// 1 of 2 words correct.
	assert.Equal(t, 50, s.Metrics.Accuracy)
	assert.Less(t, s.Metrics.Rules.Articulation, 100)
}

func TestAnalyzeMistakeIndexesMonotonic(t *testing.T) {
	t.Parallel()

	a := engine.New()

	s := a.Analyze("بسم زائد الرحيم كلمة", "بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ")

	prev := -1
	for _, m := range s.Mistakes {
		assert.GreaterOrEqual(t, m.Index, prev)
		prev = m.Index
	}
}

func TestAnalyzeScoreBoundsFuzzish(t *testing.T) {
	t.Parallel()

	a := engine.New()

	cases := [][2]string{
		{"", ""},
		{"فقط كلام عشوائي تماما", "قُلْ هُوَ اللَّهُ أَحَدٌ"},
		{"قل", "قُلْ هُوَ اللَّهُ أَحَدٌ"},
		{"قل هو الله أحد الله الصمد لم يلد ولم يولد", "قُلْ هُوَ اللَّهُ أَحَدٌ"},
		{"!!! ؟؟؟", "بِسْمِ اللَّهِ"},
	}

	for _, c := range cases {
		s := a.Analyze(c[0], c[1])
		for name, v := range map[string]int{
			"accuracy":     s.Metrics.Accuracy,
			"completeness": s.Metrics.Completeness,
			"fluency":      s.Metrics.Fluency,
			"overall":      s.Metrics.Overall,
		} {
			assert.GreaterOrEqual(t, v, 0, "%s for %q", name, c[0])
			assert.LessOrEqual(t, v, 100, "%s for %q", name, c[0])
		}
		assert.GreaterOrEqual(t, s.RewardPoints, engine.DefaultRewardFloor)
	}
}

func TestAnalyzeConfigSurface(t *testing.T) {
	t.Parallel()

	// A permissive threshold turns the one-letter slip into a clean match.
	lax := engine.New(engine.WithMatchThreshold(0.5))
	s := lax.Analyze("فال هو", "قال هو")
	assert.Empty(t, s.Mistakes)

	// Heavier penalty weights push completeness down further per miss.
	harsh := engine.New(engine.WithPenaltyWeights(50, 5, 4))
	s = harsh.Analyze("الحمد لله رب", "الحمد لله رب العالمين")
	assert.Equal(t, 75, s.Metrics.Accuracy)
	assert.Equal(t, 25, s.Metrics.Completeness)

	generous := engine.New(engine.WithReward(20, 4))
	s = generous.Analyze("", "بسم الله")
	assert.Equal(t, 20, s.RewardPoints)
}

func TestSummarySerializesFlat(t *testing.T) {
	t.Parallel()

	a := engine.New()
	s := a.AnalyzeWithDuration("فال هو زائد", "قال هو", 3.5)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded domain.SessionSummary
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, s.Metrics, decoded.Metrics)
	assert.Equal(t, s.FeedbackLevel, decoded.FeedbackLevel)
	assert.Equal(t, len(s.Mistakes), len(decoded.Mistakes))
	for i := range s.Mistakes {
		assert.Equal(t, s.Mistakes[i].Categories.Slice(), decoded.Mistakes[i].Categories.Slice())
	}
	assert.InDelta(t, 3.5, decoded.DurationSeconds, 1e-9)
}
