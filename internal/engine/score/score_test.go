package score_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/escalopa/tajweed-coach/internal/domain"
	"github.com/escalopa/tajweed-coach/internal/engine/score"
)

func mistake(kind domain.MistakeKind, categories ...domain.MistakeCategory) domain.Mistake {
	return domain.Mistake{Kind: kind, Categories: domain.NewCategorySet(categories...)}
}

func TestScorePerfect(t *testing.T) {
	t.Parallel()

	m := score.Score(nil, 4, score.DefaultWeights, score.DefaultRuleFloor)
	assert.Equal(t, 100, m.Accuracy)
	assert.Equal(t, 100, m.Completeness)
	assert.Equal(t, 100, m.Fluency)
	assert.Equal(t, 100, m.Overall)
	assert.Equal(t, domain.RuleScores{Articulation: 100, Elongation: 100, Nasalization: 100, Qalqalah: 100}, m.Rules)
}

func TestScoreFormulas(t *testing.T) {
	t.Parallel()

	mistakes := []domain.Mistake{
		mistake(domain.MistakeMissing, domain.CategoryMissedWord),
		mistake(domain.MistakeSubstitution, domain.CategoryIncorrectWord),
		mistake(domain.MistakeExtra, domain.CategoryExtraWord),
	}

	m := score.Score(mistakes, 10, score.DefaultWeights, score.DefaultRuleFloor)

	// 8 of 10 expected words correct.
	assert.Equal(t, 80, m.Accuracy)
	// accuracy - 10 per missing word.
	assert.Equal(t, 70, m.Completeness)
	// accuracy - 5 per substitution - 4 per extra.
	assert.Equal(t, 71, m.Fluency)
	// mean of the three, rounded.
	assert.Equal(t, 74, m.Overall)
}

func TestScoreHarakatOnlyDoesNotHitAccuracy(t *testing.T) {
	t.Parallel()

	// A harakat-only substitution keeps the coarse word identity.
	mistakes := []domain.Mistake{
		mistake(domain.MistakeSubstitution, domain.CategoryHarakat),
	}

	m := score.Score(mistakes, 4, score.DefaultWeights, score.DefaultRuleFloor)
	assert.Equal(t, 100, m.Accuracy)
}

func TestScoreRuleSubScores(t *testing.T) {
	t.Parallel()

	mistakes := []domain.Mistake{
		{
			Kind:       domain.MistakeSubstitution,
			Categories: domain.NewCategorySet(domain.CategoryIncorrectWord, domain.CategoryPronunciation),
			Cues:       []domain.RuleCue{domain.CueMakhraj, domain.CueTafkhim},
		},
		{
			Kind:       domain.MistakeMissing,
			Categories: domain.NewCategorySet(domain.CategoryMissedWord, domain.CategoryTajweed),
			Cues:       []domain.RuleCue{domain.CueMadd},
		},
	}

	m := score.Score(mistakes, 10, score.DefaultWeights, score.DefaultRuleFloor)

	// Two articulation cues over ten words.
	assert.Equal(t, 80, m.Rules.Articulation)
	assert.Equal(t, 90, m.Rules.Elongation)
	assert.Equal(t, 100, m.Rules.Nasalization)
	assert.Equal(t, 100, m.Rules.Qalqalah)
}

func TestScoreRuleFloor(t *testing.T) {
	t.Parallel()

	// Every word raises a madd cue; the sub-score still never drops below
	// the floor.
	var mistakes []domain.Mistake
	for i := 0; i < 3; i++ {
		mistakes = append(mistakes, domain.Mistake{
			Kind:       domain.MistakeMissing,
			Categories: domain.NewCategorySet(domain.CategoryMissedWord),
			Cues:       []domain.RuleCue{domain.CueMadd},
		})
	}

	m := score.Score(mistakes, 3, score.DefaultWeights, score.DefaultRuleFloor)
	assert.Equal(t, score.DefaultRuleFloor, m.Rules.Elongation)
}

func TestScoreClamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		mistakes      []domain.Mistake
		expectedCount int
	}{
		{name: "no mistakes zero words", mistakes: nil, expectedCount: 0},
		{name: "all words missing", mistakes: []domain.Mistake{
			mistake(domain.MistakeMissing, domain.CategoryMissedWord),
			mistake(domain.MistakeMissing, domain.CategoryMissedWord),
			mistake(domain.MistakeMissing, domain.CategoryMissedWord),
		}, expectedCount: 3},
		{name: "more extras than words", mistakes: []domain.Mistake{
			mistake(domain.MistakeExtra, domain.CategoryExtraWord),
			mistake(domain.MistakeExtra, domain.CategoryExtraWord),
			mistake(domain.MistakeExtra, domain.CategoryExtraWord),
			mistake(domain.MistakeExtra, domain.CategoryExtraWord),
		}, expectedCount: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := score.Score(tt.mistakes, tt.expectedCount, score.DefaultWeights, score.DefaultRuleFloor)

			for name, v := range map[string]int{
				"accuracy":     m.Accuracy,
				"completeness": m.Completeness,
				"fluency":      m.Fluency,
				"overall":      m.Overall,
				"articulation": m.Rules.Articulation,
				"elongation":   m.Rules.Elongation,
				"nasalization": m.Rules.Nasalization,
				"qalqalah":     m.Rules.Qalqalah,
			} {
				assert.GreaterOrEqual(t, v, 0, name)
				assert.LessOrEqual(t, v, 100, name)
			}
		})
	}
}

func TestScoreZeroExpectedCountGuard(t *testing.T) {
	t.Parallel()

	m := score.Score(nil, 0, score.DefaultWeights, score.DefaultRuleFloor)
	assert.Equal(t, 0, m.Accuracy)
	assert.Equal(t, 0, m.Overall)
}
