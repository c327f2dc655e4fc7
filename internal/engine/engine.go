// Package engine is the recitation analysis core: it aligns a noisy speech
// transcription against the canonical verse text, classifies every
// discrepancy, and derives bounded quality scores plus a reward quantity.
//
// The pipeline is pure and synchronous. Every call reads only its arguments
// and allocates local data, so an Analyzer is safe for concurrent use by any
// number of goroutines. Malformed or empty input never produces an error;
// it degrades to a valid summary with zero scores instead, since the engine
// sits inside a live feedback loop where an exception would interrupt the
// session.
package engine

import (
	"math"
	"strings"

	"github.com/escalopa/tajweed-coach/internal/domain"
	"github.com/escalopa/tajweed-coach/internal/engine/align"
	"github.com/escalopa/tajweed-coach/internal/engine/arabic"
	"github.com/escalopa/tajweed-coach/internal/engine/classify"
	"github.com/escalopa/tajweed-coach/internal/engine/score"
)

// Reward formula defaults: any attempt earns at least the floor, a perfect
// long verse earns factor points per word.
const (
	DefaultRewardFloor         = 5
	DefaultRewardPerWordFactor = 4
)

// Analyzer runs the alignment and scoring pipeline. Construct with New;
// the zero value is not usable.
type Analyzer struct {
	matchThreshold      float64
	strictHarakat       bool
	weights             score.Weights
	ruleFloor           int
	rewardFloor         int
	rewardPerWordFactor int
}

// Option is a functional option for configuring an [Analyzer].
type Option func(*Analyzer)

// WithMatchThreshold sets the minimum word similarity counted as correct.
// Default: 0.75.
func WithMatchThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		a.matchThreshold = threshold
	}
}

// WithStrictHarakat enables harakat-aware comparison: words matching on
// letters but differing in vowel marks produce a lower-severity harakat
// mistake. Off by default.
func WithStrictHarakat(enabled bool) Option {
	return func(a *Analyzer) {
		a.strictHarakat = enabled
	}
}

// WithPenaltyWeights sets the per-mistake-kind score penalties.
// Defaults: 10 missing, 5 substitution, 4 extra.
func WithPenaltyWeights(missing, substitution, extra int) Option {
	return func(a *Analyzer) {
		a.weights = score.Weights{Missing: missing, Substitution: substitution, Extra: extra}
	}
}

// WithRuleScoreFloor sets the minimum tajweed rule sub-score. Default: 45.
func WithRuleScoreFloor(floor int) Option {
	return func(a *Analyzer) {
		a.ruleFloor = floor
	}
}

// WithReward sets the reward formula constants. Defaults: floor 5,
// 4 points per word.
func WithReward(floor, perWordFactor int) Option {
	return func(a *Analyzer) {
		a.rewardFloor = floor
		a.rewardPerWordFactor = perWordFactor
	}
}

// New returns an Analyzer with all defaults applied, so zero-config use is
// valid.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		matchThreshold:      classify.DefaultMatchThreshold,
		weights:             score.DefaultWeights,
		ruleFloor:           score.DefaultRuleFloor,
		rewardFloor:         DefaultRewardFloor,
		rewardPerWordFactor: DefaultRewardPerWordFactor,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Analyze runs the full pipeline for one transcription event and returns a
// fresh summary. Callers replace their stored summary wholesale on each
// call; the engine keeps no cross-call state.
func (a *Analyzer) Analyze(transcription, expectedText string) domain.SessionSummary {
	return a.AnalyzeWithDuration(transcription, expectedText, 0)
}

// AnalyzeWithDuration is Analyze with the recording duration attached to
// the summary.
func (a *Analyzer) AnalyzeWithDuration(transcription, expectedText string, durationSeconds float64) domain.SessionSummary {
	alignment := align.Align(expectedText, transcription)
	mistakes := classify.Classify(alignment, classify.Options{
		MatchThreshold: a.matchThreshold,
		StrictHarakat:  a.strictHarakat,
	})

	expectedTokens := align.Tokenize(expectedText)
	metrics := score.Score(mistakes, len(expectedTokens), a.weights, a.ruleFloor)

	level := a.feedbackLevel(transcription, metrics.Overall)

	return domain.SessionSummary{
		Transcription:       transcription,
		ExpectedText:        expectedText,
		Mistakes:            mistakes,
		MistakeBreakdown:    breakdown(mistakes),
		Metrics:             metrics,
		FeedbackLevel:       level,
		QualitativeFeedback: feedbackMessages[level],
		RewardPoints:        a.reward(metrics.Accuracy, len(expectedTokens)),
		LetterCount:         arabic.CountLetters(expectedText),
		DurationSeconds:     durationSeconds,
	}
}

// reward is a deterministic function of accuracy and verse length, floored
// so any attempt yields something.
func (a *Analyzer) reward(accuracy, expectedTokenCount int) int {
	points := int(math.Round(float64(accuracy) / 100 * float64(expectedTokenCount) * float64(a.rewardPerWordFactor)))
	if points < a.rewardFloor {
		return a.rewardFloor
	}
	return points
}

func (a *Analyzer) feedbackLevel(transcription string, overall int) domain.FeedbackLevel {
	if strings.TrimSpace(transcription) == "" {
		return domain.FeedbackNoSpeech
	}
	switch {
	case overall >= 90:
		return domain.FeedbackExcellent
	case overall >= 75:
		return domain.FeedbackStrong
	case overall >= 60:
		return domain.FeedbackGoodEffort
	default:
		return domain.FeedbackRevisit
	}
}

var feedbackMessages = map[domain.FeedbackLevel]string{
	domain.FeedbackExcellent:  "Excellent recitation, masha'Allah! Keep it up.",
	domain.FeedbackStrong:     "Strong recitation with only minor slips. Review the marked words.",
	domain.FeedbackGoodEffort: "Good effort. Practice the highlighted words and try again.",
	domain.FeedbackRevisit:    "Revisit this verse slowly, word by word, before the next attempt.",
	domain.FeedbackNoSpeech:   "No recitation was captured. Check your microphone and try again.",
}

// breakdown groups mistakes by category in the fixed display order,
// omitting zero-count categories.
func breakdown(mistakes []domain.Mistake) []domain.MistakeCount {
	counts := make(map[domain.MistakeCategory]int)
	for _, m := range mistakes {
		for _, c := range m.Categories.Slice() {
			counts[c]++
		}
	}

	out := make([]domain.MistakeCount, 0, len(counts))
	for _, c := range domain.AllMistakeCategories {
		if counts[c] > 0 {
			out = append(out, domain.MistakeCount{Category: c, Count: counts[c]})
		}
	}
	return out
}
