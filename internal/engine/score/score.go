// Package score aggregates classified mistakes into bounded quality metrics.
package score

import (
	"math"

	"github.com/escalopa/tajweed-coach/internal/domain"
)

// Weights are the per-mistake-kind score penalties.
type Weights struct {
	Missing      int // completeness penalty per missing word
	Substitution int // fluency penalty per substituted word
	Extra        int // fluency penalty per extra word
}

// DefaultWeights reflect that a skipped word hurts more than a substituted
// one, which hurts more than an inserted one.
var DefaultWeights = Weights{Missing: 10, Substitution: 5, Extra: 4}

// DefaultRuleFloor is the minimum value of any tajweed rule sub-score.
// Textual heuristics cannot justify scoring articulation below a baseline
// with confidence, so rule scores never drop under it.
const DefaultRuleFloor = 45

// Score derives the metric set from a mistake list. expectedTokenCount is
// the number of words in the reference verse; zero is treated as a
// degenerate one-word verse so no metric ever divides by zero.
func Score(mistakes []domain.Mistake, expectedTokenCount int, w Weights, ruleFloor int) domain.MetricScores {
	if w == (Weights{}) {
		w = DefaultWeights
	}
	if ruleFloor <= 0 {
		ruleFloor = DefaultRuleFloor
	}

	totalWords := expectedTokenCount
	if totalWords == 0 {
		totalWords = 1
	}

	var missing, substitutions, extras int
	cues := map[domain.RuleCue]int{}
	for _, m := range mistakes {
		switch m.Kind {
		case domain.MistakeMissing:
			missing++
		case domain.MistakeSubstitution:
			// Harakat-only slips keep the coarse word identity; they feed
			// the rule scores but do not count against word accuracy.
			if m.Categories.Has(domain.CategoryIncorrectWord) {
				substitutions++
			}
		case domain.MistakeExtra:
			extras++
		}
		for _, c := range m.Cues {
			cues[c]++
		}
	}

	correct := expectedTokenCount - missing - substitutions
	if correct < 0 {
		correct = 0
	}

	accuracy := clamp(int(math.Round(100 * float64(correct) / float64(totalWords))))
	completeness := clamp(accuracy - w.Missing*missing)
	fluency := clamp(accuracy - w.Substitution*substitutions - w.Extra*extras)
	overall := clamp(int(math.Round(float64(accuracy+completeness+fluency) / 3)))

	return domain.MetricScores{
		Accuracy:     accuracy,
		Completeness: completeness,
		Fluency:      fluency,
		Overall:      overall,
		Rules: domain.RuleScores{
			Articulation: ruleScore(cues[domain.CueMakhraj]+cues[domain.CueTafkhim], totalWords, ruleFloor),
			Elongation:   ruleScore(cues[domain.CueMadd], totalWords, ruleFloor),
			Nasalization: ruleScore(cues[domain.CueGhunnah], totalWords, ruleFloor),
			Qalqalah:     ruleScore(cues[domain.CueQalqalah], totalWords, ruleFloor),
		},
	}
}

// ruleScore starts at 100 and drops proportionally to how many words raised
// the cue, never below the floor.
func ruleScore(issues, totalWords, floor int) int {
	s := 100 - int(math.Round(100*float64(issues)/float64(totalWords)))
	if s < floor {
		return floor
	}
	if s > 100 {
		return 100
	}
	return s
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
