package align

import "github.com/escalopa/tajweed-coach/internal/domain"

type step byte

const (
	stepMatch step = iota
	stepDelete
	stepInsert
)

// Align produces the word-level edit script between the expected verse text
// and the detected transcription.
//
// dp[i][j] is the minimum cost of aligning the first i expected tokens with
// the first j detected tokens. Substitution cost is 1-similarity of the two
// words; insertion and deletion cost 1. Ties prefer match over delete over
// insert, which avoids spurious missing/extra pairs when the transcription
// merely drifts.
//
// The projection invariant holds: match+missing entries reproduce the
// expected token sequence in order, match+extra entries the detected one.
func Align(expectedText, detectedText string) []domain.AlignmentEntry {
	expected := Tokenize(expectedText)
	detected := Tokenize(detectedText)

	m, n := len(expected), len(detected)

	dp := make([][]float64, m+1)
	ops := make([][]step, m+1)
	for i := range dp {
		dp[i] = make([]float64, n+1)
		ops[i] = make([]step, n+1)
	}
	for i := 1; i <= m; i++ {
		dp[i][0] = float64(i)
		ops[i][0] = stepDelete
	}
	for j := 1; j <= n; j++ {
		dp[0][j] = float64(j)
		ops[0][j] = stepInsert
	}

	sims := make([][]float64, m)
	for i := 0; i < m; i++ {
		sims[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			sims[i][j] = keySimilarity(expected[i].Normalized, detected[j].Normalized)
		}
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			match := dp[i-1][j-1] + (1 - sims[i-1][j-1])
			del := dp[i-1][j] + 1
			ins := dp[i][j-1] + 1

			switch {
			case match <= del && match <= ins:
				dp[i][j] = match
				ops[i][j] = stepMatch
			case del <= ins:
				dp[i][j] = del
				ops[i][j] = stepDelete
			default:
				dp[i][j] = ins
				ops[i][j] = stepInsert
			}
		}
	}

	entries := make([]domain.AlignmentEntry, 0, m+n)
	for i, j := m, n; i > 0 || j > 0; {
		switch ops[i][j] {
		case stepMatch:
			entries = append(entries, domain.AlignmentEntry{
				Kind:       domain.EntryMatch,
				Expected:   expected[i-1],
				Detected:   detected[j-1],
				Similarity: sims[i-1][j-1],
			})
			i--
			j--
		case stepDelete:
			entries = append(entries, domain.AlignmentEntry{
				Kind:     domain.EntryMissing,
				Expected: expected[i-1],
			})
			i--
		case stepInsert:
			entries = append(entries, domain.AlignmentEntry{
				Kind:     domain.EntryExtra,
				Detected: detected[j-1],
			})
			j--
		}
	}

	// Backtracking walked from the bottom-right corner; restore forward order.
	for l, r := 0, len(entries)-1; l < r; l, r = l+1, r-1 {
		entries[l], entries[r] = entries[r], entries[l]
	}

	return entries
}
