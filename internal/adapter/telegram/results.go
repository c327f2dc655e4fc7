package telegram

import (
	"fmt"
	"strings"

	"github.com/escalopa/tajweed-coach/internal/domain"
)

// formatSummary renders an analysis summary as a chat message: scores,
// word-by-word marks, the mistake breakdown, feedback, and the reward.
func (b *Bot) formatSummary(lang domain.Language, summary *domain.SessionSummary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<b>%s</b>\n", b.i18n.Get(lang, "result.title")))
	sb.WriteString(fmt.Sprintf("%s: %d%%\n", b.i18n.Get(lang, "result.accuracy"), summary.Metrics.Accuracy))
	sb.WriteString(fmt.Sprintf("%s: %d%%\n", b.i18n.Get(lang, "result.completeness"), summary.Metrics.Completeness))
	sb.WriteString(fmt.Sprintf("%s: %d%%\n", b.i18n.Get(lang, "result.fluency"), summary.Metrics.Fluency))
	sb.WriteString(fmt.Sprintf("%s: <b>%d%%</b>\n\n", b.i18n.Get(lang, "result.overall"), summary.Metrics.Overall))

	if len(summary.Mistakes) > 0 {
		sb.WriteString(b.i18n.Get(lang, "result.mistakes"))
		sb.WriteString("\n")
		for _, m := range summary.Mistakes {
			sb.WriteString(b.formatMistake(lang, m))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")

		for _, row := range summary.MistakeBreakdown {
			sb.WriteString(fmt.Sprintf("• %s: %d\n", b.i18n.GetCategoryLabel(lang, row.Category), row.Count))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(b.i18n.GetFeedback(lang, summary.FeedbackLevel))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("%s: +%d ✨", b.i18n.Get(lang, "result.reward"), summary.RewardPoints))

	return sb.String()
}

func (b *Bot) formatMistake(lang domain.Language, m domain.Mistake) string {
	switch m.Kind {
	case domain.MistakeMissing:
		return fmt.Sprintf("❌ %s", m.ExpectedWord)
	case domain.MistakeExtra:
		return fmt.Sprintf("➕ %s", m.SpokenWord)
	case domain.MistakeSubstitution:
		return fmt.Sprintf("🔄 %s → %s", m.ExpectedWord, m.SpokenWord)
	default:
		return m.ExpectedWord
	}
}

// formatHistory renders the user's recent attempts as a compact list.
func (b *Bot) formatHistory(lang domain.Language, summaries []domain.StoredSummary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<b>%s</b>\n\n", b.i18n.Get(lang, "records.title")))

	for _, stored := range summaries {
		surahNumber, ayahNumber, err := domain.ParseAyahID(stored.AyahID)
		label := stored.AyahID
		if err == nil {
			label = fmt.Sprintf("%s %d", b.i18n.GetSurahName(lang, surahNumber), ayahNumber)
		}

		sb.WriteString(fmt.Sprintf("%s — %d%% (%s)\n",
			label,
			stored.Summary.Metrics.Overall,
			stored.CreatedAt.Format("2006-01-02 15:04"),
		))
	}

	return sb.String()
}
