package application

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/escalopa/tajweed-coach/internal/domain"
	"github.com/escalopa/tajweed-coach/internal/engine"
)

// RecitationService handles the business logic for recitation practice:
// the per-user FSM flow and the analysis orchestration.
type RecitationService struct {
	verses   domain.VerseProviderPort
	stt      domain.TranscriberPort
	store    domain.SessionStorePort
	analyzer *engine.Analyzer
}

func NewRecitationService(
	verses domain.VerseProviderPort,
	stt domain.TranscriberPort,
	store domain.SessionStorePort,
	analyzer *engine.Analyzer,
) *RecitationService {
	return &RecitationService{
		verses:   verses,
		stt:      stt,
		store:    store,
		analyzer: analyzer,
	}
}

// HandleStart handles the /start command
func (s *RecitationService) HandleStart(ctx context.Context, userID string, lang domain.Language) error {
	if err := s.store.SetState(ctx, userID, domain.StateSelectSurah); err != nil {
		return fmt.Errorf("set state: %w", err)
	}

	if err := s.store.SetData(ctx, userID, domain.SessionKeyLanguage, string(lang)); err != nil {
		return fmt.Errorf("set language: %w", err)
	}

	return nil
}

// GetCurrentState returns the current state for a user
func (s *RecitationService) GetCurrentState(ctx context.Context, userID string) (domain.State, error) {
	return s.store.GetState(ctx, userID)
}

// HandleSurahSelection handles when a user selects a Surah
func (s *RecitationService) HandleSurahSelection(ctx context.Context, userID string, surahNumber int) error {
	surahs := domain.GetAllSurahs()
	if surahNumber < 1 || surahNumber > len(surahs) {
		return fmt.Errorf("invalid surah number: %d", surahNumber)
	}

	if err := s.store.SetData(ctx, userID, domain.SessionKeySurah, strconv.Itoa(surahNumber)); err != nil {
		return fmt.Errorf("set surah: %w", err)
	}

	if err := s.store.SetState(ctx, userID, domain.StateEnterAyah); err != nil {
		return fmt.Errorf("set state: %w", err)
	}

	return nil
}

// HandleAyahInput handles when a user enters an Ayah number
func (s *RecitationService) HandleAyahInput(ctx context.Context, userID, input string) error {
	ayahNumber, err := strconv.Atoi(input)
	if err != nil {
		return fmt.Errorf("invalid ayah number: %s", input)
	}

	surahStr, err := s.store.GetData(ctx, userID, domain.SessionKeySurah)
	if err != nil {
		return fmt.Errorf("get surah: %w", err)
	}

	surahNumber, err := strconv.Atoi(surahStr)
	if err != nil {
		return fmt.Errorf("parse surah: %w", err)
	}

	surahs := domain.GetAllSurahs()
	if surahNumber < 1 || surahNumber > len(surahs) {
		return fmt.Errorf("invalid surah: %d", surahNumber)
	}

	surah := surahs[surahNumber-1]
	if ayahNumber < 1 || ayahNumber > surah.Ayahs {
		return fmt.Errorf("invalid ayah number: %d (surah %d has %d ayahs)", ayahNumber, surahNumber, surah.Ayahs)
	}

	if err := s.store.SetData(ctx, userID, domain.SessionKeyAyah, strconv.Itoa(ayahNumber)); err != nil {
		return fmt.Errorf("set ayah: %w", err)
	}

	if err := s.store.SetState(ctx, userID, domain.StateWaitRecording); err != nil {
		return fmt.Errorf("set state: %w", err)
	}

	return nil
}

// ExpectedAyahID returns the ayah the user is currently practicing.
func (s *RecitationService) ExpectedAyahID(ctx context.Context, userID string) (string, error) {
	surahStr, err := s.store.GetData(ctx, userID, domain.SessionKeySurah)
	if err != nil {
		return "", fmt.Errorf("get surah: %w", err)
	}

	ayahStr, err := s.store.GetData(ctx, userID, domain.SessionKeyAyah)
	if err != nil {
		return "", fmt.Errorf("get ayah: %w", err)
	}

	surahNumber, err := strconv.Atoi(surahStr)
	if err != nil {
		return "", fmt.Errorf("parse surah: %w", err)
	}
	ayahNumber, err := strconv.Atoi(ayahStr)
	if err != nil {
		return "", fmt.Errorf("parse ayah: %w", err)
	}

	return domain.FormatAyahID(surahNumber, ayahNumber), nil
}

// VerseText returns the canonical text of an ayah, consulting the session
// store cache before the verse provider.
func (s *RecitationService) VerseText(ctx context.Context, ayahID string) (string, error) {
	if cached, err := s.store.VerseText(ctx, ayahID); err == nil && cached != "" {
		return cached, nil
	}

	text, err := s.verses.AyahText(ctx, ayahID)
	if err != nil {
		return "", fmt.Errorf("fetch verse: %w", err)
	}

	// Cache failures are not fatal; the provider remains authoritative.
	_ = s.store.SetVerseText(ctx, ayahID, text)

	return text, nil
}

// HandleRecording transcribes a recitation recording, analyzes it against
// the user's current ayah, stores the summary, and resets the flow for the
// next attempt.
func (s *RecitationService) HandleRecording(ctx context.Context, userID string, audio io.Reader, durationSeconds float64) (*domain.SessionSummary, error) {
	ayahID, err := s.ExpectedAyahID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary, err := s.AnalyzeRecording(ctx, ayahID, audio, durationSeconds)
	if err != nil {
		return nil, err
	}

	stored := domain.StoredSummary{
		AyahID:    ayahID,
		Summary:   *summary,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveSummary(ctx, userID, stored); err != nil {
		return nil, fmt.Errorf("save summary: %w", err)
	}

	if err := s.store.SetState(ctx, userID, domain.StateSelectSurah); err != nil {
		return nil, fmt.Errorf("reset state: %w", err)
	}

	return summary, nil
}

// AnalyzeRecording runs the transcribe-then-analyze pipeline for one audio
// recording without touching user session state.
func (s *RecitationService) AnalyzeRecording(ctx context.Context, ayahID string, audio io.Reader, durationSeconds float64) (*domain.SessionSummary, error) {
	expectedText, err := s.VerseText(ctx, ayahID)
	if err != nil {
		return nil, err
	}

	transcription, err := s.stt.Transcribe(ctx, audio)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	summary := s.analyzer.AnalyzeWithDuration(transcription, expectedText, durationSeconds)
	return &summary, nil
}

// AnalyzeText scores an already-transcribed recitation against an expected
// text. This is the entry point for live-feedback callers that own their
// transcription loop.
func (s *RecitationService) AnalyzeText(transcription, expectedText string) domain.SessionSummary {
	return s.analyzer.Analyze(transcription, expectedText)
}

// GetUserLanguage retrieves the user's preferred language
func (s *RecitationService) GetUserLanguage(ctx context.Context, userID string) domain.Language {
	langStr, err := s.store.GetData(ctx, userID, domain.SessionKeyLanguage)
	if err != nil || langStr == "" {
		return domain.LangEnglish // default
	}
	return domain.Language(langStr)
}

// GetSelectedSurah returns the currently selected surah for a user
func (s *RecitationService) GetSelectedSurah(ctx context.Context, userID string) (int, error) {
	surahStr, err := s.store.GetData(ctx, userID, domain.SessionKeySurah)
	if err != nil {
		return 0, fmt.Errorf("get surah: %w", err)
	}

	return strconv.Atoi(surahStr)
}

// GetAllSurahs returns all surahs
func (s *RecitationService) GetAllSurahs() []domain.Surah {
	return domain.GetAllSurahs()
}

// GetAyahInput gets the accumulated ayah input for a user
func (s *RecitationService) GetAyahInput(ctx context.Context, userID string) string {
	input, err := s.store.GetData(ctx, userID, domain.SessionKeyAyahInput)
	if err != nil {
		return ""
	}
	return input
}

// SetAyahInput sets the accumulated ayah input for a user
func (s *RecitationService) SetAyahInput(ctx context.Context, userID, input string) error {
	return s.store.SetData(ctx, userID, domain.SessionKeyAyahInput, input)
}

// ClearAyahInput clears the accumulated ayah input for a user
func (s *RecitationService) ClearAyahInput(ctx context.Context, userID string) error {
	return s.store.DeleteData(ctx, userID, domain.SessionKeyAyahInput)
}

// ListSummaries retrieves recent analysis summaries for a user
func (s *RecitationService) ListSummaries(ctx context.Context, userID string, limit int) ([]domain.StoredSummary, error) {
	return s.store.ListSummaries(ctx, userID, limit)
}
