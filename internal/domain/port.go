package domain

import (
	"context"
	"io"
)

// VerseProviderPort defines the interface for fetching canonical verse text
type VerseProviderPort interface {
	// AyahText returns the canonical Arabic text of an ayah (with harakat)
	AyahText(ctx context.Context, ayahID string) (string, error)
}

// TranscriberPort defines the interface for the speech-to-text collaborator.
// Implementations receive a WAV audio stream and return plain Arabic text.
type TranscriberPort interface {
	// Transcribe converts a recitation recording to text
	Transcribe(ctx context.Context, audio io.Reader) (string, error)
}

// SessionStorePort defines the interface for per-user session storage
type SessionStorePort interface {
	// SetState sets the current state for a user
	SetState(ctx context.Context, userID string, state State) error

	// GetState gets the current state for a user
	GetState(ctx context.Context, userID string) (State, error)

	// DeleteState deletes the state for a user
	DeleteState(ctx context.Context, userID string) error

	// SetData sets temporary data for a user's current session
	SetData(ctx context.Context, userID, key, value string) error

	// GetData gets temporary data for a user's current session
	GetData(ctx context.Context, userID, key string) (string, error)

	// DeleteData deletes temporary data for a user
	DeleteData(ctx context.Context, userID, key string) error

	// SaveSummary stores the latest analysis result for a user, replacing
	// any previous summary for the same attempt
	SaveSummary(ctx context.Context, userID string, stored StoredSummary) error

	// ListSummaries returns up to limit most recent summaries for a user
	ListSummaries(ctx context.Context, userID string, limit int) ([]StoredSummary, error)

	// VerseText returns a cached canonical verse text, or "" on miss
	VerseText(ctx context.Context, ayahID string) (string, error)

	// SetVerseText caches a canonical verse text
	SetVerseText(ctx context.Context, ayahID, text string) error
}

// I18nPort defines the interface for internationalization
type I18nPort interface {
	// Get retrieves a translated message
	Get(lang Language, key string, args ...interface{}) string

	// GetSurahName retrieves the localized name of a Surah
	GetSurahName(lang Language, surahNumber int) string

	// GetFeedback retrieves the localized feedback ladder message
	GetFeedback(lang Language, level FeedbackLevel) string

	// GetCategoryLabel retrieves the localized mistake category label
	GetCategoryLabel(lang Language, category MistakeCategory) string
}

// BotPort defines the interface for the bot adapter
type BotPort interface {
	// Start starts the bot
	Start(ctx context.Context) error

	// Stop stops the bot
	Stop() error
}

// State represents the FSM states
type State string

const (
	StateStart         State = "start"
	StateSelectSurah   State = "select_surah"
	StateEnterAyah     State = "enter_ayah"
	StateWaitRecording State = "wait_recording"
)

// SessionData keys
const (
	SessionKeySurah     = "surah"
	SessionKeyAyah      = "ayah"
	SessionKeyAyahInput = "ayah_input" // Accumulated digit input for ayah number
	SessionKeyLanguage  = "language"
)
