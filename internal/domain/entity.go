package domain

import (
	"encoding/json"
	"time"
)

// Surah represents a chapter in the Quran
type Surah struct {
	Number int
	Name   string
	Ayahs  int
}

// Ayah represents a verse in the Quran
type Ayah struct {
	SurahNumber int
	AyahNumber  int
}

// AyahID returns the formatted ayah ID (XXXYYY format)
func (a Ayah) AyahID() string {
	return FormatAyahID(a.SurahNumber, a.AyahNumber)
}

// Token is a single word of a verse or transcription. Raw is the original
// surface form used for display; Normalized is the comparison key with
// diacritics and punctuation stripped.
type Token struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
}

// EntryKind discriminates the variants of an AlignmentEntry.
type EntryKind string

const (
	EntryMatch   EntryKind = "match"   // expected and detected words paired
	EntryMissing EntryKind = "missing" // expected word with no detected counterpart
	EntryExtra   EntryKind = "extra"   // detected word with no expected counterpart
)

// AlignmentEntry is one step of the word-level edit script produced by the
// aligner. Expected is set for match and missing entries, Detected for match
// and extra entries. Similarity is only meaningful for match entries.
type AlignmentEntry struct {
	Kind       EntryKind `json:"kind"`
	Expected   Token     `json:"expected,omitzero"`
	Detected   Token     `json:"detected,omitzero"`
	Similarity float64   `json:"similarity,omitempty"`
}

// MistakeKind classifies a recitation mistake by its alignment shape.
type MistakeKind string

const (
	MistakeMissing      MistakeKind = "missing"
	MistakeExtra        MistakeKind = "extra"
	MistakeSubstitution MistakeKind = "substitution"
)

// MistakeCategory tags the nature of a mistake. A single mistake may carry
// several categories (e.g. a substitution caused by a heavy-letter slip is
// both incorrect_word and pronunciation).
type MistakeCategory string

const (
	CategoryMissedWord    MistakeCategory = "missed_word"
	CategoryIncorrectWord MistakeCategory = "incorrect_word"
	CategoryExtraWord     MistakeCategory = "extra_word"
	CategoryHarakat       MistakeCategory = "harakat"
	CategoryPronunciation MistakeCategory = "pronunciation"
	CategoryTajweed       MistakeCategory = "tajweed"
)

// AllMistakeCategories is the fixed display order used for breakdowns.
var AllMistakeCategories = []MistakeCategory{
	CategoryMissedWord,
	CategoryIncorrectWord,
	CategoryExtraWord,
	CategoryHarakat,
	CategoryPronunciation,
	CategoryTajweed,
}

// CategorySet is a set of mistake categories. Construct with NewCategorySet.
type CategorySet map[MistakeCategory]struct{}

func NewCategorySet(categories ...MistakeCategory) CategorySet {
	s := make(CategorySet, len(categories))
	for _, c := range categories {
		s[c] = struct{}{}
	}
	return s
}

func (s CategorySet) Add(c MistakeCategory) {
	s[c] = struct{}{}
}

func (s CategorySet) Has(c MistakeCategory) bool {
	_, ok := s[c]
	return ok
}

// Slice returns the categories in the fixed display order.
func (s CategorySet) Slice() []MistakeCategory {
	out := make([]MistakeCategory, 0, len(s))
	for _, c := range AllMistakeCategories {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// MarshalJSON encodes the set as an ordered array.
func (s CategorySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON decodes an array of categories into the set.
func (s *CategorySet) UnmarshalJSON(data []byte) error {
	var categories []MistakeCategory
	if err := json.Unmarshal(data, &categories); err != nil {
		return err
	}
	*s = NewCategorySet(categories...)
	return nil
}

// RuleCue marks a textual tajweed-rule signal attached to a mistake. Cues
// feed the heuristic rule sub-scores; they are hints derived from the verse
// text, not acoustic verification.
type RuleCue string

const (
	CueMakhraj  RuleCue = "makhraj"  // articulation-point confusion
	CueTafkhim  RuleCue = "tafkhim"  // heavy letter involved
	CueQalqalah RuleCue = "qalqalah" // echo letter involved
	CueMadd     RuleCue = "madd"     // elongation position missed
	CueGhunnah  RuleCue = "ghunnah"  // nasalization position missed
)

// Mistake is a single recitation discrepancy. Index is the position in the
// expected token sequence so the UI can highlight the underlying verse word.
type Mistake struct {
	Index        int         `json:"index"`
	Kind         MistakeKind `json:"kind"`
	SpokenWord   string      `json:"spoken_word,omitempty"`
	ExpectedWord string      `json:"expected_word,omitempty"`
	Similarity   float64     `json:"similarity,omitempty"`
	Categories   CategorySet `json:"categories"`
	Cues         []RuleCue   `json:"cues,omitempty"`
	Note         string      `json:"note,omitempty"`
}

// RuleScores are heuristic tajweed sub-scores derived from textual cues, not
// from the audio signal. Each is clamped to [floor,100].
type RuleScores struct {
	Articulation int `json:"articulation"` // makhraj clarity
	Elongation   int `json:"elongation"`   // madd consistency
	Nasalization int `json:"nasalization"` // ghunnah balance
	Qalqalah     int `json:"qalqalah"`     // echo-letter crispness
}

// MetricScores are the bounded quality scores for one recitation attempt.
// All values are integers in [0,100].
type MetricScores struct {
	Accuracy     int        `json:"accuracy"`
	Completeness int        `json:"completeness"`
	Fluency      int        `json:"fluency"`
	Overall      int        `json:"overall"`
	Rules        RuleScores `json:"rules"`
}

// MistakeCount is one row of the per-category mistake breakdown.
type MistakeCount struct {
	Category MistakeCategory `json:"category"`
	Count    int             `json:"count"`
}

// FeedbackLevel keys the qualitative feedback ladder so adapters can
// localize the message.
type FeedbackLevel string

const (
	FeedbackExcellent  FeedbackLevel = "excellent"
	FeedbackStrong     FeedbackLevel = "strong"
	FeedbackGoodEffort FeedbackLevel = "good_effort"
	FeedbackRevisit    FeedbackLevel = "revisit"
	FeedbackNoSpeech   FeedbackLevel = "no_speech"
)

// SessionSummary is the externally consumed analysis result. It is created
// fresh per transcription event and never mutated; callers replace their
// stored summary wholesale on each new result.
type SessionSummary struct {
	Transcription       string         `json:"transcription"`
	ExpectedText        string         `json:"expected_text"`
	Mistakes            []Mistake      `json:"mistakes"`
	MistakeBreakdown    []MistakeCount `json:"mistake_breakdown"`
	Metrics             MetricScores   `json:"metrics"`
	FeedbackLevel       FeedbackLevel  `json:"feedback_level"`
	QualitativeFeedback string         `json:"qualitative_feedback"`
	RewardPoints        int            `json:"reward_points"`
	LetterCount         int            `json:"letter_count"`
	DurationSeconds     float64        `json:"duration_seconds,omitempty"`
}

// StoredSummary is a persisted analysis result for a user's history.
type StoredSummary struct {
	AyahID    string         `json:"ayah_id"`
	Summary   SessionSummary `json:"summary"`
	CreatedAt time.Time      `json:"created_at"`
}

// Language represents supported languages
type Language string

const (
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
	LangRussian Language = "ru"
)
