package core

import (
	"time"
)

// RawEmail is a single email's text together with its position in the
// thread blob it was split from.
type RawEmail struct {
	Text  string
	Index int
}

// Headers holds the From/To/Subject values found in the first lines of an
// email. A nil field means the header was not present.
type Headers struct {
	From    *string `json:"from_email"`
	To      *string `json:"to_email"`
	Subject *string `json:"subject"`
}

// TimeSource describes the textual basis a time candidate was extracted from.
type TimeSource string

const (
	SourceExplicitDate TimeSource = "explicit_date"
	SourceWeekday      TimeSource = "weekday"
	SourceConfirmation TimeSource = "confirmation"
)

// TimeCandidate is one resolved timestamp extracted from a time expression.
type TimeCandidate struct {
	At     time.Time  `json:"at"`
	Source TimeSource `json:"source"`
	Text   string     `json:"text"`
}

// TimeExtraction is the full time-related result for a single email.
// AlternativeTimesSuggested is true iff ProposedTimes is non-empty.
type TimeExtraction struct {
	OriginalTime              *TimeCandidate  `json:"original_time"`
	ProposedTimes             []TimeCandidate `json:"proposed_times"`
	Uncertainty               bool            `json:"uncertainty"`
	AlternativeTimesSuggested bool            `json:"alternative_times_suggested"`
}

// DelegateInfo describes a detected delegation target. Email is never equal
// to the sender or recipient header of the same message.
type DelegateInfo struct {
	Name       *string `json:"delegate_name"`
	Email      *string `json:"delegate_email"`
	Confidence float64 `json:"confidence"`
}

// Classification is the label/confidence outcome for one email. Scores keeps
// only labels above the configured threshold; PrimaryType is the
// highest-confidence label or "unknown" when the classifier returned nothing.
type Classification struct {
	PrimaryType string
	Scores      map[string]float64
}

// UnknownReplyType is the fallback primary label for an empty classification.
const UnknownReplyType = "unknown"

// ExtractionRecord is the per-email output of the extraction pipeline.
type ExtractionRecord struct {
	FromEmail       *string            `json:"from_email"`
	ToEmail         *string            `json:"to_email"`
	Subject         *string            `json:"subject"`
	ReplyType       string             `json:"reply_type"`
	ReplyTypeScores map[string]float64 `json:"reply_type_scores"`
	ProposedTime    *time.Time         `json:"proposed_time"`
	MeetingLink     *string            `json:"meeting_link"`
	DelegateTo      *string            `json:"delegate_to"`
	AdditionalInfo  TimeExtraction     `json:"additional_info"`
	AdditionalNotes *string            `json:"additional_notes"`
	ProcessedAt     time.Time          `json:"processed_at"`

	// RawText is kept for thread reconciliation and never persisted.
	RawText  string `json:"-"`
	Position int    `json:"-"`
}

// Thread is an ordered sequence of extraction records.
type Thread []*ExtractionRecord
