// Package diary defines the diary entry and tag models shared by the local
// and remote stores, together with the derived-field and validation rules
// applied on every write.
package diary

import (
	"time"
)

// Sentiment is the closed set of mood labels an entry can carry.
type Sentiment string

const (
	SentimentVeryPositive Sentiment = "very_positive"
	SentimentPositive     Sentiment = "positive"
	SentimentNeutral      Sentiment = "neutral"
	SentimentNegative     Sentiment = "negative"
	SentimentVeryNegative Sentiment = "very_negative"
)

// Valid reports whether s is one of the known labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentVeryPositive, SentimentPositive, SentimentNeutral,
		SentimentNegative, SentimentVeryNegative:
		return true
	}
	return false
}

// SyncStatus tracks an entry's reconciliation state against the remote
// store. It is local-only bookkeeping; remote rows never carry it.
type SyncStatus string

const (
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusPending SyncStatus = "pending"
	// SyncStatusDeleted marks a tombstone: the row stays in the local store
	// until its deletion has been propagated to the remote store.
	SyncStatusDeleted SyncStatus = "deleted"
)

// Entry is a single diary record. The field names and JSON tags are the
// wire/storage contract shared by the CLI, the HTTP API, and both database
// adapters; independently produced records must be interchangeable.
type Entry struct {
	// ID is assigned at creation and immutable afterwards.
	ID string `json:"id"`

	Title string `json:"title" validate:"required"`

	// Content is the canonical plaintext. For protected entries it is
	// cleared once EncryptedContent is populated; the plaintext then lives
	// only transiently in memory on the caller's side.
	Content string `json:"content" validate:"required_without=EncryptedContent"`

	// EncryptedContent holds a serialized cryptox.Package when the entry is
	// protected, nil otherwise.
	EncryptedContent []byte `json:"encrypted_content,omitempty"`
	IsEncrypted      bool   `json:"is_encrypted"`

	// EntryDate is the calendar day the entry belongs to (no time part).
	EntryDate time.Time `json:"entry_date"`
	// DayOfWeek is derived from EntryDate at write time, never lazily.
	DayOfWeek string `json:"day_of_week"`

	Tags []string `json:"tags"`

	Sentiment      Sentiment `json:"sentiment" validate:"omitempty,sentiment"`
	SentimentScore float64   `json:"sentiment_score" validate:"gte=0,lte=1"`

	Weather  string `json:"weather,omitempty"`
	Location string `json:"location,omitempty"`

	IsFavorite bool `json:"is_favorite"`

	// WordCount and ReadTime are derived from Content on every write that
	// touches it; client-supplied values are never trusted.
	WordCount int `json:"word_count"`
	ReadTime  int `json:"read_time"`

	SyncStatus SyncStatus `json:"sync_status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DateOnly truncates t to its calendar day in the local display calendar.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ApplyDefaults fills the optional fields with their documented defaults:
// sentiment neutral, tags empty, entry date today.
func (e *Entry) ApplyDefaults() {
	if e.Sentiment == "" {
		e.Sentiment = SentimentNeutral
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if e.EntryDate.IsZero() {
		e.EntryDate = DateOnly(time.Now())
	} else {
		e.EntryDate = DateOnly(e.EntryDate)
	}
}

// Clone returns a deep copy of e.
func (e *Entry) Clone() *Entry {
	c := *e
	if e.Tags != nil {
		c.Tags = append([]string(nil), e.Tags...)
	}
	if e.EncryptedContent != nil {
		c.EncryptedContent = append([]byte(nil), e.EncryptedContent...)
	}
	return &c
}
