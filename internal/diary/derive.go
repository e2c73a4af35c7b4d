package diary

import (
	"strings"
	"time"
)

// wordsPerMinute is the reading speed behind the read_time estimate.
const wordsPerMinute = 200

// DerivedFields bundles the three values recomputed on every write that
// touches content or entry date.
type DerivedFields struct {
	WordCount int
	ReadTime  int
	DayOfWeek string
}

// DeriveFields computes the derived values for a content/date pair.
// WordCount is the number of maximal whitespace-delimited tokens,
// ReadTime is ceil(WordCount/200) minutes and DayOfWeek the weekday name
// of entryDate.
func DeriveFields(content string, entryDate time.Time) DerivedFields {
	wc := len(strings.Fields(content))
	return DerivedFields{
		WordCount: wc,
		ReadTime:  (wc + wordsPerMinute - 1) / wordsPerMinute,
		DayOfWeek: entryDate.Weekday().String(),
	}
}

// Derive recomputes e's derived fields in place. For protected entries the
// plaintext is gone after sealing, so the caller must derive before
// encrypting; Derive refuses to overwrite the stored counts in that case.
func (e *Entry) Derive() {
	if e.IsEncrypted && e.Content == "" {
		d := DeriveFields("", e.EntryDate)
		e.DayOfWeek = d.DayOfWeek
		return
	}
	d := DeriveFields(e.Content, e.EntryDate)
	e.WordCount = d.WordCount
	e.ReadTime = d.ReadTime
	e.DayOfWeek = d.DayOfWeek
}
