package diary

import (
	"strings"
	"testing"
	"time"

	"github.com/guncedev/gunce/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveFields(t *testing.T) {
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		content   string
		wantWords int
		wantRead  int
	}{
		{"empty", "", 0, 0},
		{"single word", "merhaba", 1, 1},
		{"turkish sentence", "Bugün yeni günlük uygulamama ilk girişimi yapıyorum.", 7, 1},
		{"collapsed whitespace", "  bir \t iki \n üç  ", 3, 1},
		{"exactly 200 words", strings.Repeat("kelime ", 200), 200, 1},
		{"201 words rounds up", strings.Repeat("kelime ", 201), 201, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DeriveFields(tt.content, monday)
			assert.Equal(t, tt.wantWords, d.WordCount)
			assert.Equal(t, tt.wantRead, d.ReadTime)
			assert.Equal(t, "Monday", d.DayOfWeek)
		})
	}
}

func TestEntryDerive_RecomputesInPlace(t *testing.T) {
	e := &Entry{
		Content:   "bir iki üç dört",
		EntryDate: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), // Sunday
		WordCount: 999,
		ReadTime:  999,
	}
	e.Derive()
	assert.Equal(t, 4, e.WordCount)
	assert.Equal(t, 1, e.ReadTime)
	assert.Equal(t, "Sunday", e.DayOfWeek)
}

func TestEntryDerive_KeepsCountsForSealedContent(t *testing.T) {
	e := &Entry{
		IsEncrypted:      true,
		EncryptedContent: []byte(`{}`),
		EntryDate:        time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		WordCount:        42,
		ReadTime:         1,
	}
	e.Derive()
	// plaintext is gone; the counts computed before sealing must survive
	assert.Equal(t, 42, e.WordCount)
	assert.Equal(t, 1, e.ReadTime)
	assert.Equal(t, "Monday", e.DayOfWeek)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		entry     Entry
		wantField string
	}{
		{"valid", Entry{Title: "Güzel Bir Başlangıç", Content: "Bugün güzel geçti."}, ""},
		{"missing title", Entry{Content: "içerik"}, "title"},
		{"missing content", Entry{Title: "başlık"}, "content"},
		{"encrypted without plaintext is fine", Entry{
			Title: "gizli", EncryptedContent: []byte(`{"salt":""}`), IsEncrypted: true,
		}, ""},
		{"unknown sentiment", Entry{Title: "a", Content: "b", Sentiment: "ecstatic"}, "sentiment"},
		{"score above range", Entry{Title: "a", Content: "b", SentimentScore: 1.5}, "sentiment_score"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var ve *common.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestValidate_AppliesDefaults(t *testing.T) {
	e := &Entry{Title: "başlık", Content: "içerik"}
	require.NoError(t, e.Validate())

	assert.Equal(t, SentimentNeutral, e.Sentiment)
	assert.NotNil(t, e.Tags)
	assert.Empty(t, e.Tags)
	assert.False(t, e.IsFavorite)
	assert.Equal(t, DateOnly(time.Now()), e.EntryDate)
}

func TestApplyEncryption_ClearsPlaintext(t *testing.T) {
	e := &Entry{
		Title:     "gizli",
		Content:   "kimseye söyleme",
		EntryDate: DateOnly(time.Now()),
	}
	e.Derive()
	require.NoError(t, e.ApplyEncryption("parola"))

	assert.True(t, e.IsEncrypted)
	assert.Empty(t, e.Content)
	assert.NotEmpty(t, e.EncryptedContent)
	assert.Equal(t, 2, e.WordCount) // derived before sealing, preserved after

	got, err := e.DecryptContent("parola")
	require.NoError(t, err)
	assert.Equal(t, "kimseye söyleme", got)

	_, err = e.DecryptContent("yanlış")
	require.ErrorIs(t, err, common.ErrDecryption)
}

func TestDecryptContent_Unprotected(t *testing.T) {
	e := &Entry{Content: "açık metin"}
	got, err := e.DecryptContent("ignored")
	require.NoError(t, err)
	assert.Equal(t, "açık metin", got)
}

func TestDecryptContent_MissingPackage(t *testing.T) {
	e := &Entry{IsEncrypted: true}
	_, err := e.DecryptContent("pw")
	require.ErrorIs(t, err, common.ErrDecryption)
}
