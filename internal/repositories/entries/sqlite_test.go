package entries

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/guncedev/gunce/internal/common"
	"github.com/guncedev/gunce/internal/diary"
	"github.com/guncedev/gunce/internal/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db, migrations.DialectSQLite))
	return db
}

func newEntry(title, content string) *diary.Entry {
	return &diary.Entry{Title: title, Content: content}
}

func TestCreate_AssignsIDAndDerivedFields(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	stored, err := r.Create(ctx, &diary.Entry{
		Title:     "Pazartesi",
		Content:   "bir iki üç dört beş",
		EntryDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		WordCount: 999, // client-supplied derived values are ignored
	})
	require.NoError(t, err)

	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, 5, stored.WordCount)
	assert.Equal(t, 1, stored.ReadTime)
	assert.Equal(t, "Monday", stored.DayOfWeek)
	assert.Equal(t, diary.SyncStatusPending, stored.SyncStatus)
	assert.Equal(t, diary.SentimentNeutral, stored.Sentiment)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.Equal(t, stored.CreatedAt, stored.UpdatedAt)

	got, err := r.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Title, got.Title)
	assert.Equal(t, stored.Content, got.Content)
	assert.Equal(t, stored.WordCount, got.WordCount)
	assert.Equal(t, stored.EntryDate, got.EntryDate)
}

func TestCreate_ValidationFailure(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.Create(context.Background(), &diary.Entry{Content: "no title"})
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)
}

func TestCreate_PersistsTags(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	stored, err := r.Create(ctx, &diary.Entry{
		Title: "etiketli", Content: "içerik", Tags: []string{"seyahat", "aile"},
	})
	require.NoError(t, err)

	got, err := r.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"aile", "seyahat"}, got.Tags)
}

func TestGetByID_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.GetByID(context.Background(), "missing-id")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdate_RecomputesAndMarksPending(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	stored, err := r.Create(ctx, newEntry("başlık", "eski içerik burada"))
	require.NoError(t, err)
	require.NoError(t, r.MarkSynced(ctx, stored.ID))

	stored.Content = "yeni"
	updated, err := r.Update(ctx, stored)
	require.NoError(t, err)

	assert.Equal(t, 1, updated.WordCount)
	assert.Equal(t, diary.SyncStatusPending, updated.SyncStatus)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestUpdate_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	e := newEntry("başlık", "içerik")
	e.ID = "missing-id"
	_, err := r.Update(context.Background(), e)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSoftDelete_Visibility(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	stored, err := r.Create(ctx, newEntry("silinecek", "içerik"))
	require.NoError(t, err)

	require.NoError(t, r.SoftDelete(ctx, stored.ID))

	// hidden from normal reads
	_, err = r.GetByID(ctx, stored.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	list, err := r.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	// but visible to reconciliation
	unsynced, err := r.ListUnsynced(ctx)
	require.NoError(t, err)
	require.Len(t, unsynced, 1)
	assert.Equal(t, diary.SyncStatusDeleted, unsynced[0].SyncStatus)

	// cannot be soft-deleted or updated again
	require.ErrorIs(t, r.SoftDelete(ctx, stored.ID), common.ErrNotFound)
	_, err = r.Update(ctx, stored)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestHardDelete_OnlyRemovesTombstones(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	stored, err := r.Create(ctx, newEntry("canlı", "içerik"))
	require.NoError(t, err)

	// live rows are off limits
	require.ErrorIs(t, r.HardDelete(ctx, stored.ID), common.ErrNotFound)

	require.NoError(t, r.SoftDelete(ctx, stored.ID))
	require.NoError(t, r.HardDelete(ctx, stored.ID))

	unsynced, err := r.ListUnsynced(ctx)
	require.NoError(t, err)
	assert.Empty(t, unsynced)
}

func TestListUnsynced_IncludesPendingAndTombstones(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	a, err := r.Create(ctx, newEntry("a", "içerik"))
	require.NoError(t, err)
	b, err := r.Create(ctx, newEntry("b", "içerik"))
	require.NoError(t, err)
	c, err := r.Create(ctx, newEntry("c", "içerik"))
	require.NoError(t, err)

	require.NoError(t, r.MarkSynced(ctx, a.ID))
	require.NoError(t, r.SoftDelete(ctx, c.ID))

	unsynced, err := r.ListUnsynced(ctx)
	require.NoError(t, err)

	statuses := map[string]diary.SyncStatus{}
	for _, e := range unsynced {
		statuses[e.ID] = e.SyncStatus
	}
	assert.Equal(t, map[string]diary.SyncStatus{
		b.ID: diary.SyncStatusPending,
		c.ID: diary.SyncStatusDeleted,
	}, statuses)
}

func TestList_Filters(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	mk := func(title, content string, date time.Time, fav bool, tags []string, s diary.Sentiment) string {
		e := &diary.Entry{
			Title: title, Content: content, EntryDate: date,
			IsFavorite: fav, Tags: tags, Sentiment: s,
		}
		stored, err := r.Create(ctx, e)
		require.NoError(t, err)
		return stored.ID
	}

	d1 := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	id1 := mk("Kış günü", "kar yağdı bütün gün", d1, false, []string{"doğa"}, diary.SentimentNeutral)
	id2 := mk("Sevimli anı", "bugün parkta yürüdük", d2, true, []string{"aile", "doğa"}, diary.SentimentPositive)
	id3 := mk("Bahar", "çiçekler açtı", d3, false, nil, diary.SentimentVeryPositive)

	ids := func(es []*diary.Entry) []string {
		out := make([]string, 0, len(es))
		for _, e := range es {
			out = append(out, e.ID)
		}
		return out
	}

	t.Run("default order newest first", func(t *testing.T) {
		got, err := r.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Equal(t, []string{id3, id2, id1}, ids(got))
	})

	t.Run("date range", func(t *testing.T) {
		got, err := r.List(ctx, Filter{From: d2, To: d2})
		require.NoError(t, err)
		assert.Equal(t, []string{id2}, ids(got))
	})

	t.Run("favorites", func(t *testing.T) {
		got, err := r.List(ctx, Filter{FavoritesOnly: true})
		require.NoError(t, err)
		assert.Equal(t, []string{id2}, ids(got))
	})

	t.Run("tag membership", func(t *testing.T) {
		got, err := r.List(ctx, Filter{Tag: "doğa"})
		require.NoError(t, err)
		assert.Equal(t, []string{id2, id1}, ids(got))
	})

	t.Run("sentiment", func(t *testing.T) {
		got, err := r.List(ctx, Filter{Sentiment: diary.SentimentVeryPositive})
		require.NoError(t, err)
		assert.Equal(t, []string{id3}, ids(got))
	})

	t.Run("search over title and content", func(t *testing.T) {
		got, err := r.List(ctx, Filter{Search: "parkta"})
		require.NoError(t, err)
		assert.Equal(t, []string{id2}, ids(got))

		got, err = r.List(ctx, Filter{Search: "Kış"})
		require.NoError(t, err)
		assert.Equal(t, []string{id1}, ids(got))
	})

	t.Run("combined", func(t *testing.T) {
		got, err := r.List(ctx, Filter{Tag: "doğa", FavoritesOnly: true})
		require.NoError(t, err)
		assert.Equal(t, []string{id2}, ids(got))
	})
}

// The full lifecycle from the product notes: create, favorite, soft-delete.
func TestEntryLifecycle(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	stored, err := r.Create(ctx, newEntry(
		"Güzel Bir Başlangıç",
		"Bugün yeni günlük uygulamama ilk girişimi yapıyorum.",
	))
	require.NoError(t, err)
	assert.Equal(t, 7, stored.WordCount)
	assert.Equal(t, 1, stored.ReadTime)
	assert.Equal(t, diary.SentimentNeutral, stored.Sentiment)
	assert.Equal(t, diary.SyncStatusPending, stored.SyncStatus)

	// favoriting does not touch content-derived fields
	stored.IsFavorite = true
	updated, err := r.Update(ctx, stored)
	require.NoError(t, err)
	assert.True(t, updated.IsFavorite)
	assert.Equal(t, stored.WordCount, updated.WordCount)
	assert.Equal(t, diary.SyncStatusPending, updated.SyncStatus)
	assert.True(t, updated.UpdatedAt.After(stored.UpdatedAt))

	require.NoError(t, r.SoftDelete(ctx, stored.ID))

	list, err := r.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	unsynced, err := r.ListUnsynced(ctx)
	require.NoError(t, err)
	require.Len(t, unsynced, 1)
	assert.Equal(t, stored.ID, unsynced[0].ID)
}
