package tags

import (
	"context"
	"database/sql"
	"testing"

	"github.com/guncedev/gunce/internal/common"
	"github.com/guncedev/gunce/internal/diary"
	"github.com/guncedev/gunce/internal/migrations"
	entriesrepo "github.com/guncedev/gunce/internal/repositories/entries"
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

func TestCreateAndGetByName(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	stored, err := r.Create(ctx, &diary.Tag{
		Name: "seyahat", Color: "#3377ff", Description: "geziler",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)

	got, err := r.GetByName(ctx, "seyahat")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, "#3377ff", got.Color)
	assert.Equal(t, 0, got.UsageCount)
}

func TestCreate_EmptyName(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.Create(context.Background(), &diary.Tag{Name: "  "})
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
}

func TestGetByName_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.GetByName(context.Background(), "yok")
	require.ErrorIs(t, err, common.ErrNotFound)
}

// usage_count equals the number of live entries referencing the tag,
// computed from the join table rather than maintained as stored state.
func TestUsageCount_TracksLiveEntries(t *testing.T) {
	db := setupDB(t)
	tagRepo := NewSQLiteRepository(db)
	entryRepo := entriesrepo.NewSQLiteRepository(db)
	ctx := context.Background()

	e1, err := entryRepo.Create(ctx, &diary.Entry{
		Title: "bir", Content: "içerik", Tags: []string{"doğa"},
	})
	require.NoError(t, err)
	_, err = entryRepo.Create(ctx, &diary.Entry{
		Title: "iki", Content: "içerik", Tags: []string{"doğa", "aile"},
	})
	require.NoError(t, err)

	got, err := tagRepo.GetByName(ctx, "doğa")
	require.NoError(t, err)
	assert.Equal(t, 2, got.UsageCount)

	// soft-deleting an entry drops it from the count immediately
	require.NoError(t, entryRepo.SoftDelete(ctx, e1.ID))

	got, err = tagRepo.GetByName(ctx, "doğa")
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsageCount)

	list, err := tagRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "aile", list[0].Name)
	assert.Equal(t, 1, list[0].UsageCount)
	assert.Equal(t, "doğa", list[1].Name)
	assert.Equal(t, 1, list[1].UsageCount)
}

func TestDelete(t *testing.T) {
	db := setupDB(t)
	tagRepo := NewSQLiteRepository(db)
	entryRepo := entriesrepo.NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := entryRepo.Create(ctx, &diary.Entry{
		Title: "bir", Content: "içerik", Tags: []string{"geçici"},
	})
	require.NoError(t, err)

	stored, err := tagRepo.GetByName(ctx, "geçici")
	require.NoError(t, err)

	require.NoError(t, tagRepo.Delete(ctx, stored.ID))
	_, err = tagRepo.GetByName(ctx, "geçici")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.ErrorIs(t, tagRepo.Delete(ctx, stored.ID), common.ErrNotFound)
}
