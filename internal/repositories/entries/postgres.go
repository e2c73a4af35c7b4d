package entries

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guncedev/gunce/internal/common"
	"github.com/guncedev/gunce/internal/dbx"
	"github.com/guncedev/gunce/internal/diary"
)

const remoteEntryColumns = `id, title, content, encrypted_content, is_encrypted, entry_date,
	day_of_week, sentiment, sentiment_score, weather, location, is_favorite,
	word_count, read_time, created_at, updated_at`

// PostgresRepository is the remote persistence adapter: the same logical
// operations against a hosted store, with a single-step hard delete. The
// remote side is the reconciliation target, so it carries no sync_status
// bookkeeping and no tombstones.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a repository bound to the given database.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, e *diary.Entry) (*diary.Entry, error) {
	stored := e.Clone()
	if err := stored.Validate(); err != nil {
		return nil, err
	}
	stored.Derive()

	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.SyncStatus = ""

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO entries (`+remoteEntryColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			stored.ID, stored.Title, stored.Content, stored.EncryptedContent,
			stored.IsEncrypted, stored.EntryDate, stored.DayOfWeek,
			string(stored.Sentiment), stored.SentimentScore, stored.Weather,
			stored.Location, stored.IsFavorite, stored.WordCount, stored.ReadTime,
			stored.CreatedAt, stored.UpdatedAt,
		)
		if err != nil {
			return storeErr("failed to insert entry", err)
		}
		return replaceTagsPostgres(ctx, tx, stored.ID, stored.Tags)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*diary.Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+remoteEntryColumns+` FROM entries WHERE id = $1`, id)

	e, err := scanEntryPostgres(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("failed to select entry", err)
	}

	if e.Tags, err = loadTagsPostgres(ctx, r.db, e.ID); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*diary.Entry, error) {
	where := []string{"TRUE"}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if !f.From.IsZero() {
		where = append(where, "entry_date >= "+arg(f.From))
	}
	if !f.To.IsZero() {
		where = append(where, "entry_date <= "+arg(f.To))
	}
	if f.Sentiment != "" {
		where = append(where, "sentiment = "+arg(string(f.Sentiment)))
	}
	if f.FavoritesOnly {
		where = append(where, "is_favorite")
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, "(title ILIKE "+p+" OR content ILIKE "+p+")")
	}
	if f.Tag != "" {
		where = append(where, `id IN (
			SELECT et.entry_id FROM entry_tags et
			JOIN tags t ON t.id = et.tag_id WHERE t.name = `+arg(f.Tag)+`)`)
	}

	query := `SELECT ` + remoteEntryColumns + ` FROM entries WHERE ` +
		strings.Join(where, " AND ") +
		` ORDER BY entry_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("failed to select entries", err)
	}
	defer rows.Close()

	var result []*diary.Entry
	for rows.Next() {
		e, err := scanEntryPostgres(rows)
		if err != nil {
			return nil, storeErr("failed to scan entry", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to iterate entries", err)
	}

	for _, e := range result {
		if e.Tags, err = loadTagsPostgres(ctx, r.db, e.ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, e *diary.Entry) (*diary.Entry, error) {
	updated := e.Clone()
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.Derive()
	updated.UpdatedAt = time.Now().UTC()

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE entries SET
				title = $1, content = $2, encrypted_content = $3, is_encrypted = $4,
				entry_date = $5, day_of_week = $6, sentiment = $7, sentiment_score = $8,
				weather = $9, location = $10, is_favorite = $11, word_count = $12,
				read_time = $13, updated_at = $14
			WHERE id = $15`,
			updated.Title, updated.Content, updated.EncryptedContent,
			updated.IsEncrypted, updated.EntryDate, updated.DayOfWeek,
			string(updated.Sentiment), updated.SentimentScore, updated.Weather,
			updated.Location, updated.IsFavorite, updated.WordCount,
			updated.ReadTime, updated.UpdatedAt, updated.ID,
		)
		if err != nil {
			return storeErr("failed to update entry", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return storeErr("failed to get rows affected", err)
		}
		if n == 0 {
			return common.ErrNotFound
		}
		return replaceTagsPostgres(ctx, tx, updated.ID, updated.Tags)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, updated.ID)
}

// Delete removes the row immediately. The remote store keeps no tombstones.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return storeErr("failed to delete entry", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("failed to get rows affected", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Upsert inserts or overwrites by id, preserving the caller's timestamps so
// that re-pushing an unchanged entry leaves the row bit-identical.
func (r *PostgresRepository) Upsert(ctx context.Context, e *diary.Entry) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO entries (`+remoteEntryColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				content = EXCLUDED.content,
				encrypted_content = EXCLUDED.encrypted_content,
				is_encrypted = EXCLUDED.is_encrypted,
				entry_date = EXCLUDED.entry_date,
				day_of_week = EXCLUDED.day_of_week,
				sentiment = EXCLUDED.sentiment,
				sentiment_score = EXCLUDED.sentiment_score,
				weather = EXCLUDED.weather,
				location = EXCLUDED.location,
				is_favorite = EXCLUDED.is_favorite,
				word_count = EXCLUDED.word_count,
				read_time = EXCLUDED.read_time,
				updated_at = EXCLUDED.updated_at`,
			e.ID, e.Title, e.Content, e.EncryptedContent, e.IsEncrypted,
			e.EntryDate, e.DayOfWeek, string(e.Sentiment), e.SentimentScore,
			e.Weather, e.Location, e.IsFavorite, e.WordCount, e.ReadTime,
			e.CreatedAt, e.UpdatedAt,
		)
		if err != nil {
			return storeErr("failed to upsert entry", err)
		}
		return replaceTagsPostgres(ctx, tx, e.ID, e.Tags)
	})
}

func scanEntryPostgres(row rowScanner) (*diary.Entry, error) {
	var e diary.Entry
	var sentiment string
	if err := row.Scan(
		&e.ID, &e.Title, &e.Content, &e.EncryptedContent, &e.IsEncrypted,
		&e.EntryDate, &e.DayOfWeek, &sentiment, &e.SentimentScore,
		&e.Weather, &e.Location, &e.IsFavorite, &e.WordCount, &e.ReadTime,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Sentiment = diary.Sentiment(sentiment)
	return &e, nil
}

func loadTagsPostgres(ctx context.Context, q dbx.DBTX, entryID string) ([]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT t.name FROM tags t
		JOIN entry_tags et ON et.tag_id = t.id
		WHERE et.entry_id = $1 ORDER BY t.name`, entryID)
	if err != nil {
		return nil, storeErr("failed to select entry tags", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storeErr("failed to scan tag", err)
		}
		tags = append(tags, name)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to iterate tags", err)
	}
	return tags, nil
}

func replaceTagsPostgres(ctx context.Context, tx dbx.DBTX, entryID string, tags []string) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM entry_tags WHERE entry_id = $1`, entryID); err != nil {
		return storeErr("failed to clear entry tags", err)
	}

	for _, name := range tags {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tags (id, name) VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING`, uuid.NewString(), name); err != nil {
			return storeErr("failed to ensure tag", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO entry_tags (entry_id, tag_id)
			SELECT $1, id FROM tags WHERE name = $2`, entryID, name); err != nil {
			return storeErr("failed to link tag", err)
		}
	}
	return nil
}
