package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guncedev/gunce/internal/common"
	"github.com/guncedev/gunce/internal/dbx"
	"github.com/guncedev/gunce/internal/diary"
)

// Storage layouts for the sqlite TEXT columns.
const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339Nano
)

const entryColumns = `id, title, content, encrypted_content, is_encrypted, entry_date,
	day_of_week, sentiment, sentiment_score, weather, location, is_favorite,
	word_count, read_time, sync_status, created_at, updated_at`

// SQLiteRepository is the local persistence adapter: an embedded
// file-resident store reachable without a network. Rows are never removed
// except through HardDelete; SoftDelete only flips sync_status so the
// deletion can reach the remote store first.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a repository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", common.ErrStorage, op, err)
}

func (r *SQLiteRepository) Create(ctx context.Context, e *diary.Entry) (*diary.Entry, error) {
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
	stored.SyncStatus = diary.SyncStatusPending

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO entries (`+entryColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			stored.ID, stored.Title, stored.Content, stored.EncryptedContent,
			boolToInt(stored.IsEncrypted), stored.EntryDate.Format(dateLayout),
			stored.DayOfWeek, string(stored.Sentiment), stored.SentimentScore,
			stored.Weather, stored.Location, boolToInt(stored.IsFavorite),
			stored.WordCount, stored.ReadTime, string(stored.SyncStatus),
			now.Format(timeLayout), now.Format(timeLayout),
		)
		if err != nil {
			return storeErr("failed to insert entry", err)
		}
		return replaceTagsSQLite(ctx, tx, stored.ID, stored.Tags)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*diary.Entry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM entries
		WHERE id = ? AND sync_status != 'deleted'`, id)

	e, err := scanEntrySQLite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("failed to select entry", err)
	}

	if e.Tags, err = loadTagsSQLite(ctx, r.db, e.ID); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *SQLiteRepository) List(ctx context.Context, f Filter) ([]*diary.Entry, error) {
	where := []string{"sync_status != 'deleted'"}
	var args []any

	if !f.From.IsZero() {
		where = append(where, "entry_date >= ?")
		args = append(args, f.From.Format(dateLayout))
	}
	if !f.To.IsZero() {
		where = append(where, "entry_date <= ?")
		args = append(args, f.To.Format(dateLayout))
	}
	if f.Sentiment != "" {
		where = append(where, "sentiment = ?")
		args = append(args, string(f.Sentiment))
	}
	if f.FavoritesOnly {
		where = append(where, "is_favorite = 1")
	}
	if f.Search != "" {
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(content) LIKE ?)")
		pattern := "%" + strings.ToLower(f.Search) + "%"
		args = append(args, pattern, pattern)
	}
	if f.Tag != "" {
		where = append(where, `id IN (
			SELECT et.entry_id FROM entry_tags et
			JOIN tags t ON t.id = et.tag_id WHERE t.name = ?)`)
		args = append(args, f.Tag)
	}

	query := `SELECT ` + entryColumns + ` FROM entries WHERE ` +
		strings.Join(where, " AND ") +
		` ORDER BY entry_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("failed to select entries", err)
	}
	defer rows.Close()

	var result []*diary.Entry
	for rows.Next() {
		e, err := scanEntrySQLite(rows)
		if err != nil {
			return nil, storeErr("failed to scan entry", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to iterate entries", err)
	}

	for _, e := range result {
		if e.Tags, err = loadTagsSQLite(ctx, r.db, e.ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, e *diary.Entry) (*diary.Entry, error) {
	updated := e.Clone()
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.Derive()
	updated.UpdatedAt = time.Now().UTC()
	updated.SyncStatus = diary.SyncStatusPending

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE entries SET
				title = ?, content = ?, encrypted_content = ?, is_encrypted = ?,
				entry_date = ?, day_of_week = ?, sentiment = ?, sentiment_score = ?,
				weather = ?, location = ?, is_favorite = ?, word_count = ?,
				read_time = ?, sync_status = ?, updated_at = ?
			WHERE id = ? AND sync_status != 'deleted'`,
			updated.Title, updated.Content, updated.EncryptedContent,
			boolToInt(updated.IsEncrypted), updated.EntryDate.Format(dateLayout),
			updated.DayOfWeek, string(updated.Sentiment), updated.SentimentScore,
			updated.Weather, updated.Location, boolToInt(updated.IsFavorite),
			updated.WordCount, updated.ReadTime, string(diary.SyncStatusPending),
			updated.UpdatedAt.Format(timeLayout), updated.ID,
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
		return replaceTagsSQLite(ctx, tx, updated.ID, updated.Tags)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, updated.ID)
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE entries SET sync_status = 'deleted', updated_at = ?
		WHERE id = ? AND sync_status != 'deleted'`,
		time.Now().UTC().Format(timeLayout), id)
	if err != nil {
		return storeErr("failed to soft-delete entry", err)
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

// HardDelete removes a tombstone for good. It refuses to touch live rows:
// physical removal is only ever the second phase of a delete. Tag links are
// cleared explicitly; sqlite foreign-key cascades are not assumed.
func (r *SQLiteRepository) HardDelete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM entries WHERE id = ? AND sync_status = 'deleted'`, id)
		if err != nil {
			return storeErr("failed to hard-delete entry", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return storeErr("failed to get rows affected", err)
		}
		if n == 0 {
			return common.ErrNotFound
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM entry_tags WHERE entry_id = ?`, id); err != nil {
			return storeErr("failed to clear entry tags", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) ListUnsynced(ctx context.Context) ([]*diary.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM entries
		WHERE sync_status != 'synced' ORDER BY updated_at`)
	if err != nil {
		return nil, storeErr("failed to select unsynced entries", err)
	}
	defer rows.Close()

	var result []*diary.Entry
	for rows.Next() {
		e, err := scanEntrySQLite(rows)
		if err != nil {
			return nil, storeErr("failed to scan entry", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to iterate entries", err)
	}

	for _, e := range result {
		if e.Tags, err = loadTagsSQLite(ctx, r.db, e.ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE entries SET sync_status = 'synced' WHERE id = ?`, id)
	if err != nil {
		return storeErr("failed to mark entry synced", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntrySQLite(row rowScanner) (*diary.Entry, error) {
	var (
		e                           diary.Entry
		isEncrypted, isFavorite     int
		entryDate, created, updated string
		sentiment, syncStatus       string
	)
	if err := row.Scan(
		&e.ID, &e.Title, &e.Content, &e.EncryptedContent, &isEncrypted,
		&entryDate, &e.DayOfWeek, &sentiment, &e.SentimentScore,
		&e.Weather, &e.Location, &isFavorite, &e.WordCount, &e.ReadTime,
		&syncStatus, &created, &updated,
	); err != nil {
		return nil, err
	}

	e.IsEncrypted = isEncrypted != 0
	e.IsFavorite = isFavorite != 0
	e.Sentiment = diary.Sentiment(sentiment)
	e.SyncStatus = diary.SyncStatus(syncStatus)

	var err error
	if e.EntryDate, err = time.Parse(dateLayout, entryDate); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return nil, err
	}
	return &e, nil
}

func loadTagsSQLite(ctx context.Context, q dbx.DBTX, entryID string) ([]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT t.name FROM tags t
		JOIN entry_tags et ON et.tag_id = t.id
		WHERE et.entry_id = ? ORDER BY t.name`, entryID)
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

// replaceTagsSQLite rewrites the entry's tag links, creating missing tag
// rows by name on the way.
func replaceTagsSQLite(ctx context.Context, tx dbx.DBTX, entryID string, tags []string) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM entry_tags WHERE entry_id = ?`, entryID); err != nil {
		return storeErr("failed to clear entry tags", err)
	}

	for _, name := range tags {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tags (id, name) VALUES (?, ?)
			ON CONFLICT(name) DO NOTHING`, uuid.NewString(), name); err != nil {
			return storeErr("failed to ensure tag", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO entry_tags (entry_id, tag_id)
			SELECT ?, id FROM tags WHERE name = ?`, entryID, name); err != nil {
			return storeErr("failed to link tag", err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
