package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/guncedev/gunce/internal/common"
	"github.com/guncedev/gunce/internal/dbx"
	"github.com/guncedev/gunce/internal/diary"
)

// usage counts only join entries that are not tombstones
const sqliteTagQuery = `
	SELECT t.id, t.name, t.color, t.description,
		COUNT(CASE WHEN e.sync_status != 'deleted' THEN 1 END) AS usage_count
	FROM tags t
	LEFT JOIN entry_tags et ON et.tag_id = t.id
	LEFT JOIN entries e ON e.id = et.entry_id`

// SQLiteRepository persists tags in the local store.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", common.ErrStorage, op, err)
}

func (r *SQLiteRepository) Create(ctx context.Context, t *diary.Tag) (*diary.Tag, error) {
	stored := *t
	if err := stored.Validate(); err != nil {
		return nil, err
	}
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, color, description) VALUES (?, ?, ?, ?)`,
		stored.ID, stored.Name, stored.Color, stored.Description)
	if err != nil {
		return nil, storeErr("failed to insert tag", err)
	}
	return &stored, nil
}

func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*diary.Tag, error) {
	row := r.db.QueryRowContext(ctx,
		sqliteTagQuery+` WHERE t.name = ? GROUP BY t.id`, name)

	var t diary.Tag
	err := row.Scan(&t.ID, &t.Name, &t.Color, &t.Description, &t.UsageCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("failed to select tag", err)
	}
	return &t, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*diary.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		sqliteTagQuery+` GROUP BY t.id ORDER BY t.name`)
	if err != nil {
		return nil, storeErr("failed to select tags", err)
	}
	defer rows.Close()

	var result []*diary.Tag
	for rows.Next() {
		var t diary.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Description, &t.UsageCount); err != nil {
			return nil, storeErr("failed to scan tag", err)
		}
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to iterate tags", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM entry_tags WHERE tag_id = ?`, id); err != nil {
			return storeErr("failed to unlink tag", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
		if err != nil {
			return storeErr("failed to delete tag", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return storeErr("failed to get rows affected", err)
		}
		if n == 0 {
			return common.ErrNotFound
		}
		return nil
	})
}
