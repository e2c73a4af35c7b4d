// Package settings persists small key/value configuration items in the
// local store: the password-gate hash, the protection flag, and similar
// per-diary state.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guncedev/gunce/internal/common"
	"github.com/guncedev/gunce/internal/dbx"
)

// Keys used by the service layer.
const (
	KeyPasswordHash      = "password_hash"
	KeyProtectionEnabled = "protection_enabled"
)

// Repository reads and writes settings values.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SQLiteRepository implements Repository over the local settings table.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get returns the stored value, or nil when the key is absent.
func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get setting %q: %v", common.ErrStorage, key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("%w: failed to set setting %q: %v", common.ErrStorage, key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("%w: failed to delete setting %q: %v", common.ErrStorage, key, err)
	}
	return nil
}
