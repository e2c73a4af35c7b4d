// Package migrations embeds the goose SQL migrations for both database
// dialects and knows how to apply them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var fs embed.FS

// Dialect selects which migration set to apply.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

func dir(d Dialect) string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// Up applies all pending migrations for the given dialect.
func Up(ctx context.Context, db *sql.DB, d Dialect) error {
	goose.SetBaseFS(fs)
	if err := goose.SetDialect(string(d)); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, dir(d))
}
