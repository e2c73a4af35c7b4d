// Package cli implements the desktop command-line client: a cobra command
// tree over the diary facade, working against the local SQLite store and
// optionally syncing to a remote PostgreSQL target.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/guncedev/gunce/internal/client/config"
	"github.com/guncedev/gunce/internal/logging"
	"github.com/guncedev/gunce/internal/migrations"
	"github.com/guncedev/gunce/internal/repositories/entries"
	"github.com/guncedev/gunce/internal/repositories/settings"
	"github.com/guncedev/gunce/internal/repositories/tags"
	"github.com/guncedev/gunce/internal/sentiment"
	"github.com/guncedev/gunce/internal/service"
)

// App holds the CLI's wiring. The service is opened lazily, after cobra
// has parsed the persistent flags that may point at a different database.
type App struct {
	cfg    *config.Config
	logger logging.Logger

	svc      *service.DiaryService
	localDB  *sql.DB
	remoteDB *sql.DB

	in  io.Reader
	out io.Writer
}

func NewApp(cfg *config.Config, logger logging.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// init opens the stores and builds the facade. Called once from the root
// command's PersistentPreRunE.
func (a *App) init(ctx context.Context) error {
	if a.svc != nil {
		return nil
	}

	if dir := filepath.Dir(a.cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", a.cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := migrations.Up(ctx, db, migrations.DialectSQLite); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	a.localDB = db

	settingsRepo := settings.NewSQLiteRepository(db)
	gate, err := service.LoadSettings(ctx, settingsRepo)
	if err != nil {
		return err
	}

	var remote entries.RemoteStore
	if a.cfg.RemoteDSN != "" {
		rdb, err := sql.Open("pgx", a.cfg.RemoteDSN)
		if err != nil {
			return fmt.Errorf("failed to open remote database: %w", err)
		}
		if err := migrations.Up(ctx, rdb, migrations.DialectPostgres); err != nil {
			return fmt.Errorf("remote migration error: %w", err)
		}
		a.remoteDB = rdb
		remote = entries.NewPostgresRepository(rdb)
	}

	a.svc = service.New(
		entries.NewSQLiteRepository(db),
		remote,
		tags.NewSQLiteRepository(db),
		sentiment.NewSimpleAnalyzer(),
		a.logger,
		service.WithSettings(gate),
		service.WithSettingsRepository(settingsRepo),
	)
	return nil
}

// Close releases the database handles.
func (a *App) Close() error {
	if a.remoteDB != nil {
		_ = a.remoteDB.Close()
	}
	if a.localDB != nil {
		return a.localDB.Close()
	}
	return nil
}
