// Package server initializes and runs the hosted backend: it connects to
// PostgreSQL, applies migrations, wires the diary facade behind the HTTP
// transport and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/guncedev/gunce/internal/logging"
	"github.com/guncedev/gunce/internal/migrations"
	"github.com/guncedev/gunce/internal/repositories/entries"
	"github.com/guncedev/gunce/internal/repositories/tags"
	"github.com/guncedev/gunce/internal/sentiment"
	"github.com/guncedev/gunce/internal/server/api"
	"github.com/guncedev/gunce/internal/server/config"
	"github.com/guncedev/gunce/internal/service"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler *api.Handler
}

func NewApp(cfg *config.Config) (*App, error) {
	var handler slog.Handler
	if cfg.AppEnv == "production" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	logger := logging.NewSlogLogger(slog.New(handler))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := migrations.Up(ctx, db, migrations.DialectPostgres); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	protected := cfg.PasswordHash != ""
	svc := service.New(
		nil,
		entries.NewPostgresRepository(db),
		tags.NewPostgresRepository(db),
		sentiment.NewSimpleAnalyzer(),
		logger,
		service.WithSettings(&service.Settings{
			PasswordHash:      cfg.PasswordHash,
			ProtectionEnabled: protected,
		}),
	)

	h := api.NewHandler(svc, logger, cfg.SecretKey, cfg.TokenValidity, protected)

	return &App{config: cfg, logger: logger, db: db, handler: h}, nil
}

// Run serves HTTP until the context is cancelled or a termination signal
// arrives, then drains in-flight requests.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	srv := &http.Server{
		Addr:         app.config.Addr,
		Handler:      app.handler.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "server listening", "addr", app.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		app.logger.Info(ctx, "shutting down")
		shutdownCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer timeoutCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return app.db.Close()
}
