package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/guncedev/gunce/internal/client/cli"
	"github.com/guncedev/gunce/internal/client/config"
	"github.com/guncedev/gunce/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	level := slog.LevelWarn
	if os.Getenv("GUNCE_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := logging.NewSlogLogger(slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	app := cli.NewApp(cfg, logger)
	defer func() { _ = app.Close() }()

	if err := app.RootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
