// Package config handles configuration for the desktop CLI: built-in
// defaults overlaid by an optional JSON file (-c/--config), with
// command-line flags applied last by the CLI itself.
package config

import (
	"os"
	"path/filepath"
)

// Config holds runtime settings for the Günce CLI.
type Config struct {
	// DatabasePath is the location of the local SQLite file.
	DatabasePath string

	// RemoteDSN is the PostgreSQL DSN used as the sync target. Empty means
	// fully offline operation; the sync command then refuses to run.
	RemoteDSN string
}

// LoadDefaults populates c with sensible defaults: the database lives under
// the user's config directory, and no remote is configured.
func (c *Config) LoadDefaults() {
	c.DatabasePath = defaultDatabasePath()
	c.RemoteDSN = ""
}

// LoadConfig builds a Config by applying defaults and then overlaying
// values from an optional JSON file. Flag overrides happen later, in the
// command layer.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	return cfg
}

func defaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "gunce.db"
	}
	return filepath.Join(dir, "gunce", "gunce.db")
}
