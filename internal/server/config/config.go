// Package config holds runtime settings for the hosted backend, loaded
// from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the server configuration. All values come from GUNCE_*
// environment variables.
type Config struct {
	// Addr is the HTTP bind address.
	Addr string `envconfig:"ADDR" default:":8080"`

	// DatabaseDSN is the PostgreSQL DSN (pgx).
	DatabaseDSN string `envconfig:"DATABASE_DSN" required:"true"`

	// SecretKey signs session tokens (HS256).
	SecretKey string `envconfig:"SECRET_KEY" required:"true"`

	// TokenValidity bounds the lifetime of an unlock session.
	TokenValidity time.Duration `envconfig:"TOKEN_VALIDITY" default:"30m"`

	// PasswordHash is the argon2id PHC string of the diary password. When
	// empty the API runs without the unlock gate.
	PasswordHash string `envconfig:"PASSWORD_HASH"`

	// AppEnv switches log formatting; "production" selects JSON.
	AppEnv string `envconfig:"APP_ENV" default:"development"`
}

// Load reads the configuration from GUNCE_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("gunce", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
