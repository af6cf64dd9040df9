// Package config resolves catalog connection settings from the
// environment (via a .env file, teacher-style) and command-line flags,
// the same env-then-flags layering cmd/morfx uses.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DBConfig holds the catalog store's connection settings.
type DBConfig struct {
	// DSN is a SQLite file path, or an http(s)/libsql URL for a remote
	// Turso-style catalog.
	DSN string
	// LibsqlAuthToken authenticates against a remote libsql DSN; unused
	// for file-based SQLite.
	LibsqlAuthToken string
	// Debug enables GORM's verbose query logger.
	Debug bool
}

// Load reads a .env file if present (missing is not an error, mirroring
// godotenv's own convention) and then environment variables, producing
// defaults a caller can still override with CLI flags.
func Load() *DBConfig {
	_ = godotenv.Load()

	cfg := &DBConfig{
		DSN:             os.Getenv("REWRITE_DB_DSN"),
		LibsqlAuthToken: os.Getenv("REWRITE_LIBSQL_AUTH_TOKEN"),
	}
	if cfg.DSN == "" {
		cfg.DSN = "rewrite.db"
	}
	return cfg
}
