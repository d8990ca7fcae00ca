// Package databasetest opens throwaway SQLite databases for tests.
package databasetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/JoeWHoward/DockerPlayground/internal/config"
	"github.com/JoeWHoward/DockerPlayground/internal/database"
)

// Config returns an application config pointing at a fresh SQLite file in
// a temp dir owned by t.
func Config(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Primary.Env = "test"
	cfg.Database = config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "playground.db"),
	}
	cfg.Observability = config.DefaultObservabilityConfig()
	cfg.Observability.Environment = cfg.Primary.Env
	return cfg
}

// New opens a SQLite database with every table created. It is closed when
// the test ends.
func New(t *testing.T) *database.Database {
	t.Helper()
	return Open(t, Config(t))
}

// Open connects with cfg and creates every table.
func Open(t *testing.T, cfg *config.Config) *database.Database {
	t.Helper()

	logger := zerolog.Nop()
	db, err := database.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.CreateAll(context.Background()))
	return db
}
