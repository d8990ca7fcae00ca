package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "appdb", cfg.Database.Name)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PLAYGROUND_PRIMARY__ENV", "production")
	t.Setenv("PLAYGROUND_SERVER__PORT", "9090")
	t.Setenv("PLAYGROUND_DATABASE__DRIVER", "sqlite")
	t.Setenv("PLAYGROUND_DATABASE__PATH", "/tmp/playground.db")
	t.Setenv("PLAYGROUND_REDIS__ADDRESS", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Primary.Env)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/playground.db", cfg.Database.Path)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("PLAYGROUND_DATABASE__DRIVER", "mysql")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfig_SQLiteNeedsPath(t *testing.T) {
	t.Setenv("PLAYGROUND_DATABASE__DRIVER", "sqlite")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("postgres escapes credentials", func(t *testing.T) {
		dsn := Default().Database.DSN()
		assert.Equal(t, "postgres://vagrant:vagrant%21@db:5432/appdb?sslmode=disable", dsn)
	})

	t.Run("sqlite enables foreign keys", func(t *testing.T) {
		d := DatabaseConfig{Driver: DriverSQLite, Path: "/data/app.db"}
		assert.Equal(t, "file:/data/app.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", d.DSN())
	})
}

func TestObservabilityConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *ObservabilityConfig) {}},
		{name: "bad level", mutate: func(c *ObservabilityConfig) { c.Logging.Level = "verbose" }, wantErr: true},
		{name: "negative threshold", mutate: func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second }, wantErr: true},
		{name: "missing service name", mutate: func(c *ObservabilityConfig) { c.ServiceName = "" }, wantErr: true},
		{name: "zero health timeout", mutate: func(c *ObservabilityConfig) { c.HealthChecks.Timeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultObservabilityConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())

	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Logging.Level = "warn"
	assert.Equal(t, "warn", c.GetLogLevel())
}

func TestObservabilityConfig_HasCheck(t *testing.T) {
	c := DefaultObservabilityConfig()
	assert.True(t, c.HasCheck("database"))
	assert.False(t, c.HasCheck("kafka"))

	c.HealthChecks.Enabled = false
	assert.False(t, c.HasCheck("database"))
}
