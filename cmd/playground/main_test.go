package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_InvalidEnvironment(t *testing.T) {
	t.Setenv("PLAYGROUND_DATABASE__DRIVER", "oracle")

	cfg, err := loadConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to load config")

	var buf bytes.Buffer
	bootLog := newBootstrapLogger(&buf)
	bootLog.Error().Err(err).Msg("startup failed")

	assert.Contains(t, buf.String(), "startup failed")
	assert.Contains(t, buf.String(), "failed to load config")
	assert.Contains(t, buf.String(), "bootstrap")
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Database.Driver)
}
