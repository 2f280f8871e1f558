package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, "./data/hours.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, 30*time.Second, cfg.PollTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "t")
	t.Setenv("DB_PATH", "/tmp/x.db")
	t.Setenv("POLL_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, 5*time.Second, cfg.PollTimeout)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	require.NoError(t, os.Unsetenv("BOT_TOKEN"))
	_, err := Load()
	assert.Error(t, err)
}
