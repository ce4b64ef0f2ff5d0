package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvAPIBaseURL, "https://env.example/api")
	t.Setenv(EnvTimeout, "45")

	cfg := defaults()
	parseEnv(cfg)

	assert.Equal(t, "https://env.example/api", cfg.APIBaseURL)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "session.db", cfg.SessionDB)
}

func TestParseEnv_DotenvDoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte(EnvSessionDB+"=dotenv.db\n"+EnvLogLevel+"=error\n"), 0o600))
	t.Setenv(EnvLogLevel, "debug")
	// Registered so the value loaded from .env is removed after the test.
	t.Setenv(EnvSessionDB, "")
	require.NoError(t, os.Unsetenv(EnvSessionDB))

	cfg := defaults()
	parseEnv(cfg)

	assert.Equal(t, "dotenv.db", cfg.SessionDB)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseEnv_BadTimeoutPanics(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvTimeout, "soon")

	require.Panics(t, func() { parseEnv(defaults()) })
}

func TestParseTimeout(t *testing.T) {
	d, err := parseTimeout("2m")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)

	d, err = parseTimeout("7")
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, d)
}
