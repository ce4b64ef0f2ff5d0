package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	want := &Config{
		APIBaseURL:     "http://localhost:8080/api",
		SessionDB:      "session.db",
		RequestTimeout: 30 * time.Second,
		RowsPerPage:    10,
		LogLevel:       "warn",
	}
	assert.Empty(t, cmp.Diff(want, defaults()))
	assert.NoError(t, defaults().Validate())
}

func TestLoadConfig_LayersInOrder(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Chdir(t.TempDir())

	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url":    "https://json.example/api",
		"session_db":      "json.db",
		"request_timeout": "5s",
		"rows_per_page":   25,
	})
	t.Setenv(EnvSessionDB, "env.db")
	t.Setenv(EnvLogLevel, "debug")
	os.Args = []string{"testbin", "-c", path, "-r", "50"}

	cfg := LoadConfig()

	want := &Config{
		APIBaseURL:     "https://json.example/api",
		SessionDB:      "env.db",
		RequestTimeout: 5 * time.Second,
		RowsPerPage:    50,
		LogLevel:       "debug",
	}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"relative url", func(c *Config) { c.APIBaseURL = "/api" }, "APIBaseURL"},
		{"ftp url", func(c *Config) { c.APIBaseURL = "ftp://x/api" }, "APIBaseURL"},
		{"no session db", func(c *Config) { c.SessionDB = "" }, "SessionDB"},
		{"zero rows", func(c *Config) { c.RowsPerPage = 0 }, "RowsPerPage"},
		{"negative rows", func(c *Config) { c.RowsPerPage = -3 }, "RowsPerPage"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
