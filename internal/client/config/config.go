package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Config holds runtime settings for the admin CLI.
//
// Fields:
//   - APIBaseURL: root of the REST API, including the /api prefix.
//   - SessionDB: SQLite file that keeps the session between runs
//     (":memory:" disables persistence).
//   - RequestTimeout: upper bound for a single API request.
//   - RowsPerPage: initial page size of the user table.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	SessionDB      string
	RequestTimeout time.Duration
	RowsPerPage    int
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api"
	c.SessionDB = "session.db"
	c.RequestTimeout = 30 * time.Second
	c.RowsPerPage = 10
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports every unusable setting at once.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIBaseURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.SessionDB, validation.Required),
		validation.Field(&c.RequestTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.RowsPerPage, validation.Required, validation.Min(1)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("must be a valid URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an absolute http(s) URL")
	}
	return nil
}
