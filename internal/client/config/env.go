package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvAPIBaseURL = "USERADMIN_API_URL"
	EnvSessionDB  = "USERADMIN_SESSION_DB"
	EnvTimeout    = "USERADMIN_TIMEOUT"
	EnvLogLevel   = "USERADMIN_LOG_LEVEL"
)

// dotenvFile is read before the environment is consulted. Variables already
// set in the process environment are not overwritten.
var dotenvFile = ".env"

// parseEnv overlays Config with USERADMIN_* variables. USERADMIN_TIMEOUT
// accepts a duration ("45s") or a whole number of seconds.
//
// Panics on a malformed .env file or timeout value.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("load %s: %w", dotenvFile, err))
	}

	if v, ok := os.LookupEnv(EnvAPIBaseURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvSessionDB); ok && v != "" {
		cfg.SessionDB = v
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok && v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvTimeout, err))
		}
		cfg.RequestTimeout = d
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
}

func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
