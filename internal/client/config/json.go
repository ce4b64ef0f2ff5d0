package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/useradmin/internal/flagx"
	"github.com/dmitrijs2005/useradmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as a
// string like "30s" or as integer nanoseconds. Absent fields keep the value
// already in Config.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	SessionDB      string          `json:"session_db"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	RowsPerPage    int             `json:"rows_per_page"`
	LogLevel       string          `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing is loaded.
//
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.SessionDB != "" {
		cfg.SessionDB = jc.SessionDB
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RowsPerPage != 0 {
		cfg.RowsPerPage = jc.RowsPerPage
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
