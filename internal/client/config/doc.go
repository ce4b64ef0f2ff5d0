// Package config loads runtime configuration for the admin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment: USERADMIN_API_URL, USERADMIN_SESSION_DB,
//     USERADMIN_TIMEOUT, USERADMIN_LOG_LEVEL, optionally preset from a
//     .env file in the working directory.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL, e.g. https://users.example.com/api
//	-s string   session database path (":memory:" to keep nothing)
//	-t int      request timeout (seconds)
//	-r int      rows per page
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://users.example.com/api",
//	  "session_db": "admin.db",
//	  "request_timeout": "30s",
//	  "rows_per_page": 25,
//	  "log_level": "info"
//	}
package config
