// Package session holds the authentication state of the client.
//
// # Overview
//
// A session is represented solely by the presence of a bearer token. The
// Store keeps it (plus the e-mail used to log in) in memory and, for the
// SQLite implementation, in a local database so it survives restarts.
// Each profile uses its own database file.
//
// Signal is the unauthorized event stream: the transport publishes one
// Event per 401 response and every subscriber receives that event once.
//
// Describe decodes a JWT token without verifying it, for display only.
//
// See Also
//
//   - Stores:   Store, SQLiteStore, MemoryStore
//   - Events:   Signal, Event
//   - DB setup: InitDatabase, RunMigrations
package session
