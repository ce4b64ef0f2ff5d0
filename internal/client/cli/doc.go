// Package cli provides the interactive command-line admin client.
//
// It wires configuration, the local session database, the API client and
// the services into an interactive REPL. Typical flow: resume a persisted
// session or log in, list users, narrow the table with filter, sort and
// page, select rows and apply a bulk action.
//
// Key features:
//   - Register / Confirm e-mail / Login / Logout
//   - User table with filtering, sorting by last seen and pagination
//   - Page-local select all, per-row selection by id or row number
//   - Block, unblock, delete, delete all unverified
//
// Any 401 from the server ends the session; the App drops its cached data
// and asks the user to log in again.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
