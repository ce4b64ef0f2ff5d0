// Package client talks to the user-management REST API.
//
// # Overview
//
// Client is the transport contract used by the services layer. HTTPClient
// implements it over net/http with JSON bodies and a fixed per-request
// timeout.
//
// # Authentication
//
// HTTPClient reads the bearer token from a session.Store and attaches it as
// "Authorization: Bearer <token>" to every request except the login,
// register and confirm-email endpoints. Any 401 response clears the store and
// publishes exactly one event on the session.Signal.
//
// # Error Handling
//
// Failures are *APIError values whose Kind is one of ErrUnauthorized,
// ErrForbidden, ErrConflict, ErrServer, ErrNetwork, ErrProtocol or
// ErrRequest; match them with errors.Is.
package client
