// Package common contains constants and small helpers shared by the client
// packages.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on API requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the session token in AuthorizationHeaderName.
	BearerPrefix = "Bearer "
)

// WipeByteArray zeroes b in place. Nil is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
