// Package metadata is a key/value store over the local SQLite database.
// The session store keeps the bearer token and the login e-mail in it.
package metadata

import (
	"context"
)

// Repository reads and writes metadata entries. Get returns (nil, nil) for
// a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
}
