package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Info is what can be read from a JWT session token without the signing key.
type Info struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is before now.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && i.ExpiresAt.Before(now)
}

// Describe decodes the registered claims of token without verifying the
// signature. ok is false for tokens that are not JWTs; such tokens are still
// valid sessions, they are just opaque.
func Describe(token string) (info Info, ok bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Info{}, false
	}

	info.Subject = claims.Subject
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, true
}
