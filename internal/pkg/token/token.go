// Package token peeks into the auth backend's access tokens. The token is
// opaque credential material for this side; signature verification happens on
// the backend with every API call. We only read the registered claims to key
// caches and cap session lifetimes.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Peek extracts subject and expiry from an access token without verifying
// it. A token without an exp claim returns a zero time.
func Peek(accessToken string) (subject string, expiresAt time.Time, err error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return "", time.Time{}, fmt.Errorf("parse access token: %w", err)
	}

	subject, err = claims.GetSubject()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("access token subject: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("access token expiry: %w", err)
	}
	if exp != nil {
		expiresAt = exp.Time
	}

	return subject, expiresAt, nil
}

// SessionTTL caps the app session lifetime with the token's own expiry so a
// session never outlives its credential.
func SessionTTL(defaultTTL time.Duration, expiresAt time.Time, now time.Time) time.Duration {
	if expiresAt.IsZero() {
		return defaultTTL
	}
	remaining := expiresAt.Sub(now)
	if remaining <= 0 {
		return time.Minute
	}
	if remaining < defaultTTL {
		return remaining
	}
	return defaultTTL
}
