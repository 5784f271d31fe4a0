package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned by TokenExpiry for tokens without an "exp" claim.
var ErrNoExpiry = errors.New("token has no expiry")

// TokenExpiry reads the "exp" claim of a session token without verifying
// its signature. The key lives on the server; the client only needs to know
// whether a stored session is worth presenting.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("parse session token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// Expired reports whether token has an "exp" claim in the past relative to
// now. Tokens that are not JWTs or carry no expiry are never expired.
func Expired(token string, now time.Time) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return false
	}
	return !now.Before(exp)
}
