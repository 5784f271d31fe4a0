package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return s
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tok := signed(t, jwt.RegisteredClaims{Subject: "u1", ExpiresAt: jwt.NewNumericDate(exp)})

	got, err := TokenExpiry(tok)
	require.NoError(t, err)
	assert.True(t, exp.Equal(got))
}

func TestTokenExpiry_NoExp(t *testing.T) {
	tok := signed(t, jwt.RegisteredClaims{Subject: "u1"})

	_, err := TokenExpiry(tok)
	require.ErrorIs(t, err, ErrNoExpiry)
}

func TestTokenExpiry_NotAJWT(t *testing.T) {
	_, err := TokenExpiry("s%3Aopaque-session-id")
	require.Error(t, err)
}

func TestExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	past := signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))})
	future := signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))})

	assert.True(t, Expired(past, now))
	assert.False(t, Expired(future, now))
	assert.False(t, Expired("opaque", now))
}
