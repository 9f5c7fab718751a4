package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *TokenService {
	return NewTokenService(TokenConfig{Secret: "test-secret", TTL: time.Hour})
}

func TestIssueThenVerify(t *testing.T) {
	svc := newTestTokenService()

	raw, err := svc.Issue(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := svc.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Subject)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := newTestTokenService()

	// Correctly signed but already expired: expiry must win over a valid
	// signature.
	expired := Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyWrongSecret(t *testing.T) {
	other := NewTokenService(TokenConfig{Secret: "other-secret", TTL: time.Hour})
	raw, err := other.Issue(42, "alice")
	require.NoError(t, err)

	_, err = newTestTokenService().Verify(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyCorruptToken(t *testing.T) {
	svc := newTestTokenService()

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(raw)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", raw)
	}

	raw, err := svc.Issue(42, "alice")
	require.NoError(t, err)
	_, err = svc.Verify(raw + "tampered")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDefaultTTL(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "test-secret"})

	raw, err := svc.Issue(1, "bob")
	require.NoError(t, err)
	claims, err := svc.Verify(raw)
	require.NoError(t, err)

	remaining := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, (180 * time.Minute).Seconds(), remaining.Seconds(), 60)
}
