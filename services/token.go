package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenConfig carries the signing parameters for session tokens. It is
// injected at construction so environments can rotate secrets and tests can
// shrink the TTL without touching package state.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// Claims binds a token to a user identity. Subject holds the username.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. Verification is pure
// computation; tokens stay valid until expiry regardless of later credential
// changes (stateless sessions, no revocation list).
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService from explicit configuration.
func NewTokenService(cfg TokenConfig) *TokenService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 180 * time.Minute
	}
	return &TokenService{secret: []byte(cfg.Secret), ttl: ttl}
}

// Issue signs a token for the given identity, expiring after the configured TTL.
func (s *TokenService) Issue(userID uint, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token. Any structural corruption, signature
// mismatch, or expiry yields ErrTokenInvalid.
func (s *TokenService) Verify(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
