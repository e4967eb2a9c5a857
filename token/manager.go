// Package token mints signed HS256 session tokens for authenticated
// users. Verification of inbound tokens is deliberately out of scope for
// the account engine; Parse exists for hosts and tests that want to
// inspect what was minted.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config defines the token manager's signing policy.
type Config struct {
	SigningKey []byte
	TTL        time.Duration
	Issuer     string
}

// Claims carried by a minted session token.
type Claims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// Manager issues session tokens. Immutable after NewManager.
type Manager struct {
	config Config
}

func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.SigningKey) == 0 {
		return nil, errors.New("signing key required")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}

	return &Manager{config: cfg}, nil
}

// Issue mints an HS256 token for userID, expiring after the configured
// TTL.
func (m *Manager) Issue(userID string) (string, error) {
	now := time.Now()

	claims := Claims{
		UID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.config.SigningKey)
}

// Parse validates signature and expiry and returns the claims.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.config.SigningKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
