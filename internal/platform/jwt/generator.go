// Package jwtmw issues and verifies HS256 access tokens and provides the gin
// middleware that guards authenticated routes.
package jwtmw

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret is returned when a generator or verifier is built without a signing key.
var ErrEmptySecret = errors.New("jwt secret must not be empty")

// Generator creates signed access tokens bound to a user identity.
type Generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) (*Generator, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}, nil
}

// GenerateToken creates a signed JWT token with standard claims.
// The subject is the decimal user ID.
func (g *Generator) GenerateToken(userID uint) (string, error) {
	now := g.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
