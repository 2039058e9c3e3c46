package jwtmw

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated is returned for any token that is missing, malformed,
// expired or signed with the wrong key.
var ErrUnauthenticated = errors.New("unauthenticated")

// Verifier validates access tokens issued by Generator.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier creates a Verifier that accepts only HS256 tokens carrying an exp claim.
func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}, nil
}

// VerifyToken checks the signature and expiry of tokenStr and returns the embedded user ID.
func (v *Verifier) VerifyToken(tokenStr string) (uint, error) {
	if tokenStr == "" {
		return 0, ErrUnauthenticated
	}

	var claims jwt.RegisteredClaims
	token, err := v.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, fmt.Errorf("%w: invalid subject %q", ErrUnauthenticated, claims.Subject)
	}
	return uint(userID), nil
}
