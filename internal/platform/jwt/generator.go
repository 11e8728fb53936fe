// Package jwtmw issues and verifies the operator tokens guarding the
// watchlist write API.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret is returned when no signing secret is configured.
var ErrEmptySecret = errors.New("jwt secret is empty")

// Generator issues HS256 tokens for operators.
type Generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a generator. Tokens expire after expiration.
func NewGenerator(secret string, expiration time.Duration) (*Generator, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Generator{secret: []byte(secret), expiration: expiration, now: time.Now}, nil
}

// GenerateToken creates a signed token whose subject names the operator.
func (g *Generator) GenerateToken(subject string) (string, error) {
	now := g.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
