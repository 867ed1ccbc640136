// Package token issues and verifies the opaque bearer credentials that
// prove a request acts on behalf of a registered user.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chordbook/internal/apperr"
)

// JWT issues and verifies HS256-signed identity tokens whose subject is the
// user id.
type JWT struct {
	secret []byte
	ttl    time.Duration
}

// NewJWT constructs a JWT helper. secret is the HMAC signing key and ttl the
// lifetime of issued tokens.
func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for the given user id.
func (j *JWT) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string and returns the user id it was
// issued for. Any failure — bad signature, wrong signing method, expiry,
// malformed token — is reported as apperr.ErrUnauthenticated.
func (j *JWT) Verify(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("verify token: %w", apperr.ErrUnauthenticated)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject: %w", apperr.ErrUnauthenticated)
	}
	return claims.Subject, nil
}
