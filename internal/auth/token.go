package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userhub/accounts-api/internal/core/domain"
)

// IssueToken signs an HS256 session token for the given subject (a user id).
// Claims carry issued-at and expiry, expiry = now + maxAge. Signing only fails
// on secret or serialization problems, which are configuration errors.
func IssueToken(subject string, secret []byte, maxAge time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(maxAge)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// DecodeToken verifies the signature and expiry of a session token and returns
// its subject. The signing algorithm is pinned to HS256 so a token cannot
// downgrade itself. Expiry is strict: a token is rejected once the current
// time reaches expires_at.
//
// Failures are split into domain.ErrTokenExpired (valid signature, stale) and
// domain.ErrTokenInvalid (everything else) so callers can tell the two apart.
func DecodeToken(tokenString string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
