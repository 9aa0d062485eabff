// Package auth holds the credential and token primitives shared by the login
// flow and the request middleware: bcrypt password hashing, HS256 session
// tokens, and request-context attachment of the resolved user.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/userhub/accounts-api/internal/core/domain"
)

// HashPassword produces a salted bcrypt digest of the plaintext. The digest is
// self-describing (cost and salt are embedded), so hashing the same plaintext
// twice yields different digests that both verify. A failure here is an
// infrastructure error, never a validation outcome.
func HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", domain.ErrInvalidInput
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword reports whether plaintext matches the stored digest using
// bcrypt's constant-time comparison. Any mismatch, including a malformed
// digest, is a plain false — a negative result, not an error.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
