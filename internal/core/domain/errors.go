package domain

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUserExists       = errors.New("user with that email already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongCredentials = errors.New("invalid email or password")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrForbidden        = errors.New("access forbidden")

	// Token decode failures. The auth middleware collapses both into a plain
	// 401 so responses never reveal whether a token was forged or merely stale.
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
)
