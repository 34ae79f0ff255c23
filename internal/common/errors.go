// Package common defines shared constants and sentinel errors used across
// client and server layers of todokeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrBadCredential means the password did not match the stored hash.
	// It never leaves the server: callers only ever see ErrorUnauthorized.
	ErrBadCredential = errors.New("bad credential")

	// Token errors (bad signature, malformed structure, missing claims).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
