// Package common defines shared constants and sentinel errors used across
// the client and server layers of userkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Account errors.
	ErrDuplicateIdentity  = errors.New("user with this name already exists")
	ErrIdentityNotFound   = errors.New("user with this name not exists")
	ErrCredentialMismatch = errors.New("user or password incorrect")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
