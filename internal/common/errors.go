// Package common defines shared constants and sentinel errors used across
// client and server layers of the user service. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Request validation errors.
	ErrInvalidRequest = errors.New("username and password are required")

	// Credential errors. Unknown username and wrong password collapse into
	// this single value so callers cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Token lifecycle errors.
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("invalid token signature")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenRevoked   = errors.New("token revoked")
)
