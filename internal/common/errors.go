// Package common carries the constants and sentinel errors shared by the
// LedgerKeeper server and CLI. Match the sentinels with errors.Is; they
// travel wrapped.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Request validation error. Wrapped with a human-readable reason,
	// e.g. fmt.Errorf("%w: amount must be positive", ErrorInvalidArgument).
	ErrorInvalidArgument = errors.New("invalid argument")

	// Credential errors. Unknown identifier and wrong password collapse into
	// the same value on purpose.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token errors. All of them surface identically at the API boundary;
	// the distinction exists for server-side logs and tests only.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrMalformedClaims = errors.New("malformed claims")

	// Authorization error (authenticated but not allowed).
	ErrForbidden = errors.New("forbidden")
)
