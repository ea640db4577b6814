package usecase

import "errors"

// Sentinel errors the services return; the HTTP layer maps each one to
// a status code.
var (
	// ErrInvalidInput covers malformed requests and import payloads the
	// validators reject.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks lookups for entries, players, or games that do
	// not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized marks admin operations called without the admin
	// key.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDependencyUnavailable marks stat provider outages, including a
	// rejecting circuit breaker.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
