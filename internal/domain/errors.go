// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrTileNotFound is returned when a tile ID does not belong to the session.
	// It usually means the client referenced stale or invalid tile identifiers.
	ErrTileNotFound = errors.New("tile not found in session")

	// ErrSessionEnded is returned when a session that has already ended is mutated.
	ErrSessionEnded = errors.New("session has already ended")
)
