package store

import (
	"context"

	"github.com/phrazzld/scry-visual/internal/domain"
)

// SessionMutator changes a session inside the store's critical section.
// Returning an error aborts the update; nothing the mutator changed is kept.
type SessionMutator func(s *domain.Session) error

// SessionStore defines the interface for game session persistence.
//
// The store exclusively owns session state. Every session it hands out is a
// copy, so callers only ever hold session IDs between calls.
type SessionStore interface {
	// Create stores a new session for the user and deck with the given tile order.
	// The store assigns a fresh unique ID, zero counters and the start time.
	// The tile order is kept exactly as given for the lifetime of the session.
	Create(ctx context.Context, userID, deckID int64, tiles []domain.Tile) (*domain.Session, error)

	// Get retrieves a session by ID.
	// Returns ErrSessionNotFound if the session does not exist.
	Get(ctx context.Context, id int64) (*domain.Session, error)

	// Update runs fn on the session as a single atomic read-modify-write.
	//
	// Updates of the same session are strictly serialized and never lost;
	// updates of different sessions do not block each other. If fn returns an
	// error, the stored session is left unchanged and that error is returned
	// as is. Returns ErrSessionNotFound if the session does not exist.
	Update(ctx context.Context, id int64, fn SessionMutator) (*domain.Session, error)
}
