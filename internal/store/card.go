package store

import (
	"context"

	"github.com/phrazzld/scry-visual/internal/domain"
)

// CardSource supplies the cards of a deck to the matching game.
// The game treats deck contents as read-only input; card and deck
// management live outside this service.
type CardSource interface {
	// ListCards returns every card of the deck, ordered by card ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	// An existing deck without cards yields an empty slice and no error.
	ListCards(ctx context.Context, deckID int64) ([]domain.Card, error)
}
