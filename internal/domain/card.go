package domain

import (
	"fmt"
	"strings"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card has no identifier.
	ErrCardIDEmpty = fmt.Errorf("%w: card ID cannot be empty", ErrValidation)

	// ErrCardTermEmpty is returned when a card has no display term.
	ErrCardTermEmpty = fmt.Errorf("%w: card term cannot be empty", ErrValidation)
)

// Card is a single flashcard as supplied by a deck's card source.
// The matching game only reads cards; it never modifies them.
type Card struct {
	ID       int64  `json:"id"`
	DeckID   int64  `json:"deck_id"`
	Term     string `json:"term"`
	ImageURL string `json:"image_url"`
}

// Validate checks if the Card has the fields needed to build tiles.
func (c *Card) Validate() error {
	if c.ID == 0 {
		return ErrCardIDEmpty
	}

	if strings.TrimSpace(c.Term) == "" {
		return ErrCardTermEmpty
	}

	return nil
}
