package domain

import (
	"fmt"
	"strconv"
)

// TileKind distinguishes the two faces of a card on the game board.
type TileKind string

// Possible tile kinds
const (
	TileKindImage TileKind = "image"
	TileKindTerm  TileKind = "term"
)

// IsValid reports whether k is a known tile kind.
func (k TileKind) IsValid() bool {
	return k == TileKindImage || k == TileKindTerm
}

// prefix returns the identifier prefix used for tiles of this kind.
func (k TileKind) prefix() string {
	if k == TileKindImage {
		return "img"
	}
	return "term"
}

// Tile is one selectable square of the game board. Every sampled card
// produces exactly two tiles: one showing its image and one showing its term.
type Tile struct {
	ID      string   `json:"id"`
	CardID  int64    `json:"card_id"`
	Kind    TileKind `json:"kind"`
	Payload string   `json:"payload"`
	Matched bool     `json:"matched"`
}

// TileID builds the session-unique identifier of a tile, e.g. "img_42" or "term_42".
func TileID(kind TileKind, cardID int64) string {
	return kind.prefix() + "_" + strconv.FormatInt(cardID, 10)
}

// NewImageTile returns the unmatched image tile for a card.
func NewImageTile(c Card) Tile {
	return Tile{
		ID:      TileID(TileKindImage, c.ID),
		CardID:  c.ID,
		Kind:    TileKindImage,
		Payload: c.ImageURL,
	}
}

// NewTermTile returns the unmatched term tile for a card.
func NewTermTile(c Card) Tile {
	return Tile{
		ID:      TileID(TileKindTerm, c.ID),
		CardID:  c.ID,
		Kind:    TileKindTerm,
		Payload: c.Term,
	}
}

// String implements fmt.Stringer for log output.
func (t Tile) String() string {
	return fmt.Sprintf("%s(card=%d, matched=%t)", t.ID, t.CardID, t.Matched)
}
