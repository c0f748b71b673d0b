package domain

import "time"

// Session holds the state of one attempt at the matching game for a deck.
//
// The tile order is fixed when the session is created. Only the matched flags,
// the counters and EndedAt change afterwards, and only through the session store.
type Session struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	DeckID         int64      `json:"deck_id"`
	Tiles          []Tile     `json:"tiles"`
	CardsViewed    int        `json:"cards_viewed"`
	CorrectMatches int        `json:"correct_matches"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
}

// NewSession creates an in-progress session for the given tiles.
// The ID is left zero; it is assigned by the session store.
func NewSession(userID, deckID int64, tiles []Tile, now time.Time) *Session {
	owned := make([]Tile, len(tiles))
	copy(owned, tiles)

	return &Session{
		UserID:    userID,
		DeckID:    deckID,
		Tiles:     owned,
		StartedAt: now.UTC(),
	}
}

// Ended reports whether the session has been closed.
func (s *Session) Ended() bool {
	return s.EndedAt != nil
}

// End closes the session at the given time. Ending an ended session is a no-op
// and keeps the original end time. It reports whether the session changed.
func (s *Session) End(now time.Time) bool {
	if s.Ended() {
		return false
	}
	t := now.UTC()
	s.EndedAt = &t
	return true
}

// PairCount returns the number of cards on the board.
func (s *Session) PairCount() int {
	n := 0
	for _, t := range s.Tiles {
		if t.Kind == TileKindImage {
			n++
		}
	}
	return n
}

// AllMatched reports whether every card on the board has been paired.
// It is derived from the tiles on every call.
func (s *Session) AllMatched() bool {
	for _, t := range s.Tiles {
		if t.Kind == TileKindImage && !t.Matched {
			return false
		}
	}
	return true
}

// FindTile returns the index of the tile with the given ID, or -1.
func (s *Session) FindTile(id string) int {
	for i := range s.Tiles {
		if s.Tiles[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	c := *s
	c.Tiles = make([]Tile, len(s.Tiles))
	copy(c.Tiles, s.Tiles)
	if s.EndedAt != nil {
		t := *s.EndedAt
		c.EndedAt = &t
	}
	return &c
}
