package api

import (
	"time"

	"github.com/phrazzld/scry-visual/internal/domain"
	"github.com/phrazzld/scry-visual/internal/service/visual"
)

// StartSessionRequest defines the optional payload for starting a game.
// A missing limit uses the server default.
type StartSessionRequest struct {
	Limit *int `json:"limit,omitempty" validate:"omitempty,min=1"`
}

// StartSessionResponse is returned when a game board is created.
type StartSessionResponse struct {
	SessionID int64         `json:"session_id"`
	Tiles     []domain.Tile `json:"tiles"`
}

// CheckMatchRequest names the two tiles the player turned over.
type CheckMatchRequest struct {
	TileA string `json:"tile_a" validate:"required,max=64"`
	TileB string `json:"tile_b" validate:"required,max=64,nefield=TileA"`
}

// CheckMatchResponse reports the outcome of a move and the board after it.
type CheckMatchResponse struct {
	IsMatch        bool          `json:"is_match"`
	AllMatched     bool          `json:"all_matched"`
	CardsViewed    int           `json:"cards_viewed"`
	CorrectMatches int           `json:"correct_matches"`
	Tiles          []domain.Tile `json:"tiles"`
}

// EndSessionResponse confirms that a session was ended.
type EndSessionResponse struct {
	Message string         `json:"message"`
	Summary visual.Summary `json:"summary"`
}

// SessionResponse is a snapshot of a session's progress.
type SessionResponse struct {
	ID             int64          `json:"id"`
	DeckID         int64          `json:"deck_id"`
	Tiles          []domain.Tile  `json:"tiles"`
	CardsViewed    int            `json:"cards_viewed"`
	CorrectMatches int            `json:"correct_matches"`
	StartedAt      time.Time      `json:"started_at"`
	EndedAt        *time.Time     `json:"ended_at,omitempty"`
	Summary        visual.Summary `json:"summary"`
}
