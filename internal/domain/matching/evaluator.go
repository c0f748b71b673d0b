package matching

import (
	"fmt"

	"github.com/phrazzld/scry-visual/internal/domain"
)

// Result is the outcome of evaluating one pairing attempt.
type Result struct {
	// IsMatch is true when the two tiles are the image and term of the same card.
	IsMatch bool `json:"is_match"`

	// AllMatched is true when every card on the board has been paired.
	AllMatched bool `json:"all_matched"`
}

// IsPair reports whether two tiles form a correct pair: they must come from
// the same card and show different faces. A tile never pairs with itself.
func IsPair(a, b domain.Tile) bool {
	return a.CardID == b.CardID && a.Kind != b.Kind
}

// Evaluate applies a pairing attempt of tiles tileA and tileB to the session.
//
// It fails with domain.ErrSessionEnded if the session is closed, and with
// domain.ErrTileNotFound if either tile is not on the board; in both cases the
// session is left untouched. Otherwise every call counts as a viewed attempt,
// and a correct pair marks both of its tiles matched and counts a correct match.
// Completion is recomputed from the tiles on every call.
func Evaluate(s *domain.Session, tileA, tileB string) (Result, error) {
	if s.Ended() {
		return Result{}, domain.ErrSessionEnded
	}

	ia := s.FindTile(tileA)
	if ia < 0 {
		return Result{}, fmt.Errorf("%w: %q", domain.ErrTileNotFound, tileA)
	}
	ib := s.FindTile(tileB)
	if ib < 0 {
		return Result{}, fmt.Errorf("%w: %q", domain.ErrTileNotFound, tileB)
	}

	isMatch := ia != ib && IsPair(s.Tiles[ia], s.Tiles[ib])
	if isMatch {
		cardID := s.Tiles[ia].CardID
		for i := range s.Tiles {
			if s.Tiles[i].CardID == cardID {
				s.Tiles[i].Matched = true
			}
		}
		s.CorrectMatches++
	}
	s.CardsViewed++

	return Result{
		IsMatch:    isMatch,
		AllMatched: s.AllMatched(),
	}, nil
}
