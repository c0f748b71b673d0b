package visual

import (
	"time"

	"github.com/phrazzld/scry-visual/internal/domain"
)

// Summary aggregates a session's progress for end-of-game reporting.
type Summary struct {
	Pairs           int     `json:"pairs"`
	PairsMatched    int     `json:"pairs_matched"`
	Attempts        int     `json:"attempts"`
	CorrectMatches  int     `json:"correct_matches"`
	Accuracy        float64 `json:"accuracy"`
	DurationSeconds float64 `json:"duration_seconds"`
	Completed       bool    `json:"completed"`
	Ended           bool    `json:"ended"`
}

// summarize computes a Summary. Open sessions are measured up to now.
func summarize(s *domain.Session, now time.Time) Summary {
	matched := 0
	for _, t := range s.Tiles {
		if t.Kind == domain.TileKindImage && t.Matched {
			matched++
		}
	}

	var accuracy float64
	if s.CardsViewed > 0 {
		accuracy = float64(s.CorrectMatches) / float64(s.CardsViewed)
	}

	end := now
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	duration := end.Sub(s.StartedAt)
	if duration < 0 {
		duration = 0
	}

	return Summary{
		Pairs:           s.PairCount(),
		PairsMatched:    matched,
		Attempts:        s.CardsViewed,
		CorrectMatches:  s.CorrectMatches,
		Accuracy:        accuracy,
		DurationSeconds: duration.Seconds(),
		Completed:       s.AllMatched(),
		Ended:           s.Ended(),
	}
}
