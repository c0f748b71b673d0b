package matching

import (
	"math/rand/v2"

	"github.com/phrazzld/scry-visual/internal/domain"
)

// NewRand returns an independent generator seeded from the runtime's global source.
// Each call yields its own state, so results can be used without synchronization.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Generate builds the game board for a set of cards.
//
// It samples up to limit cards without replacement, emits one image tile and
// one term tile per sampled card, and shuffles the full sequence. The result
// always holds 2*min(limit, len(cards)) tiles; it is empty when there are no
// cards or limit is not positive. The cards slice is not modified.
//
// A nil rng uses a fresh source from NewRand.
func Generate(cards []domain.Card, limit int, rng *rand.Rand) []domain.Tile {
	if len(cards) == 0 || limit <= 0 {
		return []domain.Tile{}
	}
	if rng == nil {
		rng = NewRand()
	}

	picked := sample(cards, limit, rng)

	tiles := make([]domain.Tile, 0, 2*len(picked))
	for _, c := range picked {
		tiles = append(tiles, domain.NewImageTile(c), domain.NewTermTile(c))
	}

	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	return tiles
}

// sample selects min(n, len(cards)) cards uniformly at random without replacement,
// using a partial Fisher-Yates shuffle over a copy of the index space.
func sample(cards []domain.Card, n int, rng *rand.Rand) []domain.Card {
	if n > len(cards) {
		n = len(cards)
	}

	idx := make([]int, len(cards))
	for i := range idx {
		idx[i] = i
	}

	out := make([]domain.Card, n)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = cards[idx[i]]
	}
	return out
}
