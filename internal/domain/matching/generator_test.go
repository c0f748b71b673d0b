package matching

import (
	"math/rand/v2"
	"testing"

	"github.com/phrazzld/scry-visual/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func makeCards(n int) []domain.Card {
	cards := make([]domain.Card, n)
	for i := range cards {
		id := int64(i + 1)
		cards[i] = domain.Card{
			ID:       id,
			DeckID:   7,
			Term:     "term-" + domain.TileID(domain.TileKindTerm, id),
			ImageURL: "https://img.example/" + domain.TileID(domain.TileKindImage, id) + ".png",
		}
	}
	return cards
}

func TestGenerate_Length(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		cards    int
		limit    int
		expected int
	}{
		{name: "no cards", cards: 0, limit: 10, expected: 0},
		{name: "zero limit", cards: 5, limit: 0, expected: 0},
		{name: "negative limit", cards: 5, limit: -3, expected: 0},
		{name: "fewer cards than limit", cards: 3, limit: 10, expected: 6},
		{name: "more cards than limit", cards: 20, limit: 10, expected: 20},
		{name: "exactly limit", cards: 4, limit: 4, expected: 8},
		{name: "single card", cards: 1, limit: 1, expected: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tiles := Generate(makeCards(tc.cards), tc.limit, seeded(42))

			require.NotNil(t, tiles)
			assert.Len(t, tiles, tc.expected)
			assert.Equal(t, 0, len(tiles)%2, "tile count must be even")
		})
	}
}

func TestGenerate_OneImageAndOneTermPerCard(t *testing.T) {
	t.Parallel()

	cards := makeCards(12)
	for seed := uint64(0); seed < 50; seed++ {
		tiles := Generate(cards, 5, seeded(seed))
		require.Len(t, tiles, 10)

		ids := make(map[string]bool, len(tiles))
		kinds := make(map[int64]map[domain.TileKind]int)
		for _, tile := range tiles {
			assert.False(t, ids[tile.ID], "duplicate tile id %s", tile.ID)
			ids[tile.ID] = true
			assert.False(t, tile.Matched)
			assert.Equal(t, domain.TileID(tile.Kind, tile.CardID), tile.ID)

			if kinds[tile.CardID] == nil {
				kinds[tile.CardID] = make(map[domain.TileKind]int)
			}
			kinds[tile.CardID][tile.Kind]++
		}

		assert.Len(t, kinds, 5)
		for cardID, byKind := range kinds {
			assert.Equal(t, 1, byKind[domain.TileKindImage], "card %d image tiles", cardID)
			assert.Equal(t, 1, byKind[domain.TileKindTerm], "card %d term tiles", cardID)
		}
	}
}

func TestGenerate_Payloads(t *testing.T) {
	t.Parallel()

	cards := []domain.Card{
		{ID: 1, Term: "Hola", ImageURL: "img1"},
		{ID: 2, Term: "Gracias", ImageURL: "img2"},
	}

	tiles := Generate(cards, 10, seeded(1))
	require.Len(t, tiles, 4)

	byID := make(map[string]domain.Tile)
	for _, tile := range tiles {
		byID[tile.ID] = tile
	}

	assert.Equal(t, "img1", byID["img_1"].Payload)
	assert.Equal(t, domain.TileKindImage, byID["img_1"].Kind)
	assert.Equal(t, "Hola", byID["term_1"].Payload)
	assert.Equal(t, domain.TileKindTerm, byID["term_1"].Kind)
	assert.Equal(t, "img2", byID["img_2"].Payload)
	assert.Equal(t, "Gracias", byID["term_2"].Payload)
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	cards := makeCards(30)

	first := Generate(cards, 8, seeded(99))
	second := Generate(cards, 8, seeded(99))
	assert.Equal(t, first, second, "same seed must produce the same board")

	other := Generate(cards, 8, seeded(100))
	assert.NotEqual(t, first, other, "different seeds should produce different boards")
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	cards := makeCards(10)
	original := make([]domain.Card, len(cards))
	copy(original, cards)

	_ = Generate(cards, 4, seeded(3))

	assert.Equal(t, original, cards)
}

func TestGenerate_SamplesEveryCard(t *testing.T) {
	t.Parallel()

	// With enough draws every card should be sampled at least once.
	cards := makeCards(6)
	seen := make(map[int64]bool)
	rng := seeded(5)
	for i := 0; i < 200; i++ {
		for _, tile := range Generate(cards, 2, rng) {
			seen[tile.CardID] = true
		}
	}

	assert.Len(t, seen, len(cards))
}

func TestGenerate_NilRand(t *testing.T) {
	t.Parallel()

	tiles := Generate(makeCards(3), 2, nil)
	assert.Len(t, tiles, 4)
}
