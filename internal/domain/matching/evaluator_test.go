package matching

import (
	"testing"
	"time"

	"github.com/phrazzld/scry-visual/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSession builds a session over the two-card scenario deck.
func newTestSession(t *testing.T) *domain.Session {
	t.Helper()

	cards := []domain.Card{
		{ID: 1, Term: "Hola", ImageURL: "img1"},
		{ID: 2, Term: "Gracias", ImageURL: "img2"},
	}
	tiles := Generate(cards, 10, seeded(11))
	require.Len(t, tiles, 4)

	s := domain.NewSession(100, 7, tiles, time.Now())
	s.ID = 1
	return s
}

func matchedIDs(s *domain.Session) []string {
	var ids []string
	for _, tile := range s.Tiles {
		if tile.Matched {
			ids = append(ids, tile.ID)
		}
	}
	return ids
}

func TestEvaluate_Scenario(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)

	res, err := Evaluate(s, "img_1", "term_1")
	require.NoError(t, err)
	assert.True(t, res.IsMatch)
	assert.False(t, res.AllMatched)
	assert.ElementsMatch(t, []string{"img_1", "term_1"}, matchedIDs(s))

	res, err = Evaluate(s, "img_2", "term_2")
	require.NoError(t, err)
	assert.True(t, res.IsMatch)
	assert.True(t, res.AllMatched)

	// Different cards never match, even once everything is paired.
	res, err = Evaluate(s, "img_1", "term_2")
	require.NoError(t, err)
	assert.False(t, res.IsMatch)
	assert.True(t, res.AllMatched)

	assert.Equal(t, 3, s.CardsViewed)
	assert.Equal(t, 2, s.CorrectMatches)
}

func TestEvaluate_NonMatches(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		tileA string
		tileB string
	}{
		{name: "same tile twice", tileA: "img_1", tileB: "img_1"},
		{name: "same term tile twice", tileA: "term_2", tileB: "term_2"},
		{name: "two images", tileA: "img_1", tileB: "img_2"},
		{name: "two terms", tileA: "term_1", tileB: "term_2"},
		{name: "image and other term", tileA: "img_2", tileB: "term_1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSession(t)
			res, err := Evaluate(s, tc.tileA, tc.tileB)

			require.NoError(t, err)
			assert.False(t, res.IsMatch)
			assert.False(t, res.AllMatched)
			assert.Empty(t, matchedIDs(s), "a non-match must not mark any tile")
			assert.Equal(t, 1, s.CardsViewed)
			assert.Equal(t, 0, s.CorrectMatches)
		})
	}
}

func TestEvaluate_Symmetric(t *testing.T) {
	t.Parallel()

	ids := []string{"img_1", "term_1", "img_2", "term_2"}
	for _, a := range ids {
		for _, b := range ids {
			ab, err := Evaluate(newTestSession(t), a, b)
			require.NoError(t, err)
			ba, err := Evaluate(newTestSession(t), b, a)
			require.NoError(t, err)

			assert.Equal(t, ab.IsMatch, ba.IsMatch, "evaluate(%s,%s) vs evaluate(%s,%s)", a, b, b, a)
		}
	}
}

func TestEvaluate_UnknownTile(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)

	_, err := Evaluate(s, "img_1", "term_99")
	assert.ErrorIs(t, err, domain.ErrTileNotFound)

	_, err = Evaluate(s, "bogus", "term_1")
	assert.ErrorIs(t, err, domain.ErrTileNotFound)

	assert.Equal(t, 0, s.CardsViewed, "failed checks must not be counted")
	assert.Empty(t, matchedIDs(s))
}

func TestEvaluate_EndedSession(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	s.End(time.Now())

	_, err := Evaluate(s, "img_1", "term_1")
	assert.ErrorIs(t, err, domain.ErrSessionEnded)
	assert.Equal(t, 0, s.CardsViewed)
	assert.Equal(t, 0, s.CorrectMatches)
	assert.Empty(t, matchedIDs(s))
}

func TestEvaluate_AllPairsInAnyOrder(t *testing.T) {
	t.Parallel()

	cards := makeCards(15)
	for seed := uint64(0); seed < 20; seed++ {
		rng := seeded(seed)
		tiles := Generate(cards, 10, rng)
		s := domain.NewSession(1, 1, tiles, time.Now())

		// Pair cards in a random order, presenting term first half the time.
		var cardIDs []int64
		for _, tile := range tiles {
			if tile.Kind == domain.TileKindImage {
				cardIDs = append(cardIDs, tile.CardID)
			}
		}
		rng.Shuffle(len(cardIDs), func(i, j int) { cardIDs[i], cardIDs[j] = cardIDs[j], cardIDs[i] })

		var last Result
		for i, id := range cardIDs {
			a, b := domain.TileID(domain.TileKindImage, id), domain.TileID(domain.TileKindTerm, id)
			if i%2 == 1 {
				a, b = b, a
			}
			var err error
			last, err = Evaluate(s, a, b)
			require.NoError(t, err)
			assert.True(t, last.IsMatch)
			assert.Equal(t, i == len(cardIDs)-1, last.AllMatched)
		}

		assert.True(t, last.AllMatched)
		assert.Equal(t, len(cardIDs), s.CorrectMatches)
		assert.Equal(t, s.PairCount(), s.CorrectMatches)
	}
}

func TestIsPair(t *testing.T) {
	t.Parallel()

	img := domain.Tile{ID: "img_3", CardID: 3, Kind: domain.TileKindImage}
	term := domain.Tile{ID: "term_3", CardID: 3, Kind: domain.TileKindTerm}
	otherTerm := domain.Tile{ID: "term_4", CardID: 4, Kind: domain.TileKindTerm}

	assert.True(t, IsPair(img, term))
	assert.True(t, IsPair(term, img))
	assert.False(t, IsPair(img, img))
	assert.False(t, IsPair(img, otherTerm))
}
