//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/scry-visual/internal/domain"
	"github.com/phrazzld/scry-visual/internal/domain/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openIntegrationDB(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(context.Background(), db, MigrateUp, nil))
	return db
}

func TestPostgresSessionStore_ConcurrentChecks_Integration(t *testing.T) {
	db := openIntegrationDB(t)
	ctx := context.Background()
	s := NewPostgresSessionStore(db, nil)

	cards := []domain.Card{
		{ID: 1, DeckID: 1, Term: "Cat", ImageURL: "cat.png"},
		{ID: 2, DeckID: 1, Term: "Dog", ImageURL: "dog.png"},
	}
	session, err := s.Create(ctx, 1, 1, matching.Generate(cards, 10, nil))
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM visual_sessions WHERE id = $1", session.ID)
	})

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update(ctx, session.ID, func(sess *domain.Session) error {
				_, err := matching.Evaluate(sess, "img_1", "term_1")
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, got.CardsViewed)
	assert.Equal(t, workers, got.CorrectMatches)
	assert.False(t, got.AllMatched())
}
