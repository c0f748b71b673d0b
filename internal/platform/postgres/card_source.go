package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-visual/internal/domain"
	"github.com/phrazzld/scry-visual/internal/platform/logger"
	"github.com/phrazzld/scry-visual/internal/store"
)

const (
	listCardsQuery = `
		SELECT id, deck_id, term, COALESCE(image_url, '')
		FROM cards
		WHERE deck_id = $1
		ORDER BY id`

	deckExistsQuery = `SELECT EXISTS(SELECT 1 FROM decks WHERE id = $1)`
)

// PostgresCardSource implements store.CardSource over the decks and cards tables.
type PostgresCardSource struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresCardSource implements store.CardSource interface
var _ store.CardSource = (*PostgresCardSource)(nil)

// NewPostgresCardSource creates a card source reading from db.
// If logger is nil, a default logger will be used.
func NewPostgresCardSource(db store.DBTX, logger *slog.Logger) *PostgresCardSource {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardSource{
		db:     db,
		logger: logger.With(slog.String("component", "card_source")),
	}
}

// ListCards implements store.CardSource.ListCards
func (s *PostgresCardSource) ListCards(ctx context.Context, deckID int64) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, listCardsQuery, deckID)
	if err != nil {
		log.Error("failed to query cards",
			slog.Int64("deck_id", deckID),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("card", "list", "failed to query cards", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	cards := []domain.Card{}
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(&card.ID, &card.DeckID, &card.Term, &card.ImageURL); err != nil {
			return nil, store.NewStoreError("card", "list", "failed to scan card", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("card", "list", "failed to iterate cards", MapError(err))
	}

	if len(cards) > 0 {
		return cards, nil
	}

	// No cards: distinguish an empty deck from a missing one.
	var exists bool
	if err := s.db.QueryRowContext(ctx, deckExistsQuery, deckID).Scan(&exists); err != nil {
		return nil, store.NewStoreError("deck", "get", "failed to check deck", MapError(err))
	}
	if !exists {
		return nil, fmt.Errorf("%w: id %d", store.ErrDeckNotFound, deckID)
	}

	return cards, nil
}
