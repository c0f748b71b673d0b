package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-visual/internal/domain"
	"github.com/phrazzld/scry-visual/internal/platform/logger"
	"github.com/phrazzld/scry-visual/internal/store"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DriverName is the database/sql driver name registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Open opens a read-mostly connection to the SQLite database at path and checks it.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// CardSource implements store.CardSource over the cards and decks tables.
type CardSource struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure CardSource implements store.CardSource interface
var _ store.CardSource = (*CardSource)(nil)

// NewCardSource creates a card source reading from db.
// If logger is nil, a default logger will be used.
func NewCardSource(db store.DBTX, logger *slog.Logger) *CardSource {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardSource{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_card_source")),
	}
}

// ListCards implements store.CardSource.ListCards
func (s *CardSource) ListCards(ctx context.Context, deckID int64) ([]domain.Card, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM decks WHERE id = ?)`, deckID,
	).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check deck",
			slog.Int64("deck_id", deckID),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("deck", "get", "failed to check deck", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: id %d", store.ErrDeckNotFound, deckID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, deck_id, term, COALESCE(image_url, '')
		FROM cards
		WHERE deck_id = ?
		ORDER BY id
	`, deckID)
	if err != nil {
		return nil, store.NewStoreError("card", "list", "failed to query cards", err)
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
		return nil, store.NewStoreError("card", "list", "failed to iterate cards", err)
	}

	return cards, nil
}
