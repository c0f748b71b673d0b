package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-visual/internal/domain"
	"github.com/phrazzld/scry-visual/internal/platform/logger"
	"github.com/phrazzld/scry-visual/internal/store"
)

const (
	insertSessionQuery = `
		INSERT INTO visual_sessions (user_id, deck_id, tiles, cards_viewed, correct_matches, started_at)
		VALUES ($1, $2, $3, 0, 0, $4)
		RETURNING id`

	selectSessionQuery = `
		SELECT id, user_id, deck_id, tiles, cards_viewed, correct_matches, started_at, ended_at
		FROM visual_sessions
		WHERE id = $1`

	selectSessionForUpdateQuery = selectSessionQuery + `
		FOR UPDATE`

	updateSessionQuery = `
		UPDATE visual_sessions
		SET tiles = $2, cards_viewed = $3, correct_matches = $4, ended_at = $5
		WHERE id = $1`
)

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
//
// Updates lock the session row with SELECT ... FOR UPDATE, so concurrent
// moves on one session are serialized while other sessions proceed.
type PostgresSessionStore struct {
	db     *sql.DB
	now    func() time.Time
	logger *slog.Logger
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

// NewPostgresSessionStore creates a new PostgreSQL implementation of the SessionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db *sql.DB, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		now:    time.Now,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Create implements store.SessionStore.Create
func (s *PostgresSessionStore) Create(
	ctx context.Context,
	userID, deckID int64,
	tiles []domain.Tile,
) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session := domain.NewSession(userID, deckID, tiles, s.now())
	// Postgres stores microseconds; truncate so the returned session matches a later read.
	session.StartedAt = session.StartedAt.Truncate(time.Microsecond)

	tilesJSON, err := json.Marshal(session.Tiles)
	if err != nil {
		return nil, store.NewStoreError("session", "create", "failed to encode tiles", err)
	}

	err = s.db.QueryRowContext(ctx, insertSessionQuery,
		userID, deckID, tilesJSON, session.StartedAt,
	).Scan(&session.ID)
	if err != nil {
		log.Error("failed to insert session",
			slog.Int64("user_id", userID),
			slog.Int64("deck_id", deckID),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("session", "create", "failed to insert session", MapError(err))
	}

	log.Debug("session created",
		slog.Int64("session_id", session.ID),
		slog.Int64("user_id", userID),
		slog.Int64("deck_id", deckID),
		slog.Int("tile_count", len(tiles)))

	return session, nil
}

// Get implements store.SessionStore.Get
func (s *PostgresSessionStore) Get(ctx context.Context, id int64) (*domain.Session, error) {
	session, err := scanSession(s.db.QueryRowContext(ctx, selectSessionQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSessionNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get session",
			slog.Int64("session_id", id),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("session", "get", "failed to read session", MapError(err))
	}
	return session, nil
}

// Update implements store.SessionStore.Update
// The row stays locked from the read until the transaction commits.
func (s *PostgresSessionStore) Update(
	ctx context.Context,
	id int64,
	fn store.SessionMutator,
) (*domain.Session, error) {
	var updated *domain.Session

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		current, err := scanSession(tx.QueryRowContext(ctx, selectSessionForUpdateQuery, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.ErrSessionNotFound
			}
			return store.NewStoreError("session", "update", "failed to lock session", MapError(err))
		}

		working := current.Clone()
		if err := fn(working); err != nil {
			return err
		}

		// Identity and board layout are fixed at creation.
		working.ID = current.ID
		working.UserID = current.UserID
		working.DeckID = current.DeckID
		working.StartedAt = current.StartedAt

		tilesJSON, err := json.Marshal(working.Tiles)
		if err != nil {
			return store.NewStoreError("session", "update", "failed to encode tiles", err)
		}

		result, err := tx.ExecContext(ctx, updateSessionQuery,
			working.ID, tilesJSON, working.CardsViewed, working.CorrectMatches, working.EndedAt)
		if err != nil {
			return store.NewStoreError("session", "update", "failed to write session",
				fmt.Errorf("%w: %v", store.ErrUpdateFailed, MapError(err)))
		}
		if err := CheckRowsAffected(result, "session"); err != nil {
			return store.NewStoreError("session", "update", "session disappeared during update", err)
		}

		updated = working
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var (
		session   domain.Session
		tilesJSON []byte
		endedAt   sql.NullTime
	)

	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.DeckID,
		&tilesJSON,
		&session.CardsViewed,
		&session.CorrectMatches,
		&session.StartedAt,
		&endedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tilesJSON, &session.Tiles); err != nil {
		return nil, fmt.Errorf("failed to decode tiles of session %d: %w", session.ID, err)
	}
	if session.Tiles == nil {
		session.Tiles = []domain.Tile{}
	}
	session.StartedAt = session.StartedAt.UTC()
	if endedAt.Valid {
		t := endedAt.Time.UTC()
		session.EndedAt = &t
	}

	return &session, nil
}
