package memory

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/phrazzld/scry-visual/internal/domain"
	"github.com/phrazzld/scry-visual/internal/store"
)

// sessionEntry guards one session with its own lock.
type sessionEntry struct {
	mu      sync.Mutex
	session *domain.Session
}

// SessionStore implements store.SessionStore in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*sessionEntry
	lastID   atomic.Int64
	now      func() time.Time
	logger   *slog.Logger
}

// Ensure SessionStore implements store.SessionStore interface
var _ store.SessionStore = (*SessionStore)(nil)

// Option customizes a SessionStore.
type Option func(*SessionStore)

// WithClock sets the time source used for session start times.
func WithClock(now func() time.Time) Option {
	return func(s *SessionStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSessionStore creates an empty in-memory session store.
// If logger is nil, a default logger will be used.
func NewSessionStore(logger *slog.Logger, opts ...Option) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}

	s := &SessionStore{
		sessions: make(map[int64]*sessionEntry),
		now:      time.Now,
		logger:   logger.With(slog.String("component", "memory_session_store")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create implements store.SessionStore.Create
func (s *SessionStore) Create(
	ctx context.Context,
	userID, deckID int64,
	tiles []domain.Tile,
) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	session := domain.NewSession(userID, deckID, tiles, s.now())
	session.ID = s.lastID.Add(1)

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	s.logger.Debug("session created",
		slog.Int64("session_id", session.ID),
		slog.Int64("user_id", userID),
		slog.Int64("deck_id", deckID),
		slog.Int("tile_count", len(tiles)))

	return session.Clone(), nil
}

// Get implements store.SessionStore.Get
func (s *SessionStore) Get(ctx context.Context, id int64) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry, ok := s.entry(id)
	if !ok {
		return nil, store.ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.session.Clone(), nil
}

// Update implements store.SessionStore.Update
// The mutator runs on a copy that replaces the stored session only if it succeeds.
func (s *SessionStore) Update(
	ctx context.Context,
	id int64,
	fn store.SessionMutator,
) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry, ok := s.entry(id)
	if !ok {
		return nil, store.ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	working := entry.session.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}

	// Identity and board layout are fixed at creation.
	working.ID = entry.session.ID
	working.UserID = entry.session.UserID
	working.DeckID = entry.session.DeckID
	working.StartedAt = entry.session.StartedAt

	entry.session = working
	return working.Clone(), nil
}

// Len returns the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) entry(id int64) (*sessionEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[id]
	return entry, ok
}
