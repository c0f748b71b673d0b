package visual

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/phrazzld/scry-visual/internal/config"
	"github.com/phrazzld/scry-visual/internal/domain"
	"github.com/phrazzld/scry-visual/internal/domain/matching"
	"github.com/phrazzld/scry-visual/internal/events"
	"github.com/phrazzld/scry-visual/internal/platform/logger"
	"github.com/phrazzld/scry-visual/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// Option customizes a Service.
type Option func(*serviceImpl)

// WithRandFactory sets the source of randomness used for each new board.
// The factory is called once per Start.
func WithRandFactory(f func() *rand.Rand) Option {
	return func(s *serviceImpl) {
		if f != nil {
			s.newRand = f
		}
	}
}

// WithClock sets the time source used to end sessions and compute durations.
func WithClock(now func() time.Time) Option {
	return func(s *serviceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEventEmitter publishes session lifecycle events to emitter.
func WithEventEmitter(emitter events.EventEmitter) Option {
	return func(s *serviceImpl) {
		s.emitter = emitter
	}
}

type serviceImpl struct {
	cards    store.CardSource
	sessions store.SessionStore
	cfg      config.GameConfig
	newRand  func() *rand.Rand
	now      func() time.Time
	emitter  events.EventEmitter
	logger   *slog.Logger
}

// NewService creates a Service playing decks from cards and keeping sessions in sessions.
func NewService(
	cards store.CardSource,
	sessions store.SessionStore,
	cfg config.GameConfig,
	logger *slog.Logger,
	opts ...Option,
) (Service, error) {
	if cards == nil {
		return nil, errors.New("card source cannot be nil")
	}
	if sessions == nil {
		return nil, errors.New("session store cannot be nil")
	}
	if cfg.DefaultTileLimit <= 0 {
		return nil, fmt.Errorf("%w: default tile limit must be positive, got %d",
			ErrInvalidConfig, cfg.DefaultTileLimit)
	}
	if cfg.MaxTileLimit < cfg.DefaultTileLimit {
		return nil, fmt.Errorf("%w: max tile limit %d is below default %d",
			ErrInvalidConfig, cfg.MaxTileLimit, cfg.DefaultTileLimit)
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &serviceImpl{
		cards:    cards,
		sessions: sessions,
		cfg:      cfg,
		newRand:  matching.NewRand,
		now:      time.Now,
		logger:   logger.With(slog.String("component", "visual_service")),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// effectiveLimit applies the configured default and maximum to a requested limit.
func (s *serviceImpl) effectiveLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultTileLimit
	}
	if limit > s.cfg.MaxTileLimit {
		return s.cfg.MaxTileLimit
	}
	return limit
}

// Start implements Service.Start
func (s *serviceImpl) Start(ctx context.Context, userID, deckID int64, limit int) (*StartResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cards.ListCards(ctx, deckID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("deck not found", slog.Int64("deck_id", deckID))
			return nil, err
		}
		log.Error("failed to list deck cards",
			slog.Int64("deck_id", deckID),
			slog.String("error", err.Error()))
		return nil, NewServiceError("start", "failed to load deck", err)
	}

	cards = playableCards(cards, log)
	if len(cards) == 0 {
		log.Debug("deck has no playable cards", slog.Int64("deck_id", deckID))
		return nil, ErrNoCardsAvailable
	}

	effective := s.effectiveLimit(limit)
	tiles := matching.Generate(cards, effective, s.newRand())

	session, err := s.sessions.Create(ctx, userID, deckID, tiles)
	if err != nil {
		log.Error("failed to create session",
			slog.Int64("user_id", userID),
			slog.Int64("deck_id", deckID),
			slog.String("error", err.Error()))
		return nil, NewServiceError("start", "failed to create session", err)
	}

	log.Info("visual session started",
		slog.Int64("session_id", session.ID),
		slog.Int64("user_id", userID),
		slog.Int64("deck_id", deckID),
		slog.Int("requested_limit", limit),
		slog.Int("pairs", len(tiles)/2))

	s.emit(ctx, events.TypeSessionStarted, session, map[string]int{"pairs": len(tiles) / 2})

	return &StartResult{SessionID: session.ID, Tiles: session.Tiles}, nil
}

// Check implements Service.Check
func (s *serviceImpl) Check(
	ctx context.Context,
	sessionID, userID int64,
	tileA, tileB string,
) (*CheckResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		result    matching.Result
		completed bool
	)
	session, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		if sess.UserID != userID {
			return ErrSessionNotOwned
		}
		wasComplete := sess.AllMatched()
		r, err := matching.Evaluate(sess, tileA, tileB)
		if err != nil {
			return err
		}
		result = r
		completed = r.AllMatched && !wasComplete
		return nil
	})
	if err != nil {
		if isExpected(err) {
			log.Debug("check rejected",
				slog.Int64("session_id", sessionID),
				slog.Int64("user_id", userID),
				slog.String("reason", err.Error()))
			return nil, err
		}
		log.Error("failed to record check",
			slog.Int64("session_id", sessionID),
			slog.String("error", err.Error()))
		return nil, NewServiceError("check", "failed to update session", err)
	}

	log.Debug("check recorded",
		slog.Int64("session_id", sessionID),
		slog.Bool("is_match", result.IsMatch),
		slog.Bool("all_matched", result.AllMatched))

	if completed {
		s.emit(ctx, events.TypeSessionCompleted, session, s.Summarize(session))
	}

	return &CheckResult{
		IsMatch:        result.IsMatch,
		AllMatched:     result.AllMatched,
		CardsViewed:    session.CardsViewed,
		CorrectMatches: session.CorrectMatches,
		Tiles:          session.Tiles,
	}, nil
}

// End implements Service.End
func (s *serviceImpl) End(ctx context.Context, sessionID, userID int64) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	changed := false
	session, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		if sess.UserID != userID {
			return ErrSessionNotOwned
		}
		changed = sess.End(s.now())
		return nil
	})
	if err != nil {
		if isExpected(err) {
			return nil, err
		}
		log.Error("failed to end session",
			slog.Int64("session_id", sessionID),
			slog.String("error", err.Error()))
		return nil, NewServiceError("end", "failed to update session", err)
	}

	if changed {
		log.Info("visual session ended",
			slog.Int64("session_id", sessionID),
			slog.Int64("user_id", userID),
			slog.Int("cards_viewed", session.CardsViewed),
			slog.Int("correct_matches", session.CorrectMatches))
		s.emit(ctx, events.TypeSessionEnded, session, s.Summarize(session))
	}

	return session, nil
}

// Get implements Service.Get
func (s *serviceImpl) Get(ctx context.Context, sessionID, userID int64) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if isExpected(err) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get session",
			slog.Int64("session_id", sessionID),
			slog.String("error", err.Error()))
		return nil, NewServiceError("get", "failed to read session", err)
	}

	if session.UserID != userID {
		return nil, ErrSessionNotOwned
	}

	return session, nil
}

// Summarize implements Service.Summarize
func (s *serviceImpl) Summarize(session *domain.Session) Summary {
	return summarize(session, s.now())
}

// playableCards drops cards that cannot form a tile pair.
func playableCards(cards []domain.Card, log *slog.Logger) []domain.Card {
	playable := make([]domain.Card, 0, len(cards))
	for i := range cards {
		if err := cards[i].Validate(); err != nil {
			log.Warn("skipping unplayable card",
				slog.Int64("card_id", cards[i].ID),
				slog.String("reason", err.Error()))
			continue
		}
		playable = append(playable, cards[i])
	}
	return playable
}

// emit publishes a lifecycle event. Failures are logged; the session change
// has already been stored and stands.
func (s *serviceImpl) emit(ctx context.Context, eventType string, session *domain.Session, payload interface{}) {
	if s.emitter == nil {
		return
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	event, err := events.NewSessionEvent(eventType, session.ID, session.UserID, session.DeckID, payload)
	if err != nil {
		log.Error("failed to build session event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("session event handler failed",
			slog.String("event_type", eventType),
			slog.Int64("session_id", session.ID),
			slog.String("error", err.Error()))
	}
}

// isExpected reports whether err is a client-facing outcome rather than a failure.
func isExpected(err error) bool {
	return store.IsNotFoundError(err) ||
		errors.Is(err, ErrSessionNotOwned) ||
		errors.Is(err, domain.ErrSessionEnded) ||
		errors.Is(err, domain.ErrTileNotFound) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
