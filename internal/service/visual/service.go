package visual

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/scry-visual/internal/domain"
)

// StartResult describes a freshly created game board.
type StartResult struct {
	SessionID int64         `json:"session_id"`
	Tiles     []domain.Tile `json:"tiles"`
}

// CheckResult is the outcome of one pairing move.
type CheckResult struct {
	IsMatch        bool          `json:"is_match"`
	AllMatched     bool          `json:"all_matched"`
	CardsViewed    int           `json:"cards_viewed"`
	CorrectMatches int           `json:"correct_matches"`
	Tiles          []domain.Tile `json:"tiles"`
}

// Service manages matching game sessions.
type Service interface {
	// Start builds a shuffled board from the deck and opens a session for the user.
	//
	// A limit of zero or less uses the configured default; a limit above the
	// configured maximum is clamped to it.
	//
	// Returns:
	//   - (*StartResult, nil): The new session ID and its tiles in display order
	//   - (nil, store.ErrDeckNotFound): If the deck does not exist
	//   - (nil, ErrNoCardsAvailable): If the deck has no cards
	Start(ctx context.Context, userID, deckID int64, limit int) (*StartResult, error)

	// Check evaluates whether two tiles form a pair and records the attempt.
	//
	// Returns:
	//   - (nil, store.ErrSessionNotFound): If the session does not exist
	//   - (nil, ErrSessionNotOwned): If the session belongs to another user
	//   - (nil, domain.ErrSessionEnded): If the session has been ended
	//   - (nil, domain.ErrTileNotFound): If either tile is not on the board
	Check(ctx context.Context, sessionID, userID int64, tileA, tileB string) (*CheckResult, error)

	// End closes the session. Ending an ended session succeeds and keeps the
	// original end time.
	End(ctx context.Context, sessionID, userID int64) (*domain.Session, error)

	// Get returns a snapshot of the session's progress.
	Get(ctx context.Context, sessionID, userID int64) (*domain.Session, error)

	// Summarize reports aggregate statistics for a session snapshot.
	Summarize(s *domain.Session) Summary
}

// Common error types for Service
var (
	// ErrNoCardsAvailable indicates that the deck exists but has no cards to play with.
	ErrNoCardsAvailable = errors.New("no cards available in deck")

	// ErrSessionNotOwned indicates that the session belongs to a different user.
	// API layer should map this to HTTP 403 Forbidden.
	ErrSessionNotOwned = errors.New("unauthorized access: session not owned by user")

	// ErrInvalidConfig indicates the service was constructed with unusable game settings.
	ErrInvalidConfig = errors.New("invalid game configuration")
)

// ServiceError wraps errors from the visual game service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start", "check")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError returns a new ServiceError for the given operation.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
