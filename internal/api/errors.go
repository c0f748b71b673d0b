package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scry-visual/internal/api/shared"
	"github.com/phrazzld/scry-visual/internal/domain"
	"github.com/phrazzld/scry-visual/internal/service/auth"
	"github.com/phrazzld/scry-visual/internal/service/visual"
	"github.com/phrazzld/scry-visual/internal/store"
)

// ReasonNoCardsAvailable tells clients that the deck exists but has nothing to play.
const ReasonNoCardsAvailable = "no_cards_available"

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidUserID):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, visual.ErrSessionNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, visual.ErrNoCardsAvailable),
		errors.Is(err, domain.ErrTileNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, domain.ErrSessionEnded):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidUserID):
		return "Invalid token"

	case errors.Is(err, visual.ErrSessionNotOwned):
		return "You do not own this session"

	case errors.Is(err, visual.ErrNoCardsAvailable):
		return "No cards available in this deck"

	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, store.ErrSessionNotFound):
		return "Session not found"

	case errors.Is(err, domain.ErrTileNotFound):
		return "Tile not found in session"

	case errors.Is(err, domain.ErrSessionEnded):
		return "Session has already ended"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request"

	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out"

	default:
		return "An unexpected error occurred"
	}
}

// errorReason returns the machine-readable reason code for errors that need one.
func errorReason(err error) string {
	if errors.Is(err, visual.ErrNoCardsAvailable) {
		return ReasonNoCardsAvailable
	}
	return ""
}

// HandleAPIError writes the error response for err, logging the details.
// defaultMessage replaces the generic message for unexpected server errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMessage != "" {
		message = defaultMessage
	}

	var opts []shared.ResponseOption
	if reason := errorReason(err); reason != "" {
		opts = append(opts, shared.WithReason(reason))
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return "Invalid " + toSnakeCase(fe.Field()) + ": " + getValidationTagMessage(fe.Tag())
	}
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "nefield":
		return "must differ from the other tile"
	default:
		return "validation failed"
	}
}

// toSnakeCase converts a Go field name such as TileA to its JSON form tile_a.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
