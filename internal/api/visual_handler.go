package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-visual/internal/api/shared"
	"github.com/phrazzld/scry-visual/internal/domain"
	"github.com/phrazzld/scry-visual/internal/platform/logger"
	"github.com/phrazzld/scry-visual/internal/service/visual"
)

// URL parameter names used by the visual game routes.
const (
	DeckIDParam    = "deckID"
	SessionIDParam = "sessionID"
)

// VisualHandler handles matching game HTTP requests.
type VisualHandler struct {
	service visual.Service
	logger  *slog.Logger
}

// NewVisualHandler creates a new VisualHandler
func NewVisualHandler(service visual.Service, logger *slog.Logger) *VisualHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil for VisualHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for VisualHandler")
	}

	return &VisualHandler{
		service: service,
		logger:  logger.With(slog.String("component", "visual_handler")),
	}
}

// StartSession handles POST /api/visual/decks/{deckID}/sessions requests.
// It builds a new shuffled board for the deck.
func (h *VisualHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathID(w, r, DeckIDParam, log)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := shared.DecodeOptionalJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	limit := 0
	if req.Limit != nil {
		limit = *req.Limit
	}

	result, err := h.service.Start(r.Context(), userID, deckID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start session")
		return
	}

	log.Debug("session started",
		slog.Int64("session_id", result.SessionID),
		slog.Int64("deck_id", deckID))
	shared.RespondWithJSON(w, r, http.StatusCreated, StartSessionResponse{
		SessionID: result.SessionID,
		Tiles:     result.Tiles,
	})
}

// CheckMatch handles POST /api/visual/sessions/{sessionID}/check requests.
// It records one pairing move.
func (h *VisualHandler) CheckMatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, sessionID, ok := handleUserIDAndPathID(w, r, SessionIDParam, log)
	if !ok {
		return
	}

	var req CheckMatchRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.service.Check(r.Context(), sessionID, userID, req.TileA, req.TileB)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check match")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CheckMatchResponse{
		IsMatch:        result.IsMatch,
		AllMatched:     result.AllMatched,
		CardsViewed:    result.CardsViewed,
		CorrectMatches: result.CorrectMatches,
		Tiles:          result.Tiles,
	})
}

// EndSession handles POST /api/visual/sessions/{sessionID}/end requests.
func (h *VisualHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, sessionID, ok := handleUserIDAndPathID(w, r, SessionIDParam, log)
	if !ok {
		return
	}

	session, err := h.service.End(r.Context(), sessionID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to end session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, EndSessionResponse{
		Message: "Session ended",
		Summary: h.service.Summarize(session),
	})
}

// GetSession handles GET /api/visual/sessions/{sessionID} requests.
// It returns the board and progress so a client can resume a game.
func (h *VisualHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, sessionID, ok := handleUserIDAndPathID(w, r, SessionIDParam, log)
	if !ok {
		return
	}

	session, err := h.service.Get(r.Context(), sessionID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session, h.service.Summarize(session)))
}

func sessionToResponse(s *domain.Session, summary visual.Summary) SessionResponse {
	return SessionResponse{
		ID:             s.ID,
		DeckID:         s.DeckID,
		Tiles:          s.Tiles,
		CardsViewed:    s.CardsViewed,
		CorrectMatches: s.CorrectMatches,
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
		Summary:        summary,
	}
}
