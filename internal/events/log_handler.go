package events

import (
	"context"
	"log/slog"
)

// LogHandler records every session event as a structured log line.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler writing to logger.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogHandler{logger: logger.With("component", "session_events")}
}

// HandleEvent implements EventHandler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *SessionEvent) error {
	attrs := []slog.Attr{
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.Int64("session_id", event.SessionID),
		slog.Int64("user_id", event.UserID),
		slog.Int64("deck_id", event.DeckID),
	}
	if len(event.Payload) > 0 {
		attrs = append(attrs, slog.String("payload", string(event.Payload)))
	}
	h.logger.LogAttrs(ctx, slog.LevelInfo, "session event", attrs...)
	return nil
}
