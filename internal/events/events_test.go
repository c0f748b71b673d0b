package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionEvent(t *testing.T) {
	type payload struct {
		Pairs int `json:"pairs"`
	}

	event, err := NewSessionEvent(TypeSessionStarted, 1, 2, 3, payload{Pairs: 4})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeSessionStarted, event.Type)
	assert.Equal(t, int64(1), event.SessionID)
	assert.False(t, event.CreatedAt.IsZero())

	var got payload
	require.NoError(t, event.UnmarshalPayload(&got))
	assert.Equal(t, 4, got.Pairs)

	empty, err := NewSessionEvent(TypeSessionEnded, 1, 2, 3, nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Payload)

	_, err = NewSessionEvent(TypeSessionEnded, 1, 2, 3, make(chan int))
	assert.Error(t, err)
}

func TestInMemoryEventEmitter(t *testing.T) {
	emitter := NewInMemoryEventEmitter(nil)
	event, err := NewSessionEvent(TypeSessionEnded, 1, 2, 3, nil)
	require.NoError(t, err)

	assert.NoError(t, emitter.EmitEvent(context.Background(), event), "no handlers is fine")

	var mu sync.Mutex
	var seen []string
	record := func(name string, err error) EventHandler {
		return EventHandlerFunc(func(ctx context.Context, e *SessionEvent) error {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, name)
			return err
		})
	}

	first := errors.New("first")
	emitter.RegisterHandler(record("a", nil))
	emitter.RegisterHandler(record("b", first))
	emitter.RegisterHandler(record("c", errors.New("second")))

	err = emitter.EmitEvent(context.Background(), event)
	assert.ErrorIs(t, err, first)
	assert.Equal(t, []string{"a", "b", "c"}, seen, "every handler runs despite failures")
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHandler(slog.New(slog.NewJSONHandler(&buf, nil)))

	event, err := NewSessionEvent(TypeSessionCompleted, 9, 42, 1, map[string]int{"attempts": 3})
	require.NoError(t, err)
	require.NoError(t, h.HandleEvent(context.Background(), event))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "session event", line["msg"])
	assert.Equal(t, TypeSessionCompleted, line["event_type"])
	assert.Equal(t, float64(9), line["session_id"])
	assert.JSONEq(t, `{"attempts":3}`, line["payload"].(string))
}
