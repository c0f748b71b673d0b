package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type limitRequest struct {
	Limit int `json:"limit" validate:"min=1"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		anyErr  bool
		want    int
	}{
		{name: "valid", body: `{"limit":3}`, want: 3},
		{name: "empty", body: "", wantErr: ErrEmptyBody},
		{name: "unknown field", body: `{"limit":3,"extra":true}`, anyErr: true},
		{name: "malformed", body: `{"limit":`, anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var v limitRequest
			err := DecodeJSON(req, &v)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, v.Limit)
			}
		})
	}
}

func TestDecodeOptionalJSON_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	v := limitRequest{Limit: 5}
	require.NoError(t, DecodeOptionalJSON(req, &v))
	assert.Equal(t, 5, v.Limit)
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(&limitRequest{Limit: 1}))
	assert.Error(t, ValidateRequest(&limitRequest{Limit: 0}))
}

func TestUserIDContext(t *testing.T) {
	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	_, ok = GetUserID(WithUserID(context.Background(), 0))
	assert.False(t, ok, "non-positive IDs are rejected")

	id, ok := GetUserID(WithUserID(context.Background(), 42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	a := GetTraceID(SetTraceID(context.Background()))
	b := GetTraceID(SetTraceID(context.Background()))
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestRespondWithErrorAndLog_HidesError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "Something failed",
		errors.New("pq: password=hunter2 rejected"), WithReason("db_down"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotContains(t, rec.Body.String(), "hunter2")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Something failed", resp.Error)
	assert.Equal(t, "db_down", resp.Reason)
}
