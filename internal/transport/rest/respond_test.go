package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", domain.NewValidationError("prompt", "required"), http.StatusBadRequest, "validation: prompt: required"},
		{"wrapped validation", fmt.Errorf("set: %w", domain.NewValidationError("key", "unknown")), http.StatusBadRequest, "validation: key: unknown"},
		{"bare validation", fmt.Errorf("check: %w", domain.ErrValidation), http.StatusBadRequest, "check: validation error"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"not found", fmt.Errorf("get: %w", domain.ErrNotFound), http.StatusNotFound, "not found"},
		{"conflict", domain.NewConflictError("topics step is not active"), http.StatusConflict, "conflict: topics step is not active"},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			handleError(slog.New(slog.NewTextHandler(io.Discard, nil)), rec, req, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var resp errorResponse
			decodeBody(t, rec, &resp)
			assert.Equal(t, tt.msg, resp.Error)
		})
	}
}

func TestHandleError_ValidationFields(t *testing.T) {
	t.Parallel()

	err := domain.NewValidationErrors([]domain.FieldError{
		{Field: "website", Message: "must be a valid URL"},
		{Field: "objective", Message: "unknown objective"},
	})

	rec := httptest.NewRecorder()
	handleError(slog.New(slog.NewTextHandler(io.Discard, nil)), rec, httptest.NewRequest(http.MethodGet, "/", nil), err)

	var resp errorResponse
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Fields, 2)
	assert.Equal(t, fieldErrorResponse{Field: "website", Message: "must be a valid URL"}, resp.Fields[0])
}

func TestHandleError_ContextCanceledWritesNothing(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	handleError(slog.New(slog.NewTextHandler(io.Discard, nil)), rec, httptest.NewRequest(http.MethodGet, "/", nil), context.Canceled)

	assert.Empty(t, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Prompt string `json:"prompt"`
	}

	tests := []struct {
		name     string
		body     string
		optional bool
		wantErr  bool
	}{
		{"valid", `{"prompt":"hi"}`, false, false},
		{"empty required", ``, false, true},
		{"empty optional", ``, true, false},
		{"malformed", `{"prompt":`, false, true},
		{"unknown field", `{"prompt":"hi","extra":1}`, false, true},
		{"too large", `{"prompt":"` + strings.Repeat("a", maxJSONBody) + `"}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := decode(httptest.NewRecorder(), req, &p, tt.optional)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}
