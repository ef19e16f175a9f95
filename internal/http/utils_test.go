package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/canvas/internal/domain"
	"github.com/Notifuse/canvas/internal/editor"
	"github.com/Notifuse/canvas/internal/service"
	"github.com/Notifuse/canvas/pkg/blocks"
	"github.com/Notifuse/canvas/pkg/logger"
)

func TestWriteJSONError(t *testing.T) {
	testCases := []struct {
		name       string
		message    string
		statusCode int
	}{
		{
			name:       "bad_request",
			message:    "Bad request",
			statusCode: http.StatusBadRequest,
		},
		{
			name:       "unauthorized",
			message:    "Unauthorized access",
			statusCode: http.StatusUnauthorized,
		},
		{
			name:       "not_found",
			message:    "Resource not found",
			statusCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			WriteJSONError(w, tc.message, tc.statusCode)

			assert.Equal(t, tc.statusCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var response map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tc.message, response["error"])
		})
	}
}

func TestDecodeJSONBody(t *testing.T) {
	log := logger.NewTestLogger(t)

	t.Run("valid body", func(t *testing.T) {
		var req domain.SessionRequest
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"session_id":"abc"}`))
		w := httptest.NewRecorder()
		assert.True(t, decodeJSONBody(w, r, &req, log))
		assert.Equal(t, "abc", req.SessionID)
	})

	t.Run("wrong method", func(t *testing.T) {
		var req domain.SessionRequest
		r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		assert.False(t, decodeJSONBody(w, r, &req, log))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("oversized body", func(t *testing.T) {
		var req domain.SubjectRequest
		body := `{"subject":"` + strings.Repeat("a", maxBodyBytes) + `"}`
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		w := httptest.NewRecorder()
		assert.False(t, decodeJSONBody(w, r, &req, log))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantOK     bool
	}{
		{&domain.ErrEditorSessionNotFound{ID: "s"}, http.StatusNotFound, true},
		{fmt.Errorf("load: %w", &domain.ErrDraftNotFound{ID: "d"}), http.StatusNotFound, true},
		{blocks.ErrTemplateNotFound, http.StatusNotFound, true},
		{editor.ErrPreviewMode, http.StatusConflict, true},
		{domain.NewValidationError("bad"), http.StatusBadRequest, true},
		{editor.ErrNothingSelected, http.StatusBadRequest, true},
		{editor.ErrFieldNotEditable, http.StatusBadRequest, true},
		{blocks.ErrSelectionNotFound, http.StatusBadRequest, true},
		{blocks.ErrBlockNotFound, http.StatusBadRequest, true},
		{fmt.Errorf("drop: %w", blocks.ErrUnknownKind), http.StatusBadRequest, true},
		{blocks.ErrUnknownField, http.StatusBadRequest, true},
		{service.ErrTooManySessions, http.StatusTooManyRequests, true},
		{service.ErrUserNotFound, http.StatusUnauthorized, true},
		{service.ErrSessionExpired, http.StatusUnauthorized, true},
		{errors.New("connection refused"), http.StatusInternalServerError, false},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			status, ok := errorStatus(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	log := logger.NewTestLogger(t)

	w := httptest.NewRecorder()
	writeServiceError(w, errors.New("pq: connection refused"), "Failed to save draft", log)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
	assert.Contains(t, w.Body.String(), "Failed to save draft")

	w = httptest.NewRecorder()
	writeServiceError(w, editor.ErrPreviewMode, "Failed to edit block", log)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), editor.ErrPreviewMode.Error())
}
