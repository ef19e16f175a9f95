package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Notifuse/canvas/internal/domain"
	"github.com/Notifuse/canvas/internal/editor"
	"github.com/Notifuse/canvas/internal/service"
	"github.com/Notifuse/canvas/pkg/blocks"
	"github.com/Notifuse/canvas/pkg/logger"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// WriteJSONError writes a JSON error response with the given message and status code.
// It sets the Content-Type header to application/json and automatically formats
// the response as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSONBody decodes a POST body into v, replying 405 or 400 on failure
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v interface{}, log logger.Logger) bool {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		log.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// errorStatus maps service errors to HTTP status codes. ok is false for
// errors that are not part of the API contract.
func errorStatus(err error) (status int, ok bool) {
	var sessionNotFound *domain.ErrEditorSessionNotFound
	var draftNotFound *domain.ErrDraftNotFound
	var validation domain.ValidationError

	switch {
	case errors.As(err, &sessionNotFound), errors.As(err, &draftNotFound),
		errors.Is(err, blocks.ErrTemplateNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, editor.ErrPreviewMode):
		return http.StatusConflict, true
	case errors.As(err, &validation),
		errors.Is(err, editor.ErrNothingSelected),
		errors.Is(err, editor.ErrFieldNotEditable),
		errors.Is(err, blocks.ErrSelectionNotFound),
		errors.Is(err, blocks.ErrBlockNotFound),
		errors.Is(err, blocks.ErrUnknownKind),
		errors.Is(err, blocks.ErrUnknownField):
		return http.StatusBadRequest, true
	case errors.Is(err, service.ErrTooManySessions):
		return http.StatusTooManyRequests, true
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrSessionExpired):
		return http.StatusUnauthorized, true
	}
	return http.StatusInternalServerError, false
}

// writeServiceError replies with the mapped status. Unexpected errors are
// logged and hidden behind fallback.
func writeServiceError(w http.ResponseWriter, err error, fallback string, log logger.Logger) {
	status, ok := errorStatus(err)
	if !ok {
		log.WithField("error", err.Error()).Error(fallback)
		WriteJSONError(w, fallback, status)
		return
	}
	WriteJSONError(w, err.Error(), status)
}
