package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Notifuse/canvas/internal/domain"
	"github.com/Notifuse/canvas/internal/http/middleware"
	"github.com/Notifuse/canvas/pkg/logger"
)

type DraftHandler struct {
	service    domain.DraftService
	authConfig *middleware.AuthConfig
	logger     logger.Logger
}

func NewDraftHandler(service domain.DraftService, authConfig *middleware.AuthConfig, logger logger.Logger) *DraftHandler {
	return &DraftHandler{
		service:    service,
		authConfig: authConfig,
		logger:     logger,
	}
}

func (h *DraftHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.authConfig.RequireAuth()

	mux.Handle("/api/drafts.list", requireAuth(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/drafts.get", requireAuth(http.HandlerFunc(h.handleGet)))
	mux.Handle("/api/drafts.delete", requireAuth(http.HandlerFunc(h.handleDelete)))
	mux.Handle("/api/drafts.export", requireAuth(http.HandlerFunc(h.handleExport)))
}

func (h *DraftHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ListDraftsRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.ListDrafts(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to list drafts", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DraftHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.GetDraftRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	draft, err := h.service.GetDraft(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to get draft", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"draft": draft,
	})
}

func (h *DraftHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req domain.DeleteDraftRequest
	if !decodeJSONBody(w, r, &req, h.logger) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteDraft(r.Context(), req); err != nil {
		writeServiceError(w, err, "Failed to delete draft", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// handleExport streams the draft as a message/rfc822 attachment
func (h *DraftHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ExportDraftRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	export, err := h.service.ExportDraft(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to export draft", h.logger)
		return
	}

	w.Header().Set("Content-Type", "message/rfc822")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Content)
}
