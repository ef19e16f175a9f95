package http

import (
	"net/http"

	"github.com/Notifuse/canvas/internal/domain"
	"github.com/Notifuse/canvas/internal/http/middleware"
	"github.com/Notifuse/canvas/pkg/logger"
	"github.com/Notifuse/canvas/pkg/ratelimiter"
)

// Rate limit namespaces for the expensive editor calls
const (
	RateLimitOpen   = "editor.open"
	RateLimitRender = "editor.render"
)

type EditorHandler struct {
	service    domain.EditorService
	authConfig *middleware.AuthConfig
	limiter    *ratelimiter.RateLimiter
	logger     logger.Logger
}

// NewEditorHandler creates the editor API handler. limiter may be nil.
func NewEditorHandler(service domain.EditorService, authConfig *middleware.AuthConfig, limiter *ratelimiter.RateLimiter, logger logger.Logger) *EditorHandler {
	return &EditorHandler{
		service:    service,
		authConfig: authConfig,
		limiter:    limiter,
		logger:     logger,
	}
}

// limited chains auth and the per-user budget of namespace
func (h *EditorHandler) limited(namespace string, fn http.HandlerFunc) http.Handler {
	requireAuth := h.authConfig.RequireAuth()
	return requireAuth(middleware.RateLimit(h.limiter, namespace, h.logger)(fn))
}

func (h *EditorHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.authConfig.RequireAuth()

	// Register RPC-style endpoints with dot notation
	mux.Handle("/api/editor.palette", requireAuth(http.HandlerFunc(h.handlePalette)))
	mux.Handle("/api/editor.templates", requireAuth(http.HandlerFunc(h.handleTemplates)))
	mux.Handle("/api/editor.open", h.limited(RateLimitOpen, h.handleOpen))
	mux.Handle("/api/editor.state", requireAuth(http.HandlerFunc(h.handleState)))
	mux.Handle("/api/editor.drop", requireAuth(http.HandlerFunc(h.handleDrop)))
	mux.Handle("/api/editor.select", requireAuth(http.HandlerFunc(h.handleSelect)))
	mux.Handle("/api/editor.edit", requireAuth(http.HandlerFunc(h.handleEdit)))
	mux.Handle("/api/editor.commit", requireAuth(http.HandlerFunc(h.handleCommit)))
	mux.Handle("/api/editor.discard", requireAuth(http.HandlerFunc(h.handleDiscard)))
	mux.Handle("/api/editor.delete", requireAuth(http.HandlerFunc(h.handleDelete)))
	mux.Handle("/api/editor.preview", requireAuth(http.HandlerFunc(h.handlePreview)))
	mux.Handle("/api/editor.subject", requireAuth(http.HandlerFunc(h.handleSubject)))
	mux.Handle("/api/editor.applyTemplate", requireAuth(http.HandlerFunc(h.handleApplyTemplate)))
	mux.Handle("/api/editor.render", h.limited(RateLimitRender, h.handleRender))
	mux.Handle("/api/editor.save", requireAuth(http.HandlerFunc(h.handleSave)))
	mux.Handle("/api/editor.close", requireAuth(http.HandlerFunc(h.handleClose)))
}

func (h *EditorHandler) handlePalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"palette": h.service.Palette(),
	})
}

func (h *EditorHandler) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	templates, err := h.service.Templates()
	if err != nil {
		writeServiceError(w, err, "Failed to list templates", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"templates": templates,
	})
}

func (h *EditorHandler) handleOpen(w http.ResponseWriter, r *http.Request) {
	var req domain.OpenEditorRequest
	if !decodeJSONBody(w, r, &req, h.logger) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.service.Open(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to open editor", h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"state": state,
	})
}

func (h *EditorHandler) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.SessionRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.service.State(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to get editor state", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state": state,
	})
}

func (h *EditorHandler) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req domain.DropRequest
	if !decodeJSONBody(w, r, &req, h.logger) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Drop(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to drop block", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *EditorHandler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req domain.SelectBlockRequest
	if !decodeJSONBody(w, r, &req, h.logger) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeState(w, "Failed to select block")(h.service.Select(r.Context(), req))
}

func (h *EditorHandler) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req domain.EditBlockRequest
	if !decodeJSONBody(w, r, &req, h.logger) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeState(w, "Failed to edit block")(h.service.Edit(r.Context(), req))
}

func (h *EditorHandler) handleCommit(w http.ResponseWriter, r *http.Request) {
	var req domain.SessionRequest
	if !decodeJSONBody(w, r, &req, h.logger) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeState(w, "Failed to commit edits")(h.service.Commit(r.Context(), req))
}

func (h *EditorHandler) handleDiscard(w http.ResponseWriter, r *http.Request) {
	var req domain.SessionRequest
	if !decodeJSONBody(w, r, &req, h.logger) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeState(w, "Failed to discard edits")(h.service.Discard(r.Context(), req))
}

func (h *EditorHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req domain.DeleteBlockRequest
	if !decodeJSONBody(w, r, &req, h.logger) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeState(w, "Failed to delete block")(h.service.Delete(r.Context(), req))
}

func (h *EditorHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req domain.PreviewRequest
	if !decodeJSONBody(w, r, &req, h.logger) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeState(w, "Failed to toggle preview")(h.service.SetPreview(r.Context(), req))
}

func (h *EditorHandler) handleSubject(w http.ResponseWriter, r *http.Request) {
	var req domain.SubjectRequest
	if !decodeJSONBody(w, r, &req, h.logger) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeState(w, "Failed to set subject")(h.service.SetSubject(r.Context(), req))
}

func (h *EditorHandler) handleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	var req domain.ApplyTemplateRequest
	if !decodeJSONBody(w, r, &req, h.logger) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeState(w, "Failed to apply template")(h.service.ApplyTemplate(r.Context(), req))
}

func (h *EditorHandler) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.RenderRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Render(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to render document", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *EditorHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req domain.SessionRequest
	if !decodeJSONBody(w, r, &req, h.logger) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	draft, err := h.service.Save(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to save draft", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"draft": draft.Summary(),
	})
}

func (h *EditorHandler) handleClose(w http.ResponseWriter, r *http.Request) {
	var req domain.SessionRequest
	if !decodeJSONBody(w, r, &req, h.logger) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Close(r.Context(), req); err != nil {
		writeServiceError(w, err, "Failed to close editor", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// writeState replies with the state returned by an editor operation
func (h *EditorHandler) writeState(w http.ResponseWriter, fallback string) func(*domain.EditorState, error) {
	return func(state *domain.EditorState, err error) {
		if err != nil {
			writeServiceError(w, err, fallback, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"state": state,
		})
	}
}
