package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Notifuse/canvas/internal/domain"
	"github.com/Notifuse/canvas/internal/http/middleware"
	"github.com/Notifuse/canvas/pkg/logger"
)

// EditorPagePath is the dashboard page guarded by the sign-in redirect
const EditorPagePath = "/dashboard/editor"

type RootHandler struct {
	editorService domain.EditorService
	authConfig    *middleware.AuthConfig
	logger        logger.Logger
	version       string
}

// NewRootHandler creates the handler for the dashboard page, the health
// check and the API root
func NewRootHandler(editorService domain.EditorService, authConfig *middleware.AuthConfig, logger logger.Logger, version string) *RootHandler {
	return &RootHandler{
		editorService: editorService,
		authConfig:    authConfig,
		logger:        logger,
		version:       version,
	}
}

func (h *RootHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle(EditorPagePath, h.authConfig.RequireUserOrRedirect()(http.HandlerFunc(h.serveEditorPage)))
	mux.HandleFunc("/", h.Handle)
}

func (h *RootHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/":
		http.Redirect(w, r, EditorPagePath, http.StatusTemporaryRedirect)
	case r.URL.Path == "/api" || r.URL.Path == "/api/":
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "api running",
			"version": h.version,
		})
	case strings.HasPrefix(r.URL.Path, "/api/"):
		WriteJSONError(w, "Not found", http.StatusNotFound)
	default:
		http.NotFound(w, r)
	}
}

func (h *RootHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// serveEditorPage renders the session named by session_id, or the seed
// document, as the page body
func (h *RootHandler) serveEditorPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.RenderRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.editorService.Render(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to render editor page", h.logger)
		return
	}
	if !result.Success {
		h.logger.WithField("session_id", req.SessionID).Error("Editor page did not compile")
		WriteJSONError(w, "Failed to render editor page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.HTML))
}
