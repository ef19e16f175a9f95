package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/canvas/internal/domain"
	"github.com/Notifuse/canvas/internal/domain/mocks"
	"github.com/Notifuse/canvas/internal/editor"
	"github.com/Notifuse/canvas/internal/http/middleware"
	"github.com/Notifuse/canvas/internal/service"
	"github.com/Notifuse/canvas/pkg/blocks"
	"github.com/Notifuse/canvas/pkg/logger"
	"github.com/Notifuse/canvas/pkg/ratelimiter"
	"github.com/Notifuse/canvas/pkg/render"
)

const (
	testSessionID = "7f8e0a52-3c1d-4b9e-9f0a-2d6c5b4a3e21"
	testDraftID   = "0b4c8a1e-6f2d-4e3a-8b7c-9d0e1f2a3b4c"
	testToken     = "test-token"
)

// authAs makes the next request authenticate as userID
func authAs(r *http.Request, authService *mocks.MockAuthService, userID string) {
	r.Header.Set("Authorization", "Bearer "+testToken)
	authService.EXPECT().ParseToken(testToken).
		Return(&domain.UserClaims{UserID: userID, SessionID: "auth-session"}, nil)
	authService.EXPECT().VerifyUserSession(gomock.Any(), userID, "auth-session").
		Return(&domain.User{ID: userID, Email: userID + "@example.com"}, nil)
}

func setupEditorHandlerTest(t *testing.T) (*mocks.MockEditorService, *mocks.MockAuthService, *http.ServeMux) {
	ctrl := gomock.NewController(t)
	editorService := mocks.NewMockEditorService(ctrl)
	authService := mocks.NewMockAuthService(ctrl)
	authConfig := middleware.NewAuthMiddleware(authService, "canvas_session", "/sign-in")

	handler := NewEditorHandler(editorService, authConfig, nil, logger.NewTestLogger(t))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return editorService, authService, mux
}

func postJSON(t *testing.T, path string, body interface{}) *http.Request {
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sampleState() *domain.EditorState {
	return &domain.EditorState{
		SessionID: testSessionID,
		UpdatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Snapshot: editor.Snapshot{
			Subject: editor.DefaultSubject,
			Blocks: []blocks.BlockJSON{
				blocks.ToBlockJSON(blocks.NewSeedDocument().Blocks()[0]),
			},
		},
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestEditorHandler_RequiresAuth(t *testing.T) {
	_, _, mux := setupEditorHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/editor.palette", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization header is required", decodeBody(t, w)["error"])
}

func TestEditorHandler_Palette(t *testing.T) {
	editorService, authService, mux := setupEditorHandlerTest(t)

	editorService.EXPECT().Palette().Return(blocks.Palette())

	req := httptest.NewRequest(http.MethodGet, "/api/editor.palette", nil)
	authAs(req, authService, "alice")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	palette, ok := decodeBody(t, w)["palette"].([]interface{})
	require.True(t, ok)
	assert.Len(t, palette, len(blocks.Palette()))

	t.Run("wrong method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/editor.palette", nil)
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestEditorHandler_Templates(t *testing.T) {
	editorService, authService, mux := setupEditorHandlerTest(t)

	editorService.EXPECT().Templates().Return([]domain.TemplateSummary{
		{Name: "newsletter", Subject: "Monthly news", BlockCount: 6},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/editor.templates", nil)
	authAs(req, authService, "alice")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"newsletter"`)
}

func TestEditorHandler_Open(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		setup      func(m *mocks.MockEditorService)
		wantStatus int
		wantError  string
	}{
		{
			name: "seed document",
			body: map[string]string{},
			setup: func(m *mocks.MockEditorService) {
				m.EXPECT().Open(gomock.Any(), domain.OpenEditorRequest{}).Return(sampleState(), nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "template",
			body: map[string]string{"template": " newsletter "},
			setup: func(m *mocks.MockEditorService) {
				m.EXPECT().Open(gomock.Any(), domain.OpenEditorRequest{Template: "newsletter"}).Return(sampleState(), nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "template and draft",
			body:       map[string]string{"template": "newsletter", "draft_id": testDraftID},
			setup:      func(m *mocks.MockEditorService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "mutually exclusive",
		},
		{
			name: "unknown template",
			body: map[string]string{"template": "missing"},
			setup: func(m *mocks.MockEditorService) {
				m.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, blocks.ErrTemplateNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "too many sessions",
			body: map[string]string{},
			setup: func(m *mocks.MockEditorService) {
				m.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, service.ErrTooManySessions)
			},
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name: "unexpected error",
			body: map[string]string{"draft_id": testDraftID},
			setup: func(m *mocks.MockEditorService) {
				m.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to open editor",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			editorService, authService, mux := setupEditorHandlerTest(t)
			tc.setup(editorService)

			req := postJSON(t, "/api/editor.open", tc.body)
			authAs(req, authService, "alice")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantError != "" {
				assert.Contains(t, decodeBody(t, w)["error"], tc.wantError)
			}
		})
	}
}

func TestEditorHandler_State(t *testing.T) {
	editorService, authService, mux := setupEditorHandlerTest(t)

	editorService.EXPECT().State(gomock.Any(), domain.SessionRequest{SessionID: testSessionID}).Return(sampleState(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/editor.state?session_id="+testSessionID, nil)
	authAs(req, authService, "alice")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	state := decodeBody(t, w)["state"].(map[string]interface{})
	assert.Equal(t, testSessionID, state["session_id"])
	assert.Equal(t, editor.DefaultSubject, state["subject"])

	t.Run("foreign session", func(t *testing.T) {
		editorService.EXPECT().State(gomock.Any(), gomock.Any()).
			Return(nil, &domain.ErrEditorSessionNotFound{ID: testSessionID})

		req := httptest.NewRequest(http.MethodGet, "/api/editor.state?session_id="+testSessionID, nil)
		authAs(req, authService, "mallory")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed session id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/editor.state?session_id=abc", nil)
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEditorHandler_Drop(t *testing.T) {
	editorService, authService, mux := setupEditorHandlerTest(t)
	target := 2

	editorService.EXPECT().Drop(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, req domain.DropRequest) (*domain.DropResponse, error) {
			assert.Equal(t, "button", req.Payload.BlockKind)
			require.NotNil(t, req.TargetIndex)
			assert.Equal(t, 2, *req.TargetIndex)
			return &domain.DropResponse{
				Result: editor.DropResult{Outcome: editor.OutcomeInserted, Index: 2, BlockID: "button-2"},
				State:  sampleState(),
			}, nil
		})

	req := postJSON(t, "/api/editor.drop", domain.DropRequest{
		SessionID:   testSessionID,
		Payload:     editor.DragPayload{BlockKind: "button"},
		TargetIndex: &target,
	})
	authAs(req, authService, "alice")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	result := decodeBody(t, w)["result"].(map[string]interface{})
	assert.Equal(t, "inserted", result["outcome"])
	assert.Equal(t, "button-2", result["block_id"])

	t.Run("ignored drop is not an error", func(t *testing.T) {
		editorService.EXPECT().Drop(gomock.Any(), gomock.Any()).Return(&domain.DropResponse{
			Result: editor.DropResult{Outcome: editor.OutcomeIgnored, Index: -1, Reason: "unknown block kind"},
			State:  sampleState(),
		}, nil)

		req := postJSON(t, "/api/editor.drop", domain.DropRequest{
			SessionID: testSessionID,
			Payload:   editor.DragPayload{BlockKind: "video"},
		})
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"outcome":"ignored"`)
	})

	t.Run("empty payload", func(t *testing.T) {
		req := postJSON(t, "/api/editor.drop", domain.DropRequest{SessionID: testSessionID})
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejected by service", func(t *testing.T) {
		editorService.EXPECT().Drop(gomock.Any(), gomock.Any()).Return(nil, domain.NewValidationError("payload rejected"))

		req := postJSON(t, "/api/editor.drop", domain.DropRequest{
			SessionID: testSessionID,
			Payload:   editor.DragPayload{BlockKind: "text"},
		})
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/editor.drop", bytes.NewBufferString("{"))
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decodeBody(t, w)["error"])
	})
}

func TestEditorHandler_InspectorFlow(t *testing.T) {
	editorService, authService, mux := setupEditorHandlerTest(t)

	gomock.InOrder(
		editorService.EXPECT().Select(gomock.Any(), domain.SelectBlockRequest{SessionID: testSessionID, BlockID: "button-1"}).
			Return(sampleState(), nil),
		editorService.EXPECT().Edit(gomock.Any(), domain.EditBlockRequest{SessionID: testSessionID, Field: "label", Value: "Buy now"}).
			Return(sampleState(), nil),
		editorService.EXPECT().Commit(gomock.Any(), domain.SessionRequest{SessionID: testSessionID}).
			Return(sampleState(), nil),
		editorService.EXPECT().Discard(gomock.Any(), domain.SessionRequest{SessionID: testSessionID}).
			Return(nil, editor.ErrNothingSelected),
	)

	steps := []struct {
		path       string
		body       interface{}
		wantStatus int
	}{
		{"/api/editor.select", domain.SelectBlockRequest{SessionID: testSessionID, BlockID: "button-1"}, http.StatusOK},
		{"/api/editor.edit", domain.EditBlockRequest{SessionID: testSessionID, Field: " Label ", Value: "Buy now"}, http.StatusOK},
		{"/api/editor.commit", domain.SessionRequest{SessionID: testSessionID}, http.StatusOK},
		{"/api/editor.discard", domain.SessionRequest{SessionID: testSessionID}, http.StatusBadRequest},
	}

	for _, step := range steps {
		req := postJSON(t, step.path, step.body)
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, step.wantStatus, w.Code, step.path)
	}

	t.Run("invalid url value", func(t *testing.T) {
		req := postJSON(t, "/api/editor.edit", domain.EditBlockRequest{SessionID: testSessionID, Field: "url", Value: "not a url"})
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("edit in preview", func(t *testing.T) {
		editorService.EXPECT().Edit(gomock.Any(), gomock.Any()).Return(nil, editor.ErrPreviewMode)

		req := postJSON(t, "/api/editor.edit", domain.EditBlockRequest{SessionID: testSessionID, Field: "content", Value: "Hi"})
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestEditorHandler_DocumentOperations(t *testing.T) {
	editorService, authService, mux := setupEditorHandlerTest(t)

	editorService.EXPECT().Delete(gomock.Any(), domain.DeleteBlockRequest{SessionID: testSessionID, BlockID: "spacer-1"}).
		Return(sampleState(), nil)
	editorService.EXPECT().SetPreview(gomock.Any(), domain.PreviewRequest{SessionID: testSessionID, Preview: true}).
		Return(sampleState(), nil)
	editorService.EXPECT().SetSubject(gomock.Any(), domain.SubjectRequest{SessionID: testSessionID, Subject: "Hello"}).
		Return(sampleState(), nil)
	editorService.EXPECT().ApplyTemplate(gomock.Any(), domain.ApplyTemplateRequest{SessionID: testSessionID, Template: "promo"}).
		Return(sampleState(), nil)

	calls := []struct {
		path string
		body interface{}
	}{
		{"/api/editor.delete", domain.DeleteBlockRequest{SessionID: testSessionID, BlockID: "spacer-1"}},
		{"/api/editor.preview", domain.PreviewRequest{SessionID: testSessionID, Preview: true}},
		{"/api/editor.subject", domain.SubjectRequest{SessionID: testSessionID, Subject: "Hello"}},
		{"/api/editor.applyTemplate", domain.ApplyTemplateRequest{SessionID: testSessionID, Template: "promo"}},
	}

	for _, c := range calls {
		req := postJSON(t, c.path, c.body)
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, c.path)
		assert.Contains(t, decodeBody(t, w), "state", c.path)
	}

	t.Run("missing block", func(t *testing.T) {
		editorService.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil, blocks.ErrBlockNotFound)

		req := postJSON(t, "/api/editor.delete", domain.DeleteBlockRequest{SessionID: testSessionID, BlockID: "nope"})
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/editor.subject", nil)
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestEditorHandler_Render(t *testing.T) {
	editorService, authService, mux := setupEditorHandlerTest(t)

	editorService.EXPECT().Render(gomock.Any(), domain.RenderRequest{
		SessionID:    testSessionID,
		TemplateData: map[string]interface{}{"first_name": "Ada"},
	}).Return(&render.Result{Success: true, MJML: "<mjml></mjml>", HTML: "<html>Hi Ada</html>", Text: "Hi Ada"}, nil)

	query := url.Values{}
	query.Set("session_id", testSessionID)
	query.Set("data", `{"first_name":"Ada"}`)
	req := httptest.NewRequest(http.MethodGet, "/api/editor.render?"+query.Encode(), nil)
	authAs(req, authService, "alice")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Hi Ada", body["text"])

	t.Run("bad data parameter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/editor.render?data=oops", nil)
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEditorHandler_RenderRateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	editorService := mocks.NewMockEditorService(ctrl)
	authService := mocks.NewMockAuthService(ctrl)
	authConfig := middleware.NewAuthMiddleware(authService, "canvas_session", "/sign-in")

	limiter := ratelimiter.NewRateLimiter()
	limiter.SetPolicy(RateLimitRender, 1, 1)
	mux := http.NewServeMux()
	NewEditorHandler(editorService, authConfig, limiter, logger.NewTestLogger(t)).RegisterRoutes(mux)

	editorService.EXPECT().Render(gomock.Any(), domain.RenderRequest{SessionID: testSessionID}).
		Return(&render.Result{Success: true}, nil).Times(1)

	statuses := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/editor.render?session_id="+testSessionID, nil)
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, statuses)
}

func TestEditorHandler_SaveAndClose(t *testing.T) {
	editorService, authService, mux := setupEditorHandlerTest(t)
	now := time.Now()

	editorService.EXPECT().Save(gomock.Any(), domain.SessionRequest{SessionID: testSessionID}).Return(&domain.Draft{
		ID:        testDraftID,
		UserID:    "alice",
		Subject:   "Hello",
		Document:  blocks.NewSeedDocument(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil)
	editorService.EXPECT().Close(gomock.Any(), domain.SessionRequest{SessionID: testSessionID}).Return(nil)

	req := postJSON(t, "/api/editor.save", domain.SessionRequest{SessionID: testSessionID})
	authAs(req, authService, "alice")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	draft := decodeBody(t, w)["draft"].(map[string]interface{})
	assert.Equal(t, testDraftID, draft["id"])
	assert.EqualValues(t, 8, draft["block_count"])

	req = postJSON(t, "/api/editor.close", domain.SessionRequest{SessionID: testSessionID})
	authAs(req, authService, "alice")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["success"])
}
