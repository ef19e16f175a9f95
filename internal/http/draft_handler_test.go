package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/canvas/internal/domain"
	"github.com/Notifuse/canvas/internal/domain/mocks"
	"github.com/Notifuse/canvas/internal/http/middleware"
	"github.com/Notifuse/canvas/pkg/blocks"
	"github.com/Notifuse/canvas/pkg/logger"
)

func setupDraftHandlerTest(t *testing.T) (*mocks.MockDraftService, *mocks.MockAuthService, *http.ServeMux) {
	ctrl := gomock.NewController(t)
	draftService := mocks.NewMockDraftService(ctrl)
	authService := mocks.NewMockAuthService(ctrl)
	authConfig := middleware.NewAuthMiddleware(authService, "canvas_session", "/sign-in")

	handler := NewDraftHandler(draftService, authConfig, logger.NewTestLogger(t))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return draftService, authService, mux
}

func TestDraftHandler_List(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setup      func(m *mocks.MockDraftService)
		wantStatus int
	}{
		{
			name:  "default paging",
			query: "",
			setup: func(m *mocks.MockDraftService) {
				m.EXPECT().ListDrafts(gomock.Any(), domain.ListDraftsRequest{Limit: domain.DefaultDraftsLimit}).
					Return(&domain.ListDraftsResponse{Drafts: []domain.DraftSummary{{ID: testDraftID, BlockCount: 8}}, TotalCount: 1}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "explicit paging",
			query: "?limit=5&offset=10",
			setup: func(m *mocks.MockDraftService) {
				m.EXPECT().ListDrafts(gomock.Any(), domain.ListDraftsRequest{Limit: 5, Offset: 10}).
					Return(&domain.ListDraftsResponse{Drafts: []domain.DraftSummary{}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "limit not a number",
			query:      "?limit=ten",
			setup:      func(m *mocks.MockDraftService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "limit too large",
			query:      "?limit=100000",
			setup:      func(m *mocks.MockDraftService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			draftService, authService, mux := setupDraftHandlerTest(t)
			tc.setup(draftService)

			req := httptest.NewRequest(http.MethodGet, "/api/drafts.list"+tc.query, nil)
			authAs(req, authService, "alice")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestDraftHandler_Get(t *testing.T) {
	draftService, authService, mux := setupDraftHandlerTest(t)

	draftService.EXPECT().GetDraft(gomock.Any(), domain.GetDraftRequest{ID: testDraftID}).Return(&domain.Draft{
		ID:        testDraftID,
		UserID:    "alice",
		Subject:   "Hello",
		Document:  blocks.NewSeedDocument(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/drafts.get?id="+testDraftID, nil)
	authAs(req, authService, "alice")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subject":"Hello"`)
	assert.Contains(t, w.Body.String(), `"id":"header-1"`)

	t.Run("not found", func(t *testing.T) {
		draftService.EXPECT().GetDraft(gomock.Any(), gomock.Any()).Return(nil, &domain.ErrDraftNotFound{ID: testDraftID})

		req := httptest.NewRequest(http.MethodGet, "/api/drafts.get?id="+testDraftID, nil)
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/drafts.get", nil)
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDraftHandler_Delete(t *testing.T) {
	draftService, authService, mux := setupDraftHandlerTest(t)

	draftService.EXPECT().DeleteDraft(gomock.Any(), domain.DeleteDraftRequest{ID: testDraftID}).Return(nil)

	req := postJSON(t, "/api/drafts.delete", domain.DeleteDraftRequest{ID: testDraftID})
	authAs(req, authService, "alice")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["success"])

	t.Run("get is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/drafts.delete?id="+testDraftID, nil)
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestDraftHandler_Export(t *testing.T) {
	draftService, authService, mux := setupDraftHandlerTest(t)
	content := []byte("Subject: Spring News\r\n\r\nbody")

	draftService.EXPECT().ExportDraft(gomock.Any(), domain.ExportDraftRequest{ID: testDraftID, To: "bob@example.com"}).
		Return(&domain.DraftExport{Filename: "spring-news.eml", Content: content}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/drafts.export?id="+testDraftID+"&to=bob@example.com", nil)
	authAs(req, authService, "alice")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "message/rfc822", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="spring-news.eml"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, content, w.Body.Bytes())

	t.Run("invalid recipient", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/drafts.export?id="+testDraftID+"&to=nobody", nil)
		authAs(req, authService, "alice")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
