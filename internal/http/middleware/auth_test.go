package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/canvas/internal/domain"
	"github.com/Notifuse/canvas/internal/domain/mocks"
	"github.com/Notifuse/canvas/internal/service"
)

func okHandler(t *testing.T, wantUserID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := domain.UserFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantUserID, user.ID)
		assert.Equal(t, "session123", r.Context().Value(domain.SessionIDKey))
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	authService := mocks.NewMockAuthService(ctrl)

	ac := NewAuthMiddleware(authService, "canvas_session", "/sign-in")
	assert.Equal(t, "canvas_session", ac.CookieName)
	assert.Equal(t, "/sign-in", ac.SignInURL)
}

func TestRequireAuth(t *testing.T) {
	claims := &domain.UserClaims{UserID: "user123", SessionID: "session123"}
	user := &domain.User{ID: "user123", Email: "test@example.com"}

	tests := []struct {
		name       string
		setup      func(r *http.Request, m *mocks.MockAuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing authorization header",
			setup:      func(r *http.Request, m *mocks.MockAuthService) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Authorization header is required",
		},
		{
			name: "invalid authorization header format",
			setup: func(r *http.Request, m *mocks.MockAuthService) {
				r.Header.Set("Authorization", "InvalidFormat")
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid authorization header format",
		},
		{
			name: "invalid token",
			setup: func(r *http.Request, m *mocks.MockAuthService) {
				r.Header.Set("Authorization", "Bearer bad")
				m.EXPECT().ParseToken("bad").Return(nil, service.ErrInvalidToken)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid token",
		},
		{
			name: "session expired",
			setup: func(r *http.Request, m *mocks.MockAuthService) {
				r.Header.Set("Authorization", "Bearer good")
				m.EXPECT().ParseToken("good").Return(claims, nil)
				m.EXPECT().VerifyUserSession(gomock.Any(), "user123", "session123").Return(nil, service.ErrSessionExpired)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Session expired",
		},
		{
			name: "user not found",
			setup: func(r *http.Request, m *mocks.MockAuthService) {
				r.Header.Set("Authorization", "Bearer good")
				m.EXPECT().ParseToken("good").Return(claims, nil)
				m.EXPECT().VerifyUserSession(gomock.Any(), "user123", "session123").Return(nil, service.ErrUserNotFound)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "User not found",
		},
		{
			name: "database error",
			setup: func(r *http.Request, m *mocks.MockAuthService) {
				r.Header.Set("Authorization", "Bearer good")
				m.EXPECT().ParseToken("good").Return(claims, nil)
				m.EXPECT().VerifyUserSession(gomock.Any(), "user123", "session123").Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal server error",
		},
		{
			name: "valid bearer token",
			setup: func(r *http.Request, m *mocks.MockAuthService) {
				r.Header.Set("Authorization", "Bearer good")
				m.EXPECT().ParseToken("good").Return(claims, nil)
				m.EXPECT().VerifyUserSession(gomock.Any(), "user123", "session123").Return(user, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "valid session cookie",
			setup: func(r *http.Request, m *mocks.MockAuthService) {
				r.AddCookie(&http.Cookie{Name: "canvas_session", Value: "cookie-token"})
				m.EXPECT().ParseToken("cookie-token").Return(claims, nil)
				m.EXPECT().VerifyUserSession(gomock.Any(), "user123", "session123").Return(user, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			authService := mocks.NewMockAuthService(ctrl)
			ac := NewAuthMiddleware(authService, "canvas_session", "/sign-in")

			req := httptest.NewRequest(http.MethodGet, "/api/editor.state", nil)
			tc.setup(req, authService)
			w := httptest.NewRecorder()

			ac.RequireAuth()(okHandler(t, "user123")).ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantBody != "" {
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
				assert.Contains(t, w.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestRequireUserOrRedirect(t *testing.T) {
	t.Run("absent user redirects to sign in", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		authService := mocks.NewMockAuthService(ctrl)
		ac := NewAuthMiddleware(authService, "canvas_session", "/sign-in")

		req := httptest.NewRequest(http.MethodGet, "/dashboard/editor?tab=blocks", nil)
		w := httptest.NewRecorder()

		ac.RequireUserOrRedirect()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})).ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/sign-in?redirect_to=%2Fdashboard%2Feditor%3Ftab%3Dblocks", w.Header().Get("Location"))
	})

	t.Run("expired session redirects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		authService := mocks.NewMockAuthService(ctrl)
		ac := NewAuthMiddleware(authService, "canvas_session", "https://id.example.com/login")

		authService.EXPECT().ParseToken("tok").Return(&domain.UserClaims{UserID: "user123", SessionID: "session123"}, nil)
		authService.EXPECT().VerifyUserSession(gomock.Any(), "user123", "session123").Return(nil, service.ErrSessionExpired)

		req := httptest.NewRequest(http.MethodGet, "/dashboard/editor", nil)
		req.AddCookie(&http.Cookie{Name: "canvas_session", Value: "tok"})
		w := httptest.NewRecorder()

		ac.RequireUserOrRedirect()(okHandler(t, "user123")).ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "https://id.example.com/login?redirect_to=%2Fdashboard%2Feditor", w.Header().Get("Location"))
	})

	t.Run("present user passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		authService := mocks.NewMockAuthService(ctrl)
		ac := NewAuthMiddleware(authService, "canvas_session", "/sign-in")

		authService.EXPECT().ParseToken("tok").Return(&domain.UserClaims{UserID: "user123", SessionID: "session123"}, nil)
		authService.EXPECT().VerifyUserSession(gomock.Any(), "user123", "session123").Return(&domain.User{ID: "user123"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/dashboard/editor", nil)
		req.AddCookie(&http.Cookie{Name: "canvas_session", Value: "tok"})
		w := httptest.NewRecorder()

		ac.RequireUserOrRedirect()(okHandler(t, "user123")).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
