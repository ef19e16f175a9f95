package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/Notifuse/canvas/internal/domain"
	"github.com/Notifuse/canvas/internal/service"
)

var errMissingToken = errors.New("authorization header is required")

// AuthConfig holds the configuration for the auth middleware
type AuthConfig struct {
	AuthService domain.AuthService
	// CookieName is read when no Authorization header is sent
	CookieName string
	// SignInURL is where page requests without a user are sent
	SignInURL string
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authService domain.AuthService, cookieName, signInURL string) *AuthConfig {
	return &AuthConfig{
		AuthService: authService,
		CookieName:  cookieName,
		SignInURL:   signInURL,
	}
}

// tokenFromRequest reads a bearer token, falling back to the session cookie
func (ac *AuthConfig) tokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", errors.New("invalid authorization header format")
		}
		return parts[1], nil
	}
	if ac.CookieName != "" {
		if c, err := r.Cookie(ac.CookieName); err == nil && c.Value != "" {
			return c.Value, nil
		}
	}
	return "", errMissingToken
}

// CurrentUser resolves the user behind the request. It returns an error for
// a missing, invalid or expired credential.
func (ac *AuthConfig) CurrentUser(r *http.Request) (*domain.User, string, error) {
	token, err := ac.tokenFromRequest(r)
	if err != nil {
		return nil, "", err
	}
	claims, err := ac.AuthService.ParseToken(token)
	if err != nil {
		return nil, "", err
	}
	user, err := ac.AuthService.VerifyUserSession(r.Context(), claims.UserID, claims.SessionID)
	if err != nil {
		return nil, "", err
	}
	return user, claims.SessionID, nil
}

// RequireAuth rejects requests without a valid user with a JSON 401
func (ac *AuthConfig) RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, sessionID, err := ac.CurrentUser(r)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrSessionExpired):
					writeAuthError(w, "Session expired", http.StatusUnauthorized)
				case errors.Is(err, service.ErrUserNotFound):
					writeAuthError(w, "User not found", http.StatusUnauthorized)
				case errors.Is(err, service.ErrInvalidToken):
					writeAuthError(w, "Invalid token", http.StatusUnauthorized)
				case errors.Is(err, errMissingToken):
					writeAuthError(w, "Authorization header is required", http.StatusUnauthorized)
				case strings.HasPrefix(err.Error(), "invalid authorization header"):
					writeAuthError(w, "Invalid authorization header format", http.StatusUnauthorized)
				default:
					writeAuthError(w, "Internal server error", http.StatusInternalServerError)
				}
				return
			}

			ctx := domain.ContextWithUser(r.Context(), user, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUserOrRedirect guards page routes: any request without a valid user
// is redirected to the sign-in page with a 302
func (ac *AuthConfig) RequireUserOrRedirect() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, sessionID, err := ac.CurrentUser(r)
			if err != nil {
				http.Redirect(w, r, ac.signInLocation(r), http.StatusFound)
				return
			}

			ctx := domain.ContextWithUser(r.Context(), user, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// signInLocation appends the requested path as a redirect_to parameter
func (ac *AuthConfig) signInLocation(r *http.Request) string {
	target := ac.SignInURL
	if target == "" {
		target = "/sign-in"
	}
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set("redirect_to", r.URL.RequestURI())
	u.RawQuery = q.Encode()
	return u.String()
}

func writeAuthError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
