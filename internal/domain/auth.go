package domain

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

//go:generate mockgen -destination mocks/mock_auth_repository.go -package mocks github.com/Notifuse/canvas/internal/domain AuthRepository
//go:generate mockgen -destination mocks/mock_auth_service.go -package mocks github.com/Notifuse/canvas/internal/domain AuthService

// AuthRepository defines the interface for auth-related database operations
type AuthRepository interface {
	GetSessionByID(ctx context.Context, sessionID string, userID string) (*time.Time, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
}

// UserClaims are carried by the bearer token and the session cookie
type UserClaims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Email     string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// ParseToken verifies the signature and expiry of a token
	ParseToken(token string) (*UserClaims, error)
	// VerifyUserSession checks the session row and loads the user
	VerifyUserSession(ctx context.Context, userID, sessionID string) (*User, error)
	// AuthenticateUserFromContext returns the user stored by the auth middleware
	AuthenticateUserFromContext(ctx context.Context) (*User, error)
	GenerateUserAuthToken(user *User, sessionID string, expiresAt time.Time) (string, error)
}
