package domain

import (
	"context"
	"time"
)

// Key for storing user ID and session ID in context
type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	SessionIDKey contextKey = "session_id"
	UserKey      contextKey = "user"
)

// User represents a user in the system
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name,omitempty" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ContextWithUser stores the authenticated user and its session
func ContextWithUser(ctx context.Context, user *User, sessionID string) context.Context {
	ctx = context.WithValue(ctx, UserKey, user)
	ctx = context.WithValue(ctx, UserIDKey, user.ID)
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// UserFromContext returns the user stored by ContextWithUser
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(UserKey).(*User)
	return user, ok && user != nil
}
