package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Notifuse/canvas/internal/domain"
	"github.com/Notifuse/canvas/pkg/logger"
)

var (
	ErrSessionExpired = errors.New("session expired")
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidToken   = errors.New("invalid authentication token")
)

const tokenIssuer = "canvas"

type AuthService struct {
	repo      domain.AuthRepository
	logger    logger.Logger
	jwtSecret []byte
}

type AuthServiceConfig struct {
	Repository domain.AuthRepository
	JWTSecret  []byte
	Logger     logger.Logger
}

func NewAuthService(cfg AuthServiceConfig) (*AuthService, error) {
	if len(cfg.JWTSecret) < 32 {
		if cfg.Logger != nil {
			cfg.Logger.Error("JWT secret must be at least 32 bytes")
		}
		return nil, fmt.Errorf("jwt secret must be at least 32 bytes")
	}

	return &AuthService{
		repo:      cfg.Repository,
		logger:    cfg.Logger,
		jwtSecret: cfg.JWTSecret,
	}, nil
}

// ParseToken verifies an HS256 token and returns its claims
func (s *AuthService) ParseToken(tokenString string) (*domain.UserClaims, error) {
	claims := &domain.UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method to prevent algorithm confusion
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || claims.SessionID == "" {
		return nil, fmt.Errorf("%w: missing user or session", ErrInvalidToken)
	}
	return claims, nil
}

// AuthenticateUserFromContext reloads the user the auth middleware stored in ctx
func (s *AuthService) AuthenticateUserFromContext(ctx context.Context) (*domain.User, error) {
	userID, ok := ctx.Value(domain.UserIDKey).(string)
	if !ok || userID == "" {
		return nil, ErrUserNotFound
	}
	sessionID, ok := ctx.Value(domain.SessionIDKey).(string)
	if !ok || sessionID == "" {
		return nil, ErrUserNotFound
	}
	return s.VerifyUserSession(ctx, userID, sessionID)
}

// VerifyUserSession checks if the user exists and the session is valid
func (s *AuthService) VerifyUserSession(ctx context.Context, userID, sessionID string) (*domain.User, error) {
	expiresAt, err := s.repo.GetSessionByID(ctx, sessionID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.WithField("user_id", userID).WithField("session_id", sessionID).Error("Session not found")
		return nil, ErrSessionExpired
	}
	if err != nil {
		s.logger.WithField("user_id", userID).WithField("session_id", sessionID).WithField("error", err.Error()).Error("Failed to query session")
		return nil, err
	}

	if time.Now().After(*expiresAt) {
		s.logger.WithField("user_id", userID).WithField("session_id", sessionID).WithField("expires_at", expiresAt).Error("Session expired")
		return nil, ErrSessionExpired
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.WithField("user_id", userID).Error("User not found")
		return nil, ErrUserNotFound
	}
	if err != nil {
		s.logger.WithField("user_id", userID).WithField("error", err.Error()).Error("Failed to query user")
		return nil, err
	}

	return user, nil
}

// GenerateUserAuthToken signs a token bound to a user session
func (s *AuthService) GenerateUserAuthToken(user *domain.User, sessionID string, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := &domain.UserClaims{
		UserID:    user.ID,
		SessionID: sessionID,
		Email:     user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		s.logger.WithField("user_id", user.ID).WithField("session_id", sessionID).Error("Failed to sign authentication token")
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
