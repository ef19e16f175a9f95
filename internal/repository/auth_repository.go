package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Notifuse/canvas/internal/domain"
	"github.com/Notifuse/canvas/pkg/logger"
)

// SQLAuthRepository is a SQL implementation of the AuthRepository interface
type SQLAuthRepository struct {
	systemDB *sql.DB
	logger   logger.Logger
	psql     sq.StatementBuilderType
}

// NewSQLAuthRepository creates a new SQLAuthRepository
func NewSQLAuthRepository(db *sql.DB, logger logger.Logger) *SQLAuthRepository {
	return &SQLAuthRepository{
		systemDB: db,
		logger:   logger,
		psql:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetSessionByID returns the expiry of a session owned by userID.
// sql.ErrNoRows is returned as is.
func (r *SQLAuthRepository) GetSessionByID(ctx context.Context, sessionID string, userID string) (*time.Time, error) {
	query, args, err := r.psql.Select("expires_at").
		From("user_sessions").
		Where(sq.Eq{"id": sessionID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var expiresAt time.Time
	if err := r.systemDB.QueryRowContext(ctx, query, args...).Scan(&expiresAt); err != nil {
		if err != sql.ErrNoRows {
			r.logger.WithField("session_id", sessionID).WithField("error", err.Error()).Error("Failed to query session")
		}
		return nil, err
	}
	return &expiresAt, nil
}

// GetUserByID retrieves a user by ID. sql.ErrNoRows is returned as is.
func (r *SQLAuthRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query, args, err := r.psql.Select("id", "email", "COALESCE(name, '')", "created_at", "updated_at").
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var user domain.User
	err = r.systemDB.QueryRowContext(ctx, query, args...).
		Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			r.logger.WithField("user_id", userID).WithField("error", err.Error()).Error("Failed to query user")
		}
		return nil, err
	}
	return &user, nil
}
