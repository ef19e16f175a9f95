package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Notifuse/canvas/internal/domain"
	"github.com/Notifuse/canvas/pkg/blocks"
)

var draftColumns = []string{
	"id",
	"user_id",
	"subject",
	"document",
	"created_at",
	"updated_at",
}

type draftRepository struct {
	db   *sql.DB
	psql sq.StatementBuilderType
}

// NewDraftRepository creates a new PostgreSQL draft repository
func NewDraftRepository(db *sql.DB) domain.DraftRepository {
	return &draftRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *draftRepository) CreateDraft(ctx context.Context, draft *domain.Draft) error {
	now := time.Now().UTC()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	query, args, err := r.psql.Insert("drafts").
		Columns(draftColumns...).
		Values(draft.ID, draft.UserID, draft.Subject, draft.Document, draft.CreatedAt, draft.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}
	return nil
}

func (r *draftRepository) UpdateDraft(ctx context.Context, draft *domain.Draft) error {
	draft.UpdatedAt = time.Now().UTC()

	query, args, err := r.psql.Update("drafts").
		Set("subject", draft.Subject).
		Set("document", draft.Document).
		Set("updated_at", draft.UpdatedAt).
		Where(sq.Eq{"id": draft.ID, "user_id": draft.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrDraftNotFound{ID: draft.ID}
	}
	return nil
}

func (r *draftRepository) GetDraft(ctx context.Context, userID, id string) (*domain.Draft, error) {
	query, args, err := r.psql.Select(draftColumns...).
		From("drafts").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	draft, err := scanDraft(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrDraftNotFound{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return draft, nil
}

func (r *draftRepository) ListDrafts(ctx context.Context, userID string, limit, offset int) ([]*domain.Draft, int, error) {
	countQuery, countArgs, err := r.psql.Select("COUNT(*)").
		From("drafts").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count drafts: %w", err)
	}

	query, args, err := r.psql.Select(draftColumns...).
		From("drafts").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	drafts := make([]*domain.Draft, 0)
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, draft)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating draft rows: %w", err)
	}

	return drafts, total, nil
}

func (r *draftRepository) DeleteDraft(ctx context.Context, userID, id string) error {
	query, args, err := r.psql.Delete("drafts").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrDraftNotFound{ID: id}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDraft(row rowScanner) (*domain.Draft, error) {
	draft := &domain.Draft{Document: blocks.NewDocument()}
	err := row.Scan(
		&draft.ID,
		&draft.UserID,
		&draft.Subject,
		draft.Document,
		&draft.CreatedAt,
		&draft.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return draft, nil
}
