package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Notifuse/canvas/internal/database/schema"
	"github.com/Notifuse/canvas/internal/domain"
)

// InitializeDatabase creates all necessary database tables if they don't exist
func InitializeDatabase(db *sql.DB, rootEmail string) error {
	for _, query := range schema.TableDefinitions {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	if rootEmail == "" {
		return nil
	}

	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", rootEmail).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check root user existence: %w", err)
	}
	if exists {
		return nil
	}

	now := time.Now().UTC()
	rootUser := &domain.User{
		ID:        uuid.New().String(),
		Email:     rootEmail,
		Name:      "Root User",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = db.Exec(`
		INSERT INTO users (id, email, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		rootUser.ID,
		rootUser.Email,
		rootUser.Name,
		rootUser.CreatedAt,
		rootUser.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create root user: %w", err)
	}
	return nil
}
