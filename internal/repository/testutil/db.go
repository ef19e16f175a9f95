package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// DraftColumns are the columns every draft query selects
var DraftColumns = []string{"id", "user_id", "subject", "document", "created_at", "updated_at"}

// SetupMockDB creates a mock database connection for testing
func SetupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return db, mock, cleanup
}

// DraftRow is one row returned by a mocked draft query
type DraftRow struct {
	ID       string
	UserID   string
	Subject  string
	Document []byte
	At       time.Time
}

// NewDraftRows builds sqlmock rows for draft queries
func NewDraftRows(rows ...DraftRow) *sqlmock.Rows {
	out := sqlmock.NewRows(DraftColumns)
	for _, r := range rows {
		out.AddRow(r.ID, r.UserID, r.Subject, r.Document, r.At, r.At)
	}
	return out
}
