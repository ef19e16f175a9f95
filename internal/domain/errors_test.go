package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	assert.Equal(t, "draft not found: d-1", (&ErrDraftNotFound{ID: "d-1"}).Error())
	assert.Equal(t, "editor session not found: s-1", (&ErrEditorSessionNotFound{ID: "s-1"}).Error())
	assert.Equal(t, "validation error: bad", NewValidationError("bad").Error())
}

func TestErrors_As(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", &ErrDraftNotFound{ID: "d-1"})
	var notFound *ErrDraftNotFound
	assert.True(t, errors.As(wrapped, &notFound))
	assert.Equal(t, "d-1", notFound.ID)

	wrapped = fmt.Errorf("drop: %w", NewValidationError("block_kind is required"))
	var validation ValidationError
	assert.True(t, errors.As(wrapped, &validation))
	assert.Equal(t, "block_kind is required", validation.Message)
}
