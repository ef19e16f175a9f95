package domain

import (
	"fmt"
)

// ErrDraftNotFound is returned when a draft does not exist or belongs to
// another user
type ErrDraftNotFound struct {
	ID string
}

func (e *ErrDraftNotFound) Error() string {
	return fmt.Sprintf("draft not found: %s", e.ID)
}

// ErrEditorSessionNotFound is returned for unknown, expired or foreign
// editor sessions
type ErrEditorSessionNotFound struct {
	ID string
}

func (e *ErrEditorSessionNotFound) Error() string {
	return fmt.Sprintf("editor session not found: %s", e.ID)
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}
