package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
)

// ValidationError represents a malformed or missing required field.
// It is never partially applied: the failing operation writes nothing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// ReferenceError represents a foreign key that does not resolve to an
// existing row. It carries not-found semantics: referencing a missing row is
// indistinguishable from referencing one that never existed.
type ReferenceError struct {
	Kind string
	ID   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Kind, e.ID)
}

// ConflictError represents a uniqueness violation (project or tag name) or a
// duplicate note-tag association.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
