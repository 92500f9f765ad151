package storage

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert or update violates a
	// uniqueness constraint (projects.name, tags.name, the note_tags pair).
	ErrDuplicate = errors.New("duplicate record")
	// ErrForeignKey is returned when a write references a row that does not exist.
	ErrForeignKey = errors.New("referenced record not found")
)

// translateError maps low-level SQLite constraint violations onto the
// package sentinels. The schema's unique indexes and foreign keys are the
// final arbiter for uniqueness and reference validity; callers never
// pre-check-then-write.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ErrDuplicate
		case sqlite3.ErrConstraintForeignKey:
			return ErrForeignKey
		}
	}
	return err
}
