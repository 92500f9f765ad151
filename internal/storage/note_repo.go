package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_store.go -package=mocks journal-ai/internal/storage NoteStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NoteStore defines the interface for note storage operations.
type NoteStore interface {
	// Create inserts a new note, assigning its ID and timestamps.
	// Returns ErrForeignKey if the journal reference does not resolve.
	Create(ctx context.Context, note *NoteRecord) error
	// GetByID gets a note by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*NoteRecord, error)
	// List returns notes matching the filter, in insertion order.
	List(ctx context.Context, filter NoteFilter, page ListPage) ([]NoteRecord, error)
	// Count returns the number of notes matching the filter.
	Count(ctx context.Context, filter NoteFilter) (int, error)
	// Update applies the provided fields and refreshes updated_at.
	Update(ctx context.Context, id string, upd NoteUpdate) (*NoteRecord, error)
	// Delete removes a note and, through schema cascade rules, its tag
	// association rows. The tags themselves survive.
	Delete(ctx context.Context, id string) error
}

// NoteUpdate holds the fields of a partial note update.
// Nil fields are left untouched.
type NoteUpdate struct {
	Text      *string
	Meta      []byte
	JournalID *string
}

// NoteRepo provides methods for note operations.
// It implements the NoteStore interface.
type NoteRepo struct {
	db *sql.DB
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

// Create inserts a new note, assigning its ID and timestamps.
func (r *NoteRepo) Create(ctx context.Context, note *NoteRecord) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO notes (id, text, meta, journal_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		note.ID, note.Text, nullableJSON(note.Meta), nullableString(note.JournalID),
		now.Format(timeLayout), now.Format(timeLayout),
	)
	if err := translateError(err); err != nil {
		if errors.Is(err, ErrForeignKey) {
			return err
		}
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// GetByID gets a note by ID. Returns ErrNotFound if not found.
func (r *NoteRepo) GetByID(ctx context.Context, id string) (*NoteRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, text, meta, journal_id, created_at, updated_at FROM notes WHERE id = ?", id)
	note, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}
	return note, nil
}

// List returns notes matching the filter, in insertion order.
func (r *NoteRepo) List(ctx context.Context, filter NoteFilter, page ListPage) ([]NoteRecord, error) {
	where, args := noteWhere(filter)
	args = append(args, page.Limit, page.Offset)

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, text, meta, journal_id, created_at, updated_at FROM notes"+
			where+" ORDER BY created_at, rowid LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var notes []NoteRecord
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return notes, nil
}

// Count returns the number of notes matching the filter.
func (r *NoteRepo) Count(ctx context.Context, filter NoteFilter) (int, error) {
	where, args := noteWhere(filter)
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes"+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return n, nil
}

// Update applies the provided fields and refreshes updated_at.
func (r *NoteRepo) Update(ctx context.Context, id string, upd NoteUpdate) (*NoteRecord, error) {
	var sets []string
	var args []any
	if upd.Text != nil {
		sets = append(sets, "text = ?")
		args = append(args, *upd.Text)
	}
	if upd.Meta != nil {
		sets = append(sets, "meta = ?")
		args = append(args, string(upd.Meta))
	}
	if upd.JournalID != nil {
		sets = append(sets, "journal_id = ?")
		args = append(args, *upd.JournalID)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Format(timeLayout), id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE notes SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err := translateError(err); err != nil {
		if errors.Is(err, ErrForeignKey) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a note; the schema cascades the delete to its note_tags
// rows. Returns ErrNotFound if the note does not exist.
func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func noteWhere(filter NoteFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.JournalID != nil {
		conds = append(conds, "journal_id = ?")
		args = append(args, *filter.JournalID)
	}
	if filter.Date != nil {
		// created_at is RFC3339, so the first ten characters are the date.
		conds = append(conds, "substr(created_at, 1, 10) = ?")
		args = append(args, *filter.Date)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanNote(s scanner) (*NoteRecord, error) {
	var note NoteRecord
	var meta, journalID sql.NullString
	var createdAt, updatedAt string

	if err := s.Scan(&note.ID, &note.Text, &meta, &journalID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	note.Meta = rawJSON(meta)
	note.JournalID = stringPtr(journalID)
	var err error
	if note.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if note.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &note, nil
}
