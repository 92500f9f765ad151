package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_journal_store.go -package=mocks journal-ai/internal/storage JournalStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JournalStore defines the interface for journal storage operations.
type JournalStore interface {
	// Create inserts a new journal, assigning its ID and timestamps.
	// Returns ErrForeignKey if the project reference does not resolve.
	Create(ctx context.Context, journal *JournalRecord) error
	// GetByID gets a journal by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*JournalRecord, error)
	// List returns journals matching the filter, in insertion order.
	List(ctx context.Context, filter JournalFilter, page ListPage) ([]JournalRecord, error)
	// Count returns the number of journals matching the filter.
	Count(ctx context.Context, filter JournalFilter) (int, error)
	// Update applies the provided fields and refreshes updated_at.
	Update(ctx context.Context, id string, upd JournalUpdate) (*JournalRecord, error)
	// Delete removes a journal and, through schema cascade rules, its
	// notes and AI jobs. Returns ErrNotFound if the journal does not exist.
	Delete(ctx context.Context, id string) error
}

// JournalUpdate holds the fields of a partial journal update.
// Nil fields are left untouched.
type JournalUpdate struct {
	Date              *string
	ProcessedMarkdown *string
	NotesSnapshot     json.RawMessage
	ProjectID         *string
}

// JournalRepo provides methods for journal operations.
// It implements the JournalStore interface.
type JournalRepo struct {
	db *sql.DB
}

// NewJournalRepo creates a new JournalRepo.
func NewJournalRepo(db *sql.DB) *JournalRepo {
	return &JournalRepo{db: db}
}

// Create inserts a new journal, assigning its ID and timestamps.
func (r *JournalRepo) Create(ctx context.Context, journal *JournalRecord) error {
	if journal.ID == "" {
		journal.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	journal.CreatedAt = now
	journal.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO journals (id, date, processed_markdown, notes_snapshot, project_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		journal.ID, journal.Date, nullableString(journal.ProcessedMarkdown),
		nullableJSON(journal.NotesSnapshot), nullableString(journal.ProjectID),
		now.Format(timeLayout), now.Format(timeLayout),
	)
	if err := translateError(err); err != nil {
		if errors.Is(err, ErrForeignKey) {
			return err
		}
		return fmt.Errorf("failed to insert journal: %w", err)
	}
	return nil
}

// GetByID gets a journal by ID. Returns ErrNotFound if not found.
func (r *JournalRepo) GetByID(ctx context.Context, id string) (*JournalRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, date, processed_markdown, notes_snapshot, project_id, created_at, updated_at
		 FROM journals WHERE id = ?`, id)
	journal, err := scanJournal(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	return journal, nil
}

// List returns journals matching the filter, in insertion order.
func (r *JournalRepo) List(ctx context.Context, filter JournalFilter, page ListPage) ([]JournalRecord, error) {
	where, args := journalWhere(filter)
	args = append(args, page.Limit, page.Offset)

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, processed_markdown, notes_snapshot, project_id, created_at, updated_at
		 FROM journals`+where+" ORDER BY created_at, rowid LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var journals []JournalRecord
	for rows.Next() {
		journal, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal: %w", err)
		}
		journals = append(journals, *journal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return journals, nil
}

// Count returns the number of journals matching the filter.
func (r *JournalRepo) Count(ctx context.Context, filter JournalFilter) (int, error) {
	where, args := journalWhere(filter)
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM journals"+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count journals: %w", err)
	}
	return n, nil
}

// Update applies the provided fields and refreshes updated_at.
func (r *JournalRepo) Update(ctx context.Context, id string, upd JournalUpdate) (*JournalRecord, error) {
	var sets []string
	var args []any
	if upd.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *upd.Date)
	}
	if upd.ProcessedMarkdown != nil {
		sets = append(sets, "processed_markdown = ?")
		args = append(args, *upd.ProcessedMarkdown)
	}
	if upd.NotesSnapshot != nil {
		sets = append(sets, "notes_snapshot = ?")
		args = append(args, string(upd.NotesSnapshot))
	}
	if upd.ProjectID != nil {
		sets = append(sets, "project_id = ?")
		args = append(args, *upd.ProjectID)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Format(timeLayout), id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE journals SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err := translateError(err); err != nil {
		if errors.Is(err, ErrForeignKey) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update journal: %w", err)
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

// Delete removes a journal; the schema cascades the delete to its notes and
// AI jobs in the same implicit transaction.
func (r *JournalRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM journals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete journal: %w", err)
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

func journalWhere(filter JournalFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.ProjectID != nil {
		conds = append(conds, "project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.Date != nil {
		conds = append(conds, "date = ?")
		args = append(args, *filter.Date)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanJournal(s scanner) (*JournalRecord, error) {
	var journal JournalRecord
	var processedMarkdown, notesSnapshot, projectID sql.NullString
	var createdAt, updatedAt string

	if err := s.Scan(&journal.ID, &journal.Date, &processedMarkdown, &notesSnapshot,
		&projectID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	journal.ProcessedMarkdown = stringPtr(processedMarkdown)
	journal.NotesSnapshot = rawJSON(notesSnapshot)
	journal.ProjectID = stringPtr(projectID)
	var err error
	if journal.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if journal.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &journal, nil
}
