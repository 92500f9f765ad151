package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_project_store.go -package=mocks journal-ai/internal/storage ProjectStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProjectStore defines the interface for project storage operations.
type ProjectStore interface {
	// Create inserts a new project, assigning its ID and timestamps.
	// Returns ErrDuplicate if a project with the same name exists.
	Create(ctx context.Context, project *ProjectRecord) error
	// GetByID gets a project by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)
	// List returns projects in insertion order within the given page.
	List(ctx context.Context, page ListPage) ([]ProjectRecord, error)
	// Count returns the total number of projects.
	Count(ctx context.Context) (int, error)
	// Update applies the provided fields and refreshes updated_at.
	// Returns ErrNotFound if the project does not exist and ErrDuplicate
	// if the new name collides with another project.
	Update(ctx context.Context, id string, upd ProjectUpdate) (*ProjectRecord, error)
	// Delete removes a project and, through schema cascade rules, all of
	// its journals with their notes and AI jobs. Returns ErrNotFound if
	// the project does not exist.
	Delete(ctx context.Context, id string) error
}

// ProjectUpdate holds the fields of a partial project update.
// Nil fields are left untouched.
type ProjectUpdate struct {
	Name        *string
	Description *string
}

// ProjectRepo provides methods for project operations.
// It implements the ProjectStore interface.
type ProjectRepo struct {
	db *sql.DB
}

// NewProjectRepo creates a new ProjectRepo.
func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// Create inserts a new project, assigning its ID and timestamps.
func (r *ProjectRepo) Create(ctx context.Context, project *ProjectRecord) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO projects (id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		project.ID, project.Name, nullableString(project.Description),
		now.Format(timeLayout), now.Format(timeLayout),
	)
	if err := translateError(err); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// GetByID gets a project by ID. Returns ErrNotFound if not found.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*ProjectRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, description, created_at, updated_at FROM projects WHERE id = ?", id)
	project, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query project: %w", err)
	}
	return project, nil
}

// List returns projects in insertion order within the given page.
func (r *ProjectRepo) List(ctx context.Context, page ListPage) ([]ProjectRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, created_at, updated_at FROM projects ORDER BY created_at, rowid LIMIT ? OFFSET ?",
		page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var projects []ProjectRecord
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return projects, nil
}

// Count returns the total number of projects.
func (r *ProjectRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return n, nil
}

// Update applies the provided fields and refreshes updated_at.
func (r *ProjectRepo) Update(ctx context.Context, id string, upd ProjectUpdate) (*ProjectRecord, error) {
	var sets []string
	var args []any
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Format(timeLayout), id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE projects SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err := translateError(err); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
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

// Delete removes a project; the schema cascades the delete to its journals,
// notes and AI jobs in the same implicit transaction.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
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

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*ProjectRecord, error) {
	var project ProjectRecord
	var description sql.NullString
	var createdAt, updatedAt string

	if err := s.Scan(&project.ID, &project.Name, &description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	project.Description = stringPtr(description)
	var err error
	if project.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if project.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &project, nil
}
