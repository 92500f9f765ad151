package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_tag_store.go -package=mocks journal-ai/internal/storage TagStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TagStore defines the interface for tag storage operations.
type TagStore interface {
	// Create inserts a new tag, assigning its ID and timestamps.
	// Returns ErrDuplicate if a tag with the same name exists.
	Create(ctx context.Context, tag *TagRecord) error
	// GetByID gets a tag by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*TagRecord, error)
	// List returns tags in insertion order within the given page.
	List(ctx context.Context, page ListPage) ([]TagRecord, error)
	// Count returns the total number of tags.
	Count(ctx context.Context) (int, error)
	// Rename changes the tag's name and refreshes updated_at.
	// Returns ErrDuplicate if the new name collides with another tag.
	Rename(ctx context.Context, id, name string) (*TagRecord, error)
	// Delete removes a tag and, through schema cascade rules, all of its
	// association rows. The notes themselves survive.
	Delete(ctx context.Context, id string) error
}

// TagRepo provides methods for tag operations.
// It implements the TagStore interface.
type TagRepo struct {
	db *sql.DB
}

// NewTagRepo creates a new TagRepo.
func NewTagRepo(db *sql.DB) *TagRepo {
	return &TagRepo{db: db}
}

// Create inserts a new tag, assigning its ID and timestamps.
func (r *TagRepo) Create(ctx context.Context, tag *TagRecord) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	tag.CreatedAt = now
	tag.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tags (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)",
		tag.ID, tag.Name, now.Format(timeLayout), now.Format(timeLayout),
	)
	if err := translateError(err); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to insert tag: %w", err)
	}
	return nil
}

// GetByID gets a tag by ID. Returns ErrNotFound if not found.
func (r *TagRepo) GetByID(ctx context.Context, id string) (*TagRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM tags WHERE id = ?", id)
	tag, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tag: %w", err)
	}
	return tag, nil
}

// List returns tags in insertion order within the given page.
func (r *TagRepo) List(ctx context.Context, page ListPage) ([]TagRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM tags ORDER BY created_at, rowid LIMIT ? OFFSET ?",
		page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var tags []TagRecord
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, *tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return tags, nil
}

// Count returns the total number of tags.
func (r *TagRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tags").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tags: %w", err)
	}
	return n, nil
}

// Rename changes the tag's name and refreshes updated_at.
func (r *TagRepo) Rename(ctx context.Context, id, name string) (*TagRecord, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE tags SET name = ?, updated_at = ? WHERE id = ?",
		name, time.Now().UTC().Format(timeLayout), id,
	)
	if err := translateError(err); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to rename tag: %w", err)
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

// Delete removes a tag; the schema cascades the delete to its note_tags
// rows. Returns ErrNotFound if the tag does not exist.
func (r *TagRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
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

func scanTag(s scanner) (*TagRecord, error) {
	var tag TagRecord
	var createdAt, updatedAt string

	if err := s.Scan(&tag.ID, &tag.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if tag.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if tag.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &tag, nil
}
