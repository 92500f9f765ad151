package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_notetag_store.go -package=mocks journal-ai/internal/storage NoteTagStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// NoteTagStore defines the interface for note-tag association operations.
// Association rows have their own lifecycle: adding and removing a link never
// creates or deletes the note or the tag themselves.
type NoteTagStore interface {
	// Add links a tag to a note. Returns ErrDuplicate if the pair already
	// exists and ErrForeignKey if either side does not resolve.
	Add(ctx context.Context, noteID, tagID string) error
	// Remove unlinks a tag from a note. Returns ErrNotFound if the pair
	// is not associated, regardless of whether the entities exist.
	Remove(ctx context.Context, noteID, tagID string) error
	// ListTagsForNote returns the tags linked to a note, in link insertion order.
	ListTagsForNote(ctx context.Context, noteID string) ([]TagRecord, error)
	// ListNotesForTag returns the notes linked to a tag, in link insertion order.
	ListNotesForTag(ctx context.Context, tagID string) ([]NoteRecord, error)
}

// NoteTagRepo provides methods for note-tag association operations.
// It implements the NoteTagStore interface.
type NoteTagRepo struct {
	db *sql.DB
}

// NewNoteTagRepo creates a new NoteTagRepo.
func NewNoteTagRepo(db *sql.DB) *NoteTagRepo {
	return &NoteTagRepo{db: db}
}

// Add links a tag to a note. The (note_id, tag_id) primary key arbitrates
// duplicates and the foreign keys arbitrate dangling references, so two
// concurrent adds of the same pair cannot both succeed.
func (r *NoteTagRepo) Add(ctx context.Context, noteID, tagID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO note_tags (note_id, tag_id) VALUES (?, ?)", noteID, tagID)
	if err := translateError(err); err != nil {
		if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrForeignKey) {
			return err
		}
		return fmt.Errorf("failed to insert note-tag link: %w", err)
	}
	return nil
}

// Remove unlinks a tag from a note.
func (r *NoteTagRepo) Remove(ctx context.Context, noteID, tagID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM note_tags WHERE note_id = ? AND tag_id = ?", noteID, tagID)
	if err != nil {
		return fmt.Errorf("failed to delete note-tag link: %w", err)
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

// ListTagsForNote returns the tags linked to a note, in link insertion order.
func (r *NoteTagRepo) ListTagsForNote(ctx context.Context, noteID string) ([]TagRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name, t.created_at, t.updated_at
		 FROM tags t JOIN note_tags nt ON nt.tag_id = t.id
		 WHERE nt.note_id = ? ORDER BY nt.rowid`, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags for note: %w", err)
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

// ListNotesForTag returns the notes linked to a tag, in link insertion order.
func (r *NoteTagRepo) ListNotesForTag(ctx context.Context, tagID string) ([]NoteRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT n.id, n.text, n.meta, n.journal_id, n.created_at, n.updated_at
		 FROM notes n JOIN note_tags nt ON nt.note_id = n.id
		 WHERE nt.tag_id = ? ORDER BY nt.rowid`, tagID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes for tag: %w", err)
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
