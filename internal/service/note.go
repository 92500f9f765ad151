package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_service.go -package=mocks -mock_names=NoteService=MockNoteService journal-ai/internal/service NoteService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"journal-ai/internal/storage"
)

// CreateNoteInput holds the fields for creating a note.
type CreateNoteInput struct {
	Text      string
	Meta      json.RawMessage
	JournalID *string
}

// UpdateNoteInput holds the fields of a partial note update.
// Nil fields are left untouched.
type UpdateNoteInput struct {
	Text      *string
	Meta      json.RawMessage
	JournalID *string
}

// NoteListFilter narrows note listings by creation date and/or owning journal.
type NoteListFilter struct {
	Date      *string
	JournalID *string
}

// NoteService provides note lifecycle operations and the note-tag
// association lifecycle.
type NoteService interface {
	Create(ctx context.Context, in CreateNoteInput) (*storage.NoteRecord, error)
	Get(ctx context.Context, id string) (*storage.NoteRecord, error)
	List(ctx context.Context, filter NoteListFilter, params ListParams) ([]storage.NoteRecord, int, error)
	Update(ctx context.Context, id string, in UpdateNoteInput) (*storage.NoteRecord, error)
	// Delete removes the note and its tag association rows; the tags survive.
	Delete(ctx context.Context, id string) error

	// AddTag links a tag to a note. Adding a pair that already exists is a
	// conflict, not a no-op.
	AddTag(ctx context.Context, noteID, tagID string) error
	// RemoveTag unlinks a tag from a note. Removing a pair that is not
	// associated is a not-found, even when both entities exist.
	RemoveTag(ctx context.Context, noteID, tagID string) error
	// Tags returns the tags linked to a note.
	Tags(ctx context.Context, noteID string) ([]storage.TagRecord, error)
}

type noteService struct {
	notes  storage.NoteStore
	tags   storage.TagStore
	links  storage.NoteTagStore
	logger *slog.Logger
}

// NewNoteService creates a new NoteService.
func NewNoteService(notes storage.NoteStore, tags storage.TagStore, links storage.NoteTagStore) NoteService {
	return &noteService{
		notes:  notes,
		tags:   tags,
		links:  links,
		logger: slog.Default(),
	}
}

func (s *noteService) Create(ctx context.Context, in CreateNoteInput) (*storage.NoteRecord, error) {
	if in.Text == "" {
		return nil, &ValidationError{Field: "text", Message: "cannot be empty"}
	}

	note := &storage.NoteRecord{
		Text:      in.Text,
		Meta:      in.Meta,
		JournalID: in.JournalID,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		if errors.Is(err, storage.ErrForeignKey) {
			return nil, &ReferenceError{Kind: "journal", ID: deref(in.JournalID)}
		}
		return nil, WrapError(err, "failed to create note")
	}

	s.logger.InfoContext(ctx, "note created", "note_id", note.ID)
	return note, nil
}

func (s *noteService) Get(ctx context.Context, id string) (*storage.NoteRecord, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to get note")
	}
	return note, nil
}

func (s *noteService) List(ctx context.Context, filter NoteListFilter, params ListParams) ([]storage.NoteRecord, int, error) {
	if filter.Date != nil && !validDate(*filter.Date) {
		return nil, 0, &ValidationError{Field: "date", Message: "must be formatted YYYY-MM-DD"}
	}
	storeFilter := storage.NoteFilter{JournalID: filter.JournalID, Date: filter.Date}

	total, err := s.notes.Count(ctx, storeFilter)
	if err != nil {
		return nil, 0, WrapError(err, "failed to count notes")
	}
	notes, err := s.notes.List(ctx, storeFilter, params.window())
	if err != nil {
		return nil, 0, WrapError(err, "failed to list notes")
	}
	return notes, total, nil
}

func (s *noteService) Update(ctx context.Context, id string, in UpdateNoteInput) (*storage.NoteRecord, error) {
	if in.Text != nil && *in.Text == "" {
		return nil, &ValidationError{Field: "text", Message: "cannot be empty"}
	}

	note, err := s.notes.Update(ctx, id, storage.NoteUpdate{
		Text:      in.Text,
		Meta:      in.Meta,
		JournalID: in.JournalID,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, storage.ErrForeignKey):
			return nil, &ReferenceError{Kind: "journal", ID: deref(in.JournalID)}
		}
		return nil, WrapError(err, "failed to update note")
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	if err := s.notes.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to delete note")
	}
	s.logger.InfoContext(ctx, "note deleted", "note_id", id)
	return nil
}

func (s *noteService) AddTag(ctx context.Context, noteID, tagID string) error {
	// Resolve both sides first so the caller learns which reference is
	// dangling; the schema constraints remain the arbiter under races.
	if _, err := s.notes.GetByID(ctx, noteID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &ReferenceError{Kind: "note", ID: noteID}
		}
		return WrapError(err, "failed to resolve note")
	}
	if _, err := s.tags.GetByID(ctx, tagID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &ReferenceError{Kind: "tag", ID: tagID}
		}
		return WrapError(err, "failed to resolve tag")
	}

	if err := s.links.Add(ctx, noteID, tagID); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			return &ConflictError{Message: fmt.Sprintf("tag %s is already associated with note %s", tagID, noteID)}
		case errors.Is(err, storage.ErrForeignKey):
			// One side vanished between the checks and the insert.
			return &ReferenceError{Kind: "note or tag", ID: noteID}
		}
		return WrapError(err, "failed to add tag to note")
	}

	s.logger.InfoContext(ctx, "tag added to note", "note_id", noteID, "tag_id", tagID)
	return nil
}

func (s *noteService) RemoveTag(ctx context.Context, noteID, tagID string) error {
	if _, err := s.notes.GetByID(ctx, noteID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &ReferenceError{Kind: "note", ID: noteID}
		}
		return WrapError(err, "failed to resolve note")
	}
	if _, err := s.tags.GetByID(ctx, tagID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &ReferenceError{Kind: "tag", ID: tagID}
		}
		return WrapError(err, "failed to resolve tag")
	}

	if err := s.links.Remove(ctx, noteID, tagID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to remove tag from note")
	}

	s.logger.InfoContext(ctx, "tag removed from note", "note_id", noteID, "tag_id", tagID)
	return nil
}

func (s *noteService) Tags(ctx context.Context, noteID string) ([]storage.TagRecord, error) {
	if _, err := s.Get(ctx, noteID); err != nil {
		return nil, err
	}
	tags, err := s.links.ListTagsForNote(ctx, noteID)
	if err != nil {
		return nil, WrapError(err, "failed to list tags for note")
	}
	return tags, nil
}
