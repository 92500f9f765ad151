package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_tag_service.go -package=mocks -mock_names=TagService=MockTagService journal-ai/internal/service TagService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"journal-ai/internal/storage"
)

// CreateTagInput holds the fields for creating a tag.
type CreateTagInput struct {
	Name string
}

// UpdateTagInput holds the fields of a tag update.
type UpdateTagInput struct {
	Name string
}

// TagService provides tag lifecycle operations.
type TagService interface {
	Create(ctx context.Context, in CreateTagInput) (*storage.TagRecord, error)
	Get(ctx context.Context, id string) (*storage.TagRecord, error)
	List(ctx context.Context, params ListParams) ([]storage.TagRecord, int, error)
	Update(ctx context.Context, id string, in UpdateTagInput) (*storage.TagRecord, error)
	// Delete removes the tag and its association rows; the notes survive.
	Delete(ctx context.Context, id string) error
	// Notes returns the notes linked to a tag.
	Notes(ctx context.Context, id string) ([]storage.NoteRecord, error)
}

type tagService struct {
	tags   storage.TagStore
	links  storage.NoteTagStore
	logger *slog.Logger
}

// NewTagService creates a new TagService.
func NewTagService(tags storage.TagStore, links storage.NoteTagStore) TagService {
	return &tagService{
		tags:   tags,
		links:  links,
		logger: slog.Default(),
	}
}

func (s *tagService) Create(ctx context.Context, in CreateTagInput) (*storage.TagRecord, error) {
	if in.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "cannot be empty"}
	}

	tag := &storage.TagRecord{Name: in.Name}
	if err := s.tags.Create(ctx, tag); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, &ConflictError{Message: fmt.Sprintf("tag with name %q already exists", in.Name)}
		}
		return nil, WrapError(err, "failed to create tag")
	}

	s.logger.InfoContext(ctx, "tag created", "tag_id", tag.ID, "name", tag.Name)
	return tag, nil
}

func (s *tagService) Get(ctx context.Context, id string) (*storage.TagRecord, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to get tag")
	}
	return tag, nil
}

func (s *tagService) List(ctx context.Context, params ListParams) ([]storage.TagRecord, int, error) {
	total, err := s.tags.Count(ctx)
	if err != nil {
		return nil, 0, WrapError(err, "failed to count tags")
	}
	tags, err := s.tags.List(ctx, params.window())
	if err != nil {
		return nil, 0, WrapError(err, "failed to list tags")
	}
	return tags, total, nil
}

func (s *tagService) Update(ctx context.Context, id string, in UpdateTagInput) (*storage.TagRecord, error) {
	if in.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "cannot be empty"}
	}

	tag, err := s.tags.Rename(ctx, id, in.Name)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, storage.ErrDuplicate):
			return nil, &ConflictError{Message: fmt.Sprintf("tag with name %q already exists", in.Name)}
		}
		return nil, WrapError(err, "failed to update tag")
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, id string) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to delete tag")
	}
	s.logger.InfoContext(ctx, "tag deleted", "tag_id", id)
	return nil
}

func (s *tagService) Notes(ctx context.Context, id string) ([]storage.NoteRecord, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	notes, err := s.links.ListNotesForTag(ctx, id)
	if err != nil {
		return nil, WrapError(err, "failed to list notes for tag")
	}
	return notes, nil
}
