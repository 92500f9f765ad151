package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_project_service.go -package=mocks -mock_names=ProjectService=MockProjectService journal-ai/internal/service ProjectService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"journal-ai/internal/storage"
)

// CreateProjectInput holds the fields for creating a project.
type CreateProjectInput struct {
	Name        string
	Description *string
}

// UpdateProjectInput holds the fields of a partial project update.
// Nil fields are left untouched.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// ProjectService provides project lifecycle operations.
type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*storage.ProjectRecord, error)
	Get(ctx context.Context, id string) (*storage.ProjectRecord, error)
	List(ctx context.Context, params ListParams) ([]storage.ProjectRecord, int, error)
	Update(ctx context.Context, id string, in UpdateProjectInput) (*storage.ProjectRecord, error)
	// Delete removes the project and cascades to its journals, their notes
	// and their AI jobs, atomically.
	Delete(ctx context.Context, id string) error
	// Journals returns all journals owned by the project.
	Journals(ctx context.Context, id string) ([]storage.JournalRecord, error)
}

type projectService struct {
	projects storage.ProjectStore
	journals storage.JournalStore
	logger   *slog.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects storage.ProjectStore, journals storage.JournalStore) ProjectService {
	return &projectService{
		projects: projects,
		journals: journals,
		logger:   slog.Default(),
	}
}

func (s *projectService) Create(ctx context.Context, in CreateProjectInput) (*storage.ProjectRecord, error) {
	if in.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "cannot be empty"}
	}

	project := &storage.ProjectRecord{
		Name:        in.Name,
		Description: in.Description,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, &ConflictError{Message: fmt.Sprintf("project with name %q already exists", in.Name)}
		}
		return nil, WrapError(err, "failed to create project")
	}

	s.logger.InfoContext(ctx, "project created", "project_id", project.ID, "name", project.Name)
	return project, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*storage.ProjectRecord, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to get project")
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context, params ListParams) ([]storage.ProjectRecord, int, error) {
	total, err := s.projects.Count(ctx)
	if err != nil {
		return nil, 0, WrapError(err, "failed to count projects")
	}
	projects, err := s.projects.List(ctx, params.window())
	if err != nil {
		return nil, 0, WrapError(err, "failed to list projects")
	}
	return projects, total, nil
}

func (s *projectService) Update(ctx context.Context, id string, in UpdateProjectInput) (*storage.ProjectRecord, error) {
	if in.Name != nil && *in.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "cannot be empty"}
	}

	project, err := s.projects.Update(ctx, id, storage.ProjectUpdate{
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, storage.ErrDuplicate):
			return nil, &ConflictError{Message: fmt.Sprintf("project with name %q already exists", *in.Name)}
		}
		return nil, WrapError(err, "failed to update project")
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to delete project")
	}
	s.logger.InfoContext(ctx, "project deleted", "project_id", id)
	return nil
}

func (s *projectService) Journals(ctx context.Context, id string) ([]storage.JournalRecord, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	journals, err := s.journals.List(ctx, storage.JournalFilter{ProjectID: &id}, allRows)
	if err != nil {
		return nil, WrapError(err, "failed to list project journals")
	}
	return journals, nil
}
