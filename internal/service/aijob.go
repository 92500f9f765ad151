package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_aijob_service.go -package=mocks -mock_names=AIJobService=MockAIJobService journal-ai/internal/service AIJobService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"journal-ai/internal/storage"
)

// CreateAIJobInput holds the fields for creating an AI job. A journal
// reference is mandatory: a job with no journal cannot exist.
type CreateAIJobInput struct {
	JournalID    string
	ModelName    string
	ModelVersion *string
	Prompt       string
	Meta         json.RawMessage
}

// UpdateAIJobInput holds the fields of a partial AI job update. This is how
// the external processing collaborator reports progress back: a status
// transition, optionally with a response payload or an error message.
// Nil fields are left untouched.
type UpdateAIJobInput struct {
	Status       *storage.JobStatus
	Response     json.RawMessage
	ErrorMessage *string
	Meta         json.RawMessage
}

// AIJobListFilter narrows job listings by status and/or owning journal.
// Both filters may be set at once and combine with logical AND.
type AIJobListFilter struct {
	Status    *storage.JobStatus
	JournalID *string
}

// AIJobService provides AI job lifecycle operations. Jobs start queued and
// may only move forward: queued to processing, processing to success or
// error. Success and error are terminal.
type AIJobService interface {
	Create(ctx context.Context, in CreateAIJobInput) (*storage.AIJobRecord, error)
	Get(ctx context.Context, id string) (*storage.AIJobRecord, error)
	List(ctx context.Context, filter AIJobListFilter, params ListParams) ([]storage.AIJobRecord, int, error)
	Update(ctx context.Context, id string, in UpdateAIJobInput) (*storage.AIJobRecord, error)
	Delete(ctx context.Context, id string) error
}

type aiJobService struct {
	jobs   storage.AIJobStore
	logger *slog.Logger
}

// NewAIJobService creates a new AIJobService.
func NewAIJobService(jobs storage.AIJobStore) AIJobService {
	return &aiJobService{
		jobs:   jobs,
		logger: slog.Default(),
	}
}

// canTransition reports whether a status change follows the forward-only
// state machine. Terminal states accept no further transitions, and a
// same-status update counts as a transition attempt.
func canTransition(from, to storage.JobStatus) bool {
	switch from {
	case storage.JobStatusQueued:
		return to == storage.JobStatusProcessing
	case storage.JobStatusProcessing:
		return to == storage.JobStatusSuccess || to == storage.JobStatusError
	default:
		return false
	}
}

func (s *aiJobService) Create(ctx context.Context, in CreateAIJobInput) (*storage.AIJobRecord, error) {
	if in.JournalID == "" {
		return nil, &ValidationError{Field: "journal_id", Message: "cannot be empty"}
	}
	if in.ModelName == "" {
		return nil, &ValidationError{Field: "model_name", Message: "cannot be empty"}
	}
	if in.Prompt == "" {
		return nil, &ValidationError{Field: "prompt", Message: "cannot be empty"}
	}

	job := &storage.AIJobRecord{
		JournalID:    in.JournalID,
		ModelName:    in.ModelName,
		ModelVersion: in.ModelVersion,
		Prompt:       in.Prompt,
		Meta:         in.Meta,
		Status:       storage.JobStatusQueued,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		if errors.Is(err, storage.ErrForeignKey) {
			return nil, &ReferenceError{Kind: "journal", ID: in.JournalID}
		}
		return nil, WrapError(err, "failed to create ai job")
	}

	s.logger.InfoContext(ctx, "ai job created", "job_id", job.ID, "journal_id", job.JournalID, "model", job.ModelName)
	return job, nil
}

func (s *aiJobService) Get(ctx context.Context, id string) (*storage.AIJobRecord, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to get ai job")
	}
	return job, nil
}

func (s *aiJobService) List(ctx context.Context, filter AIJobListFilter, params ListParams) ([]storage.AIJobRecord, int, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", *filter.Status)}
	}
	storeFilter := storage.AIJobFilter{Status: filter.Status, JournalID: filter.JournalID}

	total, err := s.jobs.Count(ctx, storeFilter)
	if err != nil {
		return nil, 0, WrapError(err, "failed to count ai jobs")
	}
	jobs, err := s.jobs.List(ctx, storeFilter, params.window())
	if err != nil {
		return nil, 0, WrapError(err, "failed to list ai jobs")
	}
	return jobs, total, nil
}

func (s *aiJobService) Update(ctx context.Context, id string, in UpdateAIJobInput) (*storage.AIJobRecord, error) {
	upd := storage.AIJobUpdate{
		Response:     in.Response,
		ErrorMessage: in.ErrorMessage,
		Meta:         in.Meta,
	}

	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", *in.Status)}
		}
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !canTransition(current.Status, *in.Status) {
			return nil, &ConflictError{Message: fmt.Sprintf("illegal status transition %s -> %s", current.Status, *in.Status)}
		}
		// Compare-and-swap on the observed status so a concurrent
		// transition fails instead of being overwritten.
		upd.Status = in.Status
		upd.ExpectStatus = &current.Status
	}

	job, err := s.jobs.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			if upd.ExpectStatus == nil {
				return nil, ErrNotFound
			}
			// Disambiguate: the row may still exist with a different status.
			if _, getErr := s.jobs.GetByID(ctx, id); getErr == nil {
				return nil, &ConflictError{Message: "ai job status changed concurrently"}
			}
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to update ai job")
	}

	if in.Status != nil {
		s.logger.InfoContext(ctx, "ai job status changed", "job_id", id, "status", *in.Status)
	}
	return job, nil
}

func (s *aiJobService) Delete(ctx context.Context, id string) error {
	if err := s.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to delete ai job")
	}
	s.logger.InfoContext(ctx, "ai job deleted", "job_id", id)
	return nil
}
