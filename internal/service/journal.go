package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_journal_service.go -package=mocks -mock_names=JournalService=MockJournalService journal-ai/internal/service JournalService

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"journal-ai/internal/storage"
)

// dateLayout is the wire format for journal dates and date filters.
const dateLayout = "2006-01-02"

// CreateJournalInput holds the fields for creating a journal.
type CreateJournalInput struct {
	Date      string
	ProjectID *string
}

// UpdateJournalInput holds the fields of a partial journal update.
// Nil fields are left untouched.
type UpdateJournalInput struct {
	Date              *string
	ProcessedMarkdown *string
	NotesSnapshot     json.RawMessage
	ProjectID         *string
}

// JournalListFilter narrows journal listings by date and/or owning project.
type JournalListFilter struct {
	Date      *string
	ProjectID *string
}

// JournalService provides journal lifecycle operations.
type JournalService interface {
	Create(ctx context.Context, in CreateJournalInput) (*storage.JournalRecord, error)
	Get(ctx context.Context, id string) (*storage.JournalRecord, error)
	List(ctx context.Context, filter JournalListFilter, params ListParams) ([]storage.JournalRecord, int, error)
	Update(ctx context.Context, id string, in UpdateJournalInput) (*storage.JournalRecord, error)
	// Delete removes the journal and cascades to its notes and AI jobs.
	Delete(ctx context.Context, id string) error
	// Notes returns all notes owned by the journal.
	Notes(ctx context.Context, id string) ([]storage.NoteRecord, error)
	// AIJobs returns all AI jobs owned by the journal.
	AIJobs(ctx context.Context, id string) ([]storage.AIJobRecord, error)
}

type journalService struct {
	journals storage.JournalStore
	notes    storage.NoteStore
	aiJobs   storage.AIJobStore
	logger   *slog.Logger
}

// NewJournalService creates a new JournalService.
func NewJournalService(journals storage.JournalStore, notes storage.NoteStore, aiJobs storage.AIJobStore) JournalService {
	return &journalService{
		journals: journals,
		notes:    notes,
		aiJobs:   aiJobs,
		logger:   slog.Default(),
	}
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func (s *journalService) Create(ctx context.Context, in CreateJournalInput) (*storage.JournalRecord, error) {
	if in.Date == "" {
		return nil, &ValidationError{Field: "date", Message: "cannot be empty"}
	}
	if !validDate(in.Date) {
		return nil, &ValidationError{Field: "date", Message: "must be formatted YYYY-MM-DD"}
	}

	journal := &storage.JournalRecord{
		Date:      in.Date,
		ProjectID: in.ProjectID,
	}
	if err := s.journals.Create(ctx, journal); err != nil {
		if errors.Is(err, storage.ErrForeignKey) {
			return nil, &ReferenceError{Kind: "project", ID: deref(in.ProjectID)}
		}
		return nil, WrapError(err, "failed to create journal")
	}

	s.logger.InfoContext(ctx, "journal created", "journal_id", journal.ID, "date", journal.Date)
	return journal, nil
}

func (s *journalService) Get(ctx context.Context, id string) (*storage.JournalRecord, error) {
	journal, err := s.journals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to get journal")
	}
	return journal, nil
}

func (s *journalService) List(ctx context.Context, filter JournalListFilter, params ListParams) ([]storage.JournalRecord, int, error) {
	if filter.Date != nil && !validDate(*filter.Date) {
		return nil, 0, &ValidationError{Field: "date", Message: "must be formatted YYYY-MM-DD"}
	}
	storeFilter := storage.JournalFilter{ProjectID: filter.ProjectID, Date: filter.Date}

	total, err := s.journals.Count(ctx, storeFilter)
	if err != nil {
		return nil, 0, WrapError(err, "failed to count journals")
	}
	journals, err := s.journals.List(ctx, storeFilter, params.window())
	if err != nil {
		return nil, 0, WrapError(err, "failed to list journals")
	}
	return journals, total, nil
}

func (s *journalService) Update(ctx context.Context, id string, in UpdateJournalInput) (*storage.JournalRecord, error) {
	if in.Date != nil && !validDate(*in.Date) {
		return nil, &ValidationError{Field: "date", Message: "must be formatted YYYY-MM-DD"}
	}

	journal, err := s.journals.Update(ctx, id, storage.JournalUpdate{
		Date:              in.Date,
		ProcessedMarkdown: in.ProcessedMarkdown,
		NotesSnapshot:     in.NotesSnapshot,
		ProjectID:         in.ProjectID,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, storage.ErrForeignKey):
			return nil, &ReferenceError{Kind: "project", ID: deref(in.ProjectID)}
		}
		return nil, WrapError(err, "failed to update journal")
	}
	return journal, nil
}

func (s *journalService) Delete(ctx context.Context, id string) error {
	if err := s.journals.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to delete journal")
	}
	s.logger.InfoContext(ctx, "journal deleted", "journal_id", id)
	return nil
}

func (s *journalService) Notes(ctx context.Context, id string) ([]storage.NoteRecord, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	notes, err := s.notes.List(ctx, storage.NoteFilter{JournalID: &id}, allRows)
	if err != nil {
		return nil, WrapError(err, "failed to list journal notes")
	}
	return notes, nil
}

func (s *journalService) AIJobs(ctx context.Context, id string) ([]storage.AIJobRecord, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	jobs, err := s.aiJobs.List(ctx, storage.AIJobFilter{JournalID: &id}, allRows)
	if err != nil {
		return nil, WrapError(err, "failed to list journal ai jobs")
	}
	return jobs, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
