package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_aijob_store.go -package=mocks journal-ai/internal/storage AIJobStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AIJobStore defines the interface for AI job storage operations.
type AIJobStore interface {
	// Create inserts a new job, assigning its ID and timestamps.
	// Returns ErrForeignKey if the journal reference does not resolve.
	Create(ctx context.Context, job *AIJobRecord) error
	// GetByID gets a job by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*AIJobRecord, error)
	// List returns jobs matching the filter, in insertion order.
	List(ctx context.Context, filter AIJobFilter, page ListPage) ([]AIJobRecord, error)
	// Count returns the number of jobs matching the filter.
	Count(ctx context.Context, filter AIJobFilter) (int, error)
	// Update applies the provided fields and refreshes updated_at. When
	// upd.ExpectStatus is set the write only lands if the row still holds
	// that status, so concurrent transitions lose instead of overwriting.
	// Returns ErrNotFound when no row matched.
	Update(ctx context.Context, id string, upd AIJobUpdate) (*AIJobRecord, error)
	// Delete removes a job. Returns ErrNotFound if the job does not exist.
	Delete(ctx context.Context, id string) error
}

// AIJobUpdate holds the fields of a partial AI job update.
// Nil fields are left untouched.
type AIJobUpdate struct {
	Status       *JobStatus
	Response     []byte
	ErrorMessage *string
	Meta         []byte

	// ExpectStatus makes the update conditional on the stored status.
	ExpectStatus *JobStatus
}

// AIJobRepo provides methods for AI job operations.
// It implements the AIJobStore interface.
type AIJobRepo struct {
	db *sql.DB
}

// NewAIJobRepo creates a new AIJobRepo.
func NewAIJobRepo(db *sql.DB) *AIJobRepo {
	return &AIJobRepo{db: db}
}

const aiJobColumns = "id, journal_id, model_name, model_version, prompt, response, status, error_message, meta, created_at, updated_at"

// Create inserts a new job, assigning its ID and timestamps.
func (r *AIJobRepo) Create(ctx context.Context, job *AIJobRecord) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ai_jobs (`+aiJobColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.JournalID, job.ModelName, nullableString(job.ModelVersion),
		job.Prompt, nullableJSON(job.Response), string(job.Status),
		nullableString(job.ErrorMessage), nullableJSON(job.Meta),
		now.Format(timeLayout), now.Format(timeLayout),
	)
	if err := translateError(err); err != nil {
		if errors.Is(err, ErrForeignKey) {
			return err
		}
		return fmt.Errorf("failed to insert ai job: %w", err)
	}
	return nil
}

// GetByID gets a job by ID. Returns ErrNotFound if not found.
func (r *AIJobRepo) GetByID(ctx context.Context, id string) (*AIJobRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+aiJobColumns+" FROM ai_jobs WHERE id = ?", id)
	job, err := scanAIJob(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ai job: %w", err)
	}
	return job, nil
}

// List returns jobs matching the filter, in insertion order.
func (r *AIJobRepo) List(ctx context.Context, filter AIJobFilter, page ListPage) ([]AIJobRecord, error) {
	where, args := aiJobWhere(filter)
	args = append(args, page.Limit, page.Offset)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+aiJobColumns+" FROM ai_jobs"+where+" ORDER BY created_at, rowid LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ai jobs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var jobs []AIJobRecord
	for rows.Next() {
		job, err := scanAIJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ai job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return jobs, nil
}

// Count returns the number of jobs matching the filter.
func (r *AIJobRepo) Count(ctx context.Context, filter AIJobFilter) (int, error) {
	where, args := aiJobWhere(filter)
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ai_jobs"+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count ai jobs: %w", err)
	}
	return n, nil
}

// Update applies the provided fields and refreshes updated_at.
func (r *AIJobRepo) Update(ctx context.Context, id string, upd AIJobUpdate) (*AIJobRecord, error) {
	var sets []string
	var args []any
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*upd.Status))
	}
	if upd.Response != nil {
		sets = append(sets, "response = ?")
		args = append(args, string(upd.Response))
	}
	if upd.ErrorMessage != nil {
		sets = append(sets, "error_message = ?")
		args = append(args, *upd.ErrorMessage)
	}
	if upd.Meta != nil {
		sets = append(sets, "meta = ?")
		args = append(args, string(upd.Meta))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Format(timeLayout))

	query := "UPDATE ai_jobs SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)
	if upd.ExpectStatus != nil {
		query += " AND status = ?"
		args = append(args, string(*upd.ExpectStatus))
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update ai job: %w", err)
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

// Delete removes a job. Returns ErrNotFound if the job does not exist.
func (r *AIJobRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM ai_jobs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete ai job: %w", err)
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

func aiJobWhere(filter AIJobFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.JournalID != nil {
		conds = append(conds, "journal_id = ?")
		args = append(args, *filter.JournalID)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanAIJob(s scanner) (*AIJobRecord, error) {
	var job AIJobRecord
	var modelVersion, response, errorMessage, meta sql.NullString
	var status, createdAt, updatedAt string

	if err := s.Scan(&job.ID, &job.JournalID, &job.ModelName, &modelVersion, &job.Prompt,
		&response, &status, &errorMessage, &meta, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	job.ModelVersion = stringPtr(modelVersion)
	job.Response = rawJSON(response)
	job.Status = JobStatus(status)
	job.ErrorMessage = stringPtr(errorMessage)
	job.Meta = rawJSON(meta)
	var err error
	if job.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if job.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &job, nil
}
