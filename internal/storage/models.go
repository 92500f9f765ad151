package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// JobStatus is the lifecycle status of an AI processing job.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusSuccess    JobStatus = "success"
	JobStatusError      JobStatus = "error"
)

// Valid reports whether s is one of the known job statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusQueued, JobStatusProcessing, JobStatusSuccess, JobStatusError:
		return true
	}
	return false
}

// ProjectRecord represents a project in the database.
type ProjectRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// JournalRecord represents a daily journal in the database.
type JournalRecord struct {
	ID                string          `json:"id"`
	Date              string          `json:"date"` // YYYY-MM-DD
	ProcessedMarkdown *string         `json:"processed_markdown"`
	NotesSnapshot     json.RawMessage `json:"notes_snapshot"`
	ProjectID         *string         `json:"project_id"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NoteRecord represents a note in the database.
type NoteRecord struct {
	ID        string          `json:"id"`
	Text      string          `json:"text"`
	Meta      json.RawMessage `json:"meta"`
	JournalID *string         `json:"journal_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TagRecord represents a tag in the database.
type TagRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AIJobRecord represents an asynchronous AI processing job in the database.
// The job's journal reference is mandatory; the work itself is performed by
// an external collaborator that reports back via status updates.
type AIJobRecord struct {
	ID           string          `json:"id"`
	JournalID    string          `json:"journal_id"`
	ModelName    string          `json:"model_name"`
	ModelVersion *string         `json:"model_version"`
	Prompt       string          `json:"prompt"`
	Response     json.RawMessage `json:"response"`
	Status       JobStatus       `json:"status"`
	ErrorMessage *string         `json:"error_message"`
	Meta         json.RawMessage `json:"meta"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ListPage is an offset/limit window over a listing.
type ListPage struct {
	Offset int
	Limit  int
}

// JournalFilter narrows journal listings. Nil fields are ignored;
// set fields are combined with logical AND.
type JournalFilter struct {
	ProjectID *string
	Date      *string // YYYY-MM-DD
}

// NoteFilter narrows note listings by owning journal and/or creation date.
type NoteFilter struct {
	JournalID *string
	Date      *string // YYYY-MM-DD, matched against the creation date
}

// AIJobFilter narrows AI job listings by status and/or owning journal.
type AIJobFilter struct {
	Status    *JobStatus
	JournalID *string
}

// timeLayout is how timestamps are written to TEXT columns.
const timeLayout = time.RFC3339Nano

// parseTime parses a stored timestamp. SQLite DATETIME defaults use a
// space-separated layout, so that format is accepted as a fallback.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableJSON(m json.RawMessage) any {
	if len(m) == 0 {
		return nil
	}
	return string(m)
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func rawJSON(ns sql.NullString) json.RawMessage {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.RawMessage(ns.String)
}
