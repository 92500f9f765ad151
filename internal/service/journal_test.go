package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"journal-ai/internal/service"
)

func TestJournalService_Create(t *testing.T) {
	env := newTestEnv(t)

	project, err := env.projects.Create(context.Background(), service.CreateProjectInput{Name: "work"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name    string
		input   service.CreateJournalInput
		wantErr func(error) bool
	}{
		{
			name:  "with project",
			input: service.CreateJournalInput{Date: "2026-01-15", ProjectID: &project.ID},
		},
		{
			name:  "without project",
			input: service.CreateJournalInput{Date: "2026-01-16"},
		},
		{
			name:  "empty date rejected",
			input: service.CreateJournalInput{Date: ""},
			wantErr: func(err error) bool {
				var v *service.ValidationError
				return errors.As(err, &v) && v.Field == "date"
			},
		},
		{
			name:  "malformed date rejected",
			input: service.CreateJournalInput{Date: "15/01/2026"},
			wantErr: func(err error) bool {
				var v *service.ValidationError
				return errors.As(err, &v) && v.Field == "date"
			},
		},
		{
			name:  "dangling project reference",
			input: service.CreateJournalInput{Date: "2026-01-17", ProjectID: strPtr("no-such-project")},
			wantErr: func(err error) bool {
				var r *service.ReferenceError
				return errors.As(err, &r) && r.Kind == "project"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			journal, err := env.journals.Create(context.Background(), tt.input)
			if tt.wantErr != nil {
				if err == nil || !tt.wantErr(err) {
					t.Errorf("Create() error = %v, want matching error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if journal.Date != tt.input.Date {
				t.Errorf("Create() date = %q, want %q", journal.Date, tt.input.Date)
			}
		})
	}
}

func TestJournalService_Update(t *testing.T) {
	env := newTestEnv(t)

	journal := env.createJournal(t, "2026-01-15", nil)

	markdown := "# Summary"
	snapshot := json.RawMessage(`[{"text":"first"}]`)
	got, err := env.journals.Update(context.Background(), journal.ID, service.UpdateJournalInput{
		ProcessedMarkdown: &markdown,
		NotesSnapshot:     snapshot,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.ProcessedMarkdown == nil || *got.ProcessedMarkdown != markdown {
		t.Errorf("Update() processed_markdown = %v, want %q", got.ProcessedMarkdown, markdown)
	}
	if string(got.NotesSnapshot) != string(snapshot) {
		t.Errorf("Update() notes_snapshot = %s, want %s", got.NotesSnapshot, snapshot)
	}

	var validation *service.ValidationError
	_, err = env.journals.Update(context.Background(), journal.ID, service.UpdateJournalInput{Date: strPtr("not-a-date")})
	if !errors.As(err, &validation) {
		t.Errorf("Update() malformed date error = %v, want ValidationError", err)
	}

	var reference *service.ReferenceError
	_, err = env.journals.Update(context.Background(), journal.ID, service.UpdateJournalInput{ProjectID: strPtr("no-such-project")})
	if !errors.As(err, &reference) {
		t.Errorf("Update() dangling project error = %v, want ReferenceError", err)
	}
}

func TestJournalService_List_Filters(t *testing.T) {
	env := newTestEnv(t)

	project, err := env.projects.Create(context.Background(), service.CreateProjectInput{Name: "work"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	env.createJournal(t, "2026-01-15", &project.ID)
	env.createJournal(t, "2026-01-15", nil)
	env.createJournal(t, "2026-01-16", &project.ID)

	journals, total, err := env.journals.List(context.Background(), service.JournalListFilter{
		Date:      strPtr("2026-01-15"),
		ProjectID: &project.ID,
	}, service.NormalizePage(1, 20))
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 || len(journals) != 1 {
		t.Errorf("List() total = %d, count = %d, want 1, 1", total, len(journals))
	}

	var validation *service.ValidationError
	_, _, err = env.journals.List(context.Background(), service.JournalListFilter{
		Date: strPtr("January 15"),
	}, service.NormalizePage(1, 20))
	if !errors.As(err, &validation) {
		t.Errorf("List() malformed date filter error = %v, want ValidationError", err)
	}
}

func TestJournalService_Delete_Cascades(t *testing.T) {
	env := newTestEnv(t)

	journal := env.createJournal(t, "2026-01-15", nil)
	note := env.createNote(t, "standup notes", &journal.ID)
	job, err := env.aiJobs.Create(context.Background(), service.CreateAIJobInput{
		JournalID: journal.ID,
		ModelName: "gpt-4o",
		Prompt:    "summarize",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := env.journals.Delete(context.Background(), journal.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := env.notes.Get(context.Background(), note.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("note after cascade error = %v, want ErrNotFound", err)
	}
	if _, err := env.aiJobs.Get(context.Background(), job.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("ai job after cascade error = %v, want ErrNotFound", err)
	}
}

func TestJournalService_Traversals(t *testing.T) {
	env := newTestEnv(t)

	journal := env.createJournal(t, "2026-01-15", nil)
	env.createNote(t, "first", &journal.ID)
	env.createNote(t, "second", &journal.ID)
	env.createNote(t, "loose", nil)

	notes, err := env.journals.Notes(context.Background(), journal.ID)
	if err != nil {
		t.Fatalf("Notes() error = %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("Notes() count = %d, want 2", len(notes))
	}

	jobs, err := env.journals.AIJobs(context.Background(), journal.ID)
	if err != nil {
		t.Fatalf("AIJobs() error = %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("AIJobs() count = %d, want 0", len(jobs))
	}

	if _, err := env.journals.Notes(context.Background(), "no-such-id"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Notes() missing journal error = %v, want ErrNotFound", err)
	}
}

func TestJournalService_DuplicateDateAllowed(t *testing.T) {
	env := newTestEnv(t)

	env.createJournal(t, "2026-01-15", nil)
	journal, err := env.journals.Create(context.Background(), service.CreateJournalInput{Date: "2026-01-15"})
	if err != nil {
		t.Fatalf("Create() second journal for same date error = %v", err)
	}

	_, total, err := env.journals.List(context.Background(), service.JournalListFilter{
		Date: &journal.Date,
	}, service.NormalizePage(1, 20))
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 2 {
		t.Errorf("List() total = %d, want 2", total)
	}
}
