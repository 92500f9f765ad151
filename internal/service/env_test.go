package service_test

import (
	"context"
	"database/sql"
	"testing"

	"journal-ai/internal/service"
	"journal-ai/internal/storage"
)

// testEnv wires the full service stack onto a fresh database.
type testEnv struct {
	db       *sql.DB
	projects service.ProjectService
	journals service.JournalService
	notes    service.NoteService
	tags     service.TagService
	aiJobs   service.AIJobService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := storage.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	projectRepo := storage.NewProjectRepo(db)
	journalRepo := storage.NewJournalRepo(db)
	noteRepo := storage.NewNoteRepo(db)
	tagRepo := storage.NewTagRepo(db)
	noteTagRepo := storage.NewNoteTagRepo(db)
	aiJobRepo := storage.NewAIJobRepo(db)

	return &testEnv{
		db:       db,
		projects: service.NewProjectService(projectRepo, journalRepo),
		journals: service.NewJournalService(journalRepo, noteRepo, aiJobRepo),
		notes:    service.NewNoteService(noteRepo, tagRepo, noteTagRepo),
		tags:     service.NewTagService(tagRepo, noteTagRepo),
		aiJobs:   service.NewAIJobService(aiJobRepo),
	}
}

func (e *testEnv) createJournal(t *testing.T, date string, projectID *string) *storage.JournalRecord {
	t.Helper()
	journal, err := e.journals.Create(context.Background(), service.CreateJournalInput{
		Date:      date,
		ProjectID: projectID,
	})
	if err != nil {
		t.Fatalf("create journal %q: %v", date, err)
	}
	return journal
}

func (e *testEnv) createNote(t *testing.T, text string, journalID *string) *storage.NoteRecord {
	t.Helper()
	note, err := e.notes.Create(context.Background(), service.CreateNoteInput{
		Text:      text,
		JournalID: journalID,
	})
	if err != nil {
		t.Fatalf("create note %q: %v", text, err)
	}
	return note
}

func (e *testEnv) createTag(t *testing.T, name string) *storage.TagRecord {
	t.Helper()
	tag, err := e.tags.Create(context.Background(), service.CreateTagInput{Name: name})
	if err != nil {
		t.Fatalf("create tag %q: %v", name, err)
	}
	return tag
}

func strPtr(s string) *string {
	return &s
}
