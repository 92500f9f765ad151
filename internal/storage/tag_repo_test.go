package storage

import (
	"context"
	"errors"
	"testing"
)

func TestTagRepo_Create(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepo(db)

	tag := &TagRecord{Name: "idea"}
	if err := repo.Create(context.Background(), tag); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if tag.ID == "" {
		t.Error("Create() should generate an ID")
	}

	err := repo.Create(context.Background(), &TagRecord{Name: "idea"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("Create() duplicate name error = %v, want ErrDuplicate", err)
	}
}

func TestTagRepo_List(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepo(db)

	names := []string{"idea", "meeting", "todo"}
	for _, name := range names {
		seedTag(t, db, name)
	}

	tags, err := repo.List(context.Background(), ListPage{Offset: 1, Limit: 2})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("List() count = %d, want 2", len(tags))
	}
	if tags[0].Name != "meeting" || tags[1].Name != "todo" {
		t.Errorf("List() = [%q, %q], want [meeting, todo]", tags[0].Name, tags[1].Name)
	}

	total, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if total != len(names) {
		t.Errorf("Count() = %d, want %d", total, len(names))
	}
}

func TestTagRepo_Rename(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepo(db)

	tag := seedTag(t, db, "idea")
	seedTag(t, db, "meeting")

	got, err := repo.Rename(context.Background(), tag.ID, "thought")
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if got.Name != "thought" {
		t.Errorf("Rename() name = %q, want %q", got.Name, "thought")
	}

	_, err = repo.Rename(context.Background(), tag.ID, "meeting")
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("Rename() to taken name error = %v, want ErrDuplicate", err)
	}

	_, err = repo.Rename(context.Background(), "no-such-id", "anything")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Rename() missing tag error = %v, want ErrNotFound", err)
	}
}

func TestTagRepo_Delete_KeepsNotes(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepo(db)

	tag := seedTag(t, db, "idea")
	note := seedNote(t, db, "tagged", nil)
	if err := NewNoteTagRepo(db).Add(context.Background(), note.ID, tag.ID); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := repo.Delete(context.Background(), tag.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if got := countRows(t, db, "note_tags"); got != 0 {
		t.Errorf("note_tags after delete = %d, want 0", got)
	}
	if got := countRows(t, db, "notes"); got != 1 {
		t.Errorf("notes after delete = %d, want 1", got)
	}

	err := repo.Delete(context.Background(), tag.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}
