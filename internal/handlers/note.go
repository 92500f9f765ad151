package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"journal-ai/internal/service"
)

// NoteHandler handles HTTP requests for notes and their tag associations.
type NoteHandler struct {
	notes service.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(notes service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// CreateNoteRequest is the payload for creating a note.
type CreateNoteRequest struct {
	Text      string          `json:"text"`
	Meta      json.RawMessage `json:"meta,omitempty"`
	JournalID *string         `json:"journal_id,omitempty"`
}

// UpdateNoteRequest is the payload for updating a note.
// Omitted fields are left untouched.
type UpdateNoteRequest struct {
	Text      *string         `json:"text,omitempty"`
	Meta      json.RawMessage `json:"meta,omitempty"`
	JournalID *string         `json:"journal_id,omitempty"`
}

// Create handles POST /api/v1/notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	note, err := h.notes.Create(r.Context(), service.CreateNoteInput{
		Text:      req.Text,
		Meta:      req.Meta,
		JournalID: req.JournalID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Note created successfully", note)
}

// Get handles GET /api/v1/notes/{noteID}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.Get(r.Context(), chi.URLParam(r, "noteID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Note retrieved successfully", note)
}

// List handles GET /api/v1/notes with optional date and journal_id filters.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pageParams(r)
	filter := service.NoteListFilter{
		Date:      optionalQuery(r, "date"),
		JournalID: optionalQuery(r, "journal_id"),
	}

	notes, total, err := h.notes.List(r.Context(), filter, params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePaginated(w, "Notes retrieved successfully", emptyList(notes), params, total)
}

// Update handles PUT /api/v1/notes/{noteID}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	note, err := h.notes.Update(r.Context(), chi.URLParam(r, "noteID"), service.UpdateNoteInput{
		Text:      req.Text,
		Meta:      req.Meta,
		JournalID: req.JournalID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Note updated successfully", note)
}

// Delete handles DELETE /api/v1/notes/{noteID}. Tag associations are
// removed with the note; the tags themselves are untouched.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "noteID")
	if err := h.notes.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, fmt.Sprintf("Note %s deleted successfully", id))
}

// Tags handles GET /api/v1/notes/{noteID}/tags.
func (h *NoteHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.notes.Tags(r.Context(), chi.URLParam(r, "noteID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, fmt.Sprintf("Retrieved %d tag(s)", len(tags)), emptyList(tags), len(tags))
}

// AddTag handles POST /api/v1/notes/{noteID}/tags/{tagID}.
func (h *NoteHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "noteID")
	tagID := chi.URLParam(r, "tagID")
	if err := h.notes.AddTag(r.Context(), noteID, tagID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, fmt.Sprintf("Tag %s added to note %s", tagID, noteID))
}

// RemoveTag handles DELETE /api/v1/notes/{noteID}/tags/{tagID}.
func (h *NoteHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "noteID")
	tagID := chi.URLParam(r, "tagID")
	if err := h.notes.RemoveTag(r.Context(), noteID, tagID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, fmt.Sprintf("Tag %s removed from note %s", tagID, noteID))
}
