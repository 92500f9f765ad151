package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"journal-ai/internal/service"
)

// JournalHandler handles HTTP requests for journals.
type JournalHandler struct {
	journals service.JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journals service.JournalService) *JournalHandler {
	return &JournalHandler{journals: journals}
}

// CreateJournalRequest is the payload for creating a journal.
type CreateJournalRequest struct {
	Date      string  `json:"date"`
	ProjectID *string `json:"project_id,omitempty"`
}

// UpdateJournalRequest is the payload for updating a journal.
// Omitted fields are left untouched.
type UpdateJournalRequest struct {
	Date              *string         `json:"date,omitempty"`
	ProcessedMarkdown *string         `json:"processed_markdown,omitempty"`
	NotesSnapshot     json.RawMessage `json:"notes_snapshot,omitempty"`
	ProjectID         *string         `json:"project_id,omitempty"`
}

// Create handles POST /api/v1/journals.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateJournalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	journal, err := h.journals.Create(r.Context(), service.CreateJournalInput{
		Date:      req.Date,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Journal created successfully", journal)
}

// Get handles GET /api/v1/journals/{journalID}.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	journal, err := h.journals.Get(r.Context(), chi.URLParam(r, "journalID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Journal retrieved successfully", journal)
}

// List handles GET /api/v1/journals with optional date and project_id filters.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pageParams(r)
	filter := service.JournalListFilter{
		Date:      optionalQuery(r, "date"),
		ProjectID: optionalQuery(r, "project_id"),
	}

	journals, total, err := h.journals.List(r.Context(), filter, params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePaginated(w, "Journals retrieved successfully", emptyList(journals), params, total)
}

// Update handles PUT /api/v1/journals/{journalID}.
func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateJournalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	journal, err := h.journals.Update(r.Context(), chi.URLParam(r, "journalID"), service.UpdateJournalInput{
		Date:              req.Date,
		ProcessedMarkdown: req.ProcessedMarkdown,
		NotesSnapshot:     req.NotesSnapshot,
		ProjectID:         req.ProjectID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Journal updated successfully", journal)
}

// Delete handles DELETE /api/v1/journals/{journalID}. The delete cascades
// to the journal's notes and AI jobs.
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "journalID")
	if err := h.journals.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, fmt.Sprintf("Journal %s deleted successfully", id))
}

// Notes handles GET /api/v1/journals/{journalID}/notes.
func (h *JournalHandler) Notes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.journals.Notes(r.Context(), chi.URLParam(r, "journalID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, fmt.Sprintf("Retrieved %d note(s)", len(notes)), emptyList(notes), len(notes))
}

// AIJobs handles GET /api/v1/journals/{journalID}/ai-jobs.
func (h *JournalHandler) AIJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.journals.AIJobs(r.Context(), chi.URLParam(r, "journalID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, fmt.Sprintf("Retrieved %d AI job(s)", len(jobs)), emptyList(jobs), len(jobs))
}
