package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"journal-ai/internal/service"
	"journal-ai/internal/storage"
)

// AIJobHandler handles HTTP requests for AI jobs.
type AIJobHandler struct {
	jobs service.AIJobService
}

// NewAIJobHandler creates a new AIJobHandler.
func NewAIJobHandler(jobs service.AIJobService) *AIJobHandler {
	return &AIJobHandler{jobs: jobs}
}

// CreateAIJobRequest is the payload for creating an AI job.
type CreateAIJobRequest struct {
	JournalID    string          `json:"journal_id"`
	ModelName    string          `json:"model_name"`
	ModelVersion *string         `json:"model_version,omitempty"`
	Prompt       string          `json:"prompt"`
	Meta         json.RawMessage `json:"meta,omitempty"`
}

// UpdateAIJobRequest is the payload the processing collaborator sends to
// report a status transition, response payload, or error message.
// Omitted fields are left untouched.
type UpdateAIJobRequest struct {
	Status       *storage.JobStatus `json:"status,omitempty"`
	Response     json.RawMessage    `json:"response,omitempty"`
	ErrorMessage *string            `json:"error_message,omitempty"`
	Meta         json.RawMessage    `json:"meta,omitempty"`
}

// Create handles POST /api/v1/ai-jobs. New jobs always start queued.
func (h *AIJobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAIJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	job, err := h.jobs.Create(r.Context(), service.CreateAIJobInput{
		JournalID:    req.JournalID,
		ModelName:    req.ModelName,
		ModelVersion: req.ModelVersion,
		Prompt:       req.Prompt,
		Meta:         req.Meta,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "AI job created successfully", job)
}

// Get handles GET /api/v1/ai-jobs/{jobID}.
func (h *AIJobHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.Get(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "AI job retrieved successfully", job)
}

// List handles GET /api/v1/ai-jobs with optional status and journal_id
// filters, combined with logical AND.
func (h *AIJobHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pageParams(r)
	filter := service.AIJobListFilter{
		JournalID: optionalQuery(r, "journal_id"),
	}
	if s := optionalQuery(r, "status"); s != nil {
		status := storage.JobStatus(*s)
		filter.Status = &status
	}

	jobs, total, err := h.jobs.List(r.Context(), filter, params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePaginated(w, "AI jobs retrieved successfully", emptyList(jobs), params, total)
}

// Update handles PUT /api/v1/ai-jobs/{jobID}.
func (h *AIJobHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateAIJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	job, err := h.jobs.Update(r.Context(), chi.URLParam(r, "jobID"), service.UpdateAIJobInput{
		Status:       req.Status,
		Response:     req.Response,
		ErrorMessage: req.ErrorMessage,
		Meta:         req.Meta,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "AI job updated successfully", job)
}

// Delete handles DELETE /api/v1/ai-jobs/{jobID}.
func (h *AIJobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobID")
	if err := h.jobs.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, fmt.Sprintf("AI job %s deleted successfully", id))
}
