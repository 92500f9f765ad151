package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"journal-ai/internal/service"
)

// ProjectHandler handles HTTP requests for projects.
type ProjectHandler struct {
	projects service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// CreateProjectRequest is the payload for creating a project.
type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateProjectRequest is the payload for updating a project.
// Omitted fields are left untouched.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Create handles POST /api/v1/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.projects.Create(r.Context(), service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Project created successfully", project)
}

// Get handles GET /api/v1/projects/{projectID}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Project retrieved successfully", project)
}

// List handles GET /api/v1/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pageParams(r)
	projects, total, err := h.projects.List(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePaginated(w, "Projects retrieved successfully", emptyList(projects), params, total)
}

// Update handles PUT /api/v1/projects/{projectID}.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.projects.Update(r.Context(), chi.URLParam(r, "projectID"), service.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Project updated successfully", project)
}

// Delete handles DELETE /api/v1/projects/{projectID}. The delete cascades
// to the project's journals and their notes and AI jobs.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	if err := h.projects.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, fmt.Sprintf("Project %s deleted successfully", id))
}

// Journals handles GET /api/v1/projects/{projectID}/journals.
func (h *ProjectHandler) Journals(w http.ResponseWriter, r *http.Request) {
	journals, err := h.projects.Journals(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, fmt.Sprintf("Retrieved %d journal(s)", len(journals)), emptyList(journals), len(journals))
}
