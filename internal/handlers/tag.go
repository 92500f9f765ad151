package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"journal-ai/internal/service"
)

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	tags service.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tags service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// TagRequest is the payload for creating or renaming a tag.
type TagRequest struct {
	Name string `json:"name"`
}

// Create handles POST /api/v1/tags.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	tag, err := h.tags.Create(r.Context(), service.CreateTagInput{Name: req.Name})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Tag created successfully", tag)
}

// Get handles GET /api/v1/tags/{tagID}.
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	tag, err := h.tags.Get(r.Context(), chi.URLParam(r, "tagID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Tag retrieved successfully", tag)
}

// List handles GET /api/v1/tags.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pageParams(r)
	tags, total, err := h.tags.List(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePaginated(w, "Tags retrieved successfully", emptyList(tags), params, total)
}

// Update handles PUT /api/v1/tags/{tagID}.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	tag, err := h.tags.Update(r.Context(), chi.URLParam(r, "tagID"), service.UpdateTagInput{Name: req.Name})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Tag updated successfully", tag)
}

// Delete handles DELETE /api/v1/tags/{tagID}. The tag is removed from all
// associated notes; the notes themselves are untouched.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tagID")
	if err := h.tags.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, fmt.Sprintf("Tag %s deleted successfully", id))
}

// Notes handles GET /api/v1/tags/{tagID}/notes.
func (h *TagHandler) Notes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.tags.Notes(r.Context(), chi.URLParam(r, "tagID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, fmt.Sprintf("Retrieved %d note(s)", len(notes)), emptyList(notes), len(notes))
}
