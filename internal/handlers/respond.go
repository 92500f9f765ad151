package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"journal-ai/internal/contextutil"
	"journal-ai/internal/service"
)

// DataResponse is the envelope for single-object responses.
type DataResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ListResponse is the envelope for unpaginated list responses.
type ListResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Count   int    `json:"count"`
}

// PaginationMeta describes the position of a page within a listing.
type PaginationMeta struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// PaginatedResponse is the envelope for paginated list responses.
type PaginatedResponse struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	Data       any            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// MessageResponse is the envelope for operations that return no data.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, DataResponse{Success: true, Message: message, Data: data})
}

func writeList(w http.ResponseWriter, message string, data any, count int) {
	writeJSON(w, http.StatusOK, ListResponse{Success: true, Message: message, Data: data, Count: count})
}

func writePaginated(w http.ResponseWriter, message string, data any, params service.ListParams, total int) {
	totalPages := 0
	if params.PerPage > 0 {
		totalPages = (total + params.PerPage - 1) / params.PerPage
	}
	writeJSON(w, http.StatusOK, PaginatedResponse{
		Success: true,
		Message: message,
		Data:    data,
		Pagination: PaginationMeta{
			Page:       params.Page,
			PerPage:    params.PerPage,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    params.Page < totalPages,
			HasPrev:    params.Page > 1,
		},
	})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, MessageResponse{Success: true, Message: message})
}

// writeError maps the service error taxonomy onto HTTP status codes:
// validation 400, dangling reference and not-found 404, conflict 409.
// Anything else is an internal error and is logged, not leaked.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	var referenceErr *service.ReferenceError
	var conflictErr *service.ConflictError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, MessageResponse{Success: false, Message: validationErr.Error()})
	case errors.As(err, &referenceErr):
		writeJSON(w, http.StatusNotFound, MessageResponse{Success: false, Message: referenceErr.Error()})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, MessageResponse{Success: false, Message: "resource not found"})
	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, MessageResponse{Success: false, Message: conflictErr.Error()})
	default:
		logger := contextutil.LoggerFromContext(r.Context())
		logger.ErrorContext(r.Context(), "request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Success: false, Message: "internal server error"})
	}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &service.ValidationError{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return nil
}

// pageParams reads page/per_page query parameters with the usual defaults.
func pageParams(r *http.Request) service.ListParams {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	return service.NormalizePage(page, perPage)
}

// optionalQuery returns a pointer to the named query parameter, or nil when absent.
func optionalQuery(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}

// emptyList substitutes an empty slice for nil so JSON renders [] instead of null.
func emptyList[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
