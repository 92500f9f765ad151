package service

import "journal-ai/internal/storage"

const (
	// DefaultPerPage is the page size used when the caller does not ask for one.
	DefaultPerPage = 20
	// MaxPerPage caps the page size a caller may request.
	MaxPerPage = 100
)

// ListParams is a 1-indexed page request.
type ListParams struct {
	Page    int
	PerPage int
}

// NormalizePage clamps a raw page request into valid bounds.
func NormalizePage(page, perPage int) ListParams {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return ListParams{Page: page, PerPage: perPage}
}

// window converts the page request into an offset/limit window.
func (p ListParams) window() storage.ListPage {
	return storage.ListPage{
		Offset: (p.Page - 1) * p.PerPage,
		Limit:  p.PerPage,
	}
}

// allRows lists without a window, for relationship traversals that return
// every child of a parent.
var allRows = storage.ListPage{Offset: 0, Limit: -1} // LIMIT -1 is "no limit" in SQLite
