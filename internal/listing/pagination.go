package listing

import "cleanadmin/internal/models"

// Page is one zero-based page of a list.
type Page[T any] struct {
	Items      []T
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

func (p Page[T]) HasPrev() bool {
	return p.Page > 0
}

func (p Page[T]) HasNext() bool {
	return p.Page+1 < p.TotalPages
}

// Paginate slices items into the requested page. A page past the end is
// clamped to the last page; a non-positive perPage uses the default.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = models.DefaultPerPage
	}
	if page < 0 {
		page = 0
	}

	total := len(items)
	totalPages := (total + perPage - 1) / perPage
	if page >= totalPages {
		page = max(totalPages-1, 0)
	}

	start := page * perPage
	end := min(start+perPage, total)
	if start > total {
		start = total
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
