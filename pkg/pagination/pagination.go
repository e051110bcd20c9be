package pagination

import (
	"fmt"

	appErr "github.com/topicboard/engine/pkg/errors"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params are the validated paging inputs for a list query.
type Params struct {
	Page    int
	PerPage int
}

// Page describes one page of a result set.
type Page struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

// NewParams validates page and per_page. Zero values select the defaults;
// anything else outside the allowed ranges is rejected.
func NewParams(page, perPage int) (Params, error) {
	if page == 0 {
		page = DefaultPage
	}
	if perPage == 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		return Params{}, appErr.New(appErr.CodeInvalid, fmt.Sprintf("page must be >= 1, got %d", page))
	}
	if perPage < 1 || perPage > MaxPerPage {
		return Params{}, appErr.New(appErr.CodeInvalid, fmt.Sprintf("per_page must be between 1 and %d, got %d", MaxPerPage, perPage))
	}
	return Params{Page: page, PerPage: perPage}, nil
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageFor computes navigation metadata for a total row count.
// total_pages is 0 when total is 0, and has_next is false in that case.
func (p Params) PageFor(total int64) Page {
	totalPages := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	return Page{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    p.Page > 1,
		HasNext:    p.Page < totalPages,
	}
}
