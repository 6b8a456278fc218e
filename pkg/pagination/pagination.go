package pagination

import (
	"math"
	"strconv"
)

// MaxPerPage caps the page size a client can request
const MaxPerPage = 100

// Pagination represents pagination metadata returned to clients
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams represents input parameters for pagination
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`

	defaultPerPage int
}

// DefaultPagination returns default pagination values
func DefaultPagination() *PaginationParams {
	return WithDefault(20)
}

// WithDefault returns first-page params whose page size falls back to perPage
func WithDefault(perPage int) *PaginationParams {
	return &PaginationParams{Page: 1, PerPage: perPage, defaultPerPage: perPage}
}

// FromQuery builds params from raw query values; unparsable values fall back to defaults
func FromQuery(page, perPage string, defaultPerPage int) *PaginationParams {
	p := WithDefault(defaultPerPage)
	if n, err := strconv.Atoi(page); err == nil {
		p.Page = n
	}
	if n, err := strconv.Atoi(perPage); err == nil {
		p.PerPage = n
	}
	p.Validate()
	return p
}

// Validate ensures pagination parameters are within valid ranges
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = p.defaultPerPage
		if p.PerPage < 1 {
			p.PerPage = 20
		}
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

// Offset calculates the offset for SQL queries
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPagination creates a new Pagination response
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(perPage)))
	}

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult represents a paginated result with items and pagination info
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult creates a new paginated result.
// A nil slice is replaced so that clients always receive a JSON array.
func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResult[T]{
		Items:      items,
		Pagination: pagination,
	}
}

// EmptyResult is the zero-item page used when the data source cannot be reached
func EmptyResult[T any](params *PaginationParams) *PaginatedResult[T] {
	return NewPaginatedResult[T](nil, NewPagination(params.Page, params.PerPage, 0))
}
