package pagination

import (
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultPage is used when no valid page is supplied
	DefaultPage = 1
	// DefaultLimit is used when no valid limit is supplied
	DefaultLimit = 10
	// MaxLimit caps the page size a client may request
	MaxLimit = 100
)

// Params represents input parameters for page-based pagination
type Params struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// DefaultParams returns default pagination values
func DefaultParams() *Params {
	return &Params{
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}
}

// ParseParams coerces raw query values into pagination parameters,
// falling back to the defaults when a value is missing or malformed.
func ParseParams(page, limit string) *Params {
	p := &Params{
		Page:  parseOr(page, DefaultPage),
		Limit: parseOr(limit, DefaultLimit),
	}
	p.Validate()
	return p
}

func parseOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}

// Validate ensures pagination parameters are within valid ranges
func (p *Params) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset calculates the offset for SQL queries
func (p *Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit), never less than one page.
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		limit = DefaultLimit
	}
	pages := int(math.Ceil(float64(total) / float64(limit)))
	if pages < 1 {
		return 1
	}
	return pages
}

// Page is the list envelope returned to clients
type Page[T any] struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Data       []T   `json:"data"`
}

// NewPage creates a new page envelope. A nil slice is replaced by an empty one
// so the envelope always serializes data as an array.
func NewPage[T any](items []T, params *Params, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: TotalPages(total, params.Limit),
		Data:       items,
	}
}
