package pagination

import (
	"net/url"
	"strconv"
)

// DefaultLimit is the page size used when the client sends none, or sends
// something unusable.
const DefaultLimit = 12

// Params holds offset pagination parameters.
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// Default returns the default pagination parameters.
func Default() Params {
	return Params{Page: 1, Limit: DefaultLimit}
}

// FromValues extracts pagination parameters from query values. Parsing is
// deliberately permissive: non-numeric values fall back to the default and
// values at or below zero clamp, so a sloppy client still gets a page
// instead of an error.
func FromValues(values url.Values) Params {
	p := Default()

	if raw := values.Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.Page = v
		}
	}

	if raw := values.Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.Limit = v
		}
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// Meta is the pagination metadata attached to every result page. Field
// names follow the public API contract.
type Meta struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalProducts int  `json:"totalProducts"`
	HasNextPage   bool `json:"hasNextPage"`
	HasPrevPage   bool `json:"hasPrevPage"`
}

// NewMeta computes pagination metadata for the given total record count.
// TotalPages is ceil(total/limit); HasNextPage and HasPrevPage derive from
// the current page's position. A non-positive limit clamps to DefaultLimit
// so hand-built Params cannot divide by zero.
func NewMeta(total int, p Params) Meta {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}

	totalPages := total / p.Limit
	if total%p.Limit > 0 {
		totalPages++
	}

	return Meta{
		CurrentPage:   p.Page,
		TotalPages:    totalPages,
		TotalProducts: total,
		HasNextPage:   p.Page < totalPages,
		HasPrevPage:   p.Page > 1,
	}
}
