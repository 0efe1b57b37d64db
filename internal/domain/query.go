package domain

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/techshop/catalog/pkg/pagination"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// DefaultSortBy is the sort field used when the client sends none, or sends
// a field that is not sortable.
const DefaultSortBy = "createdAt"

// sortableFields are the fields both query paths can order by. Text fields
// are excluded: they are analyzed in the index and carry no keyword variant.
var sortableFields = map[string]struct{}{
	"createdAt": {},
	"price":     {},
	"rating":    {},
	"stock":     {},
}

// IsSortable reports whether field is a valid sort key.
func IsSortable(field string) bool {
	_, ok := sortableFields[field]
	return ok
}

// CatalogQuery holds the filter, sort, and page parameters of a catalog
// search request. The same value drives both the search-index path and the
// primary-store fallback path, so the two stay semantically equivalent.
type CatalogQuery struct {
	Pagination pagination.Params
	Category   string
	Search     string
	SortBy     string
	SortOrder  string
	MinPrice   *float64
	MaxPrice   *float64
}

// ParseCatalogQuery extracts a CatalogQuery from URL query values.
//
// Parsing is permissive by design: unusable values silently fall back to
// defaults instead of rejecting the request. Availability wins over
// strictness here; tighten this and sloppy storefront clients start seeing
// errors instead of page one.
func ParseCatalogQuery(values url.Values) *CatalogQuery {
	q := &CatalogQuery{
		Pagination: pagination.FromValues(values),
		Category:   strings.TrimSpace(values.Get("category")),
		Search:     strings.TrimSpace(values.Get("search")),
		SortBy:     DefaultSortBy,
		SortOrder:  SortDesc,
	}

	if sortBy := values.Get("sortBy"); IsSortable(sortBy) {
		q.SortBy = sortBy
	}
	if values.Get("sortOrder") == SortAsc {
		q.SortOrder = SortAsc
	}

	if v, err := strconv.ParseFloat(values.Get("minPrice"), 64); err == nil {
		q.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(values.Get("maxPrice"), 64); err == nil {
		q.MaxPrice = &v
	}

	return q
}

// HasPriceRange reports whether at least one price bound is set.
func (q *CatalogQuery) HasPriceRange() bool {
	return q.MinPrice != nil || q.MaxPrice != nil
}

// ProductPage is one page of catalog results with its pagination metadata.
type ProductPage struct {
	Products   []ProductDocument `json:"products"`
	Pagination pagination.Meta   `json:"pagination"`
}
