package elasticsearch

import (
	"github.com/techshop/catalog/internal/domain"
)

// buildSearchBody constructs the Elasticsearch query DSL for a catalog query.
//
// Active-only, category, and price constraints go into non-scoring filter
// clauses. Free text becomes a boosted multi_match with automatic fuzziness,
// which is the one clause the primary-store fallback cannot reproduce
// exactly. Results are always ordered by the requested sort field, with the
// document id as a stable tie-break.
func buildSearchBody(q *domain.CatalogQuery) map[string]any {
	var must any
	if q.Search != "" {
		must = map[string]any{
			"multi_match": map[string]any{
				"query":     q.Search,
				"fields":    []string{"name^3", "description", "tags"},
				"fuzziness": "AUTO",
			},
		}
	} else {
		must = map[string]any{
			"match_all": map[string]any{},
		}
	}

	filters := []any{
		map[string]any{"term": map[string]any{"isActive": true}},
	}

	if q.Category != "" {
		filters = append(filters, map[string]any{
			"term": map[string]any{"category.id": q.Category},
		})
	}

	if q.HasPriceRange() {
		priceRange := map[string]any{}
		if q.MinPrice != nil {
			priceRange["gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			priceRange["lte"] = *q.MaxPrice
		}
		filters = append(filters, map[string]any{
			"range": map[string]any{"price": priceRange},
		})
	}

	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must":   []any{must},
				"filter": filters,
			},
		},
		"sort": []any{
			map[string]any{q.SortBy: map[string]any{"order": q.SortOrder}},
			map[string]any{"id": map[string]any{"order": "asc"}},
		},
		"from":             q.Pagination.Offset,
		"size":             q.Pagination.Limit,
		"track_total_hits": true,
	}
}
