package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/techshop/catalog/internal/domain"
	"github.com/techshop/catalog/internal/engine"
)

// Engine is an in-memory implementation of the SearchEngine interface. It
// approximates the index's matching behavior, including per-token fuzzy
// matching on text fields, and is used in tests and local development where
// no Elasticsearch cluster is available.
type Engine struct {
	mu   sync.RWMutex
	docs map[string]domain.ProductDocument
}

// New creates an empty in-memory engine.
func New() *Engine {
	return &Engine{
		docs: make(map[string]domain.ProductDocument),
	}
}

// ResetIndex discards all documents.
func (e *Engine) ResetIndex(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.docs = make(map[string]domain.ProductDocument)
	return nil
}

// Index stores a single document keyed by id.
func (e *Engine) Index(_ context.Context, doc *domain.ProductDocument) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.docs[doc.ID] = *doc
	return nil
}

// Delete removes a document. Absent ids are ignored.
func (e *Engine) Delete(_ context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.docs, id)
	return nil
}

// BulkIndex stores all documents. In-memory writes cannot partially fail, so
// the result always reports every document as indexed.
func (e *Engine) BulkIndex(_ context.Context, docs []domain.ProductDocument) (*engine.BulkResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range docs {
		e.docs[docs[i].ID] = docs[i]
	}
	return &engine.BulkResult{Indexed: len(docs)}, nil
}

// Search filters, sorts, and pages the stored documents.
func (e *Engine) Search(_ context.Context, q *domain.CatalogQuery) (*engine.SearchHits, error) {
	e.mu.RLock()
	matches := make([]domain.ProductDocument, 0, len(e.docs))
	for _, doc := range e.docs {
		if e.matches(doc, q) {
			matches = append(matches, doc)
		}
	}
	e.mu.RUnlock()

	sortDocuments(matches, q.SortBy, q.SortOrder)

	total := len(matches)
	start := q.Pagination.Offset
	if start > total {
		start = total
	}
	end := start + q.Pagination.Limit
	if end > total {
		end = total
	}

	return &engine.SearchHits{
		Documents: matches[start:end],
		Total:     total,
	}, nil
}

func (e *Engine) matches(doc domain.ProductDocument, q *domain.CatalogQuery) bool {
	if !doc.IsActive {
		return false
	}
	if q.Category != "" && doc.Category.ID != q.Category {
		return false
	}
	if q.MinPrice != nil && doc.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && doc.Price > *q.MaxPrice {
		return false
	}
	if q.Search != "" && !matchesText(doc, q.Search) {
		return false
	}
	return true
}

// matchesText mirrors the index's multi_match behavior: the query is split
// into tokens and the document matches when any token fuzzily matches a
// token of the name, description, or tags.
func matchesText(doc domain.ProductDocument, search string) bool {
	queryTokens := strings.Fields(strings.ToLower(search))
	if len(queryTokens) == 0 {
		return true
	}

	docTokens := tokenize(doc.Name)
	docTokens = append(docTokens, tokenize(doc.Description)...)
	for _, tag := range doc.Tags {
		docTokens = append(docTokens, tokenize(tag)...)
	}

	for _, qt := range queryTokens {
		for _, dt := range docTokens {
			if fuzzyMatch(qt, dt) {
				return true
			}
		}
	}
	return false
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
}

// fuzzyMatch reports whether two tokens are within the edit distance the
// index would allow for the query token's length: zero for lengths one and
// two, one for three to five, two beyond that.
func fuzzyMatch(query, token string) bool {
	allowed := 0
	switch {
	case len(query) >= 6:
		allowed = 2
	case len(query) >= 3:
		allowed = 1
	}
	return editDistance(query, token) <= allowed
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// sortDocuments orders documents by the given field and direction, with the
// document id ascending as a stable tie-break.
func sortDocuments(docs []domain.ProductDocument, sortBy, sortOrder string) {
	asc := sortOrder == domain.SortAsc

	sort.Slice(docs, func(i, j int) bool {
		var less, equal bool
		switch sortBy {
		case "price":
			less, equal = docs[i].Price < docs[j].Price, docs[i].Price == docs[j].Price
		case "rating":
			less, equal = docs[i].Rating < docs[j].Rating, docs[i].Rating == docs[j].Rating
		case "stock":
			less, equal = docs[i].Stock < docs[j].Stock, docs[i].Stock == docs[j].Stock
		default:
			less = docs[i].CreatedAt.Before(docs[j].CreatedAt)
			equal = docs[i].CreatedAt.Equal(docs[j].CreatedAt)
		}
		if equal {
			return docs[i].ID < docs[j].ID
		}
		if asc {
			return less
		}
		return !less
	})
}
