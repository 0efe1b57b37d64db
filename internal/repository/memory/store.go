package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/techshop/catalog/internal/domain"
	apperrors "github.com/techshop/catalog/pkg/errors"
)

// Store is an in-memory implementation of the primary-store repositories.
// It mirrors the MongoDB query semantics (substring text matching, inclusive
// price bounds, field sort with id tie-break) so the fallback query path can
// be exercised without a live database. Thread-safe via sync.RWMutex.
type Store struct {
	mu         sync.RWMutex
	products   map[string]domain.Product
	categories map[string]domain.Category
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]domain.Product),
		categories: make(map[string]domain.Category),
	}
}

// AddProducts inserts or replaces products.
func (s *Store) AddProducts(products ...domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.products[p.ID] = p
	}
}

// AddCategories inserts or replaces categories.
func (s *Store) AddCategories(categories ...domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range categories {
		s.categories[c.ID] = c
	}
}

// Find returns one page of active products matching the query plus the total
// match count.
func (s *Store) Find(_ context.Context, q *domain.CatalogQuery) ([]domain.Product, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Product
	for _, p := range s.products {
		if s.matches(p, q) {
			matched = append(matched, p)
		}
	}

	sortProducts(matched, q.SortBy, q.SortOrder)

	total := int64(len(matched))

	offset := q.Pagination.Offset
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + q.Pagination.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[offset:end], total, nil
}

// FindAllActive returns every active product.
func (s *Store) FindAllActive(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []domain.Product
	for _, p := range s.products {
		if p.IsActive {
			active = append(active, p)
		}
	}

	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active, nil
}

// ListActive returns all active categories sorted by name.
func (s *Store) ListActive(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.IsActive {
			active = append(active, c)
		}
	}

	sort.Slice(active, func(i, j int) bool { return active[i].Name < active[j].Name })
	return active, nil
}

// GetActiveByID returns one active category by id.
func (s *Store) GetActiveByID(_ context.Context, id string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok || !c.IsActive {
		return nil, apperrors.NotFound("category", id)
	}
	return &c, nil
}

func (s *Store) matches(p domain.Product, q *domain.CatalogQuery) bool {
	if !p.IsActive {
		return false
	}

	if q.Category != "" && p.CategoryID != q.Category {
		return false
	}

	if q.Search != "" && !containsFold(p, q.Search) {
		return false
	}

	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}

	return true
}

// containsFold reports whether needle occurs as a case-insensitive substring
// of the product's name, description, or any tag.
func containsFold(p domain.Product, needle string) bool {
	needle = strings.ToLower(needle)

	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// sortProducts orders products by the given field and direction with id
// ascending as the stable tie-break key.
func sortProducts(products []domain.Product, sortBy, sortOrder string) {
	asc := sortOrder == domain.SortAsc

	sort.Slice(products, func(i, j int) bool {
		a, b := products[i], products[j]

		var less, equal bool
		switch sortBy {
		case "price":
			less, equal = a.Price < b.Price, a.Price == b.Price
		case "rating":
			less, equal = a.Rating < b.Rating, a.Rating == b.Rating
		case "stock":
			less, equal = a.Stock < b.Stock, a.Stock == b.Stock
		default:
			less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		}

		if equal {
			return a.ID < b.ID
		}
		if asc {
			return less
		}
		return !less
	})
}
