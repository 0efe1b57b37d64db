package repository

import (
	"context"

	"github.com/techshop/catalog/internal/domain"
)

// ProductRepository is the primary-store query surface for products.
type ProductRepository interface {
	// Find returns one page of active products matching the query, together
	// with the total match count. Free text is matched by case-insensitive
	// substring across name, description, and tags; there is no relevance
	// scoring on this path.
	Find(ctx context.Context, q *domain.CatalogQuery) ([]domain.Product, int64, error)

	// FindAllActive returns the full active product corpus, used by bulk
	// index synchronization.
	FindAllActive(ctx context.Context) ([]domain.Product, error)
}

// CategoryRepository is the primary-store query surface for categories.
type CategoryRepository interface {
	// ListActive returns all active categories sorted by name.
	ListActive(ctx context.Context) ([]domain.Category, error)

	// GetActiveByID returns one active category. Absent or inactive
	// categories report ErrNotFound.
	GetActiveByID(ctx context.Context, id string) (*domain.Category, error)
}
