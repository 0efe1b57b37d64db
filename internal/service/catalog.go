package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/techshop/catalog/internal/domain"
	"github.com/techshop/catalog/internal/engine"
	"github.com/techshop/catalog/internal/repository"
	apperrors "github.com/techshop/catalog/pkg/errors"
	"github.com/techshop/catalog/pkg/pagination"
)

const (
	categoryCacheKey = "catalog:categories"
	categoryCacheTTL = 5 * time.Minute
)

// CatalogService answers catalog queries. It owns both query paths over the
// same CatalogQuery: the search-index path with relevance-ranked fuzzy text
// matching, and the primary-store path with plain substring matching. For
// queries without free text the two return identical result sets.
type CatalogService struct {
	engine     engine.SearchEngine
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      *redis.Client
	logger     *slog.Logger
}

// New creates a CatalogService. cache may be nil, in which case category
// lookups always hit the primary store.
func New(
	eng engine.SearchEngine,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	cache *redis.Client,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		engine:     eng,
		products:   products,
		categories: categories,
		cache:      cache,
		logger:     logger,
	}
}

// Search executes the query against the search index.
func (s *CatalogService) Search(ctx context.Context, q *domain.CatalogQuery) (*domain.ProductPage, error) {
	hits, err := s.engine.Search(ctx, q)
	if err != nil {
		s.logger.ErrorContext(ctx, "search engine query failed", slog.String("error", err.Error()))
		return nil, apperrors.Internal(err)
	}

	return &domain.ProductPage{
		Products:   hits.Documents,
		Pagination: pagination.NewMeta(hits.Total, q.Pagination),
	}, nil
}

// SearchStore executes the query directly against the primary store,
// bypassing the search index. Results are projected into the same document
// shape the index path returns, so clients see one response format
// regardless of path.
func (s *CatalogService) SearchStore(ctx context.Context, q *domain.CatalogQuery) (*domain.ProductPage, error) {
	products, total, err := s.products.Find(ctx, q)
	if err != nil {
		s.logger.ErrorContext(ctx, "primary store query failed", slog.String("error", err.Error()))
		return nil, apperrors.Internal(err)
	}

	refs, err := s.categoryRefs(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	docs := make([]domain.ProductDocument, 0, len(products))
	for _, p := range products {
		docs = append(docs, p.Document(refs[p.CategoryID]))
	}

	return &domain.ProductPage{
		Products:   docs,
		Pagination: pagination.NewMeta(int(total), q.Pagination),
	}, nil
}

// Categories returns all active categories, read through the cache when one
// is configured. Cache failures degrade to a store read, never to an error.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, categoryCacheKey).Result(); err == nil {
			var categories []domain.Category
			if err := json.Unmarshal([]byte(cached), &categories); err == nil {
				return categories, nil
			}
		}
	}

	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "category query failed", slog.String("error", err.Error()))
		return nil, apperrors.Internal(err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(categories); err == nil {
			if err := s.cache.Set(ctx, categoryCacheKey, data, categoryCacheTTL).Err(); err != nil {
				s.logger.WarnContext(ctx, "category cache write failed", slog.String("error", err.Error()))
			}
		}
	}

	return categories, nil
}

func (s *CatalogService) categoryRefs(ctx context.Context) (map[string]domain.CategoryRef, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	refs := make(map[string]domain.CategoryRef, len(categories))
	for _, c := range categories {
		refs[c.ID] = c.Ref()
	}
	return refs, nil
}
