package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/techshop/catalog/internal/domain"
	"github.com/techshop/catalog/internal/engine"
	"github.com/techshop/catalog/internal/repository"
	apperrors "github.com/techshop/catalog/pkg/errors"
)

// Synchronizer rebuilds the search index from the primary store. The store
// is authoritative: the index is treated as disposable derived state that
// can be destroyed and reconstructed at any time.
type Synchronizer struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	engine     engine.SearchEngine
	logger     *slog.Logger
}

// New creates a Synchronizer over the given repositories and engine.
func New(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	eng engine.SearchEngine,
	logger *slog.Logger,
) *Synchronizer {
	return &Synchronizer{
		products:   products,
		categories: categories,
		engine:     eng,
		logger:     logger,
	}
}

// ResetSchema drops and recreates the index with the current mapping.
// Failure to rebuild the schema leaves the index unusable, so callers should
// treat an error here as fatal.
func (s *Synchronizer) ResetSchema(ctx context.Context) error {
	if err := s.engine.ResetIndex(ctx); err != nil {
		return fmt.Errorf("reset schema: %w", err)
	}
	return nil
}

// Resync reads the full active product corpus from the primary store,
// projects each product with a snapshot of its category, and bulk-writes the
// documents into the index.
//
// An empty corpus is a successful no-op. Per-document indexing failures are
// logged as a warning and do not fail the resync; only a read or transport
// failure does.
func (s *Synchronizer) Resync(ctx context.Context) error {
	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("resync: load categories: %w", err)
	}
	refs := make(map[string]domain.CategoryRef, len(categories))
	for _, c := range categories {
		refs[c.ID] = c.Ref()
	}

	products, err := s.products.FindAllActive(ctx)
	if err != nil {
		return fmt.Errorf("resync: load products: %w", err)
	}

	if len(products) == 0 {
		s.logger.Info("no products to synchronize")
		return nil
	}

	docs := make([]domain.ProductDocument, 0, len(products))
	for _, p := range products {
		// A missing category leaves an empty snapshot rather than
		// dropping the product from the index.
		docs = append(docs, p.Document(refs[p.CategoryID]))
	}

	result, err := s.engine.BulkIndex(ctx, docs)
	if err != nil {
		return fmt.Errorf("resync: bulk index: %w", err)
	}

	if result.Failed > 0 {
		s.logger.Warn("resync completed with errors",
			slog.Int("indexed", result.Indexed),
			slog.Int("failed", result.Failed),
			slog.Any("reasons", result.Reasons),
		)
		return nil
	}

	s.logger.Info("resync completed", slog.Int("indexed", result.Indexed))
	return nil
}

// Run performs a full rebuild: schema reset followed by a resync.
func (s *Synchronizer) Run(ctx context.Context) error {
	if err := s.ResetSchema(ctx); err != nil {
		return err
	}
	return s.Resync(ctx)
}

// IndexProduct projects and indexes a single product, looking up its
// category snapshot from the primary store. An absent or inactive category
// leaves an empty snapshot, same as a full resync would.
func (s *Synchronizer) IndexProduct(ctx context.Context, p *domain.Product) error {
	var ref domain.CategoryRef
	category, err := s.categories.GetActiveByID(ctx, p.CategoryID)
	switch {
	case err == nil:
		ref = category.Ref()
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		return fmt.Errorf("index product: load category: %w", err)
	}

	doc := p.Document(ref)
	if err := s.engine.Index(ctx, &doc); err != nil {
		return fmt.Errorf("index product: %w", err)
	}
	return nil
}

// RemoveProduct deletes a product's document from the index.
func (s *Synchronizer) RemoveProduct(ctx context.Context, id string) error {
	if err := s.engine.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove product: %w", err)
	}
	return nil
}
