package engine

import (
	"context"

	"github.com/techshop/catalog/internal/domain"
)

// SearchEngine defines the interface for managing and querying the product
// search index. Implementations may use Elasticsearch or in-memory storage.
type SearchEngine interface {
	// ResetIndex destroys the index if present and recreates it with the
	// catalog mapping. Destructive: all documents are lost and must be
	// restored by a subsequent bulk synchronization.
	ResetIndex(ctx context.Context) error

	// Index adds or replaces a single document, visible to searches
	// immediately afterwards.
	Index(ctx context.Context, doc *domain.ProductDocument) error

	// Delete removes a document by id. Deleting an absent document is not
	// an error.
	Delete(ctx context.Context, id string) error

	// BulkIndex adds or replaces documents in one batch. Per-document
	// failures are reported in the result, not as an error; the error
	// return covers transport-level failure only.
	BulkIndex(ctx context.Context, docs []domain.ProductDocument) (*BulkResult, error)

	// Search executes a catalog query and returns matching documents with
	// the total hit count.
	Search(ctx context.Context, q *domain.CatalogQuery) (*SearchHits, error)
}

// BulkResult is the aggregate outcome of a bulk indexing request.
type BulkResult struct {
	Indexed int
	Failed  int
	// Reasons holds a capped sample of per-document failure descriptions
	// for diagnostics.
	Reasons []string
}

// SearchHits is one page of index documents with the total match count.
type SearchHits struct {
	Documents []domain.ProductDocument
	Total     int
}
