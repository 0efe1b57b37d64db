package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/techshop/catalog/internal/domain"
)

// Collection names in the catalog database.
const (
	ProductCollection  = "products"
	CategoryCollection = "categories"
)

const queryTimeout = 10 * time.Second

// ProductRepository implements repository.ProductRepository on MongoDB.
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a MongoDB-backed product repository.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{collection: db.Collection(ProductCollection)}
}

// Find returns one page of active products matching the query plus the total
// match count. The count runs concurrently with the page fetch on the same
// filter.
func (r *ProductRepository) Find(ctx context.Context, q *domain.CatalogQuery) ([]domain.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := buildFilter(q)

	totalCh := make(chan int64, 1)
	errCh := make(chan error, 1)
	go func() {
		total, err := r.collection.CountDocuments(ctx, filter)
		if err != nil {
			errCh <- err
			return
		}
		totalCh <- total
	}()

	findOpts := options.Find().
		SetSort(buildSort(q)).
		SetSkip(int64(q.Pagination.Offset)).
		SetLimit(int64(q.Pagination.Limit))

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("decode products: %w", err)
	}

	select {
	case total := <-totalCh:
		return products, total, nil
	case err := <-errCh:
		return nil, 0, fmt.Errorf("count products: %w", err)
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	}
}

// FindAllActive returns every active product, used by bulk synchronization.
func (r *ProductRepository) FindAllActive(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("find active products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	return products, nil
}

// buildFilter translates a CatalogQuery into a MongoDB filter document. The
// semantics mirror the search-index query: for requests without free text
// both paths must select the identical id set.
func buildFilter(q *domain.CatalogQuery) bson.M {
	filter := bson.M{"isActive": true}

	if q.Category != "" {
		filter["category"] = q.Category
	}

	if q.Search != "" {
		// Substring matching, not fuzzy: misspellings that the index path
		// tolerates will miss here. The pattern is quoted so user input
		// cannot inject regex syntax.
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
			bson.M{"tags": re},
		}
	}

	if q.HasPriceRange() {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}

	return filter
}

// buildSort maps the requested sort onto a MongoDB sort document with _id as
// the stable tie-break key.
func buildSort(q *domain.CatalogQuery) bson.D {
	dir := -1
	if q.SortOrder == domain.SortAsc {
		dir = 1
	}
	return bson.D{
		{Key: q.SortBy, Value: dir},
		{Key: "_id", Value: 1},
	}
}
