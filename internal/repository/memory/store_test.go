package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techshop/catalog/internal/domain"
	apperrors "github.com/techshop/catalog/pkg/errors"
	"github.com/techshop/catalog/pkg/pagination"
)

func storeQuery(mutate func(*domain.CatalogQuery)) *domain.CatalogQuery {
	q := &domain.CatalogQuery{
		Pagination: pagination.Params{Page: 1, Limit: 12, Offset: 0},
		SortBy:     domain.DefaultSortBy,
		SortOrder:  domain.SortDesc,
	}
	if mutate != nil {
		mutate(q)
	}
	return q
}

func seedStore() *Store {
	s := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s.AddCategories(
		domain.Category{ID: "cat-1", Name: "Phones", Slug: "phones", IsActive: true},
		domain.Category{ID: "cat-2", Name: "Audio", Slug: "audio", IsActive: true},
		domain.Category{ID: "cat-3", Name: "Archived", Slug: "archived", IsActive: false},
	)
	s.AddProducts(
		domain.Product{
			ID: "p1", Name: "iPhone 14 Pro", Description: "Apple flagship",
			Price: 999, CategoryID: "cat-1", Stock: 5, Rating: 4.8,
			Tags: []string{"Apple", "smartphone"}, IsActive: true, CreatedAt: base,
		},
		domain.Product{
			ID: "p2", Name: "AirPods Pro (2nd gen)", Description: "Noise cancelling earbuds",
			Price: 249, CategoryID: "cat-2", Stock: 30, Rating: 4.7,
			IsActive: true, CreatedAt: base.Add(time.Hour),
		},
		domain.Product{
			ID: "p3", Name: "Retired Phone", Price: 49, CategoryID: "cat-1",
			IsActive: false, CreatedAt: base,
		},
	)
	return s
}

func productIDs(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFindExcludesInactive(t *testing.T) {
	s := seedStore()

	products, total, err := s.Find(context.Background(), storeQuery(nil))
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	assert.NotContains(t, productIDs(products), "p3")
}

func TestFindSubstringIsCaseInsensitive(t *testing.T) {
	s := seedStore()

	products, _, err := s.Find(context.Background(), storeQuery(func(q *domain.CatalogQuery) {
		q.Search = "IPHONE"
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"p1"}, productIDs(products))
}

func TestFindSubstringMatchesTags(t *testing.T) {
	s := seedStore()

	products, _, err := s.Find(context.Background(), storeQuery(func(q *domain.CatalogQuery) {
		q.Search = "smartph"
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"p1"}, productIDs(products))
}

func TestFindTreatsMetacharactersLiterally(t *testing.T) {
	s := seedStore()

	// "(2nd" only matches as a literal substring; a regex reading would
	// error or match everything.
	products, _, err := s.Find(context.Background(), storeQuery(func(q *domain.CatalogQuery) {
		q.Search = "(2nd"
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, productIDs(products))

	products, _, err = s.Find(context.Background(), storeQuery(func(q *domain.CatalogQuery) {
		q.Search = ".*"
	}))
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFindPriceBoundsInclusive(t *testing.T) {
	s := seedStore()
	minPrice, maxPrice := 249.0, 999.0

	products, total, err := s.Find(context.Background(), storeQuery(func(q *domain.CatalogQuery) {
		q.MinPrice = &minPrice
		q.MaxPrice = &maxPrice
		q.SortBy = "price"
		q.SortOrder = domain.SortAsc
	}))
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{"p2", "p1"}, productIDs(products))
}

func TestFindTotalCountsBeyondPage(t *testing.T) {
	s := seedStore()

	products, total, err := s.Find(context.Background(), storeQuery(func(q *domain.CatalogQuery) {
		q.Pagination = pagination.Params{Page: 1, Limit: 1, Offset: 0}
	}))
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	assert.Len(t, products, 1)
}

func TestFindAllActive(t *testing.T) {
	s := seedStore()

	products, err := s.FindAllActive(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p2"}, productIDs(products))
}

func TestGetActiveByID(t *testing.T) {
	s := seedStore()
	ctx := context.Background()

	category, err := s.GetActiveByID(ctx, "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "Phones", category.Name)

	_, err = s.GetActiveByID(ctx, "cat-3")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "inactive categories are not visible")

	_, err = s.GetActiveByID(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListActiveSortedByName(t *testing.T) {
	s := seedStore()

	categories, err := s.ListActive(context.Background())
	require.NoError(t, err)

	require.Len(t, categories, 2)
	assert.Equal(t, "Audio", categories[0].Name)
	assert.Equal(t, "Phones", categories[1].Name)
}
