package event

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techshop/catalog/internal/domain"
	memengine "github.com/techshop/catalog/internal/engine/memory"
	memstore "github.com/techshop/catalog/internal/repository/memory"
	"github.com/techshop/catalog/internal/syncer"
	pkgkafka "github.com/techshop/catalog/pkg/kafka"
	"github.com/techshop/catalog/pkg/pagination"
)

func newTestConsumer(t *testing.T) (*Consumer, *memengine.Engine) {
	t.Helper()

	store := memstore.NewStore()
	store.AddCategories(domain.Category{
		ID: "cat-1", Name: "Phones", Slug: "phones", IsActive: true,
	})

	eng := memengine.New()
	logger := slog.New(slog.DiscardHandler)
	return NewConsumer(syncer.New(store, store, eng, logger), logger), eng
}

func makeEvent(t *testing.T, eventType string, data any) *pkgkafka.Event {
	t.Helper()
	event, err := pkgkafka.NewEvent(eventType, "p1", "product", "product-service", data)
	require.NoError(t, err)
	return event
}

func indexedIDs(t *testing.T, eng *memengine.Engine) []string {
	t.Helper()
	hits, err := eng.Search(context.Background(), &domain.CatalogQuery{
		Pagination: pagination.Params{Page: 1, Limit: 100},
		SortBy:     domain.DefaultSortBy,
		SortOrder:  domain.SortAsc,
	})
	require.NoError(t, err)
	ids := make([]string, 0, len(hits.Documents))
	for _, d := range hits.Documents {
		ids = append(ids, d.ID)
	}
	return ids
}

func productPayload() ProductEventData {
	return ProductEventData{
		ID: "p1", Name: "iPhone 14 Pro", Description: "Apple flagship",
		Price: 999, CategoryID: "cat-1", Stock: 5, Rating: 4.8,
		Tags: []string{"apple"}, IsActive: true, CreatedAt: time.Now().UTC(),
	}
}

func TestHandleProductCreatedIndexesDocument(t *testing.T) {
	c, eng := newTestConsumer(t)

	err := c.Handle(context.Background(), makeEvent(t, TypeProductCreated, productPayload()))
	require.NoError(t, err)

	assert.Equal(t, []string{"p1"}, indexedIDs(t, eng))
}

func TestHandleProductUpdatedSnapshotsCategory(t *testing.T) {
	c, eng := newTestConsumer(t)

	err := c.Handle(context.Background(), makeEvent(t, TypeProductUpdated, productPayload()))
	require.NoError(t, err)

	hits, err := eng.Search(context.Background(), &domain.CatalogQuery{
		Pagination: pagination.Params{Page: 1, Limit: 10},
		SortBy:     domain.DefaultSortBy,
		SortOrder:  domain.SortDesc,
	})
	require.NoError(t, err)
	require.Len(t, hits.Documents, 1)
	assert.Equal(t, domain.CategoryRef{ID: "cat-1", Name: "Phones", Slug: "phones"}, hits.Documents[0].Category)
}

func TestHandleDeactivatedProductIsRemoved(t *testing.T) {
	c, eng := newTestConsumer(t)

	require.NoError(t, c.Handle(context.Background(), makeEvent(t, TypeProductCreated, productPayload())))

	deactivated := productPayload()
	deactivated.IsActive = false
	require.NoError(t, c.Handle(context.Background(), makeEvent(t, TypeProductUpdated, deactivated)))

	assert.Empty(t, indexedIDs(t, eng))
}

func TestHandleProductDeletedRemovesDocument(t *testing.T) {
	c, eng := newTestConsumer(t)

	require.NoError(t, c.Handle(context.Background(), makeEvent(t, TypeProductCreated, productPayload())))
	require.NoError(t, c.Handle(context.Background(), makeEvent(t, TypeProductDeleted, ProductDeletedData{ID: "p1"})))

	assert.Empty(t, indexedIDs(t, eng))
}

func TestHandleInvalidPayloadFails(t *testing.T) {
	c, _ := newTestConsumer(t)

	payload := productPayload()
	payload.ID = ""
	err := c.Handle(context.Background(), makeEvent(t, TypeProductCreated, payload))
	assert.Error(t, err)
}

func TestHandleUnknownEventTypeIsSkipped(t *testing.T) {
	c, eng := newTestConsumer(t)

	err := c.Handle(context.Background(), makeEvent(t, "catalog.order.created", map[string]string{"id": "o1"}))
	require.NoError(t, err)
	assert.Empty(t, indexedIDs(t, eng))
}
