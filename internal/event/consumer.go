package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/techshop/catalog/internal/domain"
	"github.com/techshop/catalog/internal/syncer"
	pkgkafka "github.com/techshop/catalog/pkg/kafka"
	"github.com/techshop/catalog/pkg/validator"
)

// Kafka event types for product change events consumed by the catalog
// service. Each maps to the topic of the same name.
var (
	TypeProductCreated = pkgkafka.Topic("product", "created")
	TypeProductUpdated = pkgkafka.Topic("product", "updated")
	TypeProductDeleted = pkgkafka.Topic("product", "deleted")
)

// ProductEventData is the payload of product.created and product.updated
// events.
type ProductEventData struct {
	ID            string    `json:"id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Description   string    `json:"description"`
	Price         float64   `json:"price" validate:"gte=0"`
	OriginalPrice float64   `json:"originalPrice,omitempty"`
	Image         string    `json:"image"`
	CategoryID    string    `json:"category"`
	Stock         int       `json:"stock"`
	Rating        float64   `json:"rating"`
	Tags          []string  `json:"tags"`
	IsActive      bool      `json:"isActive"`
	IsFeatured    bool      `json:"isFeatured"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProductDeletedData is the payload of a product.deleted event.
type ProductDeletedData struct {
	ID string `json:"id" validate:"required"`
}

// Consumer applies product change events to the search index, keeping it
// incrementally in step with the primary store between full resyncs.
type Consumer struct {
	sync   *syncer.Synchronizer
	logger *slog.Logger
}

// NewConsumer creates a consumer that maintains the index via the given
// synchronizer.
func NewConsumer(sync *syncer.Synchronizer, logger *slog.Logger) *Consumer {
	return &Consumer{
		sync:   sync,
		logger: logger,
	}
}

// Handle dispatches a Kafka event by type. Unknown types are logged and
// skipped, never failed, so a producer rollout with new event types cannot
// wedge the consumer group.
func (c *Consumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.EventType {
	case TypeProductCreated, TypeProductUpdated:
		return c.handleProductUpsert(ctx, event)
	case TypeProductDeleted:
		return c.handleProductDeleted(ctx, event)
	default:
		c.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

func (c *Consumer) handleProductUpsert(ctx context.Context, event *pkgkafka.Event) error {
	var data ProductEventData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}
	if err := validator.Validate(data); err != nil {
		return fmt.Errorf("invalid %s payload: %w", event.EventType, err)
	}

	// An upsert for a deactivated product removes it from the index;
	// searches must never surface inactive products.
	if !data.IsActive {
		if err := c.sync.RemoveProduct(ctx, data.ID); err != nil {
			return fmt.Errorf("remove deactivated product: %w", err)
		}
		c.logger.InfoContext(ctx, "removed deactivated product from index",
			slog.String("product_id", data.ID),
		)
		return nil
	}

	product := data.product()
	if err := c.sync.IndexProduct(ctx, &product); err != nil {
		return fmt.Errorf("index product from event: %w", err)
	}

	c.logger.InfoContext(ctx, "indexed product from event",
		slog.String("product_id", data.ID),
		slog.String("event_type", event.EventType),
	)
	return nil
}

func (c *Consumer) handleProductDeleted(ctx context.Context, event *pkgkafka.Event) error {
	var data ProductDeletedData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal product.deleted data: %w", err)
	}
	if err := validator.Validate(data); err != nil {
		return fmt.Errorf("invalid product.deleted payload: %w", err)
	}

	if err := c.sync.RemoveProduct(ctx, data.ID); err != nil {
		return fmt.Errorf("delete product from event: %w", err)
	}

	c.logger.InfoContext(ctx, "removed product from index",
		slog.String("product_id", data.ID),
	)
	return nil
}

func (d ProductEventData) product() domain.Product {
	return domain.Product{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Image:         d.Image,
		CategoryID:    d.CategoryID,
		Stock:         d.Stock,
		Rating:        d.Rating,
		Tags:          d.Tags,
		IsActive:      d.IsActive,
		IsFeatured:    d.IsFeatured,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
