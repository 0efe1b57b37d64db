package domain

import (
	"time"
)

// Product is the authoritative catalog record, owned by the primary store.
// Products are soft-deleted by clearing IsActive; queries never see inactive
// records and nothing physically deletes them.
type Product struct {
	ID            string    `bson:"_id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Description   string    `bson:"description" json:"description"`
	Price         float64   `bson:"price" json:"price"`
	OriginalPrice float64   `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Image         string    `bson:"image" json:"image"`
	CategoryID    string    `bson:"category" json:"category"`
	Stock         int       `bson:"stock" json:"stock"`
	Rating        float64   `bson:"rating" json:"rating"`
	ReviewCount   int       `bson:"reviewCount" json:"reviewCount"`
	Tags          []string  `bson:"tags" json:"tags"`
	IsActive      bool      `bson:"isActive" json:"isActive"`
	IsFeatured    bool      `bson:"isFeatured" json:"isFeatured"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Category is referenced by products via id and copied by value into index
// documents at synchronization time.
type Category struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Slug        string    `bson:"slug" json:"slug"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	IsActive    bool      `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Ref returns the snapshot of the category that gets embedded into index
// documents.
func (c Category) Ref() CategoryRef {
	return CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// CategoryRef is the denormalized category snapshot inside a ProductDocument.
// It reflects the category's state at sync time and goes stale until the next
// resync.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductDocument is the denormalized projection of a Product stored in the
// search index. Its identity equals the product identity. ReviewCount is the
// one scalar deliberately not projected: review counters churn too fast for a
// sync-time snapshot to be useful.
type ProductDocument struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Price         float64     `json:"price"`
	OriginalPrice float64     `json:"originalPrice,omitempty"`
	Image         string      `json:"image"`
	Category      CategoryRef `json:"category"`
	Stock         int         `json:"stock"`
	Rating        float64     `json:"rating"`
	Tags          []string    `json:"tags"`
	IsActive      bool        `json:"isActive"`
	IsFeatured    bool        `json:"isFeatured"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// Document projects the product into its index representation with the given
// category snapshot.
func (p Product) Document(category CategoryRef) ProductDocument {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return ProductDocument{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Category:      category,
		Stock:         p.Stock,
		Rating:        p.Rating,
		Tags:          tags,
		IsActive:      p.IsActive,
		IsFeatured:    p.IsFeatured,
		CreatedAt:     p.CreatedAt,
	}
}
