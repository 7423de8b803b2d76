package ports

import (
	"context"

	"github.com/gamevault/storefront-api/internal/core/domain"
)

// Product sort keys accepted by ListProducts. Exactly one is ever active;
// anything unrecognised falls back to newest-first.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
)

// ListProductsInput carries all query parameters for the product listing.
// Category and Platform are pushed to the store; Search and Sort are applied
// in memory over the retrieved set.
type ListProductsInput struct {
	Category string
	Platform string
	Search   string
	Sort     string
}

// CreateProductInput is the canonical in-memory shape produced by the
// transport-layer form decode. Image URLs are collected by media ingestion
// before the product document is written.
type CreateProductInput struct {
	Name           string
	Description    string
	Price          float64
	Category       string
	ImageURLs      []string
	Brand          string
	Platform       string
	Condition      string
	Stock          int
	Featured       bool
	Tags           []string
	Specifications map[string]string
}

// UpdateProductInput carries a partial product update: nil means "keep the
// stored value". NewImageURLs are appended to the existing image list, never
// replacing it.
type UpdateProductInput struct {
	Name           *string
	Description    *string
	Price          *float64
	Category       *string
	NewImageURLs   []string
	Brand          *string
	Platform       *string
	Condition      *string
	Stock          *int
	Featured       *bool
	Tags           []string
	Specifications map[string]string
}

// ProductService defines use-case operations for products. All reads return
// products enriched with CategoryInfo where the referenced category exists.
type ProductService interface {
	List(ctx context.Context, input ListProductsInput) ([]*domain.Product, error)
	Featured(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
