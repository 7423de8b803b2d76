package ports

import (
	"context"

	"github.com/gamevault/storefront-api/internal/core/domain"
)

// ProductQuery carries the equality filters pushed down to the store. Both
// filters applied together require a composite index in real deployments.
type ProductQuery struct {
	Category string // empty = no constraint
	Platform string // empty = no constraint
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	List(ctx context.Context, query ProductQuery) ([]*domain.Product, error)
	// ListFeatured returns up to limit products with featured == true, in
	// store-returned order.
	ListFeatured(ctx context.Context, limit int) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// Replace overwrites the stored document with product, keyed by its id.
	// Returns domain.ErrProductNotFound when the id is unknown.
	Replace(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
