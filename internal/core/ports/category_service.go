package ports

import (
	"context"

	"github.com/gamevault/storefront-api/internal/core/domain"
)

// CreateCategoryInput carries the payload for creating a category.
type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description string
}

// UpdateCategoryInput carries a partial category update. Nil fields are left
// untouched on the stored document.
type UpdateCategoryInput struct {
	Name        *string
	Slug        *string
	Description *string
}

// CategoryService defines use-case operations for categories.
type CategoryService interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id string, input UpdateCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
