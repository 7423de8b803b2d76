package ports

import (
	"context"

	"github.com/gamevault/storefront-api/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	// List returns all categories sorted by name ascending. The fetch is
	// unbounded: acceptable at storefront scale, a known limit beyond it.
	List(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	// FindByIDs resolves a set of ids in a single query. Unknown ids are
	// silently absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	// Update applies the given fields to the document and returns the merged
	// record. Returns domain.ErrCategoryNotFound when the id is unknown.
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
