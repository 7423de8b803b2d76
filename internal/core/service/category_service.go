package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gamevault/storefront-api/internal/core/domain"
	"github.com/gamevault/storefront-api/internal/core/ports"
)

// CategoryService implements category CRUD over the document store.
type CategoryService struct {
	repo   ports.CategoryRepository
	logger zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// List returns all categories sorted by name ascending.
func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.FindByID(ctx, id)
}

// Create persists a new category. Name must be non-empty; the slug is stored
// as supplied, the caller owns its shape.
func (s *CategoryService) Create(ctx context.Context, input ports.CreateCategoryInput) (*domain.Category, error) {
	now := time.Now().UTC()
	category := &domain.Category{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", created.ID).Str("name", created.Name).Msg("category created")
	return created, nil
}

// Update merges the provided fields over the stored document and restamps
// updatedAt. Unspecified fields are left untouched.
func (s *CategoryService) Update(ctx context.Context, id string, input ports.UpdateCategoryInput) (*domain.Category, error) {
	fields := map[string]any{
		"updatedAt": time.Now().UTC(),
	}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Slug != nil {
		fields["slug"] = *input.Slug
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}

	return s.repo.Update(ctx, id, fields)
}

// Delete removes the category. Products referencing it are deliberately left
// alone; their category field becomes a dangling reference.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}
