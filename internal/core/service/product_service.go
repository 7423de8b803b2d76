package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/gamevault/storefront-api/internal/core/domain"
	"github.com/gamevault/storefront-api/internal/core/ports"
)

// featuredLimit caps the featured-products endpoint.
const featuredLimit = 8

// ProductService implements the catalog use cases: listing with
// filter/search/sort, category enrichment, and admin CRUD.
type ProductService struct {
	repo       ports.ProductRepository
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, categories ports.CategoryRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, categories: categories, logger: logger}
}

// List retrieves products matching the filter. Category and platform
// equality constraints are pushed to the store; search is a case-insensitive
// substring scan over name, description, and tags of the retrieved set.
// All sorts are stable, so ties retain store-returned order.
func (s *ProductService) List(ctx context.Context, input ports.ListProductsInput) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx, ports.ProductQuery{
		Category: input.Category,
		Platform: input.Platform,
	})
	if err != nil {
		return nil, err
	}

	if input.Search != "" {
		filtered := make([]*domain.Product, 0, len(products))
		for _, p := range products {
			if p.MatchesSearch(input.Search) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	sortProducts(products, input.Sort)

	if err := s.enrich(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// Featured returns up to 8 featured products in store-returned order.
func (s *ProductService) Featured(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.ListFeatured(ctx, featuredLimit)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, []*domain.Product{product}); err != nil {
		return nil, err
	}
	return product, nil
}

// Create persists a new product. Image URLs have already been collected by
// media ingestion, so a failed document write can only leave orphaned blobs,
// never a product referencing missing images.
func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	now := time.Now().UTC()

	condition := input.Condition
	if condition == "" {
		condition = domain.DefaultCondition
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	specs := input.Specifications
	if specs == nil {
		specs = map[string]string{}
	}
	images := input.ImageURLs
	if images == nil {
		images = []string{}
	}

	product := &domain.Product{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		Category:       input.Category,
		Images:         images,
		Brand:          input.Brand,
		Platform:       input.Platform,
		Condition:      condition,
		Stock:          input.Stock,
		Featured:       input.Featured,
		Tags:           tags,
		Specifications: specs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")

	if err := s.enrich(ctx, []*domain.Product{created}); err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial update: each provided field overwrites the stored
// value, each absent field keeps it. Newly uploaded images are appended to
// the existing list, never replacing it wholesale.
func (s *ProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Price != nil {
		existing.Price = *input.Price
	}
	if input.Category != nil {
		existing.Category = *input.Category
	}
	if input.Brand != nil {
		existing.Brand = *input.Brand
	}
	if input.Platform != nil {
		existing.Platform = *input.Platform
	}
	if input.Condition != nil {
		existing.Condition = *input.Condition
	}
	if input.Stock != nil {
		existing.Stock = *input.Stock
	}
	if input.Featured != nil {
		existing.Featured = *input.Featured
	}
	if input.Tags != nil {
		existing.Tags = input.Tags
	}
	if input.Specifications != nil {
		existing.Specifications = input.Specifications
	}
	existing.Images = append(existing.Images, input.NewImageURLs...)
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Replace(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")

	if err := s.enrich(ctx, []*domain.Product{updated}); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the product document.
// TODO: delete the product's images from object storage; today they are left
// orphaned in the bucket.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// enrich attaches CategoryInfo to each product via one batch lookup of all
// distinct referenced category ids. Dangling references get no CategoryInfo.
func (s *ProductService) enrich(ctx context.Context, products []*domain.Product) error {
	ids := make([]string, 0, len(products))
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		ids = append(ids, p.Category)
	}
	if len(ids) == 0 {
		return nil
	}

	categories, err := s.categories.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, p := range products {
		if c, ok := categories[p.Category]; ok {
			p.CategoryInfo = &domain.CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
		}
	}
	return nil
}

// sortProducts orders products in place by the requested key. The zero value
// (or an unknown key) sorts newest first by createdAt.
func sortProducts(products []*domain.Product, key string) {
	switch key {
	case ports.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case ports.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case ports.SortName:
		c := collate.New(language.Und, collate.Loose)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}
