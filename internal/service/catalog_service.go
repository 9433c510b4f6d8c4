package service

import (
	"context"
	"fmt"

	"nutellove/internal/model"
	"nutellove/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	favoriteRepo repository.FavoriteRepository
	logger       zerolog.Logger
}

// NewCatalogService creates a service browsing categories and brands.
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	favoriteRepo repository.FavoriteRepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		favoriteRepo: favoriteRepo,
		logger:       logger.With().Str("service", "catalog").Logger(),
	}
}

func (s *catalogService) Categories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

func (s *catalogService) Brands(ctx context.Context) ([]model.Brand, error) {
	brands, err := s.categoryRepo.Brands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get brands: %w", err)
	}
	return brands, nil
}

func (s *catalogService) CategoryProducts(ctx context.Context, id int64, limit, offset int, user *uuid.UUID) (*model.ProductListing, error) {
	category, err := s.categoryRepo.CategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		s.logger.Debug().Int64("category_id", id).Msg("category not found")
		return nil, model.ErrCategoryNotFound
	}

	limit, offset = normalisePage(limit, offset)
	products, err := s.productRepo.ListByCategory(ctx, id, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to list category products")
		return nil, fmt.Errorf("failed to list category products: %w", err)
	}

	if err := markFavorites(ctx, s.favoriteRepo, user, products); err != nil {
		return nil, err
	}

	return &model.ProductListing{
		ID:       category.ID,
		Name:     category.Name,
		Title:    "Products in category " + category.Name,
		Products: products,
	}, nil
}

func (s *catalogService) BrandProducts(ctx context.Context, id int64, limit, offset int, user *uuid.UUID) (*model.ProductListing, error) {
	brand, err := s.categoryRepo.BrandByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	if brand == nil {
		s.logger.Debug().Int64("brand_id", id).Msg("brand not found")
		return nil, model.ErrBrandNotFound
	}

	limit, offset = normalisePage(limit, offset)
	products, err := s.productRepo.ListByBrand(ctx, id, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Int64("brand_id", id).Msg("failed to list brand products")
		return nil, fmt.Errorf("failed to list brand products: %w", err)
	}

	if err := markFavorites(ctx, s.favoriteRepo, user, products); err != nil {
		return nil, err
	}

	return &model.ProductListing{
		ID:       brand.ID,
		Name:     brand.Name,
		Title:    "Products of brand " + brand.Name,
		Products: products,
	}, nil
}
