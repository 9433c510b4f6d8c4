package service

import (
	"context"
	"fmt"
	"strings"

	"nutellove/internal/model"
	"nutellove/internal/repository"
	"nutellove/internal/substitute"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Messages returned with search results.
const (
	SuggestionsTitle    = "Product suggestions"
	NoMatchMessage      = "no product matches this search"
	NoSubstituteMessage = "no better substitute found"
)

// SearchLimits bounds the size of search results.
type SearchLimits struct {
	Substitutes int
	Suggestions int
}

// productService implements ProductService.
type productService struct {
	productRepo  repository.ProductRepository
	favoriteRepo repository.FavoriteRepository
	limits       SearchLimits
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	favoriteRepo repository.FavoriteRepository,
	limits SearchLimits,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		favoriteRepo: favoriteRepo,
		limits:       limits,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves all products with pagination.
func (s *productService) GetAll(ctx context.Context, limit, offset int, user *uuid.UUID) ([]model.Product, error) {
	limit, offset = normalisePage(limit, offset)

	products, err := s.productRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	if err := markFavorites(ctx, s.favoriteRepo, user, products); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a product with its brands and stores.
func (s *productService) GetByID(ctx context.Context, id string, user *uuid.UUID) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	if product.Brands, err = s.productRepo.Brands(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to get product brands: %w", err)
	}

	if product.Stores, err = s.productRepo.Stores(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to get product stores: %w", err)
	}

	single := []model.Product{*product}
	if err := markFavorites(ctx, s.favoriteRepo, user, single); err != nil {
		return nil, err
	}
	product.IsFavorite = single[0].IsFavorite

	return product, nil
}

// Search finds the product the user is after and ranks its substitutes.
func (s *productService) Search(ctx context.Context, query string, user *uuid.UUID) (*model.SearchResult, error) {
	query = strings.TrimSpace(query)

	var (
		result *model.SearchResult
		err    error
	)
	if query == "" {
		result, err = s.suggest(ctx)
	} else {
		result, err = s.substitutes(ctx, query)
	}
	if err != nil {
		return nil, err
	}

	if err := markFavorites(ctx, s.favoriteRepo, user, result.Products); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *productService) suggest(ctx context.Context) (*model.SearchResult, error) {
	products, err := s.productRepo.Suggestions(ctx, s.limits.Suggestions)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get suggestions")
		return nil, fmt.Errorf("failed to get suggestions: %w", err)
	}

	return &model.SearchResult{
		Title:    SuggestionsTitle,
		Products: products,
	}, nil
}

func (s *productService) substitutes(ctx context.Context, query string) (*model.SearchResult, error) {
	result := &model.SearchResult{
		Query:    query,
		Products: []model.Product{},
	}

	chosen, err := s.productRepo.FindFirstByName(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search product")
		return nil, fmt.Errorf("failed to search product: %w", err)
	}

	if chosen == nil {
		s.logger.Debug().Str("query", query).Msg("no product matches query")
		result.Message = NoMatchMessage
		return result, nil
	}
	result.ChosenProduct = chosen

	candidates, err := s.productRepo.SearchCandidates(ctx, chosen.CategoryID, chosen.Name, strings.Fields(query))
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to get substitute candidates")
		return nil, fmt.Errorf("failed to get substitute candidates: %w", err)
	}

	result.Products = substitute.Select(*chosen, candidates, s.limits.Substitutes)
	if len(result.Products) == 0 {
		result.Message = NoSubstituteMessage
	}

	s.logger.Debug().
		Str("query", query).
		Str("chosen_id", chosen.ID).
		Str("chosen_grade", string(chosen.NutriGrade)).
		Int("candidates", len(candidates)).
		Int("substitutes", len(result.Products)).
		Msg("ranked substitutes")

	return result, nil
}
