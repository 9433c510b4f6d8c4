package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nutellove/internal/model"
	"nutellove/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// favoriteService implements FavoriteService.
type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "favorite").Logger(),
	}
}

// List returns the user's favorites with their products.
func (s *favoriteService) List(ctx context.Context, user uuid.UUID) ([]model.Favorite, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.String()).Msg("failed to list favorites")
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return favorites, nil
}

// Toggle saves productID for the user, or removes it when already saved.
func (s *favoriteService) Toggle(ctx context.Context, user uuid.UUID, productID string) (*model.ToggleFavoriteResponse, error) {
	if productID == "" {
		return nil, model.NewMissingFieldError("productId")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		s.logger.Debug().Str("product_id", productID).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	tx, err := s.favoriteRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	existing, err := s.favoriteRepo.Find(ctx, tx, user, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	resp := &model.ToggleFavoriteResponse{ProductID: productID}
	if existing != nil {
		if err = s.favoriteRepo.Delete(ctx, tx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to remove favorite: %w", err)
		}
	} else {
		favorite := &model.Favorite{
			ID:        uuid.New(),
			UserID:    user,
			ProductID: productID,
			CreatedAt: time.Now(),
		}
		err = s.favoriteRepo.Create(ctx, tx, favorite)
		if errors.Is(err, repository.ErrFavoriteExists) {
			// saved by a concurrent toggle
			err = nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to save favorite: %w", err)
		}
		resp.Favorite = true
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.String()).
		Str("product_id", productID).
		Bool("favorite", resp.Favorite).
		Msg("favorite toggled")

	return resp, nil
}

// markFavorites sets IsFavorite on the products the user has saved.
func markFavorites(ctx context.Context, repo repository.FavoriteRepository, user *uuid.UUID, products []model.Product) error {
	if user == nil || len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	saved, err := repo.FavoriteProductIDs(ctx, *user, ids)
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	for i := range products {
		products[i].IsFavorite = saved[products[i].ID]
	}

	return nil
}
