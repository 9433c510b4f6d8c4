package repository

import (
	"context"
	"errors"
	"fmt"

	"nutellove/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a PostgreSQL-backed category and brand repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

func (r *categoryRepository) Categories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Category])
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan category rows")
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) CategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("category_id", id).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

func (r *categoryRepository) Brands(ctx context.Context) ([]model.Brand, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM brands ORDER BY name`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query brands")
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}

	brands, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Brand])
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan brand rows")
		return nil, fmt.Errorf("failed to scan brands: %w", err)
	}

	return brands, nil
}

func (r *categoryRepository) BrandByID(ctx context.Context, id int64) (*model.Brand, error) {
	var b model.Brand
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM brands WHERE id = $1`, id).Scan(&b.ID, &b.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("brand_id", id).Msg("brand not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("brand_id", id).Msg("failed to query brand")
		return nil, fmt.Errorf("failed to query brand: %w", err)
	}

	return &b, nil
}
