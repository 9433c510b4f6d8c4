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

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// GetAll retrieves all products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + productFrom + `
		ORDER BY p.name, p.id
		LIMIT $1 OFFSET $2
	`

	return r.list(ctx, "all", query, limit, offset)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + productFrom + `
		WHERE p.id = $1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `SELECT ` + productColumns + productFrom + `
		WHERE p.id = ANY($1)
		ORDER BY p.name
	`

	return r.list(ctx, "by_ids", query, ids)
}

// FindFirstByName returns the oldest product whose name contains query.
func (r *productRepository) FindFirstByName(ctx context.Context, query string) (*model.Product, error) {
	sql := `SELECT ` + productColumns + productFrom + `
		WHERE p.name ILIKE $1
		ORDER BY p.created_at, p.id
		LIMIT 1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, sql, likePattern(query)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("query", query).Msg("no product matches query")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search product by name")
		return nil, fmt.Errorf("failed to search product by name: %w", err)
	}

	return &p, nil
}

// SearchCandidates lists same-category products matching any term, best grade first.
func (r *productRepository) SearchCandidates(ctx context.Context, categoryID int64, excludeName string, terms []string) ([]model.Product, error) {
	if len(terms) == 0 {
		return []model.Product{}, nil
	}

	patterns := make([]string, len(terms))
	for i, term := range terms {
		patterns[i] = likePattern(term)
	}

	query := `SELECT ` + productColumns + productFrom + `
		WHERE p.category_id = $1
		  AND p.name <> $2
		  AND p.name ILIKE ANY($3)
		ORDER BY p.nutri_grade, p.created_at, p.id
	`

	products, err := r.list(ctx, "candidates", query, categoryID, excludeName, patterns)
	if err != nil {
		return nil, err
	}

	r.logger.Debug().
		Int64("category_id", categoryID).
		Strs("terms", terms).
		Int("count", len(products)).
		Msg("retrieved substitute candidates")

	return products, nil
}

// Suggestions returns random grade "a" products that have an image,
// skipping names that contain "frite" or "frie".
func (r *productRepository) Suggestions(ctx context.Context, limit int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + productFrom + `
		WHERE p.nutri_grade = 'a'
		  AND p.img IS NOT NULL
		  AND p.name NOT ILIKE '%frite%'
		  AND p.name NOT ILIKE '%frie%'
		ORDER BY random()
		LIMIT $1
	`

	return r.list(ctx, "suggestions", query, limit)
}

// ListByCategory retrieves the products of a category.
func (r *productRepository) ListByCategory(ctx context.Context, categoryID int64, limit, offset int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + productFrom + `
		WHERE p.category_id = $1
		ORDER BY p.name, p.id
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, "by_category", query, categoryID, limit, offset)
}

// ListByBrand retrieves the products of a brand.
func (r *productRepository) ListByBrand(ctx context.Context, brandID int64, limit, offset int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + productFrom + `
		JOIN product_brands pb ON pb.product_id = p.id
		WHERE pb.brand_id = $1
		ORDER BY p.name, p.id
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, "by_brand", query, brandID, limit, offset)
}

// Brands returns the brand names of a product.
func (r *productRepository) Brands(ctx context.Context, productID string) ([]string, error) {
	query := `
		SELECT b.name
		FROM brands b
		JOIN product_brands pb ON pb.brand_id = b.id
		WHERE pb.product_id = $1
		ORDER BY b.name
	`

	return r.names(ctx, "brands", query, productID)
}

// Stores returns the store names of a product.
func (r *productRepository) Stores(ctx context.Context, productID string) ([]string, error) {
	query := `
		SELECT s.name
		FROM stores s
		JOIN product_stores ps ON ps.store_id = s.id
		WHERE ps.product_id = $1
		ORDER BY s.name
	`

	return r.names(ctx, "stores", query, productID)
}

// list runs a product query and collects its rows.
func (r *productRepository) list(ctx context.Context, op, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("op", op).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products, err := collectProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Str("op", op).Msg("failed to scan product rows")
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}

	return products, nil
}

func (r *productRepository) names(ctx context.Context, op, query, productID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("op", op).Str("product_id", productID).Msg("failed to query product relations")
		return nil, fmt.Errorf("failed to query product %s: %w", op, err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		r.logger.Error().Err(err).Str("op", op).Str("product_id", productID).Msg("failed to scan product relations")
		return nil, fmt.Errorf("failed to scan product %s: %w", op, err)
	}

	return names, nil
}
