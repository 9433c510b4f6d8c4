package repository

import (
	"context"
	"fmt"
	"time"

	"nutellove/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// catalogRepository implements the CatalogRepository interface using PostgreSQL.
type catalogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCatalogRepository creates a new PostgreSQL-backed catalogue writer.
func NewCatalogRepository(pool *pgxpool.Pool, logger zerolog.Logger) CatalogRepository {
	return &catalogRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

const (
	upsertCategoryQuery = `INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`
	upsertBrandQuery    = `INSERT INTO brands (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`
	upsertStoreQuery    = `INSERT INTO stores (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`

	upsertProductQuery = `
		INSERT INTO products (id, name, url, nutri_grade, category_id, img, last_modified)
		VALUES ($1, $2, $3, $4, (SELECT id FROM categories WHERE name = $5), $6, COALESCE($7::timestamptz, NOW()))
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			url = EXCLUDED.url,
			nutri_grade = EXCLUDED.nutri_grade,
			category_id = EXCLUDED.category_id,
			img = EXCLUDED.img,
			last_modified = EXCLUDED.last_modified
	`

	clearProductBrandsQuery = `DELETE FROM product_brands WHERE product_id = $1`
	linkProductBrandsQuery  = `
		INSERT INTO product_brands (product_id, brand_id)
		SELECT $1, id FROM brands WHERE name = ANY($2)
		ON CONFLICT DO NOTHING
	`

	clearProductStoresQuery = `DELETE FROM product_stores WHERE product_id = $1`
	linkProductStoresQuery  = `
		INSERT INTO product_stores (product_id, store_id)
		SELECT $1, id FROM stores WHERE name = ANY($2)
		ON CONFLICT DO NOTHING
	`
)

// UpsertProducts writes products and their dictionaries in one transaction,
// using one batch for the dictionaries and one for products and join rows.
func (r *catalogRepository) UpsertProducts(ctx context.Context, products []model.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// no-op once committed
		_ = tx.Rollback(ctx)
	}()

	dictionaries := &pgx.Batch{}
	queueNames(dictionaries, upsertCategoryQuery, categoryNames(products))
	queueNames(dictionaries, upsertBrandQuery, flatten(products, func(p model.Product) []string { return p.Brands }))
	queueNames(dictionaries, upsertStoreQuery, flatten(products, func(p model.Product) []string { return p.Stores }))

	if err := r.sendBatch(ctx, tx, dictionaries); err != nil {
		return 0, fmt.Errorf("failed to upsert catalogue dictionaries: %w", err)
	}

	rows := &pgx.Batch{}
	for _, p := range products {
		rows.Queue(upsertProductQuery, p.ID, p.Name, p.URL, string(p.NutriGrade), p.Category, p.ImageURL, lastModified(p))
		rows.Queue(clearProductBrandsQuery, p.ID)
		rows.Queue(linkProductBrandsQuery, p.ID, nonNil(p.Brands))
		rows.Queue(clearProductStoresQuery, p.ID)
		rows.Queue(linkProductStoresQuery, p.ID, nonNil(p.Stores))
	}

	if err := r.sendBatch(ctx, tx, rows); err != nil {
		return 0, fmt.Errorf("failed to upsert products: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit catalogue transaction")
		return 0, fmt.Errorf("failed to commit catalogue transaction: %w", err)
	}

	r.logger.Debug().
		Int("count", len(products)).
		Msg("products upserted successfully")

	return len(products), nil
}

func (r *catalogRepository) sendBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			r.logger.Error().
				Err(err).
				Str("statement", batch.QueuedQueries[i].SQL).
				Msg("catalogue batch statement failed")
			return err
		}
	}

	return results.Close()
}

func queueNames(batch *pgx.Batch, query string, names []string) {
	for _, name := range names {
		batch.Queue(query, name)
	}
}

func categoryNames(products []model.Product) []string {
	return flatten(products, func(p model.Product) []string { return []string{p.Category} })
}

// flatten collects the distinct non-empty names produced by pick, in first-seen order.
func flatten(products []model.Product, pick func(model.Product) []string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, p := range products {
		for _, name := range pick(p) {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}

// lastModified returns nil for an unknown modification time so the row
// falls back to NOW().
func lastModified(p model.Product) *time.Time {
	if p.LastModified.IsZero() {
		return nil
	}
	return &p.LastModified
}
