package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema is the idempotent DDL for the catalogue, accounts and favorites.
const Schema = `
	CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS brands (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS stores (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		url TEXT NOT NULL DEFAULT '',
		nutri_grade CHAR(1) NOT NULL CHECK (nutri_grade IN ('a', 'b', 'c', 'd', 'e')),
		category_id BIGINT NOT NULL REFERENCES categories(id),
		img TEXT,
		last_modified TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_products_category_grade ON products(category_id, nutri_grade);
	CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

	CREATE TABLE IF NOT EXISTS product_brands (
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		brand_id BIGINT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
		PRIMARY KEY (product_id, brand_id)
	);

	CREATE TABLE IF NOT EXISTS product_stores (
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		store_id BIGINT NOT NULL REFERENCES stores(id) ON DELETE CASCADE,
		PRIMARY KEY (product_id, store_id)
	);

	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(150) NOT NULL UNIQUE,
		email VARCHAR(254) NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS favorites (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, product_id)
	);
	CREATE INDEX IF NOT EXISTS idx_favorites_user_id ON favorites(user_id);
`

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		logger.Error().Err(err).Msg("failed to apply database schema")
		return fmt.Errorf("failed to apply database schema: %w", err)
	}

	logger.Info().Msg("database schema is up to date")
	return nil
}
