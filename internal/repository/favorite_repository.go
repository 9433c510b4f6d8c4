package repository

import (
	"context"
	"errors"
	"fmt"

	"nutellove/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ErrFavoriteExists is returned by Create when the user already saved the product.
var ErrFavoriteExists = errors.New("favorite already exists")

// favoriteRepository implements the FavoriteRepository interface using PostgreSQL.
type favoriteRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewFavoriteRepository creates a new PostgreSQL-backed favorite repository.
func NewFavoriteRepository(pool *pgxpool.Pool, logger zerolog.Logger) FavoriteRepository {
	return &favoriteRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "favorite").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *favoriteRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Find returns the favorite linking userID and productID, locking the row.
func (r *favoriteRepository) Find(ctx context.Context, tx pgx.Tx, userID uuid.UUID, productID string) (*model.Favorite, error) {
	query := `
		SELECT id, user_id, product_id, created_at
		FROM favorites
		WHERE user_id = $1 AND product_id = $2
		FOR UPDATE
	`

	var f model.Favorite
	err := tx.QueryRow(ctx, query, userID, productID).Scan(&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("product_id", productID).
			Msg("failed to query favorite")
		return nil, fmt.Errorf("failed to query favorite: %w", err)
	}

	return &f, nil
}

// Create inserts a favorite within the provided transaction. A concurrent
// insert of the same (user, product) pair yields ErrFavoriteExists and
// leaves the transaction usable.
func (r *favoriteRepository) Create(ctx context.Context, tx pgx.Tx, favorite *model.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, product_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	tag, err := tx.Exec(ctx, query, favorite.ID, favorite.UserID, favorite.ProductID, favorite.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", favorite.UserID.String()).
			Str("product_id", favorite.ProductID).
			Msg("failed to create favorite")
		return fmt.Errorf("failed to create favorite: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().
			Str("user_id", favorite.UserID.String()).
			Str("product_id", favorite.ProductID).
			Msg("favorite already exists")
		return ErrFavoriteExists
	}

	r.logger.Debug().
		Str("favorite_id", favorite.ID.String()).
		Msg("favorite created successfully")

	return nil
}

// Delete removes a favorite within the provided transaction.
func (r *favoriteRepository) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("favorite_id", id.String()).Msg("failed to delete favorite")
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	r.logger.Debug().Str("favorite_id", id.String()).Msg("favorite deleted successfully")

	return nil
}

// ListByUser returns the favorites of a user with their products, newest first.
func (r *favoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	query := `SELECT f.id, f.user_id, f.created_at, ` + productColumns + `
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC, f.id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query favorites")
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	favorites := []model.Favorite{}
	for rows.Next() {
		var (
			f     model.Favorite
			p     model.Product
			grade string
		)
		err := rows.Scan(
			&f.ID, &f.UserID, &f.CreatedAt,
			&p.ID, &p.Name, &p.URL, &grade, &p.CategoryID, &p.Category, &p.ImageURL, &p.LastModified, &p.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan favorite row")
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		p.NutriGrade = model.Grade(grade)
		p.IsFavorite = true
		f.ProductID = p.ID
		f.Product = &p
		favorites = append(favorites, f)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating favorite rows")
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	return favorites, nil
}

// FavoriteProductIDs returns which of productIDs the user has saved.
func (r *favoriteRepository) FavoriteProductIDs(ctx context.Context, userID uuid.UUID, productIDs []string) (map[string]bool, error) {
	saved := make(map[string]bool, len(productIDs))
	if len(productIDs) == 0 {
		return saved, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT product_id FROM favorites WHERE user_id = $1 AND product_id = ANY($2)`,
		userID, productIDs,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query favorite product IDs")
		return nil, fmt.Errorf("failed to query favorite product IDs: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan favorite product IDs")
		return nil, fmt.Errorf("failed to scan favorite product IDs: %w", err)
	}

	for _, id := range ids {
		saved[id] = true
	}

	return saved, nil
}
