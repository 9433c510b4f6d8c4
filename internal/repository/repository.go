package repository

import (
	"context"

	"nutellove/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID, or nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// FindFirstByName returns the oldest product whose name contains query,
	// ignoring case, or nil when nothing matches.
	FindFirstByName(ctx context.Context, query string) (*model.Product, error)

	// SearchCandidates lists the products of a category whose name contains
	// any of terms (ignoring case), excluding excludeName, ordered by grade.
	SearchCandidates(ctx context.Context, categoryID int64, excludeName string, terms []string) ([]model.Product, error)

	// Suggestions returns random grade "a" products that have an image.
	Suggestions(ctx context.Context, limit int) ([]model.Product, error)

	// ListByCategory retrieves the products of a category.
	ListByCategory(ctx context.Context, categoryID int64, limit, offset int) ([]model.Product, error)

	// ListByBrand retrieves the products of a brand.
	ListByBrand(ctx context.Context, brandID int64, limit, offset int) ([]model.Product, error)

	// Brands returns the brand names of a product.
	Brands(ctx context.Context, productID string) ([]string, error)

	// Stores returns the store names of a product.
	Stores(ctx context.Context, productID string) ([]string, error)
}

// CategoryRepository defines read access to categories and brands.
type CategoryRepository interface {
	// Categories lists every category ordered by name.
	Categories(ctx context.Context) ([]model.Category, error)

	// CategoryByID returns a category, or nil when absent.
	CategoryByID(ctx context.Context, id int64) (*model.Category, error)

	// Brands lists every brand ordered by name.
	Brands(ctx context.Context) ([]model.Brand, error)

	// BrandByID returns a brand, or nil when absent.
	BrandByID(ctx context.Context, id int64) (*model.Brand, error)
}

// UserRepository defines the interface for account data access operations.
type UserRepository interface {
	// Create inserts a new user. Returns model.ErrUsernameTaken on conflict.
	Create(ctx context.Context, user *model.User) error

	// GetByUsername retrieves a user by username, or nil when absent.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// GetByID retrieves a user by ID, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// FavoriteRepository defines the interface for favorite data access operations.
type FavoriteRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Find returns the favorite linking userID and productID within tx, or nil.
	Find(ctx context.Context, tx pgx.Tx, userID uuid.UUID, productID string) (*model.Favorite, error)

	// Create inserts a favorite within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, favorite *model.Favorite) error

	// Delete removes a favorite within the provided transaction.
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error

	// ListByUser returns the favorites of a user with their products, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error)

	// FavoriteProductIDs returns which of productIDs the user has saved.
	FavoriteProductIDs(ctx context.Context, userID uuid.UUID, productIDs []string) (map[string]bool, error)
}

// CatalogRepository defines bulk writes used by the catalogue importer.
type CatalogRepository interface {
	// UpsertProducts inserts or updates products together with their
	// category, brands and stores. Returns the number of products written.
	UpsertProducts(ctx context.Context, products []model.Product) (int, error)
}
