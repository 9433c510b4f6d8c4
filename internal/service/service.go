package service

import (
	"context"

	"nutellove/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for browsing and searching products.
// A nil user means an anonymous caller; otherwise products carry IsFavorite.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int, user *uuid.UUID) ([]model.Product, error)

	// GetByID retrieves a product with its category, brands and stores.
	GetByID(ctx context.Context, id string, user *uuid.UUID) (*model.Product, error)

	// Search looks up query and proposes healthier substitutes, or random
	// suggestions when query is blank.
	Search(ctx context.Context, query string, user *uuid.UUID) (*model.SearchResult, error)
}

// CatalogService defines operations over categories and brands.
type CatalogService interface {
	// Categories lists every category.
	Categories(ctx context.Context) ([]model.Category, error)

	// Brands lists every brand.
	Brands(ctx context.Context) ([]model.Brand, error)

	// CategoryProducts lists the products of a category.
	CategoryProducts(ctx context.Context, id int64, limit, offset int, user *uuid.UUID) (*model.ProductListing, error)

	// BrandProducts lists the products of a brand.
	BrandProducts(ctx context.Context, id int64, limit, offset int, user *uuid.UUID) (*model.ProductListing, error)
}

// UserService defines account operations.
type UserService interface {
	// Register creates an account and signs the user in.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login checks credentials and returns a signed token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// Account returns the user behind id.
	Account(ctx context.Context, id uuid.UUID) (*model.User, error)

	// ChangePassword replaces the password and returns a fresh token.
	ChangePassword(ctx context.Context, id uuid.UUID, req *model.ChangePasswordRequest) (*model.AuthResponse, error)
}

// FavoriteService defines operations on a user's saved substitutes.
type FavoriteService interface {
	// List returns the user's favorites with their products.
	List(ctx context.Context, user uuid.UUID) ([]model.Favorite, error)

	// Toggle saves productID for the user, or removes it when already saved.
	Toggle(ctx context.Context, user uuid.UUID, productID string) (*model.ToggleFavoriteResponse, error)
}

// normalisePage clamps pagination parameters.
func normalisePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
