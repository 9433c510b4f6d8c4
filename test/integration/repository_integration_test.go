package integration

import (
	"context"
	"testing"
	"time"

	"nutellove/internal/model"
	"nutellove/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("GetAll returns seeded products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		products, err := repo.GetAll(ctx, 10, 0)
		require.NoError(t, err)
		assert.Len(t, products, 5)
	})

	t.Run("GetAll with pagination", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		first, err := repo.GetAll(ctx, 2, 0)
		require.NoError(t, err)
		assert.Len(t, first, 2)

		second, err := repo.GetAll(ctx, 2, 2)
		require.NoError(t, err)
		assert.Len(t, second, 2)
		assert.NotEqual(t, first[0].ID, second[0].ID)
	})

	t.Run("GetByID returns product with category name", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		product, err := repo.GetByID(ctx, "P002")
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "gateau cool au chocolat", product.Name)
		assert.Equal(t, model.GradeB, product.NutriGrade)
		assert.Equal(t, "Gâteaux", product.Category)
		require.NotNil(t, product.ImageURL)
	})

	t.Run("GetByID returns nil for non-existent product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		product, err := repo.GetByID(ctx, "NONEXISTENT")
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("GetByIDs returns requested products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		products, err := repo.GetByIDs(ctx, []string{"P001", "P004", "MISSING"})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("FindFirstByName is case insensitive", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		product, err := repo.FindFirstByName(ctx, "SOUPE NULLE")
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "P004", product.ID)
	})

	t.Run("SearchCandidates stays in category and excludes chosen name", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		chosen, err := repo.GetByID(ctx, "P001")
		require.NoError(t, err)
		require.NotNil(t, chosen)

		candidates, err := repo.SearchCandidates(ctx, chosen.CategoryID, chosen.Name, []string{"chocolat"})
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "P002", candidates[0].ID)
	})

	t.Run("Suggestions returns grade a products with an image", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		products, err := repo.Suggestions(ctx, 9)
		require.NoError(t, err)
		assert.Len(t, products, 2)
		for _, p := range products {
			assert.Equal(t, model.GradeA, p.NutriGrade)
			assert.NotNil(t, p.ImageURL)
		}
	})

	t.Run("Brands and Stores list a product's names", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		brands, err := repo.Brands(ctx, "P002")
		require.NoError(t, err)
		assert.Equal(t, []string{"Bonne Maman"}, brands)

		stores, err := repo.Stores(ctx, "P002")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Carrefour", "Auchan"}, stores)
	})
}

func TestCategoryRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	categories := repository.NewCategoryRepository(testDB.Pool, logger)
	products := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Categories and products by category", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		list, err := categories.Categories(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)

		var soups model.Category
		for _, c := range list {
			if c.Name == "Soupes" {
				soups = c
			}
		}
		require.NotZero(t, soups.ID)

		found, err := categories.CategoryByID(ctx, soups.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Soupes", found.Name)

		inCategory, err := products.ListByCategory(ctx, soups.ID, 20, 0)
		require.NoError(t, err)
		assert.Len(t, inCategory, 2)
	})

	t.Run("Brands and products by brand", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		brands, err := categories.Brands(ctx)
		require.NoError(t, err)

		var bonneMaman model.Brand
		for _, b := range brands {
			if b.Name == "Bonne Maman" {
				bonneMaman = b
			}
		}
		require.NotZero(t, bonneMaman.ID)

		ofBrand, err := products.ListByBrand(ctx, bonneMaman.ID, 20, 0)
		require.NoError(t, err)
		assert.Len(t, ofBrand, 2)
	})

	t.Run("CategoryByID returns nil for unknown ID", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		found, err := categories.CategoryByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestUserAndFavoriteRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	users := repository.NewUserRepository(testDB.Pool, logger)
	favorites := repository.NewFavoriteRepository(testDB.Pool, logger)

	ctx := context.Background()

	newUser := func(username string) *model.User {
		now := time.Now().UTC()
		return &model.User{
			ID:           uuid.New(),
			Username:     username,
			PasswordHash: "hash",
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	t.Run("duplicate username is rejected", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		require.NoError(t, users.Create(ctx, newUser("alice")))
		err := users.Create(ctx, newUser("alice"))
		assert.ErrorIs(t, err, model.ErrUsernameTaken)
	})

	t.Run("UpdatePassword changes the stored hash", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		user := newUser("bob")
		require.NoError(t, users.Create(ctx, user))
		require.NoError(t, users.UpdatePassword(ctx, user.ID, "new-hash"))

		stored, err := users.GetByUsername(ctx, "bob")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "new-hash", stored.PasswordHash)
	})

	t.Run("favorite create, find, list and delete", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		user := newUser("carol")
		require.NoError(t, users.Create(ctx, user))

		tx, err := favorites.BeginTx(ctx)
		require.NoError(t, err)
		favorite := &model.Favorite{
			ID:        uuid.New(),
			UserID:    user.ID,
			ProductID: "P002",
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, favorites.Create(ctx, tx, favorite))
		require.NoError(t, tx.Commit(ctx))

		list, err := favorites.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "P002", list[0].ProductID)

		marked, err := favorites.FavoriteProductIDs(ctx, user.ID, []string{"P001", "P002"})
		require.NoError(t, err)
		assert.True(t, marked["P002"])
		assert.False(t, marked["P001"])

		tx, err = favorites.BeginTx(ctx)
		require.NoError(t, err)
		found, err := favorites.Find(ctx, tx, user.ID, "P002")
		require.NoError(t, err)
		require.NotNil(t, found)
		require.NoError(t, favorites.Delete(ctx, tx, found.ID))
		require.NoError(t, tx.Commit(ctx))

		list, err = favorites.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
