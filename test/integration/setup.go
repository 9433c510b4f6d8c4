package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"nutellove/internal/config"
	"nutellove/internal/database"
	"nutellove/internal/model"
	"nutellove/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB is a migrated PostgreSQL container and a pool connected to it.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB starts PostgreSQL in a container, connects through
// database.NewPoolFromConnString and applies the schema. Everything is torn
// down by t.Cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("nutellove_test"),
		postgres.WithUsername("nutellove"),
		postgres.WithPassword("nutellove"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	sizing := config.DatabaseConfig{MaxConnections: 10, MinConnections: 1, MaxConnLifetime: 300}
	pool, err := database.NewPoolFromConnString(ctx, connStr, sizing, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	createSchema(t, pool)

	return &TestDB{
		Container: container,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema applies the production schema.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if err := database.Migrate(context.Background(), pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedProducts writes a small catalogue of cakes and soups through the
// catalogue repository.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	modified := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	img := "https://images.openfoodfacts.org/sample.jpg"

	products := []model.Product{
		{ID: "P001", Name: "Gateau au chocolat trop sucré", NutriGrade: model.GradeE, Category: "Gâteaux", Brands: []string{"Sucre & Co"}, Stores: []string{"Carrefour"}},
		{ID: "P002", Name: "gateau cool au chocolat", NutriGrade: model.GradeB, Category: "Gâteaux", Brands: []string{"Bonne Maman"}, Stores: []string{"Carrefour", "Auchan"}, ImageURL: &img},
		{ID: "P003", Name: "Gateau nature", NutriGrade: model.GradeA, Category: "Gâteaux", Brands: []string{"Bonne Maman"}, ImageURL: &img},
		{ID: "P004", Name: "Soupe nulle", NutriGrade: model.GradeD, Category: "Soupes", Brands: []string{"Liebig"}},
		{ID: "P005", Name: "Soupe de légumes", NutriGrade: model.GradeA, Category: "Soupes", ImageURL: &img},
	}
	for i := range products {
		products[i].URL = "https://world.openfoodfacts.org/product/" + products[i].ID
		products[i].LastModified = modified
	}

	repo := repository.NewCatalogRepository(pool, zerolog.Nop())
	if _, err := repo.UpsertProducts(ctx, products); err != nil {
		t.Fatalf("failed to seed products: %v", err)
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		"favorites", "users", "product_stores", "product_brands",
		"products", "stores", "brands", "categories",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
