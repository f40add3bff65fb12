package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"barkeep/internal/database"
	"barkeep/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// BarWorkspace is the workspace seeded by SeedBar.
const BarWorkspace int64 = 1

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, connection pool and schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPoolFromDSN(ctx, connStr, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedBar inserts a small rum bar into BarWorkspace and a neighbour into workspace 2.
//
//	1 Daiquiri         white rum (parent family) + lime + syrup   almost there, syrup missing
//	2 Dark and Stormy  dark rum + ginger beer                      ready
//	3 Rum Shot         white rum (exact)                           single step, unready
//	4 Ti Punch         white rum (category) + syrup + lime         two missing
func SeedBar(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	statements := []string{
		`INSERT INTO categories (id, workspace_id, name, parent_id, group_id) VALUES
			(1, 1, 'Rum', NULL, NULL),
			(2, 1, 'White Rum', 1, NULL),
			(3, 1, 'Dark Rum', 1, NULL),
			(10, 1, 'Citrus', NULL, NULL),
			(11, 1, 'Sweeteners', NULL, NULL),
			(12, 1, 'Mixers', NULL, NULL),
			(20, 2, 'Sweeteners', NULL, NULL)`,
		`INSERT INTO products (id, workspace_id, category_id, name, in_stock_quantity) VALUES
			(1, 1, 2, 'Plantation 3 Stars', 0),
			(2, 1, 3, 'Goslings Black Seal', 5),
			(3, 1, 10, 'Lime', 2),
			(4, 1, 11, 'Simple Syrup', 0),
			(5, 1, 12, 'Ginger Beer', 3),
			(21, 2, 20, 'Cane Syrup', 9)`,
		`INSERT INTO recipes (id, workspace_id, name) VALUES
			(1, 1, 'Daiquiri'),
			(2, 1, 'Dark and Stormy'),
			(3, 1, 'Rum Shot'),
			(4, 1, 'Ti Punch'),
			(50, 2, 'Neighbour Punch')`,
		`INSERT INTO recipe_steps (recipe_id, position, product_id, category_override_id, match_mode) VALUES
			(1, 0, 1, NULL, 'ANY_IN_PARENT_CATEGORY'),
			(1, 1, 3, NULL, 'EXACT_PRODUCT'),
			(1, 2, 4, NULL, 'EXACT_PRODUCT'),
			(2, 0, 2, NULL, 'EXACT_PRODUCT'),
			(2, 1, 5, NULL, 'EXACT_PRODUCT'),
			(3, 0, 1, NULL, 'EXACT_PRODUCT'),
			(4, 0, 1, NULL, 'ANY_IN_CATEGORY'),
			(4, 1, 4, NULL, 'ANY_IN_CATEGORY'),
			(4, 2, 3, NULL, 'EXACT_PRODUCT'),
			(50, 0, 21, NULL, 'EXACT_PRODUCT')`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("failed to seed bar: %v", err)
		}
	}
}

// SetStock changes the stock count of one product.
func SetStock(t *testing.T, pool *pgxpool.Pool, productID int64, quantity int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"UPDATE products SET in_stock_quantity = $1 WHERE id = $2", quantity, productID)
	if err != nil {
		t.Fatalf("failed to set stock of product %d: %v", productID, err)
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"recipe_steps", "recipes", "products", "categories"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
