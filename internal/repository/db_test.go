package repository

import (
	"context"
	"testing"
	"time"

	"inventify-hub/internal/database"
	"inventify-hub/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer, applies the schema and
// returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, pool))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// seedShop inserts a shop row directly, bypassing the transactional path.
func seedShop(t *testing.T, pool *pgxpool.Pool, shop model.Shop) {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO shops (shop_id, shop_name, shop_owner_email, product_limit, line_of_product, purchase_count, payment_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`, shop.ShopID, shop.ShopName, shop.OwnerEmail, shop.ProductLimit, shop.LineOfProduct, shop.PurchaseCount, shop.PaymentIDs)
	require.NoError(t, err)

	for _, email := range shop.Employees {
		_, err := pool.Exec(ctx, `INSERT INTO shop_employees (shop_id, email) VALUES ($1, $2)`, shop.ShopID, email)
		require.NoError(t, err)
	}
}

// seedProduct inserts a product row with an explicit id.
func seedProduct(t *testing.T, pool *pgxpool.Pool, p model.Product) {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO products (product_id, shop_id, shop_owner_email, name, category, stock_quantity, sale_count, production_cost, discount, selling_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	`, p.ProductID, p.ShopID, p.OwnerEmail, p.Name, p.Category, p.StockQuantity, p.SaleCount, p.ProductionCost, p.Discount, p.SellingPrice)
	require.NoError(t, err)
}
