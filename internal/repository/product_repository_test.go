package repository

import (
	"context"
	"testing"
	"time"

	"inventify-hub/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Insert_SequentialIDs(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	ids := make([]string, 0, 3)
	for _, name := range []string{"Green Tea", "Black Tea", "Oolong"} {
		tx, err := pool.Begin(ctx)
		require.NoError(t, err)

		id, err := repo.Insert(ctx, tx, &model.Product{
			ShopID:     "teashop0001",
			OwnerEmail: "owner@example.com",
			Name:       name,
			CreatedAt:  time.Now(),
		})
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))

		ids = append(ids, id)
	}

	assert.Equal(t, []string{"prod-00001", "prod-00002", "prod-00003"}, ids)
}

func TestProductRepository_Insert_NoReuseAfterRollback(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	_, err = repo.Insert(ctx, tx, &model.Product{ShopID: "teashop0001", OwnerEmail: "owner@example.com", Name: "Abandoned", CreatedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	tx, err = pool.Begin(ctx)
	require.NoError(t, err)
	id, err := repo.Insert(ctx, tx, &model.Product{ShopID: "teashop0001", OwnerEmail: "owner@example.com", Name: "Kept", CreatedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	// Sequence values burned by the rollback are never handed out again.
	assert.Equal(t, "prod-00002", id)
}

func TestProductRepository_AdjustStock(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	seedProduct(t, pool, model.Product{ProductID: "prod-00001", ShopID: "teashop0001", OwnerEmail: "owner@example.com", Name: "Green Tea", StockQuantity: 5})

	tests := []struct {
		name      string
		delta     int
		applied   bool
		wantStock int
	}{
		{"decrement within stock", -3, true, 2},
		{"decrement to zero", -2, true, 0},
		{"decrement below zero refused", -1, false, 0},
		{"restock", 10, true, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := pool.Begin(ctx)
			require.NoError(t, err)

			applied, err := repo.AdjustStock(ctx, tx, "prod-00001", tt.delta)
			require.NoError(t, err)
			require.NoError(t, tx.Commit(ctx))

			assert.Equal(t, tt.applied, applied)

			p, err := repo.GetByID(ctx, "prod-00001")
			require.NoError(t, err)
			require.NotNil(t, p)
			assert.Equal(t, tt.wantStock, p.StockQuantity)
		})
	}
}

func TestProductRepository_AddSaleCount(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	seedProduct(t, pool, model.Product{ProductID: "prod-00001", ShopID: "teashop0001", OwnerEmail: "owner@example.com", Name: "Green Tea", SaleCount: 2})

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)

	credited, err := repo.AddSaleCount(ctx, tx, "prod-00001", "teashop0001", 3)
	require.NoError(t, err)
	assert.True(t, credited)

	// A mismatched shop never touches another shop's product.
	credited, err = repo.AddSaleCount(ctx, tx, "prod-00001", "otherstore0001", 3)
	require.NoError(t, err)
	assert.False(t, credited)

	require.NoError(t, tx.Commit(ctx))

	p, err := repo.GetByID(ctx, "prod-00001")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 5, p.SaleCount)
}

func TestProductRepository_Update(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	seedProduct(t, pool, model.Product{ProductID: "prod-00001", ShopID: "teashop0001", OwnerEmail: "owner@example.com", Name: "Green Tea", StockQuantity: 5, SellingPrice: 4.50})

	modified, err := repo.Update(ctx, "prod-00001", &model.ProductInput{
		Name:          "Green Tea Premium",
		StockQuantity: 8,
		SellingPrice:  6.00,
	})
	require.NoError(t, err)
	assert.True(t, modified)

	modified, err = repo.Update(ctx, "prod-99999", &model.ProductInput{Name: "Ghost"})
	require.NoError(t, err)
	assert.False(t, modified)

	p, err := repo.GetByID(ctx, "prod-00001")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Green Tea Premium", p.Name)
	assert.Equal(t, 8, p.StockQuantity)
	assert.Equal(t, 6.00, p.SellingPrice)
}

func TestProductRepository_Categories(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	seedProduct(t, pool, model.Product{ProductID: "prod-00001", ShopID: "teashop0001", OwnerEmail: "owner@example.com", Name: "Green Tea", Category: "tea"})
	seedProduct(t, pool, model.Product{ProductID: "prod-00002", ShopID: "teashop0001", OwnerEmail: "owner@example.com", Name: "Black Tea", Category: "tea"})
	seedProduct(t, pool, model.Product{ProductID: "prod-00003", ShopID: "teashop0001", OwnerEmail: "owner@example.com", Name: "Teapot", Category: "ware"})
	seedProduct(t, pool, model.Product{ProductID: "prod-00004", ShopID: "otherstore0001", OwnerEmail: "other@example.com", Name: "Coffee", Category: "coffee"})

	categories, err := repo.Categories(ctx, "teashop0001")
	require.NoError(t, err)

	assert.Len(t, categories, 2)
	assert.ElementsMatch(t, []string{"tea", "ware"}, categories)
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	p, err := repo.GetByID(ctx, "prod-00001")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProductRepository_ListByOwner(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	seedProduct(t, pool, model.Product{ProductID: "prod-00001", ShopID: "teashop0001", OwnerEmail: "owner@example.com", Name: "Green Tea"})
	seedProduct(t, pool, model.Product{ProductID: "prod-00002", ShopID: "otherstore0001", OwnerEmail: "other@example.com", Name: "Coffee"})

	products, err := repo.ListByOwner(ctx, "owner@example.com")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "prod-00001", products[0].ProductID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
