package service

import (
	"context"
	"testing"

	"inventify-hub/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestQuotaPolicy_HasCapacity(t *testing.T) {
	tests := []struct {
		name          string
		allowAtLimit  bool
		lineOfProduct int
		productLimit  int
		want          bool
	}{
		{"below limit", false, 0, 1, true},
		{"at limit strict", false, 1, 1, false},
		{"at limit lenient", true, 1, 1, true},
		{"above limit lenient", true, 2, 1, false},
		{"zero limit strict", false, 0, 0, false},
		{"zero limit lenient", true, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := QuotaPolicy{AllowAtLimit: tt.allowAtLimit}
			shop := &model.Shop{LineOfProduct: tt.lineOfProduct, ProductLimit: tt.productLimit}
			assert.Equal(t, tt.want, policy.HasCapacity(shop))
		})
	}
}

func TestCatalogService_AddProduct_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	shop := &model.Shop{
		ShopID:        "teashop0001",
		OwnerEmail:    "owner@example.com",
		ProductLimit:  1,
		LineOfProduct: 0,
	}

	mockProductRepo := new(MockProductRepository)
	mockShopRepo := new(MockShopRepository)
	mockTx := new(MockTx)

	service := NewCatalogService(mockProductRepo, mockShopRepo, QuotaPolicy{}, logger)

	mockShopRepo.On("GetByOwner", ctx, "owner@example.com").Return(shop, nil)
	mockShopRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockShopRepo.On("AdjustLineOfProduct", ctx, mockTx, "teashop0001", 1).Return(true, nil)
	mockProductRepo.On("Insert", ctx, mockTx, mock.AnythingOfType("*model.Product")).Return("prod-00001", nil)
	mockTx.On("Commit", ctx).Return(nil)

	product, err := service.AddProduct(ctx, "owner@example.com", &model.ProductInput{Name: "Green Tea", StockQuantity: 10})

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "prod-00001", product.ProductID)
	assert.Equal(t, "teashop0001", product.ShopID)

	mockShopRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestCatalogService_AddProduct_QuotaExceeded(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	// A freshly committed shop on a one-product plan with one product listed.
	shop := &model.Shop{
		ShopID:        "teashop0001",
		OwnerEmail:    "owner@example.com",
		ProductLimit:  1,
		LineOfProduct: 1,
	}

	mockProductRepo := new(MockProductRepository)
	mockShopRepo := new(MockShopRepository)

	service := NewCatalogService(mockProductRepo, mockShopRepo, QuotaPolicy{}, logger)

	mockShopRepo.On("GetByOwner", ctx, "owner@example.com").Return(shop, nil)

	product, err := service.AddProduct(ctx, "owner@example.com", &model.ProductInput{Name: "Black Tea"})

	require.Error(t, err)
	assert.Equal(t, model.ErrQuotaExceeded, err)
	assert.Nil(t, product)

	mockShopRepo.AssertNotCalled(t, "BeginTx")
	mockProductRepo.AssertNotCalled(t, "Insert")
}

func TestCatalogService_AddProduct_AtLimitAllowed(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	shop := &model.Shop{
		ShopID:        "teashop0001",
		OwnerEmail:    "owner@example.com",
		ProductLimit:  1,
		LineOfProduct: 1,
	}

	mockProductRepo := new(MockProductRepository)
	mockShopRepo := new(MockShopRepository)
	mockTx := new(MockTx)

	service := NewCatalogService(mockProductRepo, mockShopRepo, QuotaPolicy{AllowAtLimit: true}, logger)

	mockShopRepo.On("GetByOwner", ctx, "owner@example.com").Return(shop, nil)
	mockShopRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockShopRepo.On("AdjustLineOfProduct", ctx, mockTx, "teashop0001", 1).Return(true, nil)
	mockProductRepo.On("Insert", ctx, mockTx, mock.AnythingOfType("*model.Product")).Return("prod-00002", nil)
	mockTx.On("Commit", ctx).Return(nil)

	product, err := service.AddProduct(ctx, "owner@example.com", &model.ProductInput{Name: "Black Tea"})

	require.NoError(t, err)
	assert.Equal(t, "prod-00002", product.ProductID)
	mockTx.AssertExpectations(t)
}

func TestCatalogService_AddProduct_NoShop(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockProductRepo := new(MockProductRepository)
	mockShopRepo := new(MockShopRepository)

	service := NewCatalogService(mockProductRepo, mockShopRepo, QuotaPolicy{}, logger)

	mockShopRepo.On("GetByOwner", ctx, "stranger@example.com").Return(nil, nil)

	product, err := service.AddProduct(ctx, "stranger@example.com", &model.ProductInput{Name: "Green Tea"})

	require.Error(t, err)
	assert.Equal(t, model.ErrForbidden, err)
	assert.Nil(t, product)
}

func TestCatalogService_AddProduct_IncrementNotApplied(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	shop := &model.Shop{
		ShopID:        "teashop0001",
		OwnerEmail:    "owner@example.com",
		ProductLimit:  5,
		LineOfProduct: 0,
	}

	mockProductRepo := new(MockProductRepository)
	mockShopRepo := new(MockShopRepository)
	mockTx := new(MockTx)

	service := NewCatalogService(mockProductRepo, mockShopRepo, QuotaPolicy{}, logger)

	mockShopRepo.On("GetByOwner", ctx, "owner@example.com").Return(shop, nil)
	mockShopRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockShopRepo.On("AdjustLineOfProduct", ctx, mockTx, "teashop0001", 1).Return(false, nil)
	mockTx.On("Rollback", ctx).Return(nil)

	product, err := service.AddProduct(ctx, "owner@example.com", &model.ProductInput{Name: "Green Tea"})

	require.Error(t, err)
	assert.Equal(t, model.ErrDependentWriteFailed, err)
	assert.Nil(t, product)
	assert.True(t, mockTx.rolledBack)

	mockProductRepo.AssertNotCalled(t, "Insert")
}

func TestCatalogService_DeleteProduct_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	product := &model.Product{
		ProductID:  "prod-00001",
		ShopID:     "teashop0001",
		OwnerEmail: "owner@example.com",
	}

	mockProductRepo := new(MockProductRepository)
	mockShopRepo := new(MockShopRepository)
	mockTx := new(MockTx)

	service := NewCatalogService(mockProductRepo, mockShopRepo, QuotaPolicy{}, logger)

	mockProductRepo.On("GetByID", ctx, "prod-00001").Return(product, nil)
	mockShopRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockShopRepo.On("AdjustLineOfProduct", ctx, mockTx, "teashop0001", -1).Return(true, nil)
	mockProductRepo.On("Delete", ctx, mockTx, "prod-00001").Return(true, nil)
	mockTx.On("Commit", ctx).Return(nil)

	err := service.DeleteProduct(ctx, "owner@example.com", "prod-00001")

	require.NoError(t, err)
	mockTx.AssertExpectations(t)
}

func TestCatalogService_DeleteProduct_WrongOwner(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	product := &model.Product{
		ProductID:  "prod-00001",
		ShopID:     "teashop0001",
		OwnerEmail: "owner@example.com",
	}

	mockProductRepo := new(MockProductRepository)
	mockShopRepo := new(MockShopRepository)

	service := NewCatalogService(mockProductRepo, mockShopRepo, QuotaPolicy{}, logger)

	mockProductRepo.On("GetByID", ctx, "prod-00001").Return(product, nil)

	err := service.DeleteProduct(ctx, "other@example.com", "prod-00001")

	require.Error(t, err)
	assert.Equal(t, model.ErrForbidden, err)
	mockShopRepo.AssertNotCalled(t, "BeginTx")
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockProductRepo := new(MockProductRepository)
	mockShopRepo := new(MockShopRepository)

	service := NewCatalogService(mockProductRepo, mockShopRepo, QuotaPolicy{}, logger)

	in := &model.ProductInput{Name: "Renamed"}
	mockProductRepo.On("Update", ctx, "prod-99999", in).Return(false, nil)

	err := service.UpdateProduct(ctx, "prod-99999", in)

	require.Error(t, err)
	assert.Equal(t, model.ErrProductNotFound, err)
}
