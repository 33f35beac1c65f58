package service

import (
	"context"
	"fmt"
	"time"

	"inventify-hub/internal/model"
	"inventify-hub/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	productRepo repository.ProductRepository
	shopRepo    repository.ShopRepository
	quota       QuotaPolicy
	logger      zerolog.Logger
}

// NewCatalogService creates a new product catalog service.
func NewCatalogService(
	productRepo repository.ProductRepository,
	shopRepo repository.ShopRepository,
	quota QuotaPolicy,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		shopRepo:    shopRepo,
		quota:       quota,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// AddProduct admits a product against the owning shop's quota. The quota
// counter increment and the product insert share one transaction; the
// insert only happens if the increment reports a modified row.
func (s *catalogService) AddProduct(ctx context.Context, ownerEmail string, in *model.ProductInput) (*model.Product, error) {
	if in == nil || in.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}

	shop, err := s.shopRepo.GetByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to add product: %w", err)
	}
	if shop == nil {
		s.logger.Warn().Str("owner", ownerEmail).Msg("no shop for owner")
		return nil, model.ErrForbidden
	}

	if !s.quota.HasCapacity(shop) {
		s.logger.Warn().
			Str("shop_id", shop.ShopID).
			Int("line_of_product", shop.LineOfProduct).
			Int("product_limit", shop.ProductLimit).
			Msg("product limit reached")
		return nil, model.ErrQuotaExceeded
	}

	product := &model.Product{
		ShopID:          shop.ShopID,
		OwnerEmail:      ownerEmail,
		Name:            in.Name,
		Image:           in.Image,
		Category:        in.Category,
		StockQuantity:   in.StockQuantity,
		ProductionCost:  in.ProductionCost,
		ProfitMargin:    in.ProfitMargin,
		Discount:        in.Discount,
		SellingPrice:    in.SellingPrice,
		ProductLocation: in.ProductLocation,
		Description:     in.Description,
		CreatedAt:       time.Now(),
	}

	tx, err := s.shopRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to add product: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	incremented, err := s.shopRepo.AdjustLineOfProduct(ctx, tx, shop.ShopID, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to add product: %w", err)
	}
	if !incremented {
		err = model.ErrDependentWriteFailed
		return nil, err
	}

	productID, err := s.productRepo.Insert(ctx, tx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to add product: %w", err)
	}
	product.ProductID = productID

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to add product: %w", err)
	}

	s.logger.Info().
		Str("product_id", productID).
		Str("shop_id", shop.ShopID).
		Msg("product added")

	return product, nil
}

// DeleteProduct removes a product and releases one unit of shop quota,
// mirroring the increment-then-insert shape of AddProduct in reverse.
func (s *catalogService) DeleteProduct(ctx context.Context, ownerEmail, productID string) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}
	if product.OwnerEmail != ownerEmail {
		s.logger.Warn().Str("product_id", productID).Str("owner", ownerEmail).Msg("product owned by another shop")
		return model.ErrForbidden
	}

	tx, err := s.shopRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	decremented, err := s.shopRepo.AdjustLineOfProduct(ctx, tx, product.ShopID, -1)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !decremented {
		err = model.ErrDependentWriteFailed
		return err
	}

	deleted, err := s.productRepo.Delete(ctx, tx, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		err = model.ErrDependentWriteFailed
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Str("product_id", productID).Str("shop_id", product.ShopID).Msg("product deleted")

	return nil
}

// UpdateProduct overwrites a product's mutable fields.
func (s *catalogService) UpdateProduct(ctx context.Context, productID string, in *model.ProductInput) error {
	if in == nil {
		return fmt.Errorf("product input is nil")
	}

	modified, err := s.productRepo.Update(ctx, productID, in)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if !modified {
		return model.ErrProductNotFound
	}

	s.logger.Debug().Str("product_id", productID).Msg("product updated")

	return nil
}

// GetProduct retrieves a single product.
func (s *catalogService) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// ListProducts retrieves the products owned by the given shop owner.
func (s *catalogService) ListProducts(ctx context.Context, ownerEmail string) ([]model.Product, error) {
	products, err := s.productRepo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListAllProducts retrieves every product across all shops.
func (s *catalogService) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list all products: %w", err)
	}
	return products, nil
}

// ListCategories retrieves the distinct categories of a shop's products.
// Order follows the underlying grouping and is not guaranteed stable.
func (s *catalogService) ListCategories(ctx context.Context, shopID string) ([]string, error) {
	categories, err := s.productRepo.Categories(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
