package service

import (
	"context"
	"fmt"
	"time"

	"inventify-hub/internal/model"
	"inventify-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// billingService implements BillingService.
type billingService struct {
	cartRepo    repository.CartRepository
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
	shopRepo    repository.ShopRepository
	logger      zerolog.Logger
}

// NewBillingService creates a new cart and invoicing service.
func NewBillingService(
	cartRepo repository.CartRepository,
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	shopRepo repository.ShopRepository,
	logger zerolog.Logger,
) BillingService {
	return &billingService{
		cartRepo:    cartRepo,
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		shopRepo:    shopRepo,
		logger:      logger.With().Str("service", "billing").Logger(),
	}
}

// AddToCart resolves the employee's shop via roster membership, decrements
// the product's live stock by the requested quantity and records the cart
// line. The decrement is conditional on sufficient stock, and the line is
// only written if the decrement reports a modified row.
func (s *billingService) AddToCart(ctx context.Context, employeeEmail, productID string, quantity int) (*model.CartLine, error) {
	if quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	shop, err := s.shopRepo.GetByEmployee(ctx, employeeEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	if shop == nil {
		s.logger.Warn().Str("employee", employeeEmail).Msg("employee is not on any shop roster")
		return nil, model.ErrForbidden
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	if product.ShopID != shop.ShopID {
		s.logger.Warn().Str("product_id", productID).Str("shop_id", shop.ShopID).Msg("product belongs to another shop")
		return nil, model.ErrForbidden
	}

	if product.StockQuantity < quantity {
		s.logger.Warn().
			Str("product_id", productID).
			Int("stock", product.StockQuantity).
			Int("requested", quantity).
			Msg("stock exhausted")
		return nil, model.ErrStockExhausted
	}

	lineTotal := product.SellingPrice * float64(quantity)
	lineTotal -= lineTotal * product.Discount / 100

	line := &model.CartLine{
		ID:           uuid.New(),
		ShopID:       shop.ShopID,
		ProductID:    productID,
		ProductName:  product.Name,
		SaleQuantity: quantity,
		SellingPrice: product.SellingPrice,
		Discount:     product.Discount,
		BuyingPrice:  product.ProductionCost,
		TotalPrice:   lineTotal,
		IssuedBy:     employeeEmail,
		CreatedAt:    time.Now(),
	}

	tx, err := s.cartRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	// The conditional update re-checks stock, so a concurrent sale that
	// drained it between the read and here fails cleanly.
	decremented, err := s.productRepo.AdjustStock(ctx, tx, productID, -quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	if !decremented {
		err = model.ErrStockExhausted
		return nil, err
	}

	if err = s.cartRepo.Insert(ctx, tx, line); err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Info().
		Str("shop_id", shop.ShopID).
		Str("product_id", productID).
		Int("quantity", quantity).
		Msg("cart line added")

	return line, nil
}

// ListCart retrieves the pending cart lines of the employee's shop.
func (s *billingService) ListCart(ctx context.Context, employeeEmail string) ([]model.CartLine, error) {
	shop, err := s.shopRepo.GetByEmployee(ctx, employeeEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	if shop == nil {
		return nil, model.ErrForbidden
	}

	lines, err := s.cartRepo.ListByShop(ctx, shop.ShopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	return lines, nil
}

// GenerateInvoice consolidates a shop's cart into dated invoice lines.
//
// The pipeline: sum sale quantities per product, credit each product's
// cumulative sale counter, clear the cart wholesale, then re-insert the
// captured lines stamped with the invoice number and date. All steps share
// one transaction, so the cart cannot be lost without the invoice landing.
func (s *billingService) GenerateInvoice(ctx context.Context, shopID, invoiceNumber, invoiceDate string) (int64, error) {
	if shopID == "" || invoiceNumber == "" {
		return 0, fmt.Errorf("shop id and invoice number are required")
	}

	cartLines, err := s.cartRepo.ListByShop(ctx, shopID)
	if err != nil {
		return 0, fmt.Errorf("failed to generate invoice: %w", err)
	}
	if len(cartLines) == 0 {
		s.logger.Warn().Str("shop_id", shopID).Msg("no cart lines to bill")
		return 0, model.ErrEmptyBill
	}

	tx, err := s.cartRepo.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to generate invoice: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	sales, err := s.cartRepo.SumSalesByProduct(ctx, tx, shopID)
	if err != nil {
		return 0, fmt.Errorf("failed to generate invoice: %w", err)
	}

	for _, sale := range sales {
		credited, cErr := s.productRepo.AddSaleCount(ctx, tx, sale.ProductID, sale.ShopID, sale.TotalSaleQuantity)
		if cErr != nil {
			err = fmt.Errorf("failed to generate invoice: %w", cErr)
			return 0, err
		}
		if !credited {
			// Product deleted since it was carted. The sale counter update
			// is independent per product; the rest still proceed.
			s.logger.Warn().
				Str("product_id", sale.ProductID).
				Str("shop_id", sale.ShopID).
				Msg("sale counter target missing, skipping")
		}
	}

	if _, err = s.cartRepo.DeleteByShop(ctx, tx, shopID); err != nil {
		return 0, fmt.Errorf("failed to generate invoice: %w", err)
	}

	now := time.Now()
	invoiceLines := make([]model.InvoiceLine, len(cartLines))
	for i, cl := range cartLines {
		invoiceLines[i] = model.InvoiceLine{
			ID:            uuid.New(),
			InvoiceNumber: invoiceNumber,
			InvoiceDate:   invoiceDate,
			ShopID:        cl.ShopID,
			ProductID:     cl.ProductID,
			ProductName:   cl.ProductName,
			SaleQuantity:  cl.SaleQuantity,
			SellingPrice:  cl.SellingPrice,
			Discount:      cl.Discount,
			BuyingPrice:   cl.BuyingPrice,
			TotalPrice:    cl.TotalPrice,
			IssuedBy:      cl.IssuedBy,
			CreatedAt:     now,
		}
	}

	inserted, err := s.invoiceRepo.InsertLines(ctx, tx, invoiceLines)
	if err != nil {
		return 0, fmt.Errorf("failed to generate invoice: %w", err)
	}
	if inserted == 0 {
		err = model.ErrDependentWriteFailed
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to generate invoice: %w", err)
	}

	s.logger.Info().
		Str("shop_id", shopID).
		Str("invoice_number", invoiceNumber).
		Int64("lines", inserted).
		Msg("invoice generated")

	return inserted, nil
}

// ListInvoiceNumbers retrieves the distinct invoice refs of a shop.
func (s *billingService) ListInvoiceNumbers(ctx context.Context, shopID string) ([]model.InvoiceRef, error) {
	refs, err := s.invoiceRepo.ListNumbers(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoice numbers: %w", err)
	}
	return refs, nil
}

// GetInvoice retrieves the lines of one invoice. A non-empty shopID scopes
// the lookup; an empty one reproduces the legacy unscoped behaviour.
func (s *billingService) GetInvoice(ctx context.Context, invoiceNumber, shopID string) ([]model.InvoiceLine, error) {
	lines, err := s.invoiceRepo.GetByNumber(ctx, invoiceNumber, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return lines, nil
}

// ListSaleItems retrieves every invoice line of a shop.
func (s *billingService) ListSaleItems(ctx context.Context, shopID string) ([]model.InvoiceLine, error) {
	lines, err := s.invoiceRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sale items: %w", err)
	}
	return lines, nil
}

// ChartData aggregates a shop's invoices for charting.
func (s *billingService) ChartData(ctx context.Context, shopID string) ([]model.InvoiceSummary, error) {
	summaries, err := s.invoiceRepo.Summaries(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to build chart data: %w", err)
	}
	return summaries, nil
}
