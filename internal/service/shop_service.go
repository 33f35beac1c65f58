package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inventify-hub/internal/model"
	"inventify-hub/internal/plan"
	"inventify-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// shopService implements ShopService.
type shopService struct {
	shopRepo    repository.ShopRepository
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	identity    IdentityService
	catalog     *plan.Catalog
	// sequentialSerial derives the shop-id serial from the number of shops
	// sharing the normalized name. When false the serial is always "0001",
	// reproducing the legacy derivation (which collides on same-named shops).
	sequentialSerial bool
	logger           zerolog.Logger
}

// NewShopService creates a new shop service.
func NewShopService(
	shopRepo repository.ShopRepository,
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	identity IdentityService,
	catalog *plan.Catalog,
	sequentialSerial bool,
	logger zerolog.Logger,
) ShopService {
	return &shopService{
		shopRepo:         shopRepo,
		userRepo:         userRepo,
		paymentRepo:      paymentRepo,
		identity:         identity,
		catalog:          catalog,
		sequentialSerial: sequentialSerial,
		logger:           logger.With().Str("service", "shop").Logger(),
	}
}

// normalizeShopName lower-cases the name and strips all whitespace.
func normalizeShopName(shopName string) string {
	return strings.ToLower(strings.Join(strings.Fields(shopName), ""))
}

// CreateShop registers a shop and promotes its owner to manager. Owner and
// name collisions are Conflicts; a failed promotion aborts the creation,
// and because both writes share one transaction the promotion rolls back
// with it.
func (s *shopService) CreateShop(ctx context.Context, ownerEmail, shopName string) (*model.Shop, error) {
	if ownerEmail == "" || shopName == "" {
		return nil, fmt.Errorf("owner email and shop name are required")
	}

	existingOwner, err := s.shopRepo.GetByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}
	existingShop, err := s.shopRepo.GetByName(ctx, shopName)
	if err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}
	if existingOwner != nil || existingShop != nil {
		s.logger.Warn().Str("owner", ownerEmail).Str("shop_name", shopName).Msg("shop already exists")
		return nil, model.ErrShopExists
	}

	normalized := normalizeShopName(shopName)
	serial := 1
	if s.sequentialSerial {
		count, err := s.shopRepo.CountByIDPrefix(ctx, normalized)
		if err != nil {
			return nil, fmt.Errorf("failed to create shop: %w", err)
		}
		serial = count + 1
	}
	shopID := fmt.Sprintf("%s%04d", normalized, serial)

	shop := &model.Shop{
		ShopID:     shopID,
		ShopName:   shopName,
		OwnerEmail: ownerEmail,
		Employees:  []string{ownerEmail},
		PaymentIDs: []string{},
		CreatedAt:  time.Now(),
	}

	tx, err := s.shopRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.identity.PromoteToManager(ctx, tx, ownerEmail, shopName); err != nil {
		return nil, err
	}

	if err = s.shopRepo.Insert(ctx, tx, shop); err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}

	// The owner rings sales too, so they join their own roster.
	if err = s.shopRepo.AddEmployee(ctx, tx, shop.ShopID, ownerEmail); err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}

	s.logger.Info().
		Str("shop_id", shop.ShopID).
		Str("owner", ownerEmail).
		Msg("shop created successfully")

	return shop, nil
}

// GetShop retrieves a shop by id.
func (s *shopService) GetShop(ctx context.Context, shopID string) (*model.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	if shop == nil {
		return nil, model.ErrShopNotFound
	}
	return shop, nil
}

// GetShopByEmployee retrieves the shop employing the given email.
func (s *shopService) GetShopByEmployee(ctx context.Context, email string) (*model.Shop, error) {
	shop, err := s.shopRepo.GetByEmployee(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop by employee: %w", err)
	}
	if shop == nil {
		return nil, model.ErrShopNotFound
	}
	return shop, nil
}

// ListShops retrieves all shops.
func (s *shopService) ListShops(ctx context.Context) ([]model.Shop, error) {
	shops, err := s.shopRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	return shops, nil
}

// ApplyPayment records a confirmed payment and credits the shop's quota.
// The payment row is written before the quota credit, so a failure between
// the two leaves an orphan payment rather than an unrecorded credit; both
// sit in one transaction, so neither survives alone.
func (s *shopService) ApplyPayment(ctx context.Context, shopID, email string, paidAmount float64) (*model.Payment, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}
	if shop == nil {
		return nil, model.ErrShopNotFound
	}

	grantedLimit := s.catalog.LimitFor(paidAmount)

	payment := &model.Payment{
		ID:           uuid.New(),
		ShopID:       shopID,
		Email:        email,
		PaidAmount:   paidAmount,
		GrantedLimit: grantedLimit,
		CreatedAt:    time.Now(),
	}

	tx, err := s.shopRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.paymentRepo.Insert(ctx, tx, payment); err != nil {
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}

	credited, err := s.shopRepo.CreditQuota(ctx, tx, shopID, grantedLimit, payment.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}
	if !credited {
		err = model.ErrDependentWriteFailed
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}

	s.logger.Info().
		Str("shop_id", shopID).
		Str("payment_id", payment.ID.String()).
		Float64("paid_amount", paidAmount).
		Int("granted_limit", grantedLimit).
		Msg("payment applied")

	return payment, nil
}

// RemoveShop demotes every rostered employee back to a plain user and
// deletes the shop. If any demotion does not take effect the whole removal
// aborts, so employee linkage is never severed while the shop survives.
func (s *shopService) RemoveShop(ctx context.Context, shopID string) error {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return fmt.Errorf("failed to remove shop: %w", err)
	}
	if shop == nil {
		return model.ErrShopNotFound
	}

	tx, err := s.shopRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove shop: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	for _, email := range shop.Employees {
		var modified bool
		modified, err = s.userRepo.SetRole(ctx, tx, email, model.RoleUser, "")
		if err != nil {
			return fmt.Errorf("failed to remove shop: %w", err)
		}
		if !modified {
			s.logger.Warn().Str("shop_id", shopID).Str("email", email).Msg("employee demotion did not take effect, aborting removal")
			err = model.ErrDependentWriteFailed
			return err
		}
	}

	deleted, err := s.shopRepo.Delete(ctx, tx, shopID)
	if err != nil {
		return fmt.Errorf("failed to remove shop: %w", err)
	}
	if !deleted {
		err = model.ErrDependentWriteFailed
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to remove shop: %w", err)
	}

	s.logger.Info().Str("shop_id", shopID).Int("employees", len(shop.Employees)).Msg("shop removed")

	return nil
}
