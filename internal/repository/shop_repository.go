package repository

import (
	"context"
	"fmt"

	"inventify-hub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const shopColumns = `shop_id, shop_name, shop_owner_email, product_limit, line_of_product, purchase_count, payment_ids, created_at`

// shopRepository implements the ShopRepository interface using PostgreSQL.
type shopRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewShopRepository creates a new PostgreSQL-backed shop repository.
func NewShopRepository(pool *pgxpool.Pool, logger zerolog.Logger) ShopRepository {
	return &shopRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "shop").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *shopRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func (r *shopRepository) scanShop(row pgx.Row) (*model.Shop, error) {
	var s model.Shop
	err := row.Scan(
		&s.ShopID,
		&s.ShopName,
		&s.OwnerEmail,
		&s.ProductLimit,
		&s.LineOfProduct,
		&s.PurchaseCount,
		&s.PaymentIDs,
		&s.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetByID retrieves a shop by its id, including the employee roster.
func (r *shopRepository) GetByID(ctx context.Context, shopID string) (*model.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE shop_id = $1`

	shop, err := r.scanShop(r.pool.QueryRow(ctx, query, shopID))
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to query shop")
		return nil, fmt.Errorf("failed to query shop: %w", err)
	}
	if shop == nil {
		r.logger.Debug().Str("shop_id", shopID).Msg("shop not found")
		return nil, nil
	}

	employees, err := r.ListEmployees(ctx, shopID)
	if err != nil {
		return nil, err
	}
	shop.Employees = employees

	return shop, nil
}

// GetByOwner retrieves the shop owned by the given email, nil when absent.
func (r *shopRepository) GetByOwner(ctx context.Context, ownerEmail string) (*model.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE shop_owner_email = $1`

	shop, err := r.scanShop(r.pool.QueryRow(ctx, query, ownerEmail))
	if err != nil {
		r.logger.Error().Err(err).Str("owner", ownerEmail).Msg("failed to query shop by owner")
		return nil, fmt.Errorf("failed to query shop by owner: %w", err)
	}
	return shop, nil
}

// GetByName retrieves a shop by its display name, nil when absent.
func (r *shopRepository) GetByName(ctx context.Context, shopName string) (*model.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE shop_name = $1`

	shop, err := r.scanShop(r.pool.QueryRow(ctx, query, shopName))
	if err != nil {
		r.logger.Error().Err(err).Str("shop_name", shopName).Msg("failed to query shop by name")
		return nil, fmt.Errorf("failed to query shop by name: %w", err)
	}
	return shop, nil
}

// GetByEmployee retrieves the shop whose roster contains the given email.
func (r *shopRepository) GetByEmployee(ctx context.Context, email string) (*model.Shop, error) {
	query := `
		SELECT ` + shopColumns + `
		FROM shops
		WHERE shop_id IN (SELECT shop_id FROM shop_employees WHERE email = $1)
	`

	shop, err := r.scanShop(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		r.logger.Error().Err(err).Str("employee", email).Msg("failed to query shop by employee")
		return nil, fmt.Errorf("failed to query shop by employee: %w", err)
	}
	return shop, nil
}

// List retrieves all shops.
func (r *shopRepository) List(ctx context.Context) ([]model.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops ORDER BY shop_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query shops")
		return nil, fmt.Errorf("failed to query shops: %w", err)
	}
	defer rows.Close()

	var shops []model.Shop
	for rows.Next() {
		var s model.Shop
		err := rows.Scan(
			&s.ShopID,
			&s.ShopName,
			&s.OwnerEmail,
			&s.ProductLimit,
			&s.LineOfProduct,
			&s.PurchaseCount,
			&s.PaymentIDs,
			&s.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan shop row")
			return nil, fmt.Errorf("failed to scan shop: %w", err)
		}
		shops = append(shops, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating shop rows")
		return nil, fmt.Errorf("error iterating shops: %w", err)
	}

	return shops, nil
}

// CountByIDPrefix counts shops whose id starts with the given prefix.
func (r *shopRepository) CountByIDPrefix(ctx context.Context, prefix string) (int, error) {
	query := `SELECT COUNT(*) FROM shops WHERE shop_id LIKE $1 || '%'`

	var count int
	if err := r.pool.QueryRow(ctx, query, prefix).Scan(&count); err != nil {
		r.logger.Error().Err(err).Str("prefix", prefix).Msg("failed to count shops by prefix")
		return 0, fmt.Errorf("failed to count shops by prefix: %w", err)
	}
	return count, nil
}

// Insert creates a new shop within the provided transaction.
func (r *shopRepository) Insert(ctx context.Context, tx pgx.Tx, shop *model.Shop) error {
	query := `
		INSERT INTO shops (shop_id, shop_name, shop_owner_email, product_limit, line_of_product, purchase_count, payment_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query,
		shop.ShopID,
		shop.ShopName,
		shop.OwnerEmail,
		shop.ProductLimit,
		shop.LineOfProduct,
		shop.PurchaseCount,
		shop.PaymentIDs,
		shop.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shop.ShopID).Msg("failed to insert shop")
		return fmt.Errorf("failed to insert shop: %w", err)
	}

	r.logger.Debug().Str("shop_id", shop.ShopID).Msg("shop created successfully")

	return nil
}

// Delete removes a shop within the provided transaction. The roster rows
// go with it via ON DELETE CASCADE.
func (r *shopRepository) Delete(ctx context.Context, tx pgx.Tx, shopID string) (bool, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM shops WHERE shop_id = $1`, shopID)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to delete shop")
		return false, fmt.Errorf("failed to delete shop: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListEmployees retrieves the employee roster for a shop.
func (r *shopRepository) ListEmployees(ctx context.Context, shopID string) ([]string, error) {
	query := `SELECT email FROM shop_employees WHERE shop_id = $1 ORDER BY email`

	rows, err := r.pool.Query(ctx, query, shopID)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to query shop employees")
		return nil, fmt.Errorf("failed to query shop employees: %w", err)
	}
	defer rows.Close()

	var employees []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan employee row")
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, email)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating employee rows")
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// AddEmployee adds an email to a shop's roster within the transaction.
func (r *shopRepository) AddEmployee(ctx context.Context, tx pgx.Tx, shopID, email string) error {
	query := `
		INSERT INTO shop_employees (shop_id, email)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	_, err := tx.Exec(ctx, query, shopID, email)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Str("email", email).Msg("failed to add employee")
		return fmt.Errorf("failed to add employee: %w", err)
	}
	return nil
}

// AdjustLineOfProduct changes the live product counter by delta. The WHERE
// clause keeps the counter non-negative, so a decrement against zero
// reports false instead of violating the invariant.
func (r *shopRepository) AdjustLineOfProduct(ctx context.Context, tx pgx.Tx, shopID string, delta int) (bool, error) {
	query := `
		UPDATE shops
		SET line_of_product = line_of_product + $2
		WHERE shop_id = $1 AND line_of_product + $2 >= 0
	`

	tag, err := tx.Exec(ctx, query, shopID, delta)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Int("delta", delta).Msg("failed to adjust line of product")
		return false, fmt.Errorf("failed to adjust line of product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// CreditQuota raises productLimit, bumps purchaseCount and appends the
// payment id, within the provided transaction.
func (r *shopRepository) CreditQuota(ctx context.Context, tx pgx.Tx, shopID string, grantedLimit int, paymentID string) (bool, error) {
	query := `
		UPDATE shops
		SET product_limit = product_limit + $2,
		    purchase_count = purchase_count + 1,
		    payment_ids = array_append(payment_ids, $3)
		WHERE shop_id = $1
	`

	tag, err := tx.Exec(ctx, query, shopID, grantedLimit, paymentID)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Int("granted_limit", grantedLimit).Msg("failed to credit quota")
		return false, fmt.Errorf("failed to credit quota: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
