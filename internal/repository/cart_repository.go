package repository

import (
	"context"
	"fmt"

	"inventify-hub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *cartRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Insert creates a cart line within the provided transaction.
func (r *cartRepository) Insert(ctx context.Context, tx pgx.Tx, line *model.CartLine) error {
	query := `
		INSERT INTO carts (id, shop_id, product_id, product_name, sale_quantity, selling_price, discount, buying_price, total_price, issued_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := tx.Exec(ctx, query,
		line.ID,
		line.ShopID,
		line.ProductID,
		line.ProductName,
		line.SaleQuantity,
		line.SellingPrice,
		line.Discount,
		line.BuyingPrice,
		line.TotalPrice,
		line.IssuedBy,
		line.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", line.ShopID).Str("product_id", line.ProductID).Msg("failed to insert cart line")
		return fmt.Errorf("failed to insert cart line: %w", err)
	}

	r.logger.Debug().Str("shop_id", line.ShopID).Str("product_id", line.ProductID).Msg("cart line created")

	return nil
}

// ListByShop retrieves all cart lines for a shop.
func (r *cartRepository) ListByShop(ctx context.Context, shopID string) ([]model.CartLine, error) {
	query := `
		SELECT id, shop_id, product_id, product_name, sale_quantity, selling_price, discount, buying_price, total_price, issued_by, created_at
		FROM carts
		WHERE shop_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, shopID)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to query cart lines")
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var l model.CartLine
		err := rows.Scan(
			&l.ID,
			&l.ShopID,
			&l.ProductID,
			&l.ProductName,
			&l.SaleQuantity,
			&l.SellingPrice,
			&l.Discount,
			&l.BuyingPrice,
			&l.TotalPrice,
			&l.IssuedBy,
			&l.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart line row")
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart line rows")
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	return lines, nil
}

// SumSalesByProduct groups a shop's cart lines by product and sums their
// sale quantities.
func (r *cartRepository) SumSalesByProduct(ctx context.Context, tx pgx.Tx, shopID string) ([]model.ProductSale, error) {
	query := `
		SELECT product_id, shop_id, SUM(sale_quantity)::int
		FROM carts
		WHERE shop_id = $1
		GROUP BY product_id, shop_id
	`

	rows, err := tx.Query(ctx, query, shopID)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to aggregate cart sales")
		return nil, fmt.Errorf("failed to aggregate cart sales: %w", err)
	}
	defer rows.Close()

	var sales []model.ProductSale
	for rows.Next() {
		var s model.ProductSale
		if err := rows.Scan(&s.ProductID, &s.ShopID, &s.TotalSaleQuantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart sale row")
			return nil, fmt.Errorf("failed to scan cart sale: %w", err)
		}
		sales = append(sales, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart sale rows")
		return nil, fmt.Errorf("error iterating cart sales: %w", err)
	}

	return sales, nil
}

// DeleteByShop clears a shop's cart wholesale.
func (r *cartRepository) DeleteByShop(ctx context.Context, tx pgx.Tx, shopID string) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM carts WHERE shop_id = $1`, shopID)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to clear cart")
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}

	r.logger.Debug().Str("shop_id", shopID).Int64("deleted", tag.RowsAffected()).Msg("cart cleared")

	return tag.RowsAffected(), nil
}
