package repository

import (
	"context"
	"fmt"

	"inventify-hub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `product_id, shop_id, shop_owner_email, name, image, category, stock_quantity, sale_count, production_cost, profit_margin, discount, selling_price, product_location, description, created_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// Insert creates a product within the transaction. The id is drawn from
// product_id_seq inside the INSERT, so concurrent inserts cannot race to
// the same "prod-NNNNN" value.
func (r *productRepository) Insert(ctx context.Context, tx pgx.Tx, p *model.Product) (string, error) {
	query := `
		INSERT INTO products (product_id, shop_id, shop_owner_email, name, image, category, stock_quantity, sale_count, production_cost, profit_margin, discount, selling_price, product_location, description, created_at)
		VALUES ('prod-' || lpad(nextval('product_id_seq')::text, 5, '0'), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING product_id
	`

	var productID string
	err := tx.QueryRow(ctx, query,
		p.ShopID,
		p.OwnerEmail,
		p.Name,
		p.Image,
		p.Category,
		p.StockQuantity,
		p.SaleCount,
		p.ProductionCost,
		p.ProfitMargin,
		p.Discount,
		p.SellingPrice,
		p.ProductLocation,
		p.Description,
		p.CreatedAt,
	).Scan(&productID)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", p.ShopID).Str("name", p.Name).Msg("failed to insert product")
		return "", fmt.Errorf("failed to insert product: %w", err)
	}

	r.logger.Debug().Str("product_id", productID).Str("shop_id", p.ShopID).Msg("product created successfully")

	return productID, nil
}

func (r *productRepository) scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ProductID,
		&p.ShopID,
		&p.OwnerEmail,
		&p.Name,
		&p.Image,
		&p.Category,
		&p.StockQuantity,
		&p.SaleCount,
		&p.ProductionCost,
		&p.ProfitMargin,
		&p.Discount,
		&p.SellingPrice,
		&p.ProductLocation,
		&p.Description,
		&p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetByID retrieves a product by its id, nil when absent.
func (r *productRepository) GetByID(ctx context.Context, productID string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`

	p, err := r.scanProduct(r.pool.QueryRow(ctx, query, productID))
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	if p == nil {
		r.logger.Debug().Str("product_id", productID).Msg("product not found")
	}
	return p, nil
}

// Delete removes a product within the provided transaction.
func (r *productRepository) Delete(ctx context.Context, tx pgx.Tx, productID string) (bool, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Update overwrites a product's mutable fields.
func (r *productRepository) Update(ctx context.Context, productID string, in *model.ProductInput) (bool, error) {
	query := `
		UPDATE products
		SET name = $2,
		    image = $3,
		    category = $4,
		    stock_quantity = $5,
		    production_cost = $6,
		    profit_margin = $7,
		    discount = $8,
		    selling_price = $9,
		    product_location = $10,
		    description = $11
		WHERE product_id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		productID,
		in.Name,
		in.Image,
		in.Category,
		in.StockQuantity,
		in.ProductionCost,
		in.ProfitMargin,
		in.Discount,
		in.SellingPrice,
		in.ProductLocation,
		in.Description,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to update product")
		return false, fmt.Errorf("failed to update product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(
			&p.ProductID,
			&p.ShopID,
			&p.OwnerEmail,
			&p.Name,
			&p.Image,
			&p.Category,
			&p.StockQuantity,
			&p.SaleCount,
			&p.ProductionCost,
			&p.ProfitMargin,
			&p.Discount,
			&p.SellingPrice,
			&p.ProductLocation,
			&p.Description,
			&p.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// ListByOwner retrieves all products owned by the given shop owner.
func (r *productRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE shop_owner_email = $1 ORDER BY product_id`
	return r.queryProducts(ctx, query, ownerEmail)
}

// ListAll retrieves all products across all shops.
func (r *productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY product_id`
	return r.queryProducts(ctx, query)
}

// Categories retrieves the distinct category values for a shop. Order is
// whatever the grouping produces, not guaranteed stable.
func (r *productRepository) Categories(ctx context.Context, shopID string) ([]string, error) {
	query := `SELECT category FROM products WHERE shop_id = $1 GROUP BY category`

	rows, err := r.pool.Query(ctx, query, shopID)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// AdjustStock changes stockQuantity by delta within the transaction. The
// WHERE clause refuses changes that would drive the stock negative.
func (r *productRepository) AdjustStock(ctx context.Context, tx pgx.Tx, productID string, delta int) (bool, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $2
		WHERE product_id = $1 AND stock_quantity + $2 >= 0
	`

	tag, err := tx.Exec(ctx, query, productID, delta)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Int("delta", delta).Msg("failed to adjust stock")
		return false, fmt.Errorf("failed to adjust stock: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// AddSaleCount credits qty units to a product's cumulative sale counter.
func (r *productRepository) AddSaleCount(ctx context.Context, tx pgx.Tx, productID, shopID string, qty int) (bool, error) {
	query := `
		UPDATE products
		SET sale_count = sale_count + $3
		WHERE product_id = $1 AND shop_id = $2
	`

	tag, err := tx.Exec(ctx, query, productID, shopID, qty)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Str("shop_id", shopID).Int("qty", qty).Msg("failed to add sale count")
		return false, fmt.Errorf("failed to add sale count: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
