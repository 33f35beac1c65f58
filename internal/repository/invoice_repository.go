package repository

import (
	"context"
	"fmt"

	"inventify-hub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const invoiceColumns = `id, invoice_number, invoice_date, shop_id, product_id, product_name, sale_quantity, selling_price, discount, buying_price, total_price, issued_by, created_at`

// invoiceRepository implements the InvoiceRepository interface using PostgreSQL.
type invoiceRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewInvoiceRepository creates a new PostgreSQL-backed invoice repository.
func NewInvoiceRepository(pool *pgxpool.Pool, logger zerolog.Logger) InvoiceRepository {
	return &invoiceRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "invoice").Logger(),
	}
}

// InsertLines appends invoice lines within the transaction, returning the
// inserted count.
func (r *invoiceRepository) InsertLines(ctx context.Context, tx pgx.Tx, lines []model.InvoiceLine) (int64, error) {
	if len(lines) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO sale_invoices (id, invoice_number, invoice_date, shop_id, product_id, product_name, sale_quantity, selling_price, discount, buying_price, total_price, issued_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query,
			l.ID,
			l.InvoiceNumber,
			l.InvoiceDate,
			l.ShopID,
			l.ProductID,
			l.ProductName,
			l.SaleQuantity,
			l.SellingPrice,
			l.Discount,
			l.BuyingPrice,
			l.TotalPrice,
			l.IssuedBy,
			l.CreatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for i := 0; i < len(lines); i++ {
		tag, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("invoice_number", lines[i].InvoiceNumber).
				Str("product_id", lines[i].ProductID).
				Msg("failed to insert invoice line")
			return inserted, fmt.Errorf("failed to insert invoice line: %w", err)
		}
		inserted += tag.RowsAffected()
	}

	r.logger.Debug().
		Str("invoice_number", lines[0].InvoiceNumber).
		Int64("count", inserted).
		Msg("invoice lines created successfully")

	return inserted, nil
}

// ListNumbers retrieves the distinct (invoiceNumber, shopId) pairs for a shop.
func (r *invoiceRepository) ListNumbers(ctx context.Context, shopID string) ([]model.InvoiceRef, error) {
	query := `
		SELECT invoice_number, shop_id
		FROM sale_invoices
		WHERE shop_id = $1
		GROUP BY invoice_number, shop_id
	`

	rows, err := r.pool.Query(ctx, query, shopID)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to query invoice numbers")
		return nil, fmt.Errorf("failed to query invoice numbers: %w", err)
	}
	defer rows.Close()

	var refs []model.InvoiceRef
	for rows.Next() {
		var ref model.InvoiceRef
		if err := rows.Scan(&ref.InvoiceNumber, &ref.ShopID); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan invoice ref row")
			return nil, fmt.Errorf("failed to scan invoice ref: %w", err)
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating invoice ref rows")
		return nil, fmt.Errorf("error iterating invoice refs: %w", err)
	}

	return refs, nil
}

func (r *invoiceRepository) queryLines(ctx context.Context, query string, args ...any) ([]model.InvoiceLine, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query invoice lines")
		return nil, fmt.Errorf("failed to query invoice lines: %w", err)
	}
	defer rows.Close()

	var lines []model.InvoiceLine
	for rows.Next() {
		var l model.InvoiceLine
		err := rows.Scan(
			&l.ID,
			&l.InvoiceNumber,
			&l.InvoiceDate,
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
			r.logger.Error().Err(err).Msg("failed to scan invoice line row")
			return nil, fmt.Errorf("failed to scan invoice line: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating invoice line rows")
		return nil, fmt.Errorf("error iterating invoice lines: %w", err)
	}

	return lines, nil
}

// GetByNumber retrieves all lines of an invoice. A non-empty shopID scopes
// the lookup to that shop.
func (r *invoiceRepository) GetByNumber(ctx context.Context, invoiceNumber, shopID string) ([]model.InvoiceLine, error) {
	if shopID == "" {
		query := `SELECT ` + invoiceColumns + ` FROM sale_invoices WHERE invoice_number = $1 ORDER BY created_at`
		return r.queryLines(ctx, query, invoiceNumber)
	}
	query := `SELECT ` + invoiceColumns + ` FROM sale_invoices WHERE invoice_number = $1 AND shop_id = $2 ORDER BY created_at`
	return r.queryLines(ctx, query, invoiceNumber, shopID)
}

// ListByShop retrieves every invoice line of a shop.
func (r *invoiceRepository) ListByShop(ctx context.Context, shopID string) ([]model.InvoiceLine, error) {
	query := `SELECT ` + invoiceColumns + ` FROM sale_invoices WHERE shop_id = $1 ORDER BY created_at`
	return r.queryLines(ctx, query, shopID)
}

// Summaries aggregates a shop's invoice lines per invoice number, ordered
// ascending by invoice number. Profit is the total price minus the total
// buying price.
func (r *invoiceRepository) Summaries(ctx context.Context, shopID string) ([]model.InvoiceSummary, error) {
	query := `
		SELECT invoice_number,
		       SUM(buying_price * sale_quantity)::float8,
		       SUM(discount)::float8,
		       SUM(sale_quantity)::int,
		       SUM(total_price)::float8
		FROM sale_invoices
		WHERE shop_id = $1
		GROUP BY invoice_number
		ORDER BY invoice_number ASC
	`

	rows, err := r.pool.Query(ctx, query, shopID)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to query invoice summaries")
		return nil, fmt.Errorf("failed to query invoice summaries: %w", err)
	}
	defer rows.Close()

	var summaries []model.InvoiceSummary
	for rows.Next() {
		var s model.InvoiceSummary
		err := rows.Scan(&s.InvoiceNumber, &s.TotalBuyingPrice, &s.TotalDiscount, &s.TotalQuantity, &s.TotalPrice)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan invoice summary row")
			return nil, fmt.Errorf("failed to scan invoice summary: %w", err)
		}
		s.Profit = s.TotalPrice - s.TotalBuyingPrice
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating invoice summary rows")
		return nil, fmt.Errorf("error iterating invoice summaries: %w", err)
	}

	return summaries, nil
}
