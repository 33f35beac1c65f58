package repository

import (
	"context"
	"fmt"

	"inventify-hub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// paymentRepository implements the PaymentRepository interface using PostgreSQL.
type paymentRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPaymentRepository creates a new PostgreSQL-backed payment repository.
func NewPaymentRepository(pool *pgxpool.Pool, logger zerolog.Logger) PaymentRepository {
	return &paymentRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "payment").Logger(),
	}
}

// Insert appends a payment record within the provided transaction.
func (r *paymentRepository) Insert(ctx context.Context, tx pgx.Tx, p *model.Payment) error {
	query := `
		INSERT INTO payments (id, shop_id, email, paid_amount, granted_limit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.Exec(ctx, query, p.ID, p.ShopID, p.Email, p.PaidAmount, p.GrantedLimit, p.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", p.ShopID).Str("payment_id", p.ID.String()).Msg("failed to insert payment")
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	r.logger.Debug().Str("payment_id", p.ID.String()).Str("shop_id", p.ShopID).Msg("payment recorded")

	return nil
}

// ListByShop retrieves a shop's payment history.
func (r *paymentRepository) ListByShop(ctx context.Context, shopID string) ([]model.Payment, error) {
	query := `
		SELECT id, shop_id, email, paid_amount, granted_limit, created_at
		FROM payments
		WHERE shop_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, shopID)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to query payments")
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.ShopID, &p.Email, &p.PaidAmount, &p.GrantedLimit, &p.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan payment row")
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating payment rows")
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}

	return payments, nil
}
