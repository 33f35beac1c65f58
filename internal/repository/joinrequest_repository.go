package repository

import (
	"context"
	"fmt"

	"inventify-hub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// joinRequestRepository implements JoinRequestRepository using PostgreSQL.
type joinRequestRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewJoinRequestRepository creates a new PostgreSQL-backed join request repository.
func NewJoinRequestRepository(pool *pgxpool.Pool, logger zerolog.Logger) JoinRequestRepository {
	return &joinRequestRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "join_request").Logger(),
	}
}

// Insert creates a new join request.
func (r *joinRequestRepository) Insert(ctx context.Context, req *model.JoinRequest) error {
	query := `
		INSERT INTO join_requests (id, candidate_email, shop_id, shop_name, join_post, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		req.ID,
		req.CandidateEmail,
		req.ShopID,
		req.ShopName,
		req.JoinPost,
		req.Status,
		req.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("candidate", req.CandidateEmail).Str("shop_id", req.ShopID).Msg("failed to insert join request")
		return fmt.Errorf("failed to insert join request: %w", err)
	}

	return nil
}

// GetByID retrieves a join request by id, nil when absent.
func (r *joinRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.JoinRequest, error) {
	query := `
		SELECT id, candidate_email, shop_id, shop_name, join_post, status, created_at
		FROM join_requests
		WHERE id = $1
	`

	var req model.JoinRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.CandidateEmail,
		&req.ShopID,
		&req.ShopName,
		&req.JoinPost,
		&req.Status,
		&req.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("request_id", id.String()).Msg("join request not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("request_id", id.String()).Msg("failed to query join request")
		return nil, fmt.Errorf("failed to query join request: %w", err)
	}

	return &req, nil
}

// ListByShop retrieves the join requests targeting a shop.
func (r *joinRequestRepository) ListByShop(ctx context.Context, shopID string) ([]model.JoinRequest, error) {
	query := `
		SELECT id, candidate_email, shop_id, shop_name, join_post, status, created_at
		FROM join_requests
		WHERE shop_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, shopID)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to query join requests")
		return nil, fmt.Errorf("failed to query join requests: %w", err)
	}
	defer rows.Close()

	var requests []model.JoinRequest
	for rows.Next() {
		var req model.JoinRequest
		err := rows.Scan(
			&req.ID,
			&req.CandidateEmail,
			&req.ShopID,
			&req.ShopName,
			&req.JoinPost,
			&req.Status,
			&req.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan join request row")
			return nil, fmt.Errorf("failed to scan join request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating join request rows")
		return nil, fmt.Errorf("error iterating join requests: %w", err)
	}

	return requests, nil
}

// MarkApproved flips a pending request to Approved within the transaction.
func (r *joinRequestRepository) MarkApproved(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	query := `
		UPDATE join_requests
		SET status = $2
		WHERE id = $1 AND status = $3
	`

	tag, err := tx.Exec(ctx, query, id, model.JoinRequestApproved, model.JoinRequestPending)
	if err != nil {
		r.logger.Error().Err(err).Str("request_id", id.String()).Msg("failed to approve join request")
		return false, fmt.Errorf("failed to approve join request: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
