package repository

import (
	"context"
	"fmt"

	"inventify-hub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// GetByEmail retrieves a user by email. Returns nil when absent.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT email, name, role, shop_name, created_at
		FROM users
		WHERE email = $1
	`

	var u model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(&u.Email, &u.Name, &u.Role, &u.ShopName, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("email", email).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// Insert creates a new user record.
func (r *userRepository) Insert(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (email, name, role, shop_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, user.Email, user.Name, user.Role, user.ShopName, user.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("email", user.Email).Msg("failed to insert user")
		return fmt.Errorf("failed to insert user: %w", err)
	}

	r.logger.Debug().Str("email", user.Email).Msg("user created successfully")

	return nil
}

// List retrieves all users.
func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT email, name, role, shop_name, created_at
		FROM users
		ORDER BY email
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query users")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		err := rows.Scan(&u.Email, &u.Name, &u.Role, &u.ShopName, &u.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan user row")
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating user rows")
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// SetRole updates a user's role and denormalized shop name within the
// provided transaction.
func (r *userRepository) SetRole(ctx context.Context, tx pgx.Tx, email string, role model.Role, shopName string) (bool, error) {
	query := `
		UPDATE users
		SET role = $2, shop_name = $3
		WHERE email = $1
	`

	tag, err := tx.Exec(ctx, query, email, role, shopName)
	if err != nil {
		r.logger.Error().Err(err).Str("email", email).Str("role", string(role)).Msg("failed to set user role")
		return false, fmt.Errorf("failed to set user role: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
