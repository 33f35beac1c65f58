package service

import (
	"context"
	"fmt"
	"time"

	"inventify-hub/internal/model"
	"inventify-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// identityService implements IdentityService.
type identityService struct {
	userRepo repository.UserRepository
	shopRepo repository.ShopRepository
	joinRepo repository.JoinRequestRepository
	logger   zerolog.Logger
}

// NewIdentityService creates a new identity service.
func NewIdentityService(
	userRepo repository.UserRepository,
	shopRepo repository.ShopRepository,
	joinRepo repository.JoinRequestRepository,
	logger zerolog.Logger,
) IdentityService {
	return &identityService{
		userRepo: userRepo,
		shopRepo: shopRepo,
		joinRepo: joinRepo,
		logger:   logger.With().Str("service", "identity").Logger(),
	}
}

// Register inserts a user iff no record with that email exists. Idempotent
// by email: re-registering reports false and changes nothing.
func (s *identityService) Register(ctx context.Context, user *model.User) (bool, error) {
	if user == nil || user.Email == "" {
		return false, fmt.Errorf("user email is required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, user.Email)
	if err != nil {
		return false, fmt.Errorf("failed to register user: %w", err)
	}
	if existing != nil {
		s.logger.Debug().Str("email", user.Email).Msg("user already exists")
		return false, nil
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	if err := s.userRepo.Insert(ctx, user); err != nil {
		return false, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().Str("email", user.Email).Msg("user registered")

	return true, nil
}

// GetRole returns the stored role, or RoleNone for unknown users. Callers
// must treat RoleNone as a non-admin, non-manager default.
func (s *identityService) GetRole(ctx context.Context, email string) (model.Role, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return model.RoleNone, fmt.Errorf("failed to get role: %w", err)
	}
	if user == nil {
		return model.RoleNone, nil
	}
	return user.Role, nil
}

// ListUsers retrieves all users.
func (s *identityService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// PromoteToManager sets the role to storeManager within the caller's
// transaction. A user already holding a shop-bearing role is refused, so
// one person cannot own two shops through this path.
func (s *identityService) PromoteToManager(ctx context.Context, tx pgx.Tx, ownerEmail, shopName string) error {
	user, err := s.userRepo.GetByEmail(ctx, ownerEmail)
	if err != nil {
		return fmt.Errorf("failed to promote user: %w", err)
	}
	if user == nil {
		s.logger.Warn().Str("email", ownerEmail).Msg("promotion target not found")
		return model.ErrUserNotFound
	}
	if user.Role.ShopBearing() {
		s.logger.Warn().Str("email", ownerEmail).Str("role", string(user.Role)).Msg("user already holds a shop-bearing role")
		return model.ErrHasShopRole
	}

	modified, err := s.userRepo.SetRole(ctx, tx, ownerEmail, model.RoleManager, shopName)
	if err != nil {
		return fmt.Errorf("failed to promote user: %w", err)
	}
	if !modified {
		return model.ErrDependentWriteFailed
	}

	s.logger.Info().Str("email", ownerEmail).Str("shop_name", shopName).Msg("user promoted to manager")

	return nil
}

// CreateJoinRequest files a pending application to join a shop.
func (s *identityService) CreateJoinRequest(ctx context.Context, candidateEmail, shopID, joinPost string) (*model.JoinRequest, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to create join request: %w", err)
	}
	if shop == nil {
		return nil, model.ErrShopNotFound
	}

	req := &model.JoinRequest{
		ID:             uuid.New(),
		CandidateEmail: candidateEmail,
		ShopID:         shop.ShopID,
		ShopName:       shop.ShopName,
		JoinPost:       joinPost,
		Status:         model.JoinRequestPending,
		CreatedAt:      time.Now(),
	}

	if err := s.joinRepo.Insert(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create join request: %w", err)
	}

	s.logger.Info().
		Str("candidate", candidateEmail).
		Str("shop_id", shop.ShopID).
		Msg("join request created")

	return req, nil
}

// ListJoinRequests retrieves the join requests targeting a shop.
func (s *identityService) ListJoinRequests(ctx context.Context, shopID string) ([]model.JoinRequest, error) {
	requests, err := s.joinRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list join requests: %w", err)
	}
	return requests, nil
}

// ApproveJoinRequest grants the candidate the shopKeeper role, adds them
// to the shop roster and marks the request Approved. The three writes run
// in one transaction so approval cannot half-apply.
func (s *identityService) ApproveJoinRequest(ctx context.Context, requestID uuid.UUID) error {
	req, err := s.joinRepo.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to approve join request: %w", err)
	}
	if req == nil {
		return model.ErrRequestNotFound
	}

	tx, err := s.shopRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to approve join request: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	modified, err := s.userRepo.SetRole(ctx, tx, req.CandidateEmail, model.RoleShopKeeper, req.ShopName)
	if err != nil {
		return fmt.Errorf("failed to approve join request: %w", err)
	}
	if !modified {
		err = model.ErrUserNotFound
		return err
	}

	if err = s.shopRepo.AddEmployee(ctx, tx, req.ShopID, req.CandidateEmail); err != nil {
		return fmt.Errorf("failed to approve join request: %w", err)
	}

	approved, err := s.joinRepo.MarkApproved(ctx, tx, requestID)
	if err != nil {
		return fmt.Errorf("failed to approve join request: %w", err)
	}
	if !approved {
		err = model.ErrDependentWriteFailed
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to approve join request: %w", err)
	}

	s.logger.Info().
		Str("candidate", req.CandidateEmail).
		Str("shop_id", req.ShopID).
		Msg("join request approved")

	return nil
}
