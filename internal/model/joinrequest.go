package model

import (
	"time"

	"github.com/google/uuid"
)

// Join request statuses.
const (
	JoinRequestPending  = "Pending"
	JoinRequestApproved = "Approved"
)

// JoinRequest is a prospective employee's application to join a shop.
// Approval fans out to the user record (role, shop name) and the shop's
// employee roster.
type JoinRequest struct {
	ID             uuid.UUID `json:"id" db:"id"`
	CandidateEmail string    `json:"candidateEmail" db:"candidate_email"`
	ShopID         string    `json:"selectedShopId" db:"shop_id"`
	ShopName       string    `json:"selectedShopName" db:"shop_name"`
	JoinPost       string    `json:"joinPost" db:"join_post"`
	Status         string    `json:"requests" db:"status"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
