package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment is an append-only record of a confirmed payment. Each payment
// raises the owning shop's product quota by GrantedLimit.
type Payment struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ShopID       string    `json:"shopId" db:"shop_id"`
	Email        string    `json:"email" db:"email"`
	PaidAmount   float64   `json:"paidAmount" db:"paid_amount"`
	GrantedLimit int       `json:"grantedLimit" db:"granted_limit"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
