package model

import "time"

// Shop represents a registered shop. ProductLimit is the quota on distinct
// product lines, raised by payments; LineOfProduct counts live products.
type Shop struct {
	ShopID        string    `json:"shopId" db:"shop_id"`
	ShopName      string    `json:"shopName" db:"shop_name"`
	OwnerEmail    string    `json:"shopOwnerEmail" db:"shop_owner_email"`
	Employees     []string  `json:"shopEmployees"`
	ProductLimit  int       `json:"productLimit" db:"product_limit"`
	LineOfProduct int       `json:"lineOfProduct" db:"line_of_product"`
	PurchaseCount int       `json:"purchaseCount" db:"purchase_count"`
	PaymentIDs    []string  `json:"paymentIds" db:"payment_ids"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
