package model

import "time"

// Role is a user's role within the system. Roles are stored on the user
// record and always re-fetched from storage for authorization decisions.
type Role string

const (
	RoleNone       Role = ""
	RoleUser       Role = "user"
	RoleManager    Role = "storeManager"
	RoleAdmin      Role = "admin"
	RoleShopKeeper Role = "shopKeeper"
)

// ShopBearing reports whether the role ties the user to a shop. A user
// holding a shop-bearing role cannot be promoted to own another shop.
func (r Role) ShopBearing() bool {
	return r == RoleManager || r == RoleShopKeeper
}

// User represents a registered account, keyed by email.
type User struct {
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Role      Role      `json:"role" db:"role"`
	ShopName  string    `json:"shopName,omitempty" db:"shop_name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
