package service

import (
	"context"

	"inventify-hub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// IdentityService defines operations for user records and role assignment.
type IdentityService interface {
	// Register inserts a user iff no record with that email exists.
	// Reports false without overwriting when the user already exists.
	Register(ctx context.Context, user *model.User) (bool, error)

	// GetRole returns the stored role, or RoleNone for unknown users.
	GetRole(ctx context.Context, email string) (model.Role, error)

	// ListUsers retrieves all users.
	ListUsers(ctx context.Context) ([]model.User, error)

	// PromoteToManager sets the role to storeManager and denormalizes the
	// shop name, within the caller's transaction. Fails with Conflict if
	// the user already holds a shop-bearing role.
	PromoteToManager(ctx context.Context, tx pgx.Tx, ownerEmail, shopName string) error

	// CreateJoinRequest files a pending application to join a shop.
	CreateJoinRequest(ctx context.Context, candidateEmail, shopID, joinPost string) (*model.JoinRequest, error)

	// ListJoinRequests retrieves the join requests targeting a shop.
	ListJoinRequests(ctx context.Context, shopID string) ([]model.JoinRequest, error)

	// ApproveJoinRequest sets the candidate's role and shop name, adds the
	// candidate to the shop roster and marks the request Approved, in one
	// transaction.
	ApproveJoinRequest(ctx context.Context, requestID uuid.UUID) error
}

// ShopService defines operations for shop records and quota management.
type ShopService interface {
	// CreateShop registers a shop and promotes its owner to manager.
	CreateShop(ctx context.Context, ownerEmail, shopName string) (*model.Shop, error)

	// GetShop retrieves a shop by id.
	GetShop(ctx context.Context, shopID string) (*model.Shop, error)

	// GetShopByEmployee retrieves the shop employing the given email.
	GetShopByEmployee(ctx context.Context, email string) (*model.Shop, error)

	// ListShops retrieves all shops.
	ListShops(ctx context.Context) ([]model.Shop, error)

	// ApplyPayment records a confirmed payment and credits the shop's
	// product quota by the plan-derived granted limit.
	ApplyPayment(ctx context.Context, shopID, email string, paidAmount float64) (*model.Payment, error)

	// RemoveShop demotes every employee back to a plain user and deletes
	// the shop; all-or-nothing.
	RemoveShop(ctx context.Context, shopID string) error
}

// CatalogService defines operations for a shop's product lines.
type CatalogService interface {
	// AddProduct admits a product against the owning shop's quota.
	AddProduct(ctx context.Context, ownerEmail string, in *model.ProductInput) (*model.Product, error)

	// DeleteProduct removes a product and releases one unit of shop quota.
	DeleteProduct(ctx context.Context, ownerEmail, productID string) error

	// UpdateProduct overwrites a product's mutable fields.
	UpdateProduct(ctx context.Context, productID string, in *model.ProductInput) error

	// GetProduct retrieves a single product.
	GetProduct(ctx context.Context, productID string) (*model.Product, error)

	// ListProducts retrieves the products owned by the given shop owner.
	ListProducts(ctx context.Context, ownerEmail string) ([]model.Product, error)

	// ListAllProducts retrieves every product across all shops.
	ListAllProducts(ctx context.Context) ([]model.Product, error)

	// ListCategories retrieves the distinct categories of a shop's products.
	ListCategories(ctx context.Context, shopID string) ([]string, error)
}

// BillingService defines cart and invoicing operations.
type BillingService interface {
	// AddToCart stamps a cart line with the employee's shop and decrements
	// live stock by the requested quantity.
	AddToCart(ctx context.Context, employeeEmail, productID string, quantity int) (*model.CartLine, error)

	// ListCart retrieves the pending cart lines of the employee's shop.
	ListCart(ctx context.Context, employeeEmail string) ([]model.CartLine, error)

	// GenerateInvoice consolidates a shop's cart into dated invoice lines,
	// crediting per-product sale counters. Returns the number of invoice
	// lines written.
	GenerateInvoice(ctx context.Context, shopID, invoiceNumber, invoiceDate string) (int64, error)

	// ListInvoiceNumbers retrieves the distinct invoice refs of a shop.
	ListInvoiceNumbers(ctx context.Context, shopID string) ([]model.InvoiceRef, error)

	// GetInvoice retrieves the lines of one invoice. A non-empty shopID
	// scopes the lookup to that shop.
	GetInvoice(ctx context.Context, invoiceNumber, shopID string) ([]model.InvoiceLine, error)

	// ListSaleItems retrieves every invoice line of a shop.
	ListSaleItems(ctx context.Context, shopID string) ([]model.InvoiceLine, error)

	// ChartData aggregates a shop's invoices for charting, ascending by
	// invoice number.
	ChartData(ctx context.Context, shopID string) ([]model.InvoiceSummary, error)
}

// QuotaPolicy decides whether a shop may admit another product line. The
// comparison operator differed between source revisions, so it is an
// explicit configuration choice rather than a hard-coded one.
type QuotaPolicy struct {
	// AllowAtLimit admits a product when lineOfProduct equals productLimit.
	// The default (false) requires lineOfProduct to be strictly below the
	// limit, leaving room for the product about to be added.
	AllowAtLimit bool
}

// HasCapacity reports whether the shop can take one more product line.
func (p QuotaPolicy) HasCapacity(shop *model.Shop) bool {
	if p.AllowAtLimit {
		return shop.LineOfProduct <= shop.ProductLimit
	}
	return shop.LineOfProduct < shop.ProductLimit
}
