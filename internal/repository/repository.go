package repository

import (
	"context"

	"inventify-hub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// GetByEmail retrieves a user by email. Returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Insert creates a new user record.
	Insert(ctx context.Context, user *model.User) error

	// List retrieves all users.
	List(ctx context.Context) ([]model.User, error)

	// SetRole updates a user's role and denormalized shop name within the
	// provided transaction. Reports whether a row was modified.
	SetRole(ctx context.Context, tx pgx.Tx, email string, role model.Role, shopName string) (bool, error)
}

// ShopRepository defines the interface for shop data access operations.
type ShopRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetByID retrieves a shop by its id, including the employee roster.
	GetByID(ctx context.Context, shopID string) (*model.Shop, error)

	// GetByOwner retrieves the shop owned by the given email, nil when absent.
	GetByOwner(ctx context.Context, ownerEmail string) (*model.Shop, error)

	// GetByName retrieves a shop by its display name, nil when absent.
	GetByName(ctx context.Context, shopName string) (*model.Shop, error)

	// GetByEmployee retrieves the shop whose roster contains the given email.
	GetByEmployee(ctx context.Context, email string) (*model.Shop, error)

	// List retrieves all shops.
	List(ctx context.Context) ([]model.Shop, error)

	// CountByIDPrefix counts shops whose id starts with the given prefix.
	// Used to derive the next serial for a normalized shop name.
	CountByIDPrefix(ctx context.Context, prefix string) (int, error)

	// Insert creates a new shop within the provided transaction.
	Insert(ctx context.Context, tx pgx.Tx, shop *model.Shop) error

	// Delete removes a shop within the provided transaction.
	Delete(ctx context.Context, tx pgx.Tx, shopID string) (bool, error)

	// ListEmployees retrieves the employee roster for a shop.
	ListEmployees(ctx context.Context, shopID string) ([]string, error)

	// AddEmployee adds an email to a shop's roster within the transaction.
	AddEmployee(ctx context.Context, tx pgx.Tx, shopID, email string) error

	// AdjustLineOfProduct changes the live product counter by delta.
	// The update is conditional: it reports false without modifying the row
	// when the shop is missing or the counter would go negative.
	AdjustLineOfProduct(ctx context.Context, tx pgx.Tx, shopID string, delta int) (bool, error)

	// CreditQuota raises productLimit by grantedLimit, bumps purchaseCount
	// and appends the payment id, within the provided transaction.
	CreditQuota(ctx context.Context, tx pgx.Tx, shopID string, grantedLimit int, paymentID string) (bool, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Insert creates a product within the transaction, assigning its id
	// from the product sequence. Returns the assigned id.
	Insert(ctx context.Context, tx pgx.Tx, p *model.Product) (string, error)

	// GetByID retrieves a product by its id, nil when absent.
	GetByID(ctx context.Context, productID string) (*model.Product, error)

	// Delete removes a product within the provided transaction.
	Delete(ctx context.Context, tx pgx.Tx, productID string) (bool, error)

	// Update overwrites a product's mutable fields.
	Update(ctx context.Context, productID string, in *model.ProductInput) (bool, error)

	// ListByOwner retrieves all products owned by the given shop owner.
	ListByOwner(ctx context.Context, ownerEmail string) ([]model.Product, error)

	// ListAll retrieves all products across all shops.
	ListAll(ctx context.Context) ([]model.Product, error)

	// Categories retrieves the distinct category values for a shop.
	Categories(ctx context.Context, shopID string) ([]string, error)

	// AdjustStock changes stockQuantity by delta within the transaction.
	// Conditional: reports false without modifying the row when the product
	// is missing or the stock would go negative.
	AdjustStock(ctx context.Context, tx pgx.Tx, productID string, delta int) (bool, error)

	// AddSaleCount credits qty units to a product's cumulative sale counter.
	AddSaleCount(ctx context.Context, tx pgx.Tx, productID, shopID string, qty int) (bool, error)
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Insert creates a cart line within the provided transaction.
	Insert(ctx context.Context, tx pgx.Tx, line *model.CartLine) error

	// ListByShop retrieves all cart lines for a shop.
	ListByShop(ctx context.Context, shopID string) ([]model.CartLine, error)

	// SumSalesByProduct groups a shop's cart lines by product and sums
	// their sale quantities, within the provided transaction.
	SumSalesByProduct(ctx context.Context, tx pgx.Tx, shopID string) ([]model.ProductSale, error)

	// DeleteByShop clears a shop's cart wholesale, returning the number of
	// lines removed.
	DeleteByShop(ctx context.Context, tx pgx.Tx, shopID string) (int64, error)
}

// InvoiceRepository defines the interface for invoice data access operations.
type InvoiceRepository interface {
	// InsertLines appends invoice lines within the transaction, returning
	// the inserted count.
	InsertLines(ctx context.Context, tx pgx.Tx, lines []model.InvoiceLine) (int64, error)

	// ListNumbers retrieves the distinct (invoiceNumber, shopId) pairs for a shop.
	ListNumbers(ctx context.Context, shopID string) ([]model.InvoiceRef, error)

	// GetByNumber retrieves all lines of an invoice. A non-empty shopID
	// scopes the lookup to that shop.
	GetByNumber(ctx context.Context, invoiceNumber, shopID string) ([]model.InvoiceLine, error)

	// ListByShop retrieves every invoice line of a shop.
	ListByShop(ctx context.Context, shopID string) ([]model.InvoiceLine, error)

	// Summaries aggregates a shop's invoice lines per invoice number,
	// ordered ascending by invoice number.
	Summaries(ctx context.Context, shopID string) ([]model.InvoiceSummary, error)
}

// PaymentRepository defines the interface for payment data access operations.
type PaymentRepository interface {
	// Insert appends a payment record within the provided transaction.
	Insert(ctx context.Context, tx pgx.Tx, p *model.Payment) error

	// ListByShop retrieves a shop's payment history.
	ListByShop(ctx context.Context, shopID string) ([]model.Payment, error)
}

// JoinRequestRepository defines the interface for join request data access.
type JoinRequestRepository interface {
	// Insert creates a new join request.
	Insert(ctx context.Context, r *model.JoinRequest) error

	// GetByID retrieves a join request by id, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.JoinRequest, error)

	// ListByShop retrieves the join requests targeting a shop.
	ListByShop(ctx context.Context, shopID string) ([]model.JoinRequest, error)

	// MarkApproved flips a pending request to Approved within the transaction.
	MarkApproved(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error)
}
