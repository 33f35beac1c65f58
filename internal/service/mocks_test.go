package service

import (
	"context"

	"inventify-hub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Insert(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) SetRole(ctx context.Context, tx pgx.Tx, email string, role model.Role, shopName string) (bool, error) {
	args := m.Called(ctx, tx, email, role, shopName)
	return args.Bool(0), args.Error(1)
}

// MockShopRepository is a mock implementation of ShopRepository.
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShopRepository) GetByID(ctx context.Context, shopID string) (*model.Shop, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Shop), args.Error(1)
}

func (m *MockShopRepository) GetByOwner(ctx context.Context, ownerEmail string) (*model.Shop, error) {
	args := m.Called(ctx, ownerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Shop), args.Error(1)
}

func (m *MockShopRepository) GetByName(ctx context.Context, shopName string) (*model.Shop, error) {
	args := m.Called(ctx, shopName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Shop), args.Error(1)
}

func (m *MockShopRepository) GetByEmployee(ctx context.Context, email string) (*model.Shop, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Shop), args.Error(1)
}

func (m *MockShopRepository) List(ctx context.Context) ([]model.Shop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Shop), args.Error(1)
}

func (m *MockShopRepository) CountByIDPrefix(ctx context.Context, prefix string) (int, error) {
	args := m.Called(ctx, prefix)
	return args.Int(0), args.Error(1)
}

func (m *MockShopRepository) Insert(ctx context.Context, tx pgx.Tx, shop *model.Shop) error {
	args := m.Called(ctx, tx, shop)
	return args.Error(0)
}

func (m *MockShopRepository) Delete(ctx context.Context, tx pgx.Tx, shopID string) (bool, error) {
	args := m.Called(ctx, tx, shopID)
	return args.Bool(0), args.Error(1)
}

func (m *MockShopRepository) ListEmployees(ctx context.Context, shopID string) ([]string, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockShopRepository) AddEmployee(ctx context.Context, tx pgx.Tx, shopID, email string) error {
	args := m.Called(ctx, tx, shopID, email)
	return args.Error(0)
}

func (m *MockShopRepository) AdjustLineOfProduct(ctx context.Context, tx pgx.Tx, shopID string, delta int) (bool, error) {
	args := m.Called(ctx, tx, shopID, delta)
	return args.Bool(0), args.Error(1)
}

func (m *MockShopRepository) CreditQuota(ctx context.Context, tx pgx.Tx, shopID string, grantedLimit int, paymentID string) (bool, error) {
	args := m.Called(ctx, tx, shopID, grantedLimit, paymentID)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Insert(ctx context.Context, tx pgx.Tx, p *model.Product) (string, error) {
	args := m.Called(ctx, tx, p)
	return args.String(0), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, productID string) (*model.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, tx pgx.Tx, productID string) (bool, error) {
	args := m.Called(ctx, tx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, productID string, in *model.ProductInput) (bool, error) {
	args := m.Called(ctx, productID, in)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]model.Product, error) {
	args := m.Called(ctx, ownerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Categories(ctx context.Context, shopID string) ([]string, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, tx pgx.Tx, productID string, delta int) (bool, error) {
	args := m.Called(ctx, tx, productID, delta)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) AddSaleCount(ctx context.Context, tx pgx.Tx, productID, shopID string, qty int) (bool, error) {
	args := m.Called(ctx, tx, productID, shopID, qty)
	return args.Bool(0), args.Error(1)
}

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) Insert(ctx context.Context, tx pgx.Tx, line *model.CartLine) error {
	args := m.Called(ctx, tx, line)
	return args.Error(0)
}

func (m *MockCartRepository) ListByShop(ctx context.Context, shopID string) ([]model.CartLine, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartLine), args.Error(1)
}

func (m *MockCartRepository) SumSalesByProduct(ctx context.Context, tx pgx.Tx, shopID string) ([]model.ProductSale, error) {
	args := m.Called(ctx, tx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductSale), args.Error(1)
}

func (m *MockCartRepository) DeleteByShop(ctx context.Context, tx pgx.Tx, shopID string) (int64, error) {
	args := m.Called(ctx, tx, shopID)
	return args.Get(0).(int64), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository.
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) InsertLines(ctx context.Context, tx pgx.Tx, lines []model.InvoiceLine) (int64, error) {
	args := m.Called(ctx, tx, lines)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) ListNumbers(ctx context.Context, shopID string) ([]model.InvoiceRef, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InvoiceRef), args.Error(1)
}

func (m *MockInvoiceRepository) GetByNumber(ctx context.Context, invoiceNumber, shopID string) ([]model.InvoiceLine, error) {
	args := m.Called(ctx, invoiceNumber, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InvoiceLine), args.Error(1)
}

func (m *MockInvoiceRepository) ListByShop(ctx context.Context, shopID string) ([]model.InvoiceLine, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InvoiceLine), args.Error(1)
}

func (m *MockInvoiceRepository) Summaries(ctx context.Context, shopID string) ([]model.InvoiceSummary, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InvoiceSummary), args.Error(1)
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Insert(ctx context.Context, tx pgx.Tx, p *model.Payment) error {
	args := m.Called(ctx, tx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByShop(ctx context.Context, shopID string) ([]model.Payment, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

// MockJoinRequestRepository is a mock implementation of JoinRequestRepository.
type MockJoinRequestRepository struct {
	mock.Mock
}

func (m *MockJoinRequestRepository) Insert(ctx context.Context, r *model.JoinRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) ListByShop(ctx context.Context, shopID string) ([]model.JoinRequest, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) MarkApproved(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, id)
	return args.Bool(0), args.Error(1)
}

// MockIdentityService is a mock implementation of IdentityService.
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Register(ctx context.Context, user *model.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdentityService) GetRole(ctx context.Context, email string) (model.Role, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Role), args.Error(1)
}

func (m *MockIdentityService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockIdentityService) PromoteToManager(ctx context.Context, tx pgx.Tx, ownerEmail, shopName string) error {
	args := m.Called(ctx, tx, ownerEmail, shopName)
	return args.Error(0)
}

func (m *MockIdentityService) CreateJoinRequest(ctx context.Context, candidateEmail, shopID, joinPost string) (*model.JoinRequest, error) {
	args := m.Called(ctx, candidateEmail, shopID, joinPost)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JoinRequest), args.Error(1)
}

func (m *MockIdentityService) ListJoinRequests(ctx context.Context, shopID string) ([]model.JoinRequest, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JoinRequest), args.Error(1)
}

func (m *MockIdentityService) ApproveJoinRequest(ctx context.Context, requestID uuid.UUID) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }
