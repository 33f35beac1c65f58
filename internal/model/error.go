package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeConflict             = "CONFLICT"
	ErrCodeQuotaExceeded        = "QUOTA_EXCEEDED"
	ErrCodeStockExhausted       = "STOCK_EXHAUSTED"
	ErrCodeEmptyBill            = "EMPTY_BILL"
	ErrCodeDependentWriteFailed = "DEPENDENT_WRITE_FAILED"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DomainError is a tagged business-rule failure. Every operation returns
// these immediately; nothing is retried internally.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrShopNotFound    = NewDomainError(ErrCodeNotFound, "Shop not found")
	ErrProductNotFound = NewDomainError(ErrCodeNotFound, "Product not found")
	ErrUserNotFound    = NewDomainError(ErrCodeNotFound, "User not found")
	ErrRequestNotFound = NewDomainError(ErrCodeNotFound, "Join request not found")
	ErrInvoiceNotFound = NewDomainError(ErrCodeNotFound, "Invoice not found")

	ErrForbidden   = NewDomainError(ErrCodeForbidden, "Forbidden Access")
	ErrShopExists  = NewDomainError(ErrCodeConflict, "Shop is already exist")
	ErrUserExists  = NewDomainError(ErrCodeConflict, "User is already exist")
	ErrHasShopRole = NewDomainError(ErrCodeConflict, "You are already have Shop")

	ErrQuotaExceeded  = NewDomainError(ErrCodeQuotaExceeded, "Your limit is over")
	ErrStockExhausted = NewDomainError(ErrCodeStockExhausted, "Product Stock nill")
	ErrEmptyBill      = NewDomainError(ErrCodeEmptyBill, "No items found for Generate Bill")

	ErrDependentWriteFailed = NewDomainError(ErrCodeDependentWriteFailed, "Dependent write did not commit")

	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidJSON, "Quantity must be greater than zero")
)
