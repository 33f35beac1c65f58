package model

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceLine is a durable snapshot of one cart line, stamped with the
// invoice number and date of the billing event that consumed it.
type InvoiceLine struct {
	ID            uuid.UUID `json:"id" db:"id"`
	InvoiceNumber string    `json:"invoiceNumber" db:"invoice_number"`
	InvoiceDate   string    `json:"invoiceDate" db:"invoice_date"`
	ShopID        string    `json:"shopId" db:"shop_id"`
	ProductID     string    `json:"productId" db:"product_id"`
	ProductName   string    `json:"productName" db:"product_name"`
	SaleQuantity  int       `json:"saleQuantity" db:"sale_quantity"`
	SellingPrice  float64   `json:"sellingPrice" db:"selling_price"`
	Discount      float64   `json:"discount" db:"discount"`
	BuyingPrice   float64   `json:"buyingPrice" db:"buying_price"`
	TotalPrice    float64   `json:"totalPrice" db:"total_price"`
	IssuedBy      string    `json:"issueBy" db:"issued_by"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// InvoiceRef identifies one invoice of a shop.
type InvoiceRef struct {
	InvoiceNumber string `json:"invoiceNumber"`
	ShopID        string `json:"shopId"`
}

// InvoiceSummary aggregates one invoice's lines for charting. Profit is
// TotalPrice minus TotalBuyingPrice.
type InvoiceSummary struct {
	InvoiceNumber    string  `json:"invoiceNumber"`
	TotalBuyingPrice float64 `json:"totalBuyingPrice"`
	TotalDiscount    float64 `json:"totalDiscount"`
	TotalQuantity    int     `json:"totalSaleQuantity"`
	TotalPrice       float64 `json:"totalPrice"`
	Profit           float64 `json:"profit"`
}
