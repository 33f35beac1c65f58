package model

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is an unbilled, shop-scoped pending sale item. Lines are created
// on add-to-cart and destroyed wholesale when an invoice is generated.
type CartLine struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ShopID       string    `json:"shopId" db:"shop_id"`
	ProductID    string    `json:"productId" db:"product_id"`
	ProductName  string    `json:"productName" db:"product_name"`
	SaleQuantity int       `json:"saleQuantity" db:"sale_quantity"`
	SellingPrice float64   `json:"sellingPrice" db:"selling_price"`
	Discount     float64   `json:"discount" db:"discount"`
	BuyingPrice  float64   `json:"buyingPrice" db:"buying_price"`
	TotalPrice   float64   `json:"totalPrice" db:"total_price"`
	IssuedBy     string    `json:"issueBy" db:"issued_by"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// ProductSale is a per-product aggregate of cart-line quantities, produced
// when a shop's cart is consolidated into an invoice.
type ProductSale struct {
	ProductID         string `json:"productId"`
	ShopID            string `json:"shopId"`
	TotalSaleQuantity int    `json:"totalSaleQuantity"`
}
