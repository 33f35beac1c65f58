package model

import "time"

// Product represents a product line listed by a shop. ProductID uses the
// external "prod-NNNNN" format and is assigned from a database sequence.
type Product struct {
	ProductID       string    `json:"productId" db:"product_id"`
	ShopID          string    `json:"shopId" db:"shop_id"`
	OwnerEmail      string    `json:"shopOwnerEmail" db:"shop_owner_email"`
	Name            string    `json:"name" db:"name"`
	Image           string    `json:"image,omitempty" db:"image"`
	Category        string    `json:"category" db:"category"`
	StockQuantity   int       `json:"stockQuantity" db:"stock_quantity"`
	SaleCount       int       `json:"saleCount" db:"sale_count"`
	ProductionCost  float64   `json:"productionCost" db:"production_cost"`
	ProfitMargin    float64   `json:"profitMargin" db:"profit_margin"`
	Discount        float64   `json:"discount" db:"discount"`
	SellingPrice    float64   `json:"sellingPrice" db:"selling_price"`
	ProductLocation string    `json:"productLocation,omitempty" db:"product_location"`
	Description     string    `json:"description,omitempty" db:"description"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// ProductInput carries the caller-supplied fields for creating or editing
// a product. Stock, pricing and descriptive fields only; identifiers and
// counters are managed by the catalog service.
type ProductInput struct {
	Name            string  `json:"name"`
	Image           string  `json:"image"`
	Category        string  `json:"category"`
	StockQuantity   int     `json:"stockQuantity"`
	ProductionCost  float64 `json:"productionCost"`
	ProfitMargin    float64 `json:"profitMargin"`
	Discount        float64 `json:"discount"`
	SellingPrice    float64 `json:"sellingPrice"`
	ProductLocation string  `json:"productLocation"`
	Description     string  `json:"description"`
}
