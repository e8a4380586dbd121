package domain

import (
	"time"
)

// DefaultLowStockAlert is applied when a product is added without an
// explicit low-stock threshold.
const DefaultLowStockAlert = 5

// Product represents an item in the catalog
type Product struct {
	ID            int       `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	Price         float64   `json:"price" db:"price"`
	Stock         int       `json:"stock" db:"stock"`
	LowStockAlert int       `json:"low_stock_alert" db:"low_stock_alert"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// LowStock reports whether the product is at or below its alert threshold.
// Display-only: nothing is reordered automatically.
func (p *Product) LowStock() bool {
	return p.Stock <= p.LowStockAlert
}

// ProductUpdate carries a partial update: nil fields keep their current value.
type ProductUpdate struct {
	Name          *string
	Description   *string
	Price         *float64
	Stock         *int
	LowStockAlert *int
}
