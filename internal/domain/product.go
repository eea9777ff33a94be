package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. CategoryID is optional; a product without a
// category is permitted.
type Product struct {
	ID            int64           `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name" validate:"required"`
	Description   string          `json:"description,omitempty" yaml:"description,omitempty"`
	CategoryID    *int64          `json:"category_id,omitempty" yaml:"category_id,omitempty"`
	Price         decimal.Decimal `json:"price" yaml:"price" validate:"gte=0"`
	StockQuantity int64           `json:"stock_quantity" yaml:"stock_quantity" validate:"gte=0"`
	ImageURL      string          `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" yaml:"updated_at"`

	// Joined from product_categories.
	CategoryName string `json:"category_name,omitempty" yaml:"category_name,omitempty"`
}
