package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus represents how much of an order has been paid.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Order is a customer order. OrderNumber is assigned at creation when the
// caller leaves it blank.
type Order struct {
	ID            int64           `json:"id" yaml:"id"`
	CustomerID    int64           `json:"customer_id" yaml:"customer_id" validate:"required,gt=0"`
	OrderNumber   string          `json:"order_number,omitempty" yaml:"order_number,omitempty"`
	Status        OrderStatus     `json:"status,omitempty" yaml:"status,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount" yaml:"total_amount" validate:"gte=0"`
	PaymentStatus PaymentStatus   `json:"payment_status,omitempty" yaml:"payment_status,omitempty"`
	Notes         string          `json:"notes,omitempty" yaml:"notes,omitempty"`
	DeliveryDate  *time.Time      `json:"delivery_date,omitempty" yaml:"delivery_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" yaml:"updated_at"`

	// Joined from customers.
	CustomerName  string `json:"customer_name,omitempty" yaml:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty" yaml:"customer_email,omitempty"`
}

// OrderItem is a line item tying a product to an order. Line items are
// deleted with their order.
type OrderItem struct {
	ID        int64           `json:"id" yaml:"id"`
	OrderID   int64           `json:"order_id" yaml:"order_id" validate:"required,gt=0"`
	ProductID int64           `json:"product_id" yaml:"product_id" validate:"required,gt=0"`
	Quantity  int64           `json:"quantity" yaml:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" yaml:"unit_price" validate:"gte=0"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`

	// Joined from products.
	ProductName string `json:"product_name,omitempty" yaml:"product_name,omitempty"`
}
