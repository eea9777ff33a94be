package repository

import (
	"context"

	"atelier/internal/domain"
)

// Repository defines the data access surface for the shop's entities.
//
// Single-row lookups return (nil, nil) when no row matches; absence is not
// an error. Updates of a missing id succeed with a zero affected count and
// a nil re-fetch. Deletes return the affected-row count without checking
// existence first.
type Repository interface {
	// Customers
	ListCustomers(ctx context.Context, limit, offset int64) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, c *domain.Customer) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) (int64, error)
	SearchCustomers(ctx context.Context, query string) ([]domain.Customer, error)

	// Products
	ListProducts(ctx context.Context, limit, offset int64) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, p *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) (int64, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.ProductCategory, error)

	// Measurements. customerID 0 lists across all customers.
	ListMeasurements(ctx context.Context, customerID, limit, offset int64) ([]domain.Measurement, error)
	GetMeasurement(ctx context.Context, id int64) (*domain.Measurement, error)
	CreateMeasurement(ctx context.Context, m *domain.Measurement) (*domain.Measurement, error)
	UpdateMeasurement(ctx context.Context, id int64, m *domain.Measurement) (*domain.Measurement, error)
	DeleteMeasurement(ctx context.Context, id int64) (int64, error)

	// Orders
	ListOrders(ctx context.Context, limit, offset int64) ([]domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, o *domain.Order) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) (int64, error)
	AddOrderItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error)

	// Dashboard
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)

	// Export
	Snapshot(ctx context.Context) (*domain.Snapshot, error)

	// Close releases the underlying connection.
	Close() error
}
