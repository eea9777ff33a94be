package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"atelier/internal/codec"
	"atelier/internal/domain"
	"atelier/internal/repository"
)

// ShopService provides business logic for the shop's entities. It
// validates write payloads, delegates to the repository, and publishes
// events for successful writes.
//
// Single-entity lookups pass the repository's nil-for-absent result
// through unchanged; deciding how to present absence belongs to the
// caller.
type ShopService struct {
	repo     repository.Repository
	eventBus *EventBus
	validate *validator.Validate
}

// NewShopService creates a new shop service
func NewShopService(repo repository.Repository, eventBus *EventBus) *ShopService {
	validate := validator.New()
	// Teach the validator to see decimal amounts as plain numbers so
	// numeric tags like gte apply to them.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return &ShopService{
		repo:     repo,
		eventBus: eventBus,
		validate: validate,
	}
}

// ============================================================================
// Customers
// ============================================================================

// ListCustomers returns a page of customers, newest first.
func (s *ShopService) ListCustomers(ctx context.Context, limit, offset int64) ([]domain.Customer, error) {
	return s.repo.ListCustomers(ctx, limit, offset)
}

// GetCustomer retrieves a single customer by ID, or nil when absent.
func (s *ShopService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

// CreateCustomer validates and creates a new customer.
func (s *ShopService) CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if err := s.validate.Struct(c); err != nil {
		return nil, fmt.Errorf("invalid customer: %w", err)
	}

	created, err := s.repo.CreateCustomer(ctx, c)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{
		Type:    EventCustomerCreated,
		Payload: map[string]int64{"customer_id": created.ID},
	})

	return created, nil
}

// UpdateCustomer validates and updates an existing customer.
func (s *ShopService) UpdateCustomer(ctx context.Context, id int64, c *domain.Customer) (*domain.Customer, error) {
	if err := s.validate.Struct(c); err != nil {
		return nil, fmt.Errorf("invalid customer: %w", err)
	}

	updated, err := s.repo.UpdateCustomer(ctx, id, c)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{
		Type:    EventCustomerUpdated,
		Payload: map[string]int64{"customer_id": id},
	})

	return updated, nil
}

// DeleteCustomer removes a customer and reports how many rows went away.
func (s *ShopService) DeleteCustomer(ctx context.Context, id int64) (int64, error) {
	affected, err := s.repo.DeleteCustomer(ctx, id)
	if err != nil {
		return 0, err
	}

	s.eventBus.Publish(Event{
		Type:    EventCustomerDeleted,
		Payload: map[string]int64{"customer_id": id},
	})

	return affected, nil
}

// SearchCustomers matches the query against name, email, and phone.
func (s *ShopService) SearchCustomers(ctx context.Context, query string) ([]domain.Customer, error) {
	return s.repo.SearchCustomers(ctx, query)
}

// ============================================================================
// Products
// ============================================================================

// ListProducts returns a page of products, newest first.
func (s *ShopService) ListProducts(ctx context.Context, limit, offset int64) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx, limit, offset)
}

// GetProduct retrieves a single product by ID, or nil when absent.
func (s *ShopService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// CreateProduct validates and creates a new product.
func (s *ShopService) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if err := s.validate.Struct(p); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}

	created, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{
		Type:    EventProductCreated,
		Payload: map[string]int64{"product_id": created.ID},
	})

	return created, nil
}

// UpdateProduct validates and updates an existing product.
func (s *ShopService) UpdateProduct(ctx context.Context, id int64, p *domain.Product) (*domain.Product, error) {
	if err := s.validate.Struct(p); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}

	updated, err := s.repo.UpdateProduct(ctx, id, p)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{
		Type:    EventProductUpdated,
		Payload: map[string]int64{"product_id": id},
	})

	return updated, nil
}

// DeleteProduct removes a product.
func (s *ShopService) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	affected, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return 0, err
	}

	s.eventBus.Publish(Event{
		Type:    EventProductDeleted,
		Payload: map[string]int64{"product_id": id},
	})

	return affected, nil
}

// SearchProducts matches the query against name and description.
func (s *ShopService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	return s.repo.SearchProducts(ctx, query)
}

// ListCategories returns the fixed category set.
func (s *ShopService) ListCategories(ctx context.Context) ([]domain.ProductCategory, error) {
	return s.repo.ListCategories(ctx)
}

// ============================================================================
// Measurements
// ============================================================================

// ListMeasurements returns a page of measurements, newest first. A
// customerID of 0 lists across all customers.
func (s *ShopService) ListMeasurements(ctx context.Context, customerID, limit, offset int64) ([]domain.Measurement, error) {
	return s.repo.ListMeasurements(ctx, customerID, limit, offset)
}

// GetMeasurement retrieves a single measurement by ID, or nil when absent.
func (s *ShopService) GetMeasurement(ctx context.Context, id int64) (*domain.Measurement, error) {
	return s.repo.GetMeasurement(ctx, id)
}

// CreateMeasurement validates and creates a new measurement set.
func (s *ShopService) CreateMeasurement(ctx context.Context, m *domain.Measurement) (*domain.Measurement, error) {
	if err := s.validate.Struct(m); err != nil {
		return nil, fmt.Errorf("invalid measurement: %w", err)
	}

	created, err := s.repo.CreateMeasurement(ctx, m)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{
		Type:    EventMeasurementCreated,
		Payload: map[string]int64{"measurement_id": created.ID, "customer_id": created.CustomerID},
	})

	return created, nil
}

// UpdateMeasurement validates and updates an existing measurement set.
func (s *ShopService) UpdateMeasurement(ctx context.Context, id int64, m *domain.Measurement) (*domain.Measurement, error) {
	if err := s.validate.Struct(m); err != nil {
		return nil, fmt.Errorf("invalid measurement: %w", err)
	}

	updated, err := s.repo.UpdateMeasurement(ctx, id, m)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{
		Type:    EventMeasurementUpdated,
		Payload: map[string]int64{"measurement_id": id},
	})

	return updated, nil
}

// DeleteMeasurement removes a measurement set.
func (s *ShopService) DeleteMeasurement(ctx context.Context, id int64) (int64, error) {
	affected, err := s.repo.DeleteMeasurement(ctx, id)
	if err != nil {
		return 0, err
	}

	s.eventBus.Publish(Event{
		Type:    EventMeasurementDeleted,
		Payload: map[string]int64{"measurement_id": id},
	})

	return affected, nil
}

// ============================================================================
// Orders
// ============================================================================

// ListOrders returns a page of orders, newest first.
func (s *ShopService) ListOrders(ctx context.Context, limit, offset int64) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx, limit, offset)
}

// GetOrder retrieves a single order by ID, or nil when absent.
func (s *ShopService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

// CreateOrder validates and creates a new order. The repository assigns
// an order number and default statuses for fields left blank.
func (s *ShopService) CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	if err := s.validate.Struct(o); err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}

	created, err := s.repo.CreateOrder(ctx, o)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{
		Type:    EventOrderCreated,
		Payload: map[string]int64{"order_id": created.ID, "customer_id": created.CustomerID},
	})

	return created, nil
}

// UpdateOrder validates and updates an existing order.
func (s *ShopService) UpdateOrder(ctx context.Context, id int64, o *domain.Order) (*domain.Order, error) {
	if err := s.validate.Struct(o); err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}

	updated, err := s.repo.UpdateOrder(ctx, id, o)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{
		Type:    EventOrderUpdated,
		Payload: map[string]int64{"order_id": id},
	})

	return updated, nil
}

// DeleteOrder removes an order along with its line items.
func (s *ShopService) DeleteOrder(ctx context.Context, id int64) (int64, error) {
	affected, err := s.repo.DeleteOrder(ctx, id)
	if err != nil {
		return 0, err
	}

	s.eventBus.Publish(Event{
		Type:    EventOrderDeleted,
		Payload: map[string]int64{"order_id": id},
	})

	return affected, nil
}

// AddOrderItem validates and appends a line item to an order.
func (s *ShopService) AddOrderItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	if err := s.validate.Struct(item); err != nil {
		return nil, fmt.Errorf("invalid order item: %w", err)
	}

	created, err := s.repo.AddOrderItem(ctx, item)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{
		Type:    EventOrderItemAdded,
		Payload: map[string]int64{"order_item_id": created.ID, "order_id": created.OrderID},
	})

	return created, nil
}

// ListOrderItems returns an order's line items in insertion order.
func (s *ShopService) ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	return s.repo.ListOrderItems(ctx, orderID)
}

// ============================================================================
// Dashboard and export
// ============================================================================

// DashboardStats returns the aggregate counters for the dashboard screen.
func (s *ShopService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	return s.repo.DashboardStats(ctx)
}

// ExportJSON exports the full dataset as JSON
func (s *ShopService) ExportJSON(ctx context.Context) ([]byte, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := codec.NewJSONCodec()
	if err := enc.Export(snap, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExportYAML exports the full dataset as YAML
func (s *ShopService) ExportYAML(ctx context.Context, w io.Writer) error {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return err
	}

	enc := codec.NewYAMLCodec()
	return enc.Export(snap, w)
}
