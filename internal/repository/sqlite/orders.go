package sqlite

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"atelier/internal/domain"
)

const orderColumns = `o.*, c.name AS customer_name, c.email AS customer_email
	FROM orders o
	JOIN customers c ON o.customer_id = c.id`

// ListOrders returns orders newest first with the customer's name and
// email joined in.
func (s *Store) ListOrders(ctx context.Context, limit, offset int64) ([]domain.Order, error) {
	const stmt = `
		SELECT ` + orderColumns + `
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT ? OFFSET ?`

	rows, err := s.FetchMany(ctx, stmt, limit, offset)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, orderFromRow(r))
	}
	return orders, nil
}

// GetOrder returns one order by id, or nil when absent.
func (s *Store) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	const stmt = `SELECT ` + orderColumns + ` WHERE o.id = ?`

	row, err := s.FetchOne(ctx, stmt, id)
	if err != nil || row == nil {
		return nil, err
	}
	o := orderFromRow(row)
	return &o, nil
}

// CreateOrder inserts an order for an existing customer. A blank order
// number gets a generated one; defaults apply for blank statuses.
func (s *Store) CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	number := o.OrderNumber
	if number == "" {
		number = newOrderNumber()
	}
	status := o.Status
	if status == "" {
		status = domain.OrderStatusPending
	}
	payment := o.PaymentStatus
	if payment == "" {
		payment = domain.PaymentUnpaid
	}

	const stmt = `
		INSERT INTO orders (customer_id, order_number, status, total_amount, payment_status, notes, delivery_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, _, err := s.Exec(ctx, stmt,
		o.CustomerID, number, string(status), o.TotalAmount, string(payment),
		nullable(o.Notes), nullableTime(o.DeliveryDate))
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

// UpdateOrder replaces every order field and advances updated_at.
func (s *Store) UpdateOrder(ctx context.Context, id int64, o *domain.Order) (*domain.Order, error) {
	const stmt = `
		UPDATE orders
		SET customer_id = ?, order_number = ?, status = ?, total_amount = ?,
		    payment_status = ?, notes = ?, delivery_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	_, _, err := s.Exec(ctx, stmt,
		o.CustomerID, o.OrderNumber, string(o.Status), o.TotalAmount,
		string(o.PaymentStatus), nullable(o.Notes), nullableTime(o.DeliveryDate), id)
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

// DeleteOrder removes the order; its line items go with it.
func (s *Store) DeleteOrder(ctx context.Context, id int64) (int64, error) {
	_, affected, err := s.Exec(ctx, `DELETE FROM orders WHERE id = ?`, id)
	return affected, err
}

// AddOrderItem appends a line item to an order. Both the order and the
// product must exist.
func (s *Store) AddOrderItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	const stmt = `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES (?, ?, ?, ?)`

	id, _, err := s.Exec(ctx, stmt, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice)
	if err != nil {
		return nil, err
	}

	const fetch = `
		SELECT oi.*, p.name AS product_name
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.id = ?`

	row, err := s.FetchOne(ctx, fetch, id)
	if err != nil || row == nil {
		return nil, err
	}
	created := orderItemFromRow(row)
	return &created, nil
}

// ListOrderItems returns an order's line items in insertion order.
func (s *Store) ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	const stmt = `
		SELECT oi.*, p.name AS product_name
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = ?
		ORDER BY oi.id`

	rows, err := s.FetchMany(ctx, stmt, orderID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, orderItemFromRow(r))
	}
	return items, nil
}

// newOrderNumber builds a human-readable unique order number.
func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
