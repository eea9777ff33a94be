package sqlite

import (
	"context"

	"atelier/internal/domain"
)

// ListCustomers returns customers newest first, each carrying distinct
// counts of its measurements and orders.
func (s *Store) ListCustomers(ctx context.Context, limit, offset int64) ([]domain.Customer, error) {
	const stmt = `
		SELECT c.*,
		       COUNT(DISTINCT m.id) AS measurement_count,
		       COUNT(DISTINCT o.id) AS order_count
		FROM customers c
		LEFT JOIN measurements m ON c.id = m.customer_id
		LEFT JOIN orders o ON c.id = o.customer_id
		GROUP BY c.id
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT ? OFFSET ?`

	rows, err := s.FetchMany(ctx, stmt, limit, offset)
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(rows))
	for _, r := range rows {
		customers = append(customers, customerFromRow(r))
	}
	return customers, nil
}

// GetCustomer returns the customer with the given id, or nil when absent.
func (s *Store) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	row, err := s.FetchOne(ctx, `SELECT * FROM customers WHERE id = ?`, id)
	if err != nil || row == nil {
		return nil, err
	}
	c := customerFromRow(row)
	return &c, nil
}

// CreateCustomer inserts a customer and returns the freshly re-fetched
// row, so assigned id and timestamps are always present in the response.
func (s *Store) CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	const stmt = `
		INSERT INTO customers (name, email, phone, address)
		VALUES (?, ?, ?, ?)`

	id, _, err := s.Exec(ctx, stmt, c.Name, nullable(c.Email), nullable(c.Phone), nullable(c.Address))
	if err != nil {
		return nil, err
	}
	return s.GetCustomer(ctx, id)
}

// UpdateCustomer replaces every customer field and advances updated_at.
// Updating a missing id is not an error; it returns a nil row.
func (s *Store) UpdateCustomer(ctx context.Context, id int64, c *domain.Customer) (*domain.Customer, error) {
	const stmt = `
		UPDATE customers
		SET name = ?, email = ?, phone = ?, address = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	if _, _, err := s.Exec(ctx, stmt, c.Name, nullable(c.Email), nullable(c.Phone), nullable(c.Address), id); err != nil {
		return nil, err
	}
	return s.GetCustomer(ctx, id)
}

// DeleteCustomer removes the customer and reports how many rows went
// away (0 or 1). A customer still referenced by measurements or orders
// makes the delete fail with a foreign-key QueryError.
func (s *Store) DeleteCustomer(ctx context.Context, id int64) (int64, error) {
	_, affected, err := s.Exec(ctx, `DELETE FROM customers WHERE id = ?`, id)
	return affected, err
}

// SearchCustomers matches the query as a case-insensitive substring of
// name, email, or phone. Results are alphabetical and capped at 20.
func (s *Store) SearchCustomers(ctx context.Context, query string) ([]domain.Customer, error) {
	const stmt = `
		SELECT * FROM customers
		WHERE name LIKE ? OR email LIKE ? OR phone LIKE ?
		ORDER BY name
		LIMIT 20`

	pattern := "%" + query + "%"
	rows, err := s.FetchMany(ctx, stmt, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(rows))
	for _, r := range rows {
		customers = append(customers, customerFromRow(r))
	}
	return customers, nil
}
