package sqlite

import (
	"context"
	"time"

	"atelier/internal/domain"
)

// Snapshot reads every table in full for export. Joined display fields
// (category names, customer names) are included so an exported file is
// readable on its own.
func (s *Store) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{ExportedAt: time.Now().UTC()}

	var err error
	if snap.Categories, err = s.ListCategories(ctx); err != nil {
		return nil, err
	}

	rows, err := s.FetchMany(ctx, `SELECT * FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	snap.Customers = make([]domain.Customer, 0, len(rows))
	for _, r := range rows {
		snap.Customers = append(snap.Customers, customerFromRow(r))
	}

	rows, err = s.FetchMany(ctx, `SELECT `+productColumns+` ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	snap.Products = make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		snap.Products = append(snap.Products, productFromRow(r))
	}

	rows, err = s.FetchMany(ctx, `SELECT `+measurementColumns+` ORDER BY m.id`)
	if err != nil {
		return nil, err
	}
	snap.Measurements = make([]domain.Measurement, 0, len(rows))
	for _, r := range rows {
		snap.Measurements = append(snap.Measurements, measurementFromRow(r))
	}

	rows, err = s.FetchMany(ctx, `SELECT `+orderColumns+` ORDER BY o.id`)
	if err != nil {
		return nil, err
	}
	snap.Orders = make([]domain.Order, 0, len(rows))
	for _, r := range rows {
		snap.Orders = append(snap.Orders, orderFromRow(r))
	}

	rows, err = s.FetchMany(ctx, `
		SELECT oi.*, p.name AS product_name
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		ORDER BY oi.id`)
	if err != nil {
		return nil, err
	}
	snap.OrderItems = make([]domain.OrderItem, 0, len(rows))
	for _, r := range rows {
		snap.OrderItems = append(snap.OrderItems, orderItemFromRow(r))
	}

	return snap, nil
}
