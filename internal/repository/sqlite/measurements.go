package sqlite

import (
	"context"

	"atelier/internal/domain"
)

const measurementColumns = `m.*, c.name AS customer_name
	FROM measurements m
	JOIN customers c ON m.customer_id = c.id`

// ListMeasurements returns measurements newest first, joined with the
// customer's name. A non-zero customerID restricts the listing to that
// customer; both branches share ordering and pagination.
func (s *Store) ListMeasurements(ctx context.Context, customerID, limit, offset int64) ([]domain.Measurement, error) {
	var (
		stmt string
		args []any
	)
	if customerID != 0 {
		stmt = `
			SELECT ` + measurementColumns + `
			WHERE m.customer_id = ?
			ORDER BY m.created_at DESC, m.id DESC
			LIMIT ? OFFSET ?`
		args = []any{customerID, limit, offset}
	} else {
		stmt = `
			SELECT ` + measurementColumns + `
			ORDER BY m.created_at DESC, m.id DESC
			LIMIT ? OFFSET ?`
		args = []any{limit, offset}
	}

	rows, err := s.FetchMany(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}

	measurements := make([]domain.Measurement, 0, len(rows))
	for _, r := range rows {
		measurements = append(measurements, measurementFromRow(r))
	}
	return measurements, nil
}

// GetMeasurement returns one measurement by id, or nil when absent.
func (s *Store) GetMeasurement(ctx context.Context, id int64) (*domain.Measurement, error) {
	const stmt = `SELECT ` + measurementColumns + ` WHERE m.id = ?`

	row, err := s.FetchOne(ctx, stmt, id)
	if err != nil || row == nil {
		return nil, err
	}
	m := measurementFromRow(row)
	return &m, nil
}

// CreateMeasurement inserts a measurement set; the customer must exist.
func (s *Store) CreateMeasurement(ctx context.Context, m *domain.Measurement) (*domain.Measurement, error) {
	const stmt = `
		INSERT INTO measurements
		(customer_id, garment_type, chest, waist, length, shoulder, sleeve, neck, hip, inseam, notes, measured_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, _, err := s.Exec(ctx, stmt,
		m.CustomerID, nullable(m.GarmentType),
		m.Chest, m.Waist, m.Length, m.Shoulder, m.Sleeve, m.Neck, m.Hip, m.Inseam,
		nullable(m.Notes), nullable(m.MeasuredBy))
	if err != nil {
		return nil, err
	}
	return s.GetMeasurement(ctx, id)
}

// UpdateMeasurement replaces every field and advances updated_at.
func (s *Store) UpdateMeasurement(ctx context.Context, id int64, m *domain.Measurement) (*domain.Measurement, error) {
	const stmt = `
		UPDATE measurements
		SET customer_id = ?, garment_type = ?, chest = ?, waist = ?, length = ?,
		    shoulder = ?, sleeve = ?, neck = ?, hip = ?, inseam = ?, notes = ?,
		    measured_by = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	_, _, err := s.Exec(ctx, stmt,
		m.CustomerID, nullable(m.GarmentType),
		m.Chest, m.Waist, m.Length, m.Shoulder, m.Sleeve, m.Neck, m.Hip, m.Inseam,
		nullable(m.Notes), nullable(m.MeasuredBy), id)
	if err != nil {
		return nil, err
	}
	return s.GetMeasurement(ctx, id)
}

// DeleteMeasurement removes one measurement set by id.
func (s *Store) DeleteMeasurement(ctx context.Context, id int64) (int64, error) {
	_, affected, err := s.Exec(ctx, `DELETE FROM measurements WHERE id = ?`, id)
	return affected, err
}
