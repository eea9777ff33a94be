package domain

import "time"

// Customer represents a shop customer.
//
// Email should be unique in practice but is not enforced by the store.
type Customer struct {
	ID        int64     `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name" validate:"required"`
	Email     string    `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Phone     string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	Address   string    `json:"address,omitempty" yaml:"address,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`

	// Joined summary columns, populated by list queries.
	MeasurementCount int64 `json:"measurement_count,omitempty" yaml:"measurement_count,omitempty"`
	OrderCount       int64 `json:"order_count,omitempty" yaml:"order_count,omitempty"`
}
