package domain

import "time"

// Measurement is one set of body measurements taken for a customer.
// A customer accumulates many measurement sets over time, typically one
// per garment commissioned.
//
// The numeric fields are pointers because a fitting rarely records all of
// them; absent values are stored as NULL, not zero.
type Measurement struct {
	ID          int64  `json:"id" yaml:"id"`
	CustomerID  int64  `json:"customer_id" yaml:"customer_id" validate:"required,gt=0"`
	GarmentType string `json:"garment_type,omitempty" yaml:"garment_type,omitempty"`

	Chest    *float64 `json:"chest,omitempty" yaml:"chest,omitempty"`
	Waist    *float64 `json:"waist,omitempty" yaml:"waist,omitempty"`
	Length   *float64 `json:"length,omitempty" yaml:"length,omitempty"`
	Shoulder *float64 `json:"shoulder,omitempty" yaml:"shoulder,omitempty"`
	Sleeve   *float64 `json:"sleeve,omitempty" yaml:"sleeve,omitempty"`
	Neck     *float64 `json:"neck,omitempty" yaml:"neck,omitempty"`
	Hip      *float64 `json:"hip,omitempty" yaml:"hip,omitempty"`
	Inseam   *float64 `json:"inseam,omitempty" yaml:"inseam,omitempty"`

	Notes      string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	MeasuredBy string    `json:"measured_by,omitempty" yaml:"measured_by,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" yaml:"updated_at"`

	// Joined from customers.
	CustomerName string `json:"customer_name,omitempty" yaml:"customer_name,omitempty"`
}
