package domain

import "time"

// Snapshot is a full export of the shop's data, used for backups.
type Snapshot struct {
	ExportedAt   time.Time         `json:"exported_at" yaml:"exported_at"`
	Categories   []ProductCategory `json:"categories" yaml:"categories"`
	Customers    []Customer        `json:"customers" yaml:"customers"`
	Products     []Product         `json:"products" yaml:"products"`
	Measurements []Measurement     `json:"measurements" yaml:"measurements"`
	Orders       []Order           `json:"orders" yaml:"orders"`
	OrderItems   []OrderItem       `json:"order_items" yaml:"order_items"`
}
