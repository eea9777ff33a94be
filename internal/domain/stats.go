package domain

import "github.com/shopspring/decimal"

// MonthlySale is one bucket of the trailing-twelve-month sales breakdown,
// grouped by calendar month ("01".."12").
type MonthlySale struct {
	Month      string          `json:"month"`
	OrderCount int64           `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// TopProduct is a catalog item ranked by how many order line items
// reference it.
type TopProduct struct {
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
	SalesCount    int64           `json:"sales_count"`
}

// DashboardStats is the aggregate view backing the dashboard screen.
// Its sub-queries run independently; the values may reflect slightly
// different instants under concurrent writes.
type DashboardStats struct {
	TotalCustomers int64           `json:"total_customers"`
	TotalProducts  int64           `json:"total_products"`
	TotalOrders    int64           `json:"total_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	RecentOrders   int64           `json:"recent_orders"`

	MonthlySales       []MonthlySale `json:"monthly_sales"`
	TopProducts        []TopProduct  `json:"top_products"`
	RecentMeasurements []Measurement `json:"recent_measurements"`
}
