package sqlite

import (
	"context"

	"atelier/internal/domain"
)

// DashboardStats composes the dashboard aggregate from independent
// sub-queries. There is no transaction around them; under concurrent
// writes the numbers may reflect slightly different instants, which is
// acceptable for a dashboard.
func (s *Store) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}

	row, err := s.FetchOne(ctx, `SELECT COUNT(*) AS count FROM customers`)
	if err != nil {
		return nil, err
	}
	stats.TotalCustomers = rowInt64(row, "count")

	row, err = s.FetchOne(ctx, `SELECT COUNT(*) AS count FROM products`)
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = rowInt64(row, "count")

	row, err = s.FetchOne(ctx, `
		SELECT COUNT(*) AS total_orders,
		       COALESCE(SUM(total_amount), 0) AS total_revenue
		FROM orders`)
	if err != nil {
		return nil, err
	}
	stats.TotalOrders = rowInt64(row, "total_orders")
	stats.TotalRevenue = rowDecimal(row, "total_revenue")

	row, err = s.FetchOne(ctx, `
		SELECT COUNT(*) AS count
		FROM orders
		WHERE created_at >= datetime('now', '-30 days')`)
	if err != nil {
		return nil, err
	}
	stats.RecentOrders = rowInt64(row, "count")

	monthly, err := s.FetchMany(ctx, `
		SELECT strftime('%m', created_at) AS month,
		       COUNT(*) AS order_count,
		       SUM(total_amount) AS revenue
		FROM orders
		WHERE created_at >= datetime('now', '-12 months')
		GROUP BY strftime('%m', created_at)
		ORDER BY month`)
	if err != nil {
		return nil, err
	}
	stats.MonthlySales = make([]domain.MonthlySale, 0, len(monthly))
	for _, r := range monthly {
		stats.MonthlySales = append(stats.MonthlySales, domain.MonthlySale{
			Month:      rowString(r, "month"),
			OrderCount: rowInt64(r, "order_count"),
			Revenue:    rowDecimal(r, "revenue"),
		})
	}

	top, err := s.FetchMany(ctx, `
		SELECT p.name,
		       p.price,
		       p.stock_quantity,
		       COUNT(oi.id) AS sales_count
		FROM products p
		LEFT JOIN order_items oi ON p.id = oi.product_id
		GROUP BY p.id
		ORDER BY sales_count DESC
		LIMIT 10`)
	if err != nil {
		return nil, err
	}
	stats.TopProducts = make([]domain.TopProduct, 0, len(top))
	for _, r := range top {
		stats.TopProducts = append(stats.TopProducts, domain.TopProduct{
			Name:          rowString(r, "name"),
			Price:         rowDecimal(r, "price"),
			StockQuantity: rowInt64(r, "stock_quantity"),
			SalesCount:    rowInt64(r, "sales_count"),
		})
	}

	stats.RecentMeasurements, err = s.ListMeasurements(ctx, 0, 5, 0)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
