package sqlite

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"atelier/internal/domain"
)

// The fetch primitives return rows as column-name-to-value maps; the
// helpers below pull typed values out of them. SQLite is loosely typed,
// so each helper accepts every representation the driver may hand back
// for its target type.

func rowString(r Row, key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func rowInt64(r Row, key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

func rowInt64Ptr(r Row, key string) *int64 {
	if r[key] == nil {
		return nil
	}
	n := rowInt64(r, key)
	return &n
}

func rowFloatPtr(r Row, key string) *float64 {
	switch v := r[key].(type) {
	case float64:
		return &v
	case int64:
		f := float64(v)
		return &f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func rowDecimal(r Row, key string) decimal.Decimal {
	switch v := r[key].(type) {
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// timeLayouts are the datetime renderings SQLite produces: the
// CURRENT_TIMESTAMP format, its fractional variant, and RFC 3339 for
// values the application wrote itself.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

func rowTime(r Row, key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func rowTimePtr(r Row, key string) *time.Time {
	if r[key] == nil {
		return nil
	}
	t := rowTime(r, key)
	if t.IsZero() {
		return nil
	}
	return &t
}

// ============================================================================
// Row-to-entity converters
// ============================================================================

func customerFromRow(r Row) domain.Customer {
	return domain.Customer{
		ID:               rowInt64(r, "id"),
		Name:             rowString(r, "name"),
		Email:            rowString(r, "email"),
		Phone:            rowString(r, "phone"),
		Address:          rowString(r, "address"),
		CreatedAt:        rowTime(r, "created_at"),
		UpdatedAt:        rowTime(r, "updated_at"),
		MeasurementCount: rowInt64(r, "measurement_count"),
		OrderCount:       rowInt64(r, "order_count"),
	}
}

func categoryFromRow(r Row) domain.ProductCategory {
	return domain.ProductCategory{
		ID:          rowInt64(r, "id"),
		Name:        rowString(r, "name"),
		Description: rowString(r, "description"),
	}
}

func productFromRow(r Row) domain.Product {
	return domain.Product{
		ID:            rowInt64(r, "id"),
		Name:          rowString(r, "name"),
		Description:   rowString(r, "description"),
		CategoryID:    rowInt64Ptr(r, "category_id"),
		Price:         rowDecimal(r, "price"),
		StockQuantity: rowInt64(r, "stock_quantity"),
		ImageURL:      rowString(r, "image_url"),
		CreatedAt:     rowTime(r, "created_at"),
		UpdatedAt:     rowTime(r, "updated_at"),
		CategoryName:  rowString(r, "category_name"),
	}
}

func measurementFromRow(r Row) domain.Measurement {
	return domain.Measurement{
		ID:           rowInt64(r, "id"),
		CustomerID:   rowInt64(r, "customer_id"),
		GarmentType:  rowString(r, "garment_type"),
		Chest:        rowFloatPtr(r, "chest"),
		Waist:        rowFloatPtr(r, "waist"),
		Length:       rowFloatPtr(r, "length"),
		Shoulder:     rowFloatPtr(r, "shoulder"),
		Sleeve:       rowFloatPtr(r, "sleeve"),
		Neck:         rowFloatPtr(r, "neck"),
		Hip:          rowFloatPtr(r, "hip"),
		Inseam:       rowFloatPtr(r, "inseam"),
		Notes:        rowString(r, "notes"),
		MeasuredBy:   rowString(r, "measured_by"),
		CreatedAt:    rowTime(r, "created_at"),
		UpdatedAt:    rowTime(r, "updated_at"),
		CustomerName: rowString(r, "customer_name"),
	}
}

func orderFromRow(r Row) domain.Order {
	return domain.Order{
		ID:            rowInt64(r, "id"),
		CustomerID:    rowInt64(r, "customer_id"),
		OrderNumber:   rowString(r, "order_number"),
		Status:        domain.OrderStatus(rowString(r, "status")),
		TotalAmount:   rowDecimal(r, "total_amount"),
		PaymentStatus: domain.PaymentStatus(rowString(r, "payment_status")),
		Notes:         rowString(r, "notes"),
		DeliveryDate:  rowTimePtr(r, "delivery_date"),
		CreatedAt:     rowTime(r, "created_at"),
		UpdatedAt:     rowTime(r, "updated_at"),
		CustomerName:  rowString(r, "customer_name"),
		CustomerEmail: rowString(r, "customer_email"),
	}
}

func orderItemFromRow(r Row) domain.OrderItem {
	return domain.OrderItem{
		ID:          rowInt64(r, "id"),
		OrderID:     rowInt64(r, "order_id"),
		ProductID:   rowInt64(r, "product_id"),
		Quantity:    rowInt64(r, "quantity"),
		UnitPrice:   rowDecimal(r, "unit_price"),
		CreatedAt:   rowTime(r, "created_at"),
		ProductName: rowString(r, "product_name"),
	}
}

// nullable maps Go zero values to NULL for optional text columns, so an
// omitted field round-trips as absent rather than as an empty string.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullableTime maps a nil time pointer to NULL and renders the rest the
// way SQLite's own CURRENT_TIMESTAMP does.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
