package sqlite

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"atelier/internal/domain"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestStore creates an in-memory SQLite store for testing, with the
// schema applied and categories seeded.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

// assertNoError fails the test if err is not nil
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// assertEqual fails the test if expected != actual
func assertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

// assertNotNil fails the test if value is nil
func assertNotNil(t *testing.T, value interface{}) {
	t.Helper()
	if value == nil || reflect.ValueOf(value).IsNil() {
		t.Fatalf("expected non-nil value")
	}
}

// assertNil fails the test if value is not nil
func assertNil(t *testing.T, value interface{}) {
	t.Helper()
	if value != nil && !reflect.ValueOf(value).IsNil() {
		t.Fatalf("expected nil value, got %v", value)
	}
}

func float64Ptr(f float64) *float64 { return &f }

func seedCustomer(t *testing.T, s *Store, name, email string) *domain.Customer {
	t.Helper()
	c, err := s.CreateCustomer(context.Background(), &domain.Customer{
		Name:  name,
		Email: email,
	})
	assertNoError(t, err)
	assertNotNil(t, c)
	return c
}

func seedProduct(t *testing.T, s *Store, name string, categoryID int64, price string) *domain.Product {
	t.Helper()
	d, err := decimal.NewFromString(price)
	assertNoError(t, err)
	p, err := s.CreateProduct(context.Background(), &domain.Product{
		Name:       name,
		CategoryID: &categoryID,
		Price:      d,
	})
	assertNoError(t, err)
	assertNotNil(t, p)
	return p
}

// ============================================================================
// Helper Function Tests
// ============================================================================

func TestRowDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    Row
		expected string
	}{
		{
			name:     "integer value",
			input:    Row{"v": int64(42)},
			expected: "42",
		},
		{
			name:     "float value",
			input:    Row{"v": 19.99},
			expected: "19.99",
		},
		{
			name:     "string value",
			input:    Row{"v": "120.50"},
			expected: "120.5",
		},
		{
			name:     "null value",
			input:    Row{"v": nil},
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rowDecimal(tt.input, "v")
			assertEqual(t, tt.expected, result.String())
		})
	}
}

func TestRowTime(t *testing.T) {
	tests := []struct {
		name     string
		input    Row
		expected time.Time
	}{
		{
			name:     "sqlite timestamp",
			input:    Row{"v": "2026-03-15 10:30:00"},
			expected: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "date only",
			input:    Row{"v": "2026-03-15"},
			expected: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "unparseable",
			input:    Row{"v": "not a time"},
			expected: time.Time{},
		},
		{
			name:     "null value",
			input:    Row{"v": nil},
			expected: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rowTime(tt.input, "v")
			if !result.Equal(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestNullable(t *testing.T) {
	t.Run("empty string becomes nil", func(t *testing.T) {
		if nullable("") != nil {
			t.Fatalf("expected nil for empty string")
		}
	})

	t.Run("non-empty string passes through", func(t *testing.T) {
		assertEqual(t, "hello", nullable("hello"))
	})

	t.Run("nil time becomes nil", func(t *testing.T) {
		if nullableTime(nil) != nil {
			t.Fatalf("expected nil for nil time")
		}
	})

	t.Run("time renders in sqlite format", func(t *testing.T) {
		at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
		assertEqual(t, "2026-06-01 12:00:00", nullableTime(&at))
	})
}

// ============================================================================
// Schema and Seeding Tests
// ============================================================================

func TestCategorySeeding(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("all categories present after open", func(t *testing.T) {
		cats, err := s.ListCategories(ctx)
		assertNoError(t, err)
		assertEqual(t, len(domain.SeedCategories()), len(cats))
		assertEqual(t, "Shirts", cats[0].Name)
		assertEqual(t, domain.CategoryOther, cats[7].ID)
	})

	t.Run("reseeding is idempotent", func(t *testing.T) {
		s.seedCategories(ctx)
		cats, err := s.ListCategories(ctx)
		assertNoError(t, err)
		assertEqual(t, len(domain.SeedCategories()), len(cats))
	})

	t.Run("migrate is idempotent", func(t *testing.T) {
		assertNoError(t, s.migrate())
	})
}

// ============================================================================
// Customer Tests
// ============================================================================

func TestCreateCustomer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("create and refetch", func(t *testing.T) {
		c, err := s.CreateCustomer(ctx, &domain.Customer{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Phone:   "555-0101",
			Address: "1 Tailor Lane",
		})
		assertNoError(t, err)
		assertNotNil(t, c)
		assertEqual(t, "Jane Doe", c.Name)
		assertEqual(t, "jane@example.com", c.Email)
		if c.ID == 0 {
			t.Fatalf("expected assigned id")
		}
		if c.CreatedAt.IsZero() {
			t.Fatalf("expected created_at to be set")
		}
	})

	t.Run("optional fields stored as null round-trip empty", func(t *testing.T) {
		c, err := s.CreateCustomer(ctx, &domain.Customer{Name: "Bare"})
		assertNoError(t, err)
		assertEqual(t, "", c.Email)
		assertEqual(t, "", c.Phone)
	})
}

func TestGetCustomer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := seedCustomer(t, s, "Jane Doe", "jane@example.com")

	t.Run("get existing customer", func(t *testing.T) {
		c, err := s.GetCustomer(ctx, created.ID)
		assertNoError(t, err)
		assertNotNil(t, c)
		assertEqual(t, created.Name, c.Name)
	})

	t.Run("get non-existent customer returns nil", func(t *testing.T) {
		c, err := s.GetCustomer(ctx, 9999)
		assertNoError(t, err)
		assertNil(t, c)
	})
}

func TestListCustomers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		seedCustomer(t, s, "Customer "+strings.Repeat("x", i+1), "")
	}

	t.Run("first page", func(t *testing.T) {
		page, err := s.ListCustomers(ctx, 10, 0)
		assertNoError(t, err)
		assertEqual(t, 10, len(page))
	})

	t.Run("second page has remainder without overlap", func(t *testing.T) {
		first, err := s.ListCustomers(ctx, 10, 0)
		assertNoError(t, err)
		second, err := s.ListCustomers(ctx, 10, 10)
		assertNoError(t, err)
		assertEqual(t, 5, len(second))

		seen := make(map[int64]bool)
		for _, c := range first {
			seen[c.ID] = true
		}
		for _, c := range second {
			if seen[c.ID] {
				t.Fatalf("customer %d appears on both pages", c.ID)
			}
		}
	})

	t.Run("counts joined onto rows", func(t *testing.T) {
		c := seedCustomer(t, s, "Counted", "")
		_, err := s.CreateMeasurement(ctx, &domain.Measurement{
			CustomerID:  c.ID,
			GarmentType: "shirt",
			Chest:       float64Ptr(38),
		})
		assertNoError(t, err)
		_, err = s.CreateMeasurement(ctx, &domain.Measurement{
			CustomerID:  c.ID,
			GarmentType: "pants",
		})
		assertNoError(t, err)
		_, err = s.CreateOrder(ctx, &domain.Order{CustomerID: c.ID})
		assertNoError(t, err)

		all, err := s.ListCustomers(ctx, 100, 0)
		assertNoError(t, err)
		var found *domain.Customer
		for i := range all {
			if all[i].ID == c.ID {
				found = &all[i]
			}
		}
		assertNotNil(t, found)
		assertEqual(t, int64(2), found.MeasurementCount)
		assertEqual(t, int64(1), found.OrderCount)
	})
}

func TestUpdateCustomer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := seedCustomer(t, s, "Before", "before@example.com")

	t.Run("update replaces fields", func(t *testing.T) {
		updated, err := s.UpdateCustomer(ctx, created.ID, &domain.Customer{
			Name:  "After",
			Email: "after@example.com",
		})
		assertNoError(t, err)
		assertNotNil(t, updated)
		assertEqual(t, "After", updated.Name)
		assertEqual(t, "after@example.com", updated.Email)
	})

	t.Run("update non-existent id returns nil without error", func(t *testing.T) {
		updated, err := s.UpdateCustomer(ctx, 9999, &domain.Customer{Name: "Ghost"})
		assertNoError(t, err)
		assertNil(t, updated)
	})
}

func TestDeleteCustomer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("delete existing customer", func(t *testing.T) {
		c := seedCustomer(t, s, "Doomed", "")
		affected, err := s.DeleteCustomer(ctx, c.ID)
		assertNoError(t, err)
		assertEqual(t, int64(1), affected)

		got, err := s.GetCustomer(ctx, c.ID)
		assertNoError(t, err)
		assertNil(t, got)
	})

	t.Run("delete non-existent customer affects nothing", func(t *testing.T) {
		affected, err := s.DeleteCustomer(ctx, 9999)
		assertNoError(t, err)
		assertEqual(t, int64(0), affected)
	})

	t.Run("delete is restricted while measurements reference the customer", func(t *testing.T) {
		c := seedCustomer(t, s, "Referenced", "")
		_, err := s.CreateMeasurement(ctx, &domain.Measurement{
			CustomerID:  c.ID,
			GarmentType: "jacket",
		})
		assertNoError(t, err)

		_, err = s.DeleteCustomer(ctx, c.ID)
		if err == nil {
			t.Fatalf("expected foreign key violation")
		}
	})
}

func TestSearchCustomers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedCustomer(t, s, "Jane Doe", "jane@example.com")
	seedCustomer(t, s, "John Doe", "john@example.com")
	seedCustomer(t, s, "Alice Smith", "alice@example.com")

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"match by first name", "jane", 1},
		{"case insensitive surname", "DOE", 2},
		{"substring across name", "ne do", 1},
		{"match by email", "alice@", 1},
		{"no match", "zzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.SearchCustomers(ctx, tt.query)
			assertNoError(t, err)
			assertEqual(t, tt.expected, len(results))
		})
	}
}

// ============================================================================
// Product Tests
// ============================================================================

func TestProductLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("create joins category name", func(t *testing.T) {
		p := seedProduct(t, s, "Blue Shirt", domain.CategoryShirts, "49.90")
		assertEqual(t, "Shirts", p.CategoryName)
		assertEqual(t, "49.9", p.Price.String())
	})

	t.Run("update changes price", func(t *testing.T) {
		p := seedProduct(t, s, "Wool Coat", domain.CategoryJackets, "200")
		p.Price = decimal.NewFromFloat(180.50)
		updated, err := s.UpdateProduct(ctx, p.ID, p)
		assertNoError(t, err)
		assertNotNil(t, updated)
		if !updated.Price.Equal(decimal.NewFromFloat(180.50)) {
			t.Fatalf("expected price 180.5, got %s", updated.Price)
		}
	})

	t.Run("product without category", func(t *testing.T) {
		p, err := s.CreateProduct(ctx, &domain.Product{
			Name:  "Loose Buttons",
			Price: decimal.NewFromInt(2),
		})
		assertNoError(t, err)
		assertNil(t, p.CategoryID)
		assertEqual(t, "", p.CategoryName)
	})

	t.Run("delete then get returns nil", func(t *testing.T) {
		p := seedProduct(t, s, "Temporary", domain.CategoryOther, "1")
		affected, err := s.DeleteProduct(ctx, p.ID)
		assertNoError(t, err)
		assertEqual(t, int64(1), affected)

		got, err := s.GetProduct(ctx, p.ID)
		assertNoError(t, err)
		assertNil(t, got)
	})

	t.Run("search matches name and description", func(t *testing.T) {
		_, err := s.CreateProduct(ctx, &domain.Product{
			Name:        "Evening Dress",
			Description: "silk, floor length",
			Price:       decimal.NewFromInt(300),
		})
		assertNoError(t, err)

		byName, err := s.SearchProducts(ctx, "evening")
		assertNoError(t, err)
		assertEqual(t, 1, len(byName))

		byDescription, err := s.SearchProducts(ctx, "silk")
		assertNoError(t, err)
		assertEqual(t, 1, len(byDescription))
	})
}

// ============================================================================
// Measurement Tests
// ============================================================================

func TestMeasurements(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	jane := seedCustomer(t, s, "Jane Doe", "jane@example.com")
	john := seedCustomer(t, s, "John Doe", "john@example.com")

	t.Run("create stores dimensions and joins customer name", func(t *testing.T) {
		m, err := s.CreateMeasurement(ctx, &domain.Measurement{
			CustomerID:  jane.ID,
			GarmentType: "shirt",
			Chest:       float64Ptr(36.5),
			Waist:       float64Ptr(28),
			Sleeve:      float64Ptr(24),
			Notes:       "slim fit",
			MeasuredBy:  "Ayo",
		})
		assertNoError(t, err)
		assertNotNil(t, m)
		assertEqual(t, "Jane Doe", m.CustomerName)
		assertEqual(t, 36.5, *m.Chest)
		assertNil(t, m.Hip)
	})

	t.Run("list filters by customer", func(t *testing.T) {
		_, err := s.CreateMeasurement(ctx, &domain.Measurement{
			CustomerID:  john.ID,
			GarmentType: "pants",
			Inseam:      float64Ptr(32),
		})
		assertNoError(t, err)

		janes, err := s.ListMeasurements(ctx, jane.ID, 50, 0)
		assertNoError(t, err)
		assertEqual(t, 1, len(janes))

		all, err := s.ListMeasurements(ctx, 0, 50, 0)
		assertNoError(t, err)
		assertEqual(t, 2, len(all))
	})

	t.Run("update replaces dimensions", func(t *testing.T) {
		m, err := s.CreateMeasurement(ctx, &domain.Measurement{
			CustomerID:  jane.ID,
			GarmentType: "dress",
			Length:      float64Ptr(40),
		})
		assertNoError(t, err)

		m.Length = float64Ptr(42)
		m.Shoulder = float64Ptr(15)
		updated, err := s.UpdateMeasurement(ctx, m.ID, m)
		assertNoError(t, err)
		assertNotNil(t, updated)
		assertEqual(t, 42.0, *updated.Length)
		assertEqual(t, 15.0, *updated.Shoulder)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		m, err := s.CreateMeasurement(ctx, &domain.Measurement{
			CustomerID:  jane.ID,
			GarmentType: "coat",
		})
		assertNoError(t, err)

		affected, err := s.DeleteMeasurement(ctx, m.ID)
		assertNoError(t, err)
		assertEqual(t, int64(1), affected)

		got, err := s.GetMeasurement(ctx, m.ID)
		assertNoError(t, err)
		assertNil(t, got)
	})
}

// ============================================================================
// Order Tests
// ============================================================================

func TestOrders(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	jane := seedCustomer(t, s, "Jane Doe", "jane@example.com")

	t.Run("create applies defaults and generates order number", func(t *testing.T) {
		o, err := s.CreateOrder(ctx, &domain.Order{
			CustomerID:  jane.ID,
			TotalAmount: decimal.NewFromFloat(120.50),
		})
		assertNoError(t, err)
		assertNotNil(t, o)
		assertEqual(t, domain.OrderStatusPending, o.Status)
		assertEqual(t, domain.PaymentUnpaid, o.PaymentStatus)
		if !strings.HasPrefix(o.OrderNumber, "ORD-") {
			t.Fatalf("expected generated order number, got %q", o.OrderNumber)
		}
		assertEqual(t, "Jane Doe", o.CustomerName)
		assertEqual(t, "jane@example.com", o.CustomerEmail)
	})

	t.Run("explicit order number is kept", func(t *testing.T) {
		o, err := s.CreateOrder(ctx, &domain.Order{
			CustomerID:  jane.ID,
			OrderNumber: "ORD-CUSTOM01",
		})
		assertNoError(t, err)
		assertEqual(t, "ORD-CUSTOM01", o.OrderNumber)
	})

	t.Run("delivery date round-trips", func(t *testing.T) {
		due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		o, err := s.CreateOrder(ctx, &domain.Order{
			CustomerID:   jane.ID,
			DeliveryDate: &due,
		})
		assertNoError(t, err)
		assertNotNil(t, o.DeliveryDate)
		if !o.DeliveryDate.Equal(due) {
			t.Fatalf("expected delivery date %v, got %v", due, o.DeliveryDate)
		}
	})

	t.Run("update advances status", func(t *testing.T) {
		o, err := s.CreateOrder(ctx, &domain.Order{CustomerID: jane.ID})
		assertNoError(t, err)

		o.Status = domain.OrderStatusDelivered
		o.PaymentStatus = domain.PaymentPaid
		updated, err := s.UpdateOrder(ctx, o.ID, o)
		assertNoError(t, err)
		assertNotNil(t, updated)
		assertEqual(t, domain.OrderStatusDelivered, updated.Status)
		assertEqual(t, domain.PaymentPaid, updated.PaymentStatus)
	})

	t.Run("update non-existent order returns nil", func(t *testing.T) {
		updated, err := s.UpdateOrder(ctx, 9999, &domain.Order{CustomerID: jane.ID})
		assertNoError(t, err)
		assertNil(t, updated)
	})
}

func TestOrderItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	jane := seedCustomer(t, s, "Jane Doe", "")
	shirt := seedProduct(t, s, "Blue Shirt", domain.CategoryShirts, "49.90")
	pants := seedProduct(t, s, "Gray Pants", domain.CategoryPants, "79.00")

	order, err := s.CreateOrder(ctx, &domain.Order{CustomerID: jane.ID})
	assertNoError(t, err)

	t.Run("add item joins product name", func(t *testing.T) {
		item, err := s.AddOrderItem(ctx, &domain.OrderItem{
			OrderID:   order.ID,
			ProductID: shirt.ID,
			Quantity:  2,
			UnitPrice: shirt.Price,
		})
		assertNoError(t, err)
		assertNotNil(t, item)
		assertEqual(t, "Blue Shirt", item.ProductName)
		assertEqual(t, int64(2), item.Quantity)
	})

	t.Run("list returns items in insertion order", func(t *testing.T) {
		_, err := s.AddOrderItem(ctx, &domain.OrderItem{
			OrderID:   order.ID,
			ProductID: pants.ID,
			Quantity:  1,
			UnitPrice: pants.Price,
		})
		assertNoError(t, err)

		items, err := s.ListOrderItems(ctx, order.ID)
		assertNoError(t, err)
		assertEqual(t, 2, len(items))
		assertEqual(t, "Blue Shirt", items[0].ProductName)
		assertEqual(t, "Gray Pants", items[1].ProductName)
	})

	t.Run("deleting the order cascades to its items", func(t *testing.T) {
		affected, err := s.DeleteOrder(ctx, order.ID)
		assertNoError(t, err)
		assertEqual(t, int64(1), affected)

		items, err := s.ListOrderItems(ctx, order.ID)
		assertNoError(t, err)
		assertEqual(t, 0, len(items))
	})

	t.Run("item for non-existent product fails", func(t *testing.T) {
		o, err := s.CreateOrder(ctx, &domain.Order{CustomerID: jane.ID})
		assertNoError(t, err)

		_, err = s.AddOrderItem(ctx, &domain.OrderItem{
			OrderID:   o.ID,
			ProductID: 9999,
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(1),
		})
		if err == nil {
			t.Fatalf("expected foreign key violation")
		}
	})

	t.Run("deleting a referenced product fails", func(t *testing.T) {
		o, err := s.CreateOrder(ctx, &domain.Order{CustomerID: jane.ID})
		assertNoError(t, err)
		_, err = s.AddOrderItem(ctx, &domain.OrderItem{
			OrderID:   o.ID,
			ProductID: pants.ID,
			Quantity:  1,
			UnitPrice: pants.Price,
		})
		assertNoError(t, err)

		_, err = s.DeleteProduct(ctx, pants.ID)
		var qerr *QueryError
		if !errors.As(err, &qerr) {
			t.Fatalf("expected query error deleting referenced product, got %v", err)
		}

		got, err := s.GetProduct(ctx, pants.ID)
		assertNoError(t, err)
		assertNotNil(t, got)
	})
}

// ============================================================================
// Dashboard Tests
// ============================================================================

func TestDashboardStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("empty database yields zeroes", func(t *testing.T) {
		stats, err := s.DashboardStats(ctx)
		assertNoError(t, err)
		assertEqual(t, int64(0), stats.TotalCustomers)
		assertEqual(t, int64(0), stats.TotalOrders)
		assertEqual(t, "0", stats.TotalRevenue.String())
		assertEqual(t, 0, len(stats.MonthlySales))
	})

	jane := seedCustomer(t, s, "Jane Doe", "")
	shirt := seedProduct(t, s, "Blue Shirt", domain.CategoryShirts, "49.90")
	seedProduct(t, s, "Unsold Hat", domain.CategoryAccessories, "15.00")

	o1, err := s.CreateOrder(ctx, &domain.Order{CustomerID: jane.ID, TotalAmount: decimal.NewFromFloat(100.25)})
	assertNoError(t, err)
	_, err = s.CreateOrder(ctx, &domain.Order{CustomerID: jane.ID, TotalAmount: decimal.NewFromFloat(49.75)})
	assertNoError(t, err)

	_, err = s.AddOrderItem(ctx, &domain.OrderItem{
		OrderID:   o1.ID,
		ProductID: shirt.ID,
		Quantity:  1,
		UnitPrice: shirt.Price,
	})
	assertNoError(t, err)

	t.Run("totals and revenue", func(t *testing.T) {
		stats, err := s.DashboardStats(ctx)
		assertNoError(t, err)
		assertEqual(t, int64(1), stats.TotalCustomers)
		assertEqual(t, int64(2), stats.TotalProducts)
		assertEqual(t, int64(2), stats.TotalOrders)
		if !stats.TotalRevenue.Equal(decimal.NewFromInt(150)) {
			t.Fatalf("expected revenue 150, got %s", stats.TotalRevenue)
		}
		assertEqual(t, int64(2), stats.RecentOrders)
	})

	t.Run("top products ranked by line item count", func(t *testing.T) {
		stats, err := s.DashboardStats(ctx)
		assertNoError(t, err)
		if len(stats.TopProducts) < 2 {
			t.Fatalf("expected at least 2 products, got %d", len(stats.TopProducts))
		}
		assertEqual(t, "Blue Shirt", stats.TopProducts[0].Name)
		assertEqual(t, int64(1), stats.TopProducts[0].SalesCount)
		assertEqual(t, int64(0), stats.TopProducts[1].SalesCount)
	})

	t.Run("recent measurements capped at five", func(t *testing.T) {
		for i := 0; i < 7; i++ {
			_, err := s.CreateMeasurement(ctx, &domain.Measurement{
				CustomerID:  jane.ID,
				GarmentType: "shirt",
			})
			assertNoError(t, err)
		}
		stats, err := s.DashboardStats(ctx)
		assertNoError(t, err)
		assertEqual(t, 5, len(stats.RecentMeasurements))
	})
}

// ============================================================================
// Snapshot Tests
// ============================================================================

func TestSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	jane := seedCustomer(t, s, "Jane Doe", "jane@example.com")
	shirt := seedProduct(t, s, "Blue Shirt", domain.CategoryShirts, "49.90")
	_, err := s.CreateMeasurement(ctx, &domain.Measurement{CustomerID: jane.ID, GarmentType: "shirt"})
	assertNoError(t, err)
	order, err := s.CreateOrder(ctx, &domain.Order{CustomerID: jane.ID})
	assertNoError(t, err)
	_, err = s.AddOrderItem(ctx, &domain.OrderItem{
		OrderID: order.ID, ProductID: shirt.ID, Quantity: 1, UnitPrice: shirt.Price,
	})
	assertNoError(t, err)

	snap, err := s.Snapshot(ctx)
	assertNoError(t, err)
	assertNotNil(t, snap)
	assertEqual(t, 8, len(snap.Categories))
	assertEqual(t, 1, len(snap.Customers))
	assertEqual(t, 1, len(snap.Products))
	assertEqual(t, 1, len(snap.Measurements))
	assertEqual(t, 1, len(snap.Orders))
	assertEqual(t, 1, len(snap.OrderItems))
	if snap.ExportedAt.IsZero() {
		t.Fatalf("expected exported_at to be set")
	}
}

// ============================================================================
// Error Tests
// ============================================================================

func TestOpenBadPath(t *testing.T) {
	_, err := Open("/nonexistent-dir/sub/atelier.db", zerolog.Nop())
	if err == nil {
		t.Fatalf("expected connection error")
	}
	var connErr *ConnError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnError, got %T", err)
	}
}

func TestQueryErrorWrapsStatement(t *testing.T) {
	s := newTestStore(t)

	_, err := s.FetchMany(context.Background(), `SELECT * FROM no_such_table`)
	if err == nil {
		t.Fatalf("expected query error")
	}
	var qErr *QueryError
	if !errors.As(err, &qErr) {
		t.Fatalf("expected *QueryError, got %T", err)
	}
	if !strings.Contains(qErr.Error(), "no_such_table") {
		t.Fatalf("expected statement in error, got %q", qErr.Error())
	}
}
