package sqlite

import (
	"context"

	"atelier/internal/domain"
)

// productColumns joins the category name onto every product row.
const productColumns = `p.*, pc.name AS category_name
	FROM products p
	LEFT JOIN product_categories pc ON p.category_id = pc.id`

// ListProducts returns products newest first with category names joined.
func (s *Store) ListProducts(ctx context.Context, limit, offset int64) ([]domain.Product, error) {
	const stmt = `
		SELECT ` + productColumns + `
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ? OFFSET ?`

	rows, err := s.FetchMany(ctx, stmt, limit, offset)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, productFromRow(r))
	}
	return products, nil
}

// GetProduct returns the product with the given id, or nil when absent.
func (s *Store) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const stmt = `SELECT ` + productColumns + ` WHERE p.id = ?`

	row, err := s.FetchOne(ctx, stmt, id)
	if err != nil || row == nil {
		return nil, err
	}
	p := productFromRow(row)
	return &p, nil
}

// CreateProduct inserts a product and returns the re-fetched row with the
// category name joined in.
func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	const stmt = `
		INSERT INTO products (name, description, category_id, price, stock_quantity, image_url)
		VALUES (?, ?, ?, ?, ?, ?)`

	id, _, err := s.Exec(ctx, stmt,
		p.Name, nullable(p.Description), p.CategoryID, p.Price, p.StockQuantity, nullable(p.ImageURL))
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

// UpdateProduct replaces every product field and advances updated_at.
func (s *Store) UpdateProduct(ctx context.Context, id int64, p *domain.Product) (*domain.Product, error) {
	const stmt = `
		UPDATE products
		SET name = ?, description = ?, category_id = ?, price = ?,
		    stock_quantity = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	_, _, err := s.Exec(ctx, stmt,
		p.Name, nullable(p.Description), p.CategoryID, p.Price, p.StockQuantity, nullable(p.ImageURL), id)
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes the product and reports the affected-row count.
// Products referenced by order line items cannot be deleted.
func (s *Store) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	_, affected, err := s.Exec(ctx, `DELETE FROM products WHERE id = ?`, id)
	return affected, err
}

// SearchProducts matches the query as a case-insensitive substring of
// name or description. Results are alphabetical and capped at 20.
func (s *Store) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	const stmt = `
		SELECT ` + productColumns + `
		WHERE p.name LIKE ? OR p.description LIKE ?
		ORDER BY p.name
		LIMIT 20`

	pattern := "%" + query + "%"
	rows, err := s.FetchMany(ctx, stmt, pattern, pattern)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, productFromRow(r))
	}
	return products, nil
}

// ListCategories returns the seeded category set in id order.
func (s *Store) ListCategories(ctx context.Context) ([]domain.ProductCategory, error) {
	rows, err := s.FetchMany(ctx, `SELECT * FROM product_categories ORDER BY id`)
	if err != nil {
		return nil, err
	}

	categories := make([]domain.ProductCategory, 0, len(rows))
	for _, r := range rows {
		categories = append(categories, categoryFromRow(r))
	}
	return categories, nil
}
