// Package domain defines the entities managed by Atelier: customers,
// the product catalog with its fixed category set, body measurements,
// and orders with their line items.
//
// Rows returned by list and lookup operations carry a few joined display
// columns (category name on products, customer name on measurements and
// orders, measurement/order counts on customers) so the presentation
// layer never has to issue follow-up lookups.
//
// Monetary fields use decimal.Decimal rather than float64 so that revenue
// sums are exact.
package domain
