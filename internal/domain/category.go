package domain

// Category identifiers are fixed: the seed set is inserted with explicit
// ids at startup and products reference them by id, so the mapping must
// stay stable across restarts.
const (
	CategoryShirts      int64 = 1
	CategoryPants       int64 = 2
	CategoryDresses     int64 = 3
	CategoryJackets     int64 = 4
	CategoryAccessories int64 = 5
	CategoryShoes       int64 = 6
	CategoryUnderwear   int64 = 7
	CategoryOther       int64 = 8
)

// ProductCategory is one of the eight seeded catalog categories.
// Categories are immutable after seeding.
type ProductCategory struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// SeedCategories returns the fixed category set in insertion order.
func SeedCategories() []ProductCategory {
	return []ProductCategory{
		{ID: CategoryShirts, Name: "Shirts", Description: "Shirts and tops"},
		{ID: CategoryPants, Name: "Pants", Description: "Pants and trousers"},
		{ID: CategoryDresses, Name: "Dresses", Description: "Dresses and gowns"},
		{ID: CategoryJackets, Name: "Jackets", Description: "Jackets and outerwear"},
		{ID: CategoryAccessories, Name: "Accessories", Description: "Accessories and extras"},
		{ID: CategoryShoes, Name: "Shoes", Description: "Footwear"},
		{ID: CategoryUnderwear, Name: "Underwear", Description: "Undergarments"},
		{ID: CategoryOther, Name: "Other", Description: "Other items"},
	}
}
