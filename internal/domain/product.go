package domain

import "time"

// DateSentinel is substituted for Launch Date cells that cannot be parsed.
// Rows keep this value instead of being rejected.
var DateSentinel = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Product is one normalized row of the catalog. After normalization every
// field holds a defined value; unparseable cells degrade to defaults and
// never reject the row.
type Product struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Price      float64   `json:"price"`
	Discount   float64   `json:"discount"`
	InStock    bool      `json:"in_stock"`
	StockQty   int       `json:"stock_qty"`
	Rating     float64   `json:"rating"`
	Features   string    `json:"features"`
	ImageURL   string    `json:"image_url,omitempty"`
	LaunchDate time.Time `json:"launch_date"`

	// PriceKnown is false when the Price cell failed to parse. The row is
	// still filterable (Price is 0) but is excluded from the derived price
	// bounds.
	PriceKnown bool `json:"-"`
}

// Catalog is the full normalized set of products available for querying.
// It is read-only after normalization.
type Catalog struct {
	Products []Product `json:"products"`
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.Products)
}

// FindByID returns the product with the given ID, or nil if absent.
func (c *Catalog) FindByID(id string) *Product {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i]
		}
	}
	return nil
}

// Sort fields accepted by the query engine.
const (
	SortByPrice    = "price"
	SortByRating   = "rating"
	SortByDiscount = "discount"
)

// ValidSortByValues returns all accepted sort_by values.
func ValidSortByValues() []string {
	return []string{SortByPrice, SortByRating, SortByDiscount}
}

// IsValidSortBy reports whether v is an accepted sort_by value.
// The empty string is valid and means the default (price).
func IsValidSortBy(v string) bool {
	if v == "" {
		return true
	}
	for _, s := range ValidSortByValues() {
		if v == s {
			return true
		}
	}
	return false
}
