package domain

import "time"

// Criteria is the user-selected combination of filter bounds and sort field.
// All ranges are inclusive. An empty Categories slice selects all categories.
type Criteria struct {
	Categories  []string  `json:"categories"`
	PriceMin    float64   `json:"price_min"`
	PriceMax    float64   `json:"price_max"`
	DiscountMin float64   `json:"discount_min"`
	DiscountMax float64   `json:"discount_max"`
	MinRating   float64   `json:"min_rating"`
	DateFrom    time.Time `json:"date_from"`
	DateTo      time.Time `json:"date_to"`
	InStockOnly bool      `json:"in_stock_only"`
	SortBy      string    `json:"sort_by"`
}

// Matches reports whether the product survives every predicate of the
// criteria. Bounds are inclusive on both ends.
func (c Criteria) Matches(p Product) bool {
	if len(c.Categories) > 0 && !contains(c.Categories, p.Category) {
		return false
	}
	if p.Price < c.PriceMin || p.Price > c.PriceMax {
		return false
	}
	if p.Discount < c.DiscountMin || p.Discount > c.DiscountMax {
		return false
	}
	if p.Rating < c.MinRating {
		return false
	}
	if p.LaunchDate.Before(c.DateFrom) || p.LaunchDate.After(c.DateTo) {
		return false
	}
	if c.InStockOnly && !p.InStock {
		return false
	}
	return true
}

// SortKey returns the value the query engine orders by for the given product.
func (c Criteria) SortKey(p Product) float64 {
	switch c.SortBy {
	case SortByRating:
		return p.Rating
	case SortByDiscount:
		return p.Discount
	default:
		return p.Price
	}
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// FilterDomains holds the inclusive bounds offered to the user for each
// numeric/date filter, derived from the catalog. They double as the default
// (unfiltered) selection.
type FilterDomains struct {
	Categories  []string  `json:"categories"`
	PriceMin    float64   `json:"price_min"`
	PriceMax    float64   `json:"price_max"`
	DiscountMin float64   `json:"discount_min"`
	DiscountMax float64   `json:"discount_max"`
	DateMin     time.Time `json:"date_min"`
	DateMax     time.Time `json:"date_max"`
}
