package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// wideCriteria returns criteria that match the given product's category with
// bounds wide enough for everything; tests narrow one predicate at a time.
func wideCriteria() Criteria {
	return Criteria{
		PriceMax:    1_000_000,
		DiscountMax: 100,
		DateFrom:    date(1990, time.January, 1),
		DateTo:      date(2100, time.January, 1),
	}
}

func sampleProduct() Product {
	return Product{
		ID:         "P001",
		Name:       "Laptop",
		Category:   "Electronics",
		Price:      100,
		PriceKnown: true,
		Discount:   10,
		InStock:    true,
		Rating:     4.5,
		LaunchDate: date(2024, time.March, 15),
	}
}

func TestCriteria_Matches_AllPredicatesHold(t *testing.T) {
	assert.True(t, wideCriteria().Matches(sampleProduct()))
}

func TestCriteria_Matches_CategoryMembership(t *testing.T) {
	c := wideCriteria()
	c.Categories = []string{"Books"}
	assert.False(t, c.Matches(sampleProduct()))

	c.Categories = []string{"Books", "Electronics"}
	assert.True(t, c.Matches(sampleProduct()))
}

func TestCriteria_Matches_EmptyCategoriesSelectsAll(t *testing.T) {
	c := wideCriteria()
	c.Categories = nil
	assert.True(t, c.Matches(sampleProduct()))
}

func TestCriteria_Matches_CategoryIsCaseSensitive(t *testing.T) {
	c := wideCriteria()
	c.Categories = []string{"electronics"}
	assert.False(t, c.Matches(sampleProduct()))
}

func TestCriteria_Matches_PriceBoundsInclusive(t *testing.T) {
	p := sampleProduct()

	c := wideCriteria()
	c.PriceMin, c.PriceMax = 100, 200
	assert.True(t, c.Matches(p), "price equal to min bound is included")

	c.PriceMin, c.PriceMax = 50, 100
	assert.True(t, c.Matches(p), "price equal to max bound is included")

	c.PriceMin, c.PriceMax = 100.01, 200
	assert.False(t, c.Matches(p))
}

func TestCriteria_Matches_DiscountBoundsInclusive(t *testing.T) {
	p := sampleProduct()

	c := wideCriteria()
	c.DiscountMin, c.DiscountMax = 10, 10
	assert.True(t, c.Matches(p))

	c.DiscountMin, c.DiscountMax = 11, 20
	assert.False(t, c.Matches(p))
}

func TestCriteria_Matches_MinRatingThreshold(t *testing.T) {
	p := sampleProduct()

	c := wideCriteria()
	c.MinRating = 4.5
	assert.True(t, c.Matches(p), "rating equal to threshold passes")

	c.MinRating = 4.6
	assert.False(t, c.Matches(p))
}

func TestCriteria_Matches_DateBoundsInclusive(t *testing.T) {
	p := sampleProduct()

	c := wideCriteria()
	c.DateFrom = p.LaunchDate
	c.DateTo = p.LaunchDate
	assert.True(t, c.Matches(p), "launch date equal to both bounds is included")

	c.DateFrom = p.LaunchDate.AddDate(0, 0, 1)
	c.DateTo = p.LaunchDate.AddDate(0, 0, 2)
	assert.False(t, c.Matches(p))
}

func TestCriteria_Matches_StockOnlyFlag(t *testing.T) {
	p := sampleProduct()
	p.InStock = false

	c := wideCriteria()
	assert.True(t, c.Matches(p), "flag unset ignores availability")

	c.InStockOnly = true
	assert.False(t, c.Matches(p))
}

func TestCriteria_SortKey(t *testing.T) {
	p := sampleProduct()

	assert.Equal(t, p.Price, Criteria{SortBy: SortByPrice}.SortKey(p))
	assert.Equal(t, p.Rating, Criteria{SortBy: SortByRating}.SortKey(p))
	assert.Equal(t, p.Discount, Criteria{SortBy: SortByDiscount}.SortKey(p))
	assert.Equal(t, p.Price, Criteria{}.SortKey(p), "empty sort field defaults to price")
}
