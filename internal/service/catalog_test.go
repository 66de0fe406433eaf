package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/catalogview/internal/domain"
	apperrors "github.com/utafrali/catalogview/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// wideCriteria admits every product in testCatalog and sorts by price.
func wideCriteria() domain.Criteria {
	return domain.Criteria{
		PriceMax:    1_000_000,
		DiscountMax: 100,
		DateFrom:    date(1990, time.January, 1),
		DateTo:      date(2100, time.January, 1),
		SortBy:      domain.SortByPrice,
	}
}

func testCatalog() *domain.Catalog {
	return &domain.Catalog{Products: []domain.Product{
		{ID: "A", Name: "Laptop", Category: "Electronics", Price: 1200, PriceKnown: true,
			Discount: 10, InStock: true, Rating: 4.6, LaunchDate: date(2024, time.March, 1)},
		{ID: "B", Name: "Novel", Category: "Books", Price: 20, PriceKnown: true,
			Discount: 0, InStock: true, Rating: 4.9, LaunchDate: date(2021, time.June, 15)},
		{ID: "C", Name: "Headphones", Category: "Electronics", Price: 150, PriceKnown: true,
			Discount: 25, InStock: false, Rating: 3.9, LaunchDate: date(2023, time.November, 20)},
	}}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

// ============================================================================
// Query
// ============================================================================

func TestQuery_ConjunctionOfPredicates(t *testing.T) {
	svc := NewCatalogService(testLogger())

	// Category and rating each admit two products, but only A survives both.
	c := wideCriteria()
	c.Categories = []string{"Electronics"}
	c.MinRating = 4.0

	got, err := svc.Query(context.Background(), testCatalog(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ids(got))
}

func TestQuery_WideCriteriaReturnsWholeCatalogSorted(t *testing.T) {
	svc := NewCatalogService(testLogger())

	got, err := svc.Query(context.Background(), testCatalog(), wideCriteria())
	require.NoError(t, err)

	// Ascending by price: Novel 20, Headphones 150, Laptop 1200.
	assert.Equal(t, []string{"B", "C", "A"}, ids(got))
}

func TestQuery_Deterministic(t *testing.T) {
	svc := NewCatalogService(testLogger())
	cat := testCatalog()
	c := wideCriteria()
	c.SortBy = domain.SortByRating

	first, err := svc.Query(context.Background(), cat, c)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := svc.Query(context.Background(), cat, c)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestQuery_StableSortKeepsTableOrderOnTies(t *testing.T) {
	svc := NewCatalogService(testLogger())
	cat := &domain.Catalog{Products: []domain.Product{
		{ID: "X", Price: 50, PriceKnown: true, InStock: true, LaunchDate: date(2024, time.January, 1)},
		{ID: "Y", Price: 50, PriceKnown: true, InStock: true, LaunchDate: date(2024, time.January, 1)},
		{ID: "Z", Price: 50, PriceKnown: true, InStock: true, LaunchDate: date(2024, time.January, 1)},
	}}
	c := wideCriteria()

	got, err := svc.Query(context.Background(), cat, c)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y", "Z"}, ids(got))
}

func TestQuery_PriceBoundsInclusive(t *testing.T) {
	svc := NewCatalogService(testLogger())
	cat := &domain.Catalog{Products: []domain.Product{
		{ID: "P10", Price: 10, PriceKnown: true, InStock: true, LaunchDate: date(2024, time.January, 1)},
		{ID: "P20", Price: 20, PriceKnown: true, InStock: true, LaunchDate: date(2024, time.January, 1)},
		{ID: "P30", Price: 30, PriceKnown: true, InStock: true, LaunchDate: date(2024, time.January, 1)},
	}}

	c := wideCriteria()
	c.PriceMin, c.PriceMax = 10, 30
	got, err := svc.Query(context.Background(), cat, c)
	require.NoError(t, err)
	assert.Equal(t, []string{"P10", "P20", "P30"}, ids(got), "both boundary values must be admitted")

	c.PriceMin, c.PriceMax = 10.01, 29.99
	got, err = svc.Query(context.Background(), cat, c)
	require.NoError(t, err)
	assert.Equal(t, []string{"P20"}, ids(got))
}

func TestQuery_EmptyResultIsNotAnError(t *testing.T) {
	svc := NewCatalogService(testLogger())

	c := wideCriteria()
	c.PriceMin, c.PriceMax = 5000, 6000

	got, err := svc.Query(context.Background(), testCatalog(), c)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQuery_NilCatalog(t *testing.T) {
	svc := NewCatalogService(testLogger())

	_, err := svc.Query(context.Background(), nil, wideCriteria())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NO_CATALOG", appErr.Code)
}

func TestQuery_InvalidCriteria(t *testing.T) {
	svc := NewCatalogService(testLogger())

	tests := []struct {
		name   string
		mutate func(*domain.Criteria)
	}{
		{"unknown sort field", func(c *domain.Criteria) { c.SortBy = "name" }},
		{"reversed price range", func(c *domain.Criteria) { c.PriceMin, c.PriceMax = 30, 10 }},
		{"reversed discount range", func(c *domain.Criteria) { c.DiscountMin, c.DiscountMax = 50, 10 }},
		{"reversed date range", func(c *domain.Criteria) {
			c.DateFrom, c.DateTo = date(2024, time.June, 1), date(2024, time.January, 1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := wideCriteria()
			tt.mutate(&c)
			_, err := svc.Query(context.Background(), testCatalog(), c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestQuery_DefaultSortIsPrice(t *testing.T) {
	svc := NewCatalogService(testLogger())

	c := wideCriteria()
	c.SortBy = ""

	got, err := svc.Query(context.Background(), testCatalog(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, ids(got))
}

// ============================================================================
// Domains
// ============================================================================

func TestDomains_DerivesBoundsAndCategories(t *testing.T) {
	svc := NewCatalogService(testLogger())

	d := svc.Domains(testCatalog())

	assert.Equal(t, []string{"Books", "Electronics"}, d.Categories)
	assert.Equal(t, 20.0, d.PriceMin)
	assert.Equal(t, 1200.0, d.PriceMax)
	assert.Equal(t, 0.0, d.DiscountMin)
	assert.Equal(t, 25.0, d.DiscountMax)
	assert.Equal(t, date(2021, time.June, 15), d.DateMin)
	assert.Equal(t, date(2024, time.March, 1), d.DateMax)
}

func TestDomains_SkipsUnknownPrices(t *testing.T) {
	svc := NewCatalogService(testLogger())
	cat := &domain.Catalog{Products: []domain.Product{
		{ID: "A", Price: 0, PriceKnown: false, LaunchDate: domain.DateSentinel},
		{ID: "B", Price: 100, PriceKnown: true, LaunchDate: domain.DateSentinel},
		{ID: "C", Price: 300, PriceKnown: true, LaunchDate: domain.DateSentinel},
	}}

	d := svc.Domains(cat)

	// The degraded zero must not drag the lower bound down.
	assert.Equal(t, 100.0, d.PriceMin)
	assert.Equal(t, 300.0, d.PriceMax)
}

func TestQuery_DegradedPriceRowFallsOutsideDerivedBounds(t *testing.T) {
	// A row whose Price cell failed to parse filters as 0 but is excluded
	// from the derived bounds. Querying with exactly those bounds therefore
	// drops it; the row comes back only when the lower bound reaches 0.
	svc := NewCatalogService(testLogger())
	cat := &domain.Catalog{Products: []domain.Product{
		{ID: "D", Price: 0, PriceKnown: false, InStock: true, LaunchDate: domain.DateSentinel},
		{ID: "K1", Price: 100, PriceKnown: true, InStock: true, LaunchDate: domain.DateSentinel},
		{ID: "K2", Price: 300, PriceKnown: true, InStock: true, LaunchDate: domain.DateSentinel},
	}}

	d := svc.Domains(cat)
	require.Equal(t, 100.0, d.PriceMin)
	require.Equal(t, 300.0, d.PriceMax)

	c := wideCriteria()
	c.PriceMin, c.PriceMax = d.PriceMin, d.PriceMax
	got, err := svc.Query(context.Background(), cat, c)
	require.NoError(t, err)
	assert.Equal(t, []string{"K1", "K2"}, ids(got))

	c.PriceMin = 0
	got, err = svc.Query(context.Background(), cat, c)
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "K1", "K2"}, ids(got))
}

func TestDomains_SingleRowCollapsesToPoint(t *testing.T) {
	svc := NewCatalogService(testLogger())
	cat := &domain.Catalog{Products: []domain.Product{
		{ID: "A", Category: "Toys", Price: 42, PriceKnown: true, Discount: 5,
			LaunchDate: date(2024, time.May, 5)},
	}}

	d := svc.Domains(cat)

	assert.Equal(t, d.PriceMin, d.PriceMax)
	assert.Equal(t, d.DiscountMin, d.DiscountMax)
	assert.Equal(t, d.DateMin, d.DateMax)
	assert.Equal(t, []string{"Toys"}, d.Categories)
}

func TestDomains_EmptyCatalog(t *testing.T) {
	svc := NewCatalogService(testLogger())

	d := svc.Domains(&domain.Catalog{})

	assert.NotNil(t, d.Categories)
	assert.Empty(t, d.Categories)
	assert.Zero(t, d.PriceMin)
	assert.Zero(t, d.PriceMax)
}

func TestDomains_SkipsEmptyCategory(t *testing.T) {
	svc := NewCatalogService(testLogger())
	cat := &domain.Catalog{Products: []domain.Product{
		{ID: "A", Category: "", Price: 10, PriceKnown: true, LaunchDate: domain.DateSentinel},
		{ID: "B", Category: "Books", Price: 20, PriceKnown: true, LaunchDate: domain.DateSentinel},
	}}

	d := svc.Domains(cat)

	assert.Equal(t, []string{"Books"}, d.Categories)
}
