package ingest

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/utafrali/catalogview/internal/domain"
)

// normalizeRow coerces one raw row into a typed product. A malformed cell
// degrades to its documented default; the row is always kept.
func (l *Loader) normalizeRow(ctx context.Context, row []string, cols columns, rowNum int) domain.Product {
	p := domain.Product{
		ID:       cols.cell(row, "Product ID"),
		Name:     cols.cell(row, "Product Name"),
		Category: cols.cell(row, "Category"),
		Features: cols.cell(row, "Features"),
		ImageURL: cols.cell(row, "Image URL"),
	}

	p.Price, p.PriceKnown = parsePrice(cols.cell(row, "Price"))
	if !p.PriceKnown {
		l.degraded(ctx, rowNum, "Price")
	}

	var ok bool
	if p.Discount, ok = parseDecimal(cols.cell(row, "Discount")); !ok {
		l.degraded(ctx, rowNum, "Discount")
	}

	p.InStock, p.StockQty = parseStock(cols.cell(row, "Stock"))

	if p.Rating, ok = parseRating(cols.cell(row, "Rating")); !ok {
		l.degraded(ctx, rowNum, "Rating")
	}

	if p.LaunchDate, ok = parseDate(cols.cell(row, "Launch Date")); !ok {
		l.degraded(ctx, rowNum, "Launch Date")
	}

	return p
}

func (l *Loader) degraded(ctx context.Context, rowNum int, column string) {
	cellsDegradedTotal.WithLabelValues(column).Inc()
	l.logger.DebugContext(ctx, "cell degraded to default",
		slog.Int("row", rowNum),
		slog.String("column", column),
	)
}

// currencyReplacer strips currency symbols, thousands separators, and spacing
// from price text before numeric parsing.
var currencyReplacer = strings.NewReplacer(
	"₹", "",
	"$", "",
	"€", "",
	"£", "",
	",", "",
	" ", "",
	" ", "",
)

// parsePrice parses a possibly currency-formatted price cell. Unparseable
// cells degrade to 0 and are marked unknown so the domain deriver can skip
// them.
func parsePrice(s string) (float64, bool) {
	v, err := strconv.ParseFloat(currencyReplacer.Replace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseDecimal parses a plain decimal cell, degrading to 0.
func parseDecimal(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseStock reduces either observed Stock encoding to availability: a
// numeric quantity (available when > 0, quantity retained for display) or a
// status string (available only when it equals "in stock",
// case-insensitive).
func parseStock(s string) (inStock bool, qty int) {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v > 0, int(v)
	}
	return strings.EqualFold(s, "in stock"), 0
}

// parseRating parses a 0-5 rating, clamping out-of-range values and
// degrading unparseable cells to 0.
func parseRating(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if v < 0 {
		return 0, true
	}
	if v > 5 {
		return 5, true
	}
	return v, true
}

// dateLayouts covers the formats excelize renders date cells in, plus the
// common textual forms seen in hand-edited sheets.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01-02-06",
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// parseDate parses a calendar date, degrading to the fixed sentinel.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return domain.DateSentinel, false
}

// rescaleFractionalDiscounts converts a 0-1 fractional Discount column to the
// 0-100 percentage scale. The decision is taken over the whole column so a
// legitimate sub-1% discount in a percentage-scale sheet is left alone.
func rescaleFractionalDiscounts(products []domain.Product) {
	fractional := false
	for i := range products {
		if products[i].Discount > 1 {
			return
		}
		if products[i].Discount > 0 {
			fractional = true
		}
	}
	if !fractional {
		return
	}
	for i := range products {
		products[i].Discount *= 100
	}
}
