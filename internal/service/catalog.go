package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/utafrali/catalogview/internal/domain"
	apperrors "github.com/utafrali/catalogview/pkg/errors"
)

// CatalogService implements the filter-domain derivation and the query
// engine. It holds no table itself: the catalog is explicit state passed in
// by the caller, so per-session catalogs and the shared one go through the
// same code path.
type CatalogService struct {
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(logger *slog.Logger) *CatalogService {
	return &CatalogService{logger: logger}
}

// Domains computes the inclusive filter bounds offered to the user: min/max
// observed price (rows with an unparseable price are skipped), discount, and
// launch date, plus the sorted distinct category set. A single-row catalog
// collapses each range to a point; that is not an error.
func (s *CatalogService) Domains(cat *domain.Catalog) domain.FilterDomains {
	var d domain.FilterDomains
	if cat == nil || len(cat.Products) == 0 {
		d.Categories = []string{}
		return d
	}

	categories := make(map[string]struct{})
	priceSeen := false
	first := true

	for _, p := range cat.Products {
		if p.Category != "" {
			categories[p.Category] = struct{}{}
		}

		if p.PriceKnown {
			if !priceSeen || p.Price < d.PriceMin {
				d.PriceMin = p.Price
			}
			if !priceSeen || p.Price > d.PriceMax {
				d.PriceMax = p.Price
			}
			priceSeen = true
		}

		if first {
			d.DiscountMin, d.DiscountMax = p.Discount, p.Discount
			d.DateMin, d.DateMax = p.LaunchDate, p.LaunchDate
			first = false
			continue
		}

		if p.Discount < d.DiscountMin {
			d.DiscountMin = p.Discount
		}
		if p.Discount > d.DiscountMax {
			d.DiscountMax = p.Discount
		}
		if p.LaunchDate.Before(d.DateMin) {
			d.DateMin = p.LaunchDate
		}
		if p.LaunchDate.After(d.DateMax) {
			d.DateMax = p.LaunchDate
		}
	}

	d.Categories = make([]string, 0, len(categories))
	for c := range categories {
		d.Categories = append(d.Categories, c)
	}
	sort.Strings(d.Categories)

	return d
}

// Query evaluates the conjunction of the criteria's predicates over the
// catalog and returns the survivors sorted ascending by the selected field.
// The sort is stable: ties keep the original table order, so identical
// inputs always produce identical output. An empty result is a normal
// outcome, not an error.
func (s *CatalogService) Query(ctx context.Context, cat *domain.Catalog, criteria domain.Criteria) ([]domain.Product, error) {
	if cat == nil {
		return nil, apperrors.NoCatalog()
	}
	if !domain.IsValidSortBy(criteria.SortBy) {
		return nil, apperrors.InvalidInput("sort_by must be one of: price, rating, discount")
	}
	if criteria.PriceMin > criteria.PriceMax {
		return nil, apperrors.InvalidInput("price_min must not exceed price_max")
	}
	if criteria.DiscountMin > criteria.DiscountMax {
		return nil, apperrors.InvalidInput("discount_min must not exceed discount_max")
	}
	if criteria.DateTo.Before(criteria.DateFrom) {
		return nil, apperrors.InvalidInput("date_from must not be after date_to")
	}

	matched := make([]domain.Product, 0)
	for _, p := range cat.Products {
		if criteria.Matches(p) {
			matched = append(matched, p)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return criteria.SortKey(matched[i]) < criteria.SortKey(matched[j])
	})

	s.logger.DebugContext(ctx, "query evaluated",
		slog.Int("catalog_rows", len(cat.Products)),
		slog.Int("matched", len(matched)),
		slog.String("sort_by", criteria.SortBy),
	)

	return matched, nil
}
