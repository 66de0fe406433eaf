package service

import (
	"context"
	"log/slog"

	"github.com/utafrali/catalogview/internal/domain"
	"github.com/utafrali/catalogview/internal/session"
	apperrors "github.com/utafrali/catalogview/pkg/errors"
)

// WishlistService implements the per-session wishlist operations. The state
// lives in the session object passed in by the handler; there is no
// process-wide wishlist. There is deliberately no removal operation.
type WishlistService struct {
	logger *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(logger *slog.Logger) *WishlistService {
	return &WishlistService{logger: logger}
}

// Add looks up the product by ID in the session's catalog and appends its
// name to the session wishlist. Adding a product that is already listed is a
// no-op; the name keeps its original insertion position. Returns the product
// name, whether it was newly added, and the resulting wishlist.
func (s *WishlistService) Add(ctx context.Context, sess *session.Session, cat *domain.Catalog, productID string) (string, bool, []string, error) {
	if productID == "" {
		return "", false, nil, apperrors.InvalidInput("product id is required")
	}
	if cat == nil {
		return "", false, nil, apperrors.NoCatalog()
	}

	p := cat.FindByID(productID)
	if p == nil {
		return "", false, nil, apperrors.NotFound("product", productID)
	}

	added := sess.AddToWishlist(p.Name)
	if added {
		s.logger.InfoContext(ctx, "product added to wishlist",
			slog.String("product_id", p.ID),
			slog.String("product_name", p.Name),
		)
	}

	return p.Name, added, sess.WishlistNames(), nil
}

// List returns the session's wishlist in insertion order.
func (s *WishlistService) List(ctx context.Context, sess *session.Session) []string {
	return sess.WishlistNames()
}
