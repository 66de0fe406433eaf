package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/utafrali/catalogview/internal/domain"
	"github.com/utafrali/catalogview/internal/service"
	apperrors "github.com/utafrali/catalogview/pkg/errors"
	"github.com/utafrali/catalogview/pkg/httputil"
	"github.com/utafrali/catalogview/pkg/validator"
)

// WishlistHandler handles HTTP requests for the session wishlist.
type WishlistHandler struct {
	service *service.WishlistService
	shared  *domain.Catalog
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, shared *domain.Catalog, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: svc,
		shared:  shared,
		logger:  logger,
	}
}

// AddItemRequest is the JSON request body for adding a product to the wishlist.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// WishlistResponse is the payload returned by the wishlist endpoints.
type WishlistResponse struct {
	Wishlist []string `json:"wishlist"`
	Message  string   `json:"message,omitempty"`
}

// AddItem handles POST /api/v1/wishlist/items
// Adds the named product to the calling session's wishlist. The operation is
// idempotent: re-adding keeps the single original entry in place.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Internal(errors.New("no session in context")), h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	name, added, names, err := h.service.Add(r.Context(), sess, sess.Catalog(h.shared), req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp := WishlistResponse{Wishlist: names}
	if added {
		resp.Message = fmt.Sprintf("%s added to your Wishlist!", name)
	} else {
		resp.Message = fmt.Sprintf("%s is already in your Wishlist.", name)
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: resp})
}

// List handles GET /api/v1/wishlist
// Returns the session's wishlist in insertion order.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Internal(errors.New("no session in context")), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: WishlistResponse{
		Wishlist: h.service.List(r.Context(), sess),
	}})
}
