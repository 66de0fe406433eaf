package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/utafrali/catalogview/internal/domain"
	"github.com/utafrali/catalogview/internal/ingest"
	"github.com/utafrali/catalogview/internal/presenter"
	"github.com/utafrali/catalogview/internal/service"
	apperrors "github.com/utafrali/catalogview/pkg/errors"
	"github.com/utafrali/catalogview/pkg/httputil"
	"github.com/utafrali/catalogview/pkg/validator"
)

// NoMatchesMessage is returned alongside an empty (and perfectly valid)
// query result.
const NoMatchesMessage = "No products match your criteria."

const dateLayout = "2006-01-02"

// CatalogHandler handles HTTP requests for catalog endpoints.
type CatalogHandler struct {
	loader    *ingest.Loader
	service   *service.CatalogService
	shared    *domain.Catalog
	maxUpload int64
	logger    *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler. shared is the
// catalog loaded from the configured path at startup, or nil when sessions
// must upload their own.
func NewCatalogHandler(loader *ingest.Loader, svc *service.CatalogService, shared *domain.Catalog, maxUpload int64, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		loader:    loader,
		service:   svc,
		shared:    shared,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// --- Request/response DTOs ---

// QueryRequest is the JSON request body for applying filters. Omitted bounds
// default to the catalog's derived domains, mirroring the untouched sidebar.
type QueryRequest struct {
	Categories  []string `json:"categories"`
	PriceMin    *float64 `json:"price_min"`
	PriceMax    *float64 `json:"price_max"`
	DiscountMin *float64 `json:"discount_min"`
	DiscountMax *float64 `json:"discount_max"`
	MinRating   *float64 `json:"min_rating" validate:"omitempty,gte=0,lte=5"`
	DateFrom    *string  `json:"date_from"`
	DateTo      *string  `json:"date_to"`
	InStockOnly *bool    `json:"in_stock_only"`
	SortBy      string   `json:"sort_by" validate:"omitempty,oneof=price rating discount"`
}

// QueryResponse is the payload returned by the query endpoint.
type QueryResponse struct {
	Products []presenter.Card `json:"products"`
	Count    int              `json:"count"`
	Message  string           `json:"message,omitempty"`
}

// DomainsResponse is the payload returned by the domains endpoint. Defaults
// carries the initial filter selection so clients can render an untouched
// sidebar without hardcoding it.
type DomainsResponse struct {
	domain.FilterDomains
	Defaults QueryDefaults `json:"defaults"`
}

// QueryDefaults is the initial filter selection offered to new sessions.
type QueryDefaults struct {
	MinRating   float64 `json:"min_rating"`
	InStockOnly bool    `json:"in_stock_only"`
	SortBy      string  `json:"sort_by"`
}

// UploadResponse is the payload returned after a successful catalog upload.
type UploadResponse struct {
	Rows    int    `json:"rows"`
	Message string `json:"message"`
}

// --- Handlers ---

// Upload handles POST /api/v1/catalog
// Accepts a multipart form with an .xlsx file and loads it as the calling
// session's catalog. Schema and load failures reject the whole table.
func (h *CatalogHandler) Upload(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Internal(errors.New("no session in context")), h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("a spreadsheet file is required in the \"file\" field"), h.logger)
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		httputil.WriteError(w, r, apperrors.InvalidInput("only .xlsx files are accepted"), h.logger)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		httputil.WriteError(w, r, apperrors.LoadFailed(err), h.logger)
		return
	}

	cat, err := h.loader.Load(r.Context(), ingest.BytesSource(data))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sess.SetCatalog(cat)

	h.logger.InfoContext(r.Context(), "session catalog uploaded",
		slog.String("filename", header.Filename),
		slog.Int("rows", cat.Len()),
	)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: UploadResponse{
		Rows:    cat.Len(),
		Message: "Catalog loaded.",
	}})
}

// Domains handles GET /api/v1/catalog/domains
// Returns the filter bounds derived from the session's catalog. These double
// as the default, unfiltered selection.
func (h *CatalogHandler) Domains(w http.ResponseWriter, r *http.Request) {
	cat, err := h.sessionCatalog(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: DomainsResponse{
		FilterDomains: h.service.Domains(cat),
		Defaults: QueryDefaults{
			MinRating:   5,
			InStockOnly: true,
			SortBy:      domain.SortByPrice,
		},
	}})
}

// Query handles POST /api/v1/catalog/query
// This is the explicit apply trigger: nothing is filtered until it is
// called. Zero matches is a valid, displayed state.
func (h *CatalogHandler) Query(w http.ResponseWriter, r *http.Request) {
	cat, err := h.sessionCatalog(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req QueryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	criteria, err := h.buildCriteria(cat, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products, err := h.service.Query(r.Context(), cat, criteria)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp := QueryResponse{
		Products: presenter.Cards(products),
		Count:    len(products),
	}
	if resp.Count == 0 {
		resp.Message = NoMatchesMessage
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: resp})
}

// buildCriteria fills omitted request fields from the catalog's derived
// domains so that an empty body selects everything.
func (h *CatalogHandler) buildCriteria(cat *domain.Catalog, req QueryRequest) (domain.Criteria, error) {
	d := h.service.Domains(cat)

	c := domain.Criteria{
		Categories:  req.Categories,
		PriceMin:    d.PriceMin,
		PriceMax:    d.PriceMax,
		DiscountMin: d.DiscountMin,
		DiscountMax: d.DiscountMax,
		DateFrom:    d.DateMin,
		DateTo:      d.DateMax,
		SortBy:      req.SortBy,
	}

	if req.PriceMin != nil {
		c.PriceMin = *req.PriceMin
	}
	if req.PriceMax != nil {
		c.PriceMax = *req.PriceMax
	}
	if req.DiscountMin != nil {
		c.DiscountMin = *req.DiscountMin
	}
	if req.DiscountMax != nil {
		c.DiscountMax = *req.DiscountMax
	}
	if req.MinRating != nil {
		c.MinRating = *req.MinRating
	}
	if req.InStockOnly != nil {
		c.InStockOnly = *req.InStockOnly
	}

	if req.DateFrom != nil {
		t, err := time.Parse(dateLayout, *req.DateFrom)
		if err != nil {
			return c, apperrors.InvalidInput("date_from must be formatted as YYYY-MM-DD")
		}
		c.DateFrom = t.UTC()
	}
	if req.DateTo != nil {
		t, err := time.Parse(dateLayout, *req.DateTo)
		if err != nil {
			return c, apperrors.InvalidInput("date_to must be formatted as YYYY-MM-DD")
		}
		c.DateTo = t.UTC()
	}

	return c, nil
}

// sessionCatalog resolves the catalog visible to the calling session: its
// own upload if present, else the shared startup catalog.
func (h *CatalogHandler) sessionCatalog(r *http.Request) (*domain.Catalog, error) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		return nil, apperrors.Internal(errors.New("no session in context"))
	}

	cat := sess.Catalog(h.shared)
	if cat == nil {
		return nil, apperrors.NoCatalog()
	}
	return cat, nil
}
