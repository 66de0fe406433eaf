package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/catalogview/internal/session"
	"github.com/utafrali/catalogview/pkg/health"
	"github.com/utafrali/catalogview/pkg/middleware"
)

// NewRouter creates a chi router with all catalog viewer routes registered.
func NewRouter(
	catalogHandler *CatalogHandler,
	wishlistHandler *WishlistHandler,
	healthHandler *health.Handler,
	sessions *session.Store,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("catalog-viewer"))

	// Health check and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Catalog API endpoints. The upload route takes multipart bodies, so the
	// JSON content-type guard only wraps the JSON routes.
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Use(WithSession(sessions))
		r.Use(middleware.RequestLogger(logger))

		r.Post("/", catalogHandler.Upload)

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Get("/domains", catalogHandler.Domains)
			r.Post("/query", catalogHandler.Query)
		})
	})

	// Wishlist API endpoints
	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Use(WithSession(sessions))
		r.Use(middleware.RequestLogger(logger))
		r.Use(ContentTypeJSON)

		r.Get("/", wishlistHandler.List)
		r.Post("/items", wishlistHandler.AddItem)
	})

	return r
}
