package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/utafrali/catalogview/internal/config"
	"github.com/utafrali/catalogview/internal/domain"
	handler "github.com/utafrali/catalogview/internal/handler/http"
	"github.com/utafrali/catalogview/internal/ingest"
	"github.com/utafrali/catalogview/internal/service"
	"github.com/utafrali/catalogview/internal/session"
	"github.com/utafrali/catalogview/pkg/health"
)

// App wires together all dependencies and runs the catalog viewer service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	sessions   *session.Store
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
// When a catalog path is configured, the shared catalog is loaded here; a
// load or schema failure aborts startup rather than serving half a catalog.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	loader := ingest.NewLoader(logger)

	// Shared startup catalog. Read-only after this point.
	var shared *domain.Catalog
	if cfg.CatalogPath != "" {
		cat, err := loader.Load(ctx, ingest.PathSource(cfg.CatalogPath))
		if err != nil {
			return nil, fmt.Errorf("load catalog from %s: %w", cfg.CatalogPath, err)
		}
		shared = cat
		logger.Info("shared catalog loaded",
			slog.String("path", cfg.CatalogPath),
			slog.Int("rows", cat.Len()),
		)
	} else {
		logger.Info("no catalog path configured, sessions must upload a spreadsheet")
	}

	// Build the dependency graph.
	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessions := session.NewStore(sessionTTL, logger)
	catalogService := service.NewCatalogService(logger)
	wishlistService := service.NewWishlistService(logger)

	catalogHandler := handler.NewCatalogHandler(loader, catalogService, shared, cfg.MaxUploadBytes, logger)
	wishlistHandler := handler.NewWishlistHandler(wishlistService, shared, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("catalog", func(ctx context.Context) error {
		if cfg.CatalogPath != "" && shared == nil {
			return errors.New("shared catalog not loaded")
		}
		return nil
	})

	// HTTP router.
	router := handler.NewRouter(catalogHandler, wishlistHandler, healthHandler, sessions, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		sessions:   sessions,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and the session sweeper and blocks until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	sweepCtx, cancelSweep := context.WithCancel(ctx)
	defer cancelSweep()
	go a.sessions.Run(sweepCtx)

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete",
		slog.Int("live_sessions_discarded", a.sessions.Len()),
	)
	return nil
}
