package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/techshop/catalog/internal/service"
	"github.com/techshop/catalog/internal/syncer"
	"github.com/techshop/catalog/pkg/health"
	"github.com/techshop/catalog/pkg/middleware"
)

// NewRouter creates a chi router with all catalog routes registered.
func NewRouter(
	catalog *service.CatalogService,
	sync *syncer.Synchronizer,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	productHandler := NewProductHandler(catalog, sync, logger)
	categoryHandler := NewCategoryHandler(catalog, logger)

	r.Route("/v1/api", func(r chi.Router) {
		r.Get("/products", productHandler.List)
		r.Post("/products/reindex", productHandler.Reindex)
		r.Get("/categories", categoryHandler.List)
	})

	return r
}
