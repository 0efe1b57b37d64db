package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/techshop/catalog/internal/domain"
	"github.com/techshop/catalog/internal/service"
	"github.com/techshop/catalog/internal/syncer"
	"github.com/techshop/catalog/pkg/httputil"
)

// reindexTimeout bounds the background rebuild triggered over HTTP.
const reindexTimeout = 5 * time.Minute

// ProductHandler serves the catalog's product listing and the administrative
// reindex trigger.
type ProductHandler struct {
	catalog *service.CatalogService
	sync    *syncer.Synchronizer
	logger  *slog.Logger
}

// NewProductHandler creates a product HTTP handler.
func NewProductHandler(catalog *service.CatalogService, sync *syncer.Synchronizer, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		sync:    sync,
		logger:  logger,
	}
}

// List handles GET /v1/api/products.
//
// All query parameters are optional and parsed permissively. source=store
// routes the query directly to the primary store instead of the search
// index; for queries without free text the two return the same results.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := domain.ParseCatalogQuery(r.URL.Query())

	var (
		page *domain.ProductPage
		err  error
	)
	if r.URL.Query().Get("source") == "store" {
		page, err = h.catalog.SearchStore(r.Context(), q)
	} else {
		page, err = h.catalog.Search(r.Context(), q)
	}
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, page)
}

// Reindex handles POST /v1/api/products/reindex. The rebuild runs in the
// background; the response only acknowledges that it started.
func (h *ProductHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reindexTimeout)
		defer cancel()
		if err := h.sync.Run(ctx); err != nil {
			h.logger.Error("background reindex failed", slog.String("error", err.Error()))
		}
	}()

	httputil.WriteData(w, http.StatusAccepted, map[string]string{"status": "reindex started"})
}
