package http

import (
	"log/slog"
	"net/http"

	"github.com/techshop/catalog/internal/service"
	"github.com/techshop/catalog/pkg/httputil"
)

// CategoryHandler serves the category listing.
type CategoryHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewCategoryHandler creates a category HTTP handler.
func NewCategoryHandler(catalog *service.CatalogService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// List handles GET /v1/api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, map[string]any{"categories": categories})
}
