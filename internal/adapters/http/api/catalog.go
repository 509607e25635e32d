package api

import (
	"context"
	"net/http"

	"github.com/okian/oshichecker/internal/domain/catalog"
	"github.com/okian/oshichecker/internal/domain/locale"
)

// CatalogDependencies exposes the localized catalog.
type CatalogDependencies interface {
	Catalog(ctx context.Context, l locale.Locale) (catalog.View, error)
}

// CatalogHandler handles catalog requests.
type CatalogHandler struct {
	deps CatalogDependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

// HandleGetCatalog handles GET /api/v1/catalog?locale=.
func (h *CatalogHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	l, err := requestLocale(r, r.URL.Query().Get("locale"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	v, err := h.deps.Catalog(r.Context(), l)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
