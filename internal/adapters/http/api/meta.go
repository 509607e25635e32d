package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/oshichecker/internal/domain/locale"
	"github.com/okian/oshichecker/internal/domain/meta"
)

// MetaDependencies renders page metadata.
type MetaDependencies interface {
	Meta(ctx context.Context, l locale.Locale, page meta.Page) (meta.Metadata, error)
}

// MetaHandler handles page metadata requests.
type MetaHandler struct {
	deps MetaDependencies
}

// NewMetaHandler creates a new meta handler.
func NewMetaHandler(deps MetaDependencies) *MetaHandler {
	return &MetaHandler{deps: deps}
}

// HandleGetMeta handles GET /api/v1/meta/{locale}/{page}.
func (h *MetaHandler) HandleGetMeta(w http.ResponseWriter, r *http.Request) {
	l, err := locale.Parse(chi.URLParam(r, "locale"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	page, err := meta.ParsePage(chi.URLParam(r, "page"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	m, err := h.deps.Meta(r.Context(), l, page)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
