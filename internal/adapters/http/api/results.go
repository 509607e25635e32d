package api

import (
	"context"
	"net/http"

	"github.com/okian/oshichecker/internal/domain/locale"
	"github.com/okian/oshichecker/internal/domain/result"
)

// ResultsDependencies assembles result views.
type ResultsDependencies interface {
	Result(ctx context.Context, l locale.Locale, ranking []string) (result.Result, error)
}

// ResultsHandler handles result requests.
type ResultsHandler struct {
	deps ResultsDependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps ResultsDependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

// HandlePostResult handles POST /api/v1/results. An empty ranking is not an
// error; it renders the no-result view.
func (h *ResultsHandler) HandlePostResult(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRanking(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	l, err := requestLocale(r, req.Locale)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	res, err := h.deps.Result(r.Context(), l, req.Ranking)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
