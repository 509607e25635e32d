package api

import (
	"context"
	"net/http"

	"github.com/okian/oshichecker/internal/domain/locale"
	"github.com/okian/oshichecker/internal/domain/result"
)

// ShareDependencies renders share intents.
type ShareDependencies interface {
	Share(ctx context.Context, l locale.Locale, ranking []string, clientID string) (result.Share, error)
}

// ShareHandler handles share requests.
type ShareHandler struct {
	deps ShareDependencies
}

// NewShareHandler creates a new share handler.
func NewShareHandler(deps ShareDependencies) *ShareHandler {
	return &ShareHandler{deps: deps}
}

// HandlePostShare handles POST /api/v1/share. Repeats from the same
// client_id inside the re-arm delay get 429.
func (h *ShareHandler) HandlePostShare(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRanking(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	if len(req.Ranking) == 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, ErrBadRequest)
		return
	}
	l, err := requestLocale(r, req.Locale)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out, err := h.deps.Share(r.Context(), l, req.Ranking, req.ClientID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
