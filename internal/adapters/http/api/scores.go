package api

import (
	"context"
	"net/http"

	"github.com/okian/oshichecker/internal/domain/matchscore"
)

// ScoresDependencies maps rankings to match percentages.
type ScoresDependencies interface {
	Scores(ctx context.Context, ranking []string) (matchscore.ScoreMap, error)
}

// ScoresHandler handles score requests.
type ScoresHandler struct {
	deps ScoresDependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps ScoresDependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

type scoresResponse struct {
	Scores matchscore.ScoreMap `json:"scores"`
}

// HandlePostScores handles POST /api/v1/scores.
func (h *ScoresHandler) HandlePostScores(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRanking(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	scores, err := h.deps.Scores(r.Context(), req.Ranking)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoresResponse{Scores: scores})
}
