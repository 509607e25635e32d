// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/okian/oshichecker/internal/domain/catalog"
	"github.com/okian/oshichecker/internal/domain/locale"
	"github.com/okian/oshichecker/internal/domain/matchscore"
	"github.com/okian/oshichecker/internal/domain/meta"
	"github.com/okian/oshichecker/internal/domain/result"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// MaxClientIDLength bounds client_id, which the share guard keeps as a key.
const MaxClientIDLength = 128

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Scores(ctx context.Context, ranking []string) (matchscore.ScoreMap, error)
	Result(ctx context.Context, l locale.Locale, ranking []string) (result.Result, error)
	Share(ctx context.Context, l locale.Locale, ranking []string, clientID string) (result.Share, error)
	Meta(ctx context.Context, l locale.Locale, page meta.Page) (meta.Metadata, error)
	Catalog(ctx context.Context, l locale.Locale) (catalog.View, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	scoresHandler  *ScoresHandler
	resultsHandler *ResultsHandler
	shareHandler   *ShareHandler
	metaHandler    *MetaHandler
	catalogHandler *CatalogHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		scoresHandler:  NewScoresHandler(deps),
		resultsHandler: NewResultsHandler(deps),
		shareHandler:   NewShareHandler(deps),
		metaHandler:    NewMetaHandler(deps),
		catalogHandler: NewCatalogHandler(deps),
	}
}

// Register attaches all API routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", MetricsMiddleware(s.catalogHandler.HandleGetCatalog, "catalog"))
		r.Post("/scores", MetricsMiddleware(s.scoresHandler.HandlePostScores, "scores"))
		r.Post("/results", MetricsMiddleware(s.resultsHandler.HandlePostResult, "results"))
		r.Post("/share", MetricsMiddleware(s.shareHandler.HandlePostShare, "share"))
		r.Get("/meta/{locale}/{page}", MetricsMiddleware(s.metaHandler.HandleGetMeta, "meta"))
	})
}

// rankingRequest is the body shared by the ranking endpoints.
type rankingRequest struct {
	Locale   string   `json:"locale"`
	Ranking  []string `json:"ranking"`
	ClientID string   `json:"client_id"`
}

func decodeRanking(r *http.Request) (rankingRequest, error) {
	var req rankingRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return rankingRequest{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if req.Ranking == nil {
		return rankingRequest{}, fmt.Errorf("%w: missing ranking", ErrBadRequest)
	}
	if len(req.ClientID) > MaxClientIDLength {
		return rankingRequest{}, fmt.Errorf("%w: client_id longer than %d bytes", ErrBadRequest, MaxClientIDLength)
	}
	return req, nil
}

// requestLocale validates an explicit locale, or negotiates one from the
// Accept-Language header when none was given.
func requestLocale(r *http.Request, explicit string) (locale.Locale, error) {
	if strings.TrimSpace(explicit) == "" {
		return locale.Negotiate(r.Header.Get("Accept-Language")), nil
	}
	return locale.Parse(explicit)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError classifies err and writes the matching error body.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}
