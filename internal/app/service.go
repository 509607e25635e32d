// Package service provides the business service behind the HTTP API: it
// owns the catalog, the score mapper and the share guard.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/oshichecker/internal/config"
	"github.com/okian/oshichecker/internal/domain/catalog"
	"github.com/okian/oshichecker/internal/domain/locale"
	"github.com/okian/oshichecker/internal/domain/matchscore"
	"github.com/okian/oshichecker/internal/domain/meta"
	"github.com/okian/oshichecker/internal/domain/result"
	"github.com/okian/oshichecker/internal/domain/share"
	"github.com/okian/oshichecker/pkg/logger"
	"github.com/okian/oshichecker/pkg/metrics"
)

// Service implements the API dependencies of the result site.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog *catalog.Catalog
	memo    *matchscore.MemoMapper
	results *result.Builder
	guard   share.Guard
	meta    *meta.Builder

	// Configuration
	catalogPath    string
	resultCount    int
	shareBaseURL   string
	shareDelay     time.Duration
	shareGuardSize int
	scoreCacheSize int
	siteURL        string
	vercelURL      string
	ogpImages      map[string]string

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig copies every service setting from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		s.catalogPath = cfg.CatalogPath
		s.shareBaseURL = cfg.ShareBaseURL
		s.shareDelay = cfg.ShareDebounce()
		s.shareGuardSize = cfg.ShareGuardSize
		s.scoreCacheSize = cfg.ScoreCacheSize
		s.siteURL = cfg.SiteURL
		s.vercelURL = cfg.VercelURL
		s.ogpImages = cfg.OGPImages
		if cfg.ResultCount > 0 {
			s.resultCount = cfg.ResultCount
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog uses c instead of loading one on Start.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		s.catalog = c
	}
}

// WithResultCount sets the podium size.
func WithResultCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.resultCount = n
		}
	}
}

// WithShareDelay sets the share guard re-arm delay. Zero disables the guard.
func WithShareDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.shareDelay = d
		}
	}
}

// WithScoreCacheSize bounds the score memo. Zero disables it.
func WithScoreCacheSize(n int) Option {
	return func(s *Service) {
		s.scoreCacheSize = n
	}
}

// WithSiteURL sets the public site URL used in page metadata.
func WithSiteURL(u string) Option {
	return func(s *Service) {
		s.siteURL = u
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		resultCount:    result.DefaultPodiumSize,
		shareBaseURL:   share.DefaultBaseURL,
		shareDelay:     share.DefaultDelay,
		shareGuardSize: 50_000,
		scoreCacheSize: 1024,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the catalog and builds the domain components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting result service...")

	if s.catalog == nil {
		c, err := s.loadCatalog()
		if err != nil {
			return fmt.Errorf("start service: %w", err)
		}
		s.catalog = c
	}
	metrics.UpdateCatalogMembers(s.catalog.Len())

	s.memo = matchscore.NewMemoMapper(matchscore.Default(), s.scoreCacheSize)
	s.results = result.NewBuilder(
		s.catalog,
		&instrumentedScorer{memo: s.memo},
		share.NewTextBuilder(s.shareBaseURL),
		s.resultCount,
	)
	if s.shareDelay > 0 {
		s.guard = share.NewDebouncer(
			share.WithDelay(s.shareDelay),
			share.WithMaxKeys(s.shareGuardSize),
		)
	}
	s.meta = meta.NewBuilder(meta.ResolveSiteURL(s.siteURL, s.vercelURL), s.ogpImages)

	s.started = true
	s.logger.Info(ctx, "result service started",
		logger.Int("members", s.catalog.Len()),
		logger.Int("resultCount", s.resultCount),
		logger.Int("scoreCacheSize", s.scoreCacheSize),
		logger.Duration("shareDelay", s.shareDelay),
		logger.String("siteURL", s.meta.SiteURL()),
	)

	return nil
}

func (s *Service) loadCatalog() (*catalog.Catalog, error) {
	if s.catalogPath == "" {
		return catalog.Default()
	}
	return catalog.Load(s.catalogPath)
}

// Stop marks the service stopped. Components hold no external resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "result service stopped")
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// Scores maps ranking to match percentages.
func (s *Service) Scores(ctx context.Context, ranking []string) (matchscore.ScoreMap, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	out, err := (&instrumentedScorer{memo: s.memo}).MapDetailed(ranking)
	if err != nil {
		s.logger.Debug(ctx, "ranking rejected", logger.Error(err))
		return nil, err
	}
	return out.Scores, nil
}

// Result assembles the result view for ranking in l.
func (s *Service) Result(ctx context.Context, l locale.Locale, ranking []string) (result.Result, error) {
	if err := s.ready(); err != nil {
		return result.Result{}, err
	}
	res, err := s.results.Build(l, ranking)
	if err != nil {
		s.logger.Debug(ctx, "result rejected", logger.String("locale", l.String()), logger.Error(err))
		return result.Result{}, err
	}
	metrics.RecordResultRendered(l.String(), res.Empty)
	s.logger.Debug(ctx, "result rendered",
		logger.String("locale", l.String()),
		logger.Int("candidates", len(ranking)),
		logger.Int("floorTies", res.FloorTies),
		logger.Bool("cached", res.Cached),
	)
	return res, nil
}

// Share renders the share block for ranking. A non-empty clientID is held
// by the share guard; a repeat inside the re-arm delay fails with
// share.ErrDebounced.
func (s *Service) Share(ctx context.Context, l locale.Locale, ranking []string, clientID string) (result.Share, error) {
	if err := s.ready(); err != nil {
		return result.Share{}, err
	}
	if s.guard != nil && clientID != "" {
		if !s.guard.Arm(ctx, clientID) {
			metrics.RecordShareDebounced()
			return result.Share{}, fmt.Errorf("%w: client %q", share.ErrDebounced, clientID)
		}
	}

	out, err := s.results.ShareText(l, ranking)
	if err != nil {
		if s.guard != nil && clientID != "" {
			s.guard.Release(ctx, clientID)
		}
		return result.Share{}, err
	}
	metrics.RecordShareIntent(l.String())
	return out, nil
}

// Meta returns the page metadata of page in l.
func (s *Service) Meta(_ context.Context, l locale.Locale, page meta.Page) (meta.Metadata, error) {
	if err := s.ready(); err != nil {
		return meta.Metadata{}, err
	}
	return s.meta.For(l, page)
}

// Catalog returns the catalog rendered in l.
func (s *Service) Catalog(_ context.Context, l locale.Locale) (catalog.View, error) {
	if err := s.ready(); err != nil {
		return catalog.View{}, err
	}
	return s.catalog.Localize(l), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"resultCount":    s.resultCount,
		"scoreCacheSize": s.scoreCacheSize,
		"shareDelayMs":   s.shareDelay.Milliseconds(),
	}

	if s.started {
		stats["catalogMembers"] = s.catalog.Len()
		stats["memoEntries"] = s.memo.Len()
		stats["siteURL"] = s.meta.SiteURL()
		if s.guard != nil {
			stats["shareGuardKeys"] = s.guard.Size()
		}
		metrics.UpdateCatalogMembers(s.catalog.Len())
	}

	return stats
}
