// Package metrics provides Prometheus metrics for the oshichecker service.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	rankingBuckets   []float64
	registry         prometheus.Registerer

	// Scoring
	scoresMapped    prometheus.Counter
	rankingLength   prometheus.Histogram
	floorTies       prometheus.Counter
	memoHits        prometheus.Counter
	memoMisses      prometheus.Counter
	rankingRejected *prometheus.CounterVec

	// Results and sharing
	resultsRendered *prometheus.CounterVec
	shareIntents    *prometheus.CounterVec
	sharesDebounced prometheus.Counter
	catalogMembers  prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "oshichecker",
		subsystem:        "result",
		histogramBuckets: prometheus.DefBuckets,
		rankingBuckets:   prometheus.LinearBuckets(0, 10, 11),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.scoresMapped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_maps_total",
		Help:      "Total number of rankings mapped to match percentages",
	})
	m.rankingLength = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_length",
		Help:      "Number of candidates per mapped ranking",
		Buckets:   m.rankingBuckets,
	})
	m.floorTies = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "floor_ties_total",
		Help:      "Candidates whose corrected score fell below the floor and were clamped",
	})
	m.memoHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_memo_hits_total",
		Help:      "Score map lookups served from the memo cache",
	})
	m.memoMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_memo_misses_total",
		Help:      "Score map lookups that had to be computed",
	})
	m.rankingRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rankings_rejected_total",
		Help:      "Rankings rejected by validation, by reason",
	}, []string{"reason"})

	m.resultsRendered = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "results_rendered_total",
		Help:      "Result views assembled, by locale and outcome",
	}, []string{"locale", "outcome"})
	m.shareIntents = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "share_intents_total",
		Help:      "Share intent URLs issued, by locale",
	}, []string{"locale"})
	m.sharesDebounced = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "shares_debounced_total",
		Help:      "Share requests refused because the guard had not re-armed",
	})
	m.catalogMembers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_members",
		Help:      "Number of members in the loaded catalog",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "HTTP errors by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Heap bytes currently allocated",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Number of goroutines",
	})
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_milliseconds",
		Help:      "Average GC pause in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Scoring.

// RecordScoreMap records one mapped ranking of n candidates, of which
// floorTies were clamped up to the lower bound.
func RecordScoreMap(n, floorTies int) {
	globalManager.scoresMapped.Inc()
	globalManager.rankingLength.Observe(float64(n))
	if floorTies > 0 {
		globalManager.floorTies.Add(float64(floorTies))
	}
}

// RecordMemoHit counts a memoized score map lookup.
func RecordMemoHit() { globalManager.memoHits.Inc() }

// RecordMemoMiss counts a score map that had to be computed.
func RecordMemoMiss() { globalManager.memoMisses.Inc() }

// RecordRankingRejected counts a ranking refused by validation.
func RecordRankingRejected(reason string) {
	globalManager.rankingRejected.WithLabelValues(reason).Inc()
}

// Results and sharing.

// RecordResultRendered counts an assembled result view.
func RecordResultRendered(locale string, empty bool) {
	outcome := "ok"
	if empty {
		outcome = "empty"
	}
	globalManager.resultsRendered.WithLabelValues(locale, outcome).Inc()
}

// RecordShareIntent counts an issued share intent URL.
func RecordShareIntent(locale string) {
	globalManager.shareIntents.WithLabelValues(locale).Inc()
}

// RecordShareDebounced counts a share refused by the guard.
func RecordShareDebounced() { globalManager.sharesDebounced.Inc() }

// UpdateCatalogMembers sets the catalog size gauge.
func UpdateCatalogMembers(count int) {
	globalManager.catalogMembers.Set(float64(count))
}

// HTTP.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an HTTP error by endpoint, method and type.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System.

// UpdateSystemMemoryUsage sets the heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry served on /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// FamilyNames gathers the registry and returns the metric family names.
func FamilyNames() ([]string, error) {
	families, err := customRegistry.Gather()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGather, err)
	}
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	return names, nil
}
