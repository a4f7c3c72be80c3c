package providers

import (
	"calltracker/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	SetRecordsTotal(kind string, count int)
	IncSearches(strategy string)
	IncStaleDeliveries()
	IncToggles(outcome string)
	IncExports(exportType string)
}

// SessionGauge exposes the live session count without importing the session package.
type SessionGauge interface {
	Len() int
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	recordsTotal        *prometheus.GaugeVec
	searchesTotal       *prometheus.CounterVec
	staleDeliveries     prometheus.Counter
	togglesTotal        *prometheus.CounterVec
	exportsTotal        *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetRecordsTotal(kind string, count int) {
	m.recordsTotal.WithLabelValues(kind).Set(float64(count))
}

func (m *MetricsProvider) IncSearches(strategy string) {
	m.searchesTotal.WithLabelValues(strategy).Inc()
}

func (m *MetricsProvider) IncStaleDeliveries() {
	m.staleDeliveries.Inc()
}

func (m *MetricsProvider) IncToggles(outcome string) {
	m.togglesTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) IncExports(exportType string) {
	m.exportsTotal.WithLabelValues(exportType).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "calltracker_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "calltracker_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "calltracker_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "calltracker_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "calltracker_persistence_duration_seconds",
			Help:    "Duration of snapshot persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		recordsTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "calltracker_records_total",
			Help: "Number of stored records per kind",
		}, []string{"kind"}),

		searchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "calltracker_searches_total",
			Help: "Total number of roster searches per strategy",
		}, []string{"strategy"}),

		staleDeliveries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "calltracker_stale_deliveries_total",
			Help: "Search results discarded because a newer search superseded them",
		}),

		togglesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "calltracker_toggles_total",
			Help: "Call toggles per outcome",
		}, []string{"outcome"}),

		exportsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "calltracker_exports_total",
			Help: "Generated exports per type",
		}, []string{"type"}),
	}

	return m
}

// RegisterSessionGauge exports the live session count. Call it once the
// session registry exists; the registry depends on the metrics provider.
func RegisterSessionGauge(conf *structures.Config, sessions SessionGauge) {
	if !conf.Metrics.Enabled || sessions == nil {
		return
	}
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "calltracker_sessions_active",
		Help: "Current number of live sessions",
	}, func() float64 {
		return float64(sessions.Len())
	})
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetRecordsTotal(_ string, _ int)                  {}
func (n *noopMetrics) IncSearches(_ string)                             {}
func (n *noopMetrics) IncStaleDeliveries()                              {}
func (n *noopMetrics) IncToggles(_ string)                              {}
func (n *noopMetrics) IncExports(_ string)                              {}
