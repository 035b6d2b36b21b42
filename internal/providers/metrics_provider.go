package providers

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"credd/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncCacheErrors()
	IncVerdict(verdict string, tier int)
	IncKnownFakeHits()
	ObserveScoringDuration(duration time.Duration)
	ObservePersistenceDuration(duration time.Duration)
}

// RowCounter reports the number of stored scans for the history gauge.
type RowCounter interface {
	Count(ctx context.Context) (int64, error)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	cacheErrors         prometheus.Counter
	verdicts            *prometheus.CounterVec
	knownFakeHits       prometheus.Counter
	scoringDuration     prometheus.Histogram
	persistenceDuration prometheus.Histogram
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

func (m *MetricsProvider) IncCacheErrors() {
	m.cacheErrors.Inc()
}

func (m *MetricsProvider) IncVerdict(verdict string, tier int) {
	m.verdicts.WithLabelValues(verdict, strconv.Itoa(tier)).Inc()
}

func (m *MetricsProvider) IncKnownFakeHits() {
	m.knownFakeHits.Inc()
}

func (m *MetricsProvider) ObserveScoringDuration(duration time.Duration) {
	m.scoringDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
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

func NewMetricsProvider(conf *structures.Config, history RowCounter) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "credd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "credd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "credd_cache_hits_total",
			Help: "Total number of result cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "credd_cache_misses_total",
			Help: "Total number of result cache misses",
		}),

		cacheErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "credd_cache_errors_total",
			Help: "Total number of result cache backend failures",
		}),

		verdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "credd_verdicts_total",
			Help: "Scan results by verdict and processing tier",
		}, []string{"verdict", "tier"}),

		knownFakeHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "credd_known_fake_hits_total",
			Help: "Submissions answered from the known-fakes registry",
		}),

		scoringDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "credd_scoring_duration_seconds",
			Help:    "Time spent analyzing and scoring content",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "credd_persistence_duration_seconds",
			Help:    "Duration of snapshot operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "credd_history_rows",
		Help: "Number of scan results in the history store",
	}, func() float64 {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		n, err := history.Count(ctx)
		if err != nil {
			return -1
		}
		return float64(n)
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncCacheErrors()                                  {}
func (n *noopMetrics) IncVerdict(_ string, _ int)                       {}
func (n *noopMetrics) IncKnownFakeHits()                                {}
func (n *noopMetrics) ObserveScoringDuration(_ time.Duration)           {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
