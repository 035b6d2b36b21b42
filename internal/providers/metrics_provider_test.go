package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credd/internal/structures"
)

type metricsTestCounter struct {
	rows int64
	err  error
}

func (c *metricsTestCounter) Count(_ context.Context) (int64, error) { return c.rows, c.err }

func withTestRegistry(t *testing.T) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	prevReg, prevGat := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGat
	})
	return reg
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf, &metricsTestCounter{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncCacheErrors()
	m.IncVerdict("VERIFIED", 2)
	m.IncKnownFakeHits()
	m.ObserveScoringDuration(time.Millisecond)
	m.ObservePersistenceDuration(time.Millisecond)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	withTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestCounter{})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	withTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestCounter{}).(*MetricsProvider)

	m.IncRequestsTotal("/analyze", 200)
	m.IncRequestsTotal("/analyze", 404)
	m.ObserveRequestDuration("/analyze", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncCacheMisses()
	m.IncCacheErrors()
	m.IncVerdict("CONFIRMED_FAKE", 1)
	m.IncVerdict("CONFIRMED_FAKE", 1)
	m.IncKnownFakeHits()
	m.ObserveScoringDuration(time.Millisecond)
	m.ObservePersistenceDuration(100 * time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheMisses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.knownFakeHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.verdicts.WithLabelValues("CONFIRMED_FAKE", "1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/analyze", "4xx")))
}

func TestMetricsProvider_HistoryGauge(t *testing.T) {
	reg := withTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	counter := &metricsTestCounter{rows: 42}
	NewMetricsProvider(conf, counter)

	families, err := reg.Gather()
	require.NoError(t, err)

	var value float64
	found := false
	for _, f := range families {
		if f.GetName() == "credd_history_rows" {
			value = f.GetMetric()[0].GetGauge().GetValue()
			found = true
		}
	}
	require.True(t, found)
	assert.Equal(t, 42.0, value)

	counter.err = errors.New("db down")
	families, err = reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "credd_history_rows" {
			assert.Equal(t, -1.0, f.GetMetric()[0].GetGauge().GetValue())
		}
	}
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
