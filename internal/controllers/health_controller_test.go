package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPinger struct{ err error }

func (m mockPinger) Ping(context.Context) error { return m.err }

func doHealth(t *testing.T, hc *HealthController) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return rr.Code, resp
}

func TestHealth_ReturnsOK(t *testing.T) {
	hc := NewHealthController(mockPinger{}, mockPinger{})

	code, resp := doHealth(t, hc)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "ok", resp["database"])
	assert.Equal(t, "ok", resp["cache"])
	assert.Contains(t, resp, "uptime")
	assert.Contains(t, resp, "uptime_seconds")
}

func TestHealth_CacheDownIsDegraded(t *testing.T) {
	hc := NewHealthController(mockPinger{}, mockPinger{err: errors.New("refused")})

	code, resp := doHealth(t, hc)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", resp["status"])
	assert.Equal(t, "unavailable", resp["cache"])
}

func TestHealth_DatabaseDownIsUnavailable(t *testing.T) {
	hc := NewHealthController(mockPinger{err: errors.New("closed")}, mockPinger{})

	code, resp := doHealth(t, hc)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unavailable", resp["status"])
	assert.Equal(t, "unavailable", resp["database"])
}

func TestHealth_NilCacheIsDisabled(t *testing.T) {
	hc := NewHealthController(mockPinger{}, nil)

	_, resp := doHealth(t, hc)
	assert.Equal(t, "disabled", resp["cache"])
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(mockPinger{}, mockPinger{})

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "0h0m0s"},
		{"one minute", 60 * time.Second, "0h1m0s"},
		{"one hour", time.Hour, "1h0m0s"},
		{"mixed", time.Hour + time.Minute + time.Second, "1h1m1s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.duration))
		})
	}
}
