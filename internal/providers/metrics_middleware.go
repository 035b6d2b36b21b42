package providers

import (
	"net/http"
	"time"
)

// knownEndpoints bounds the endpoint label; anything else is reported as "other".
var knownEndpoints = map[string]struct{}{
	"/analyze":     {},
	"/history":     {},
	"/stats":       {},
	"/scan":        {},
	"/feedback":    {},
	"/cache/stats": {},
	"/cache/clear": {},
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		duration := time.Since(start)
		endpoint := r.URL.Path
		if _, ok := knownEndpoints[endpoint]; !ok {
			endpoint = "other"
		}
		metrics.IncRequestsTotal(endpoint, sw.status)
		metrics.ObserveRequestDuration(endpoint, duration)
	})
}
