package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is anything the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	database  Pinger
	cache     Pinger
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Database      string  `json:"database"`
	Cache         string  `json:"cache"`
}

// Health reports 503 when the database is unreachable. A failing cache only degrades
// the status since the pipeline works without it.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Database:      probe(ctx, hc.database),
		Cache:         probe(ctx, hc.cache),
	}
	code := http.StatusOK
	switch {
	case resp.Database != "ok":
		resp.Status = "unavailable"
		code = http.StatusServiceUnavailable
	case resp.Cache != "ok":
		resp.Status = "degraded"
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(gson)
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "unavailable"
	}
	return "ok"
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(database Pinger, cache Pinger) *HealthController {
	return &HealthController{
		database:  database,
		cache:     cache,
		startTime: time.Now(),
	}
}
