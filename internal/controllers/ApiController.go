package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"credd/internal/models"
	"credd/internal/providers"
	"credd/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// CacheAdmin exposes the operational side of the result cache.
type CacheAdmin interface {
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (providers.CacheStats, error)
}

type ApiController struct {
	logger   providers.Logger
	analyzer services.AnalyzerServiceInterface
	history  services.HistoryServiceInterface
	stats    services.StatisticServiceInterface
	feedback services.FeedbackServiceInterface
	cache    CacheAdmin
}

func NewApiController(
	logger providers.Logger,
	analyzer services.AnalyzerServiceInterface,
	history services.HistoryServiceInterface,
	stats services.StatisticServiceInterface,
	feedback services.FeedbackServiceInterface,
	cache CacheAdmin,
) *ApiController {
	return &ApiController{
		logger:   logger,
		analyzer: analyzer,
		history:  history,
		stats:    stats,
		feedback: feedback,
		cache:    cache,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (ac *ApiController) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	logType := providers.GetLogTypeByRequestType(r.Method)
	if status >= http.StatusInternalServerError {
		ac.logger.Errorf(logType, "%s %s: %v", r.Method, r.URL.Path, err)
	} else {
		ac.logger.Debugf(logType, "%s %s: %v", r.Method, r.URL.Path, err)
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal Server Error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return invalid("malformed request body")
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", models.ErrInvalidInput, msg)
}

// intParam reads an optional integer query parameter; absent means 0.
func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(name + " must be an integer")
	}
	return v, nil
}

func timeParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	v, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, invalid(name + " must be an RFC 3339 timestamp")
	}
	return v, nil
}

func (ac *ApiController) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := decodeBody(w, r, &req); err != nil {
		ac.fail(w, r, err)
		return
	}
	res, err := ac.analyzer.Analyze(r.Context(), &req)
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (ac *ApiController) History(w http.ResponseWriter, r *http.Request) {
	f := models.HistoryFilter{UserHash: r.URL.Query().Get("user_id_hash")}
	var err error
	if f.Page, err = intParam(r, "page"); err != nil {
		ac.fail(w, r, err)
		return
	}
	if f.PageSize, err = intParam(r, "page_size"); err != nil {
		ac.fail(w, r, err)
		return
	}
	if f.From, err = timeParam(r, "from"); err != nil {
		ac.fail(w, r, err)
		return
	}
	if f.To, err = timeParam(r, "to"); err != nil {
		ac.fail(w, r, err)
		return
	}

	page, err := ac.history.History(r.Context(), f)
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (ac *ApiController) Stats(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days")
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	if r.URL.Query().Has("days") && days == 0 {
		ac.fail(w, r, invalid("days must be between 1 and 365"))
		return
	}
	stats, err := ac.stats.Stats(r.Context(), r.URL.Query().Get("user_id_hash"), days)
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (ac *ApiController) Scan(w http.ResponseWriter, r *http.Request) {
	res, err := ac.history.Scan(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (ac *ApiController) Feedback(w http.ResponseWriter, r *http.Request) {
	var fb models.FeedbackRecord
	if err := decodeBody(w, r, &fb); err != nil {
		ac.fail(w, r, err)
		return
	}
	rec, err := ac.feedback.Record(r.Context(), &fb)
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (ac *ApiController) ScanFeedback(w http.ResponseWriter, r *http.Request) {
	list, err := ac.feedback.List(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (ac *ApiController) CacheStats(w http.ResponseWriter, r *http.Request) {
	stats, err := ac.cache.Stats(r.Context())
	if err != nil {
		ac.fail(w, r, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (ac *ApiController) CacheClear(w http.ResponseWriter, r *http.Request) {
	if err := ac.cache.Clear(r.Context()); err != nil {
		ac.fail(w, r, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err))
		return
	}
	ac.logger.Infof(providers.TypePost, "result cache cleared")
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Cache cleared"})
}
