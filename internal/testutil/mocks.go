package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"credd/internal/models"
	"credd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Has reports whether anything was logged at level.
func (m *MockLogger) Has(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.Logs {
		if l.Level == level {
			return true
		}
	}
	return false
}

// MockCache implements providers.CacheProviderInterface in memory. Entries expire
// against Now, which defaults to time.Now. Err, when set, fails every call.
type MockCache struct {
	mu      sync.Mutex
	entries map[string]mockCacheEntry
	Now     func() time.Time
	Err     error
	Sets    int
}

type mockCacheEntry struct {
	value   []byte
	expires time.Time
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string]mockCacheEntry), Now: time.Now}
}

func (m *MockCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, false, m.Err
	}
	e, ok := m.entries[key]
	if !ok || !m.Now().Before(e.expires) {
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *MockCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sets++
	m.entries[key] = mockCacheEntry{value: value, expires: m.Now().Add(ttl)}
	return nil
}

func (m *MockCache) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.entries = make(map[string]mockCacheEntry)
	return nil
}

func (m *MockCache) Stats(_ context.Context) (providers.CacheStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return providers.CacheStats{}, m.Err
	}
	return providers.CacheStats{Backend: "mock", Entries: int64(len(m.entries))}, nil
}

func (m *MockCache) Ping(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Err
}

func (m *MockCache) Close() error { return nil }

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu            sync.Mutex
	Requests      int
	CacheHits     int
	CacheMisses   int
	CacheErrors   int
	KnownFakeHits int
	Verdicts      map[string]int
	Scorings      int
	Persists      int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncCacheErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheErrors++
}
func (m *MockMetrics) IncVerdict(verdict string, tier int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Verdicts == nil {
		m.Verdicts = make(map[string]int)
	}
	m.Verdicts[fmt.Sprintf("%s/%d", verdict, tier)]++
}
func (m *MockMetrics) IncKnownFakeHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.KnownFakeHits++
}
func (m *MockMetrics) ObserveScoringDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Scorings++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}

// MockHistory is an in-memory history store with the same ordering and
// first-write-wins semantics as the database one.
type MockHistory struct {
	mu      sync.Mutex
	scans   map[string]*models.ScanResult
	Appends int
	Err     error
}

func NewMockHistory() *MockHistory {
	return &MockHistory{scans: make(map[string]*models.ScanResult)}
}

func (m *MockHistory) Append(_ context.Context, r *models.ScanResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Appends++
	if _, ok := m.scans[r.ID]; !ok {
		c := *r
		m.scans[r.ID] = &c
	}
	return nil
}

func (m *MockHistory) Query(_ context.Context, f models.HistoryFilter) (*models.HistoryPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var matched []*models.ScanResult
	for _, s := range m.scans {
		if s.UserHash != f.UserHash {
			continue
		}
		if !f.From.IsZero() && s.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && s.CreatedAt.After(f.To) {
			continue
		}
		c := *s
		matched = append(matched, &c)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	page := &models.HistoryPage{Total: int64(len(matched)), Page: f.Page, PageSize: f.PageSize, Scans: matched}
	if f.PageSize > 0 {
		p := max(f.Page, 1)
		start := min((p-1)*f.PageSize, len(matched))
		end := min(start+f.PageSize, len(matched))
		page.Scans = matched[start:end]
	}
	if page.Scans == nil {
		page.Scans = []*models.ScanResult{}
	}
	return page, nil
}

func (m *MockHistory) GetByID(_ context.Context, id string) (*models.ScanResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.scans[id]
	if !ok {
		return nil, fmt.Errorf("%w: scan %s", models.ErrNotFound, id)
	}
	c := *s
	return &c, nil
}

func (m *MockHistory) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.scans)), nil
}

func (m *MockHistory) Ping(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Err
}

// MockRegistry is an in-memory known-fakes registry.
type MockRegistry struct {
	mu         sync.Mutex
	Records    map[string]*models.KnownFakeRecord
	Increments int
	Err        error
}

func NewMockRegistry() *MockRegistry {
	return &MockRegistry{Records: make(map[string]*models.KnownFakeRecord)}
}

func (m *MockRegistry) Lookup(_ context.Context, fp string) (*models.KnownFakeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	r, ok := m.Records[fp]
	if !ok {
		return nil, nil
	}
	c := *r
	return &c, nil
}

func (m *MockRegistry) IncrementReports(_ context.Context, fp string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	r, ok := m.Records[fp]
	if !ok {
		return 0, models.ErrNotFound
	}
	m.Increments++
	r.ReportCount++
	return r.ReportCount, nil
}

// MockSources serves fixed credibility ratings keyed by exact domain.
type MockSources struct {
	Ratings map[string]*models.SourceCredibilityRecord
	Err     error
}

func (m *MockSources) Lookup(_ context.Context, domain string) (*models.SourceCredibilityRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Ratings[domain], nil
}

// MockFeedback is an append-only in-memory feedback store.
type MockFeedback struct {
	mu      sync.Mutex
	Records []*models.FeedbackRecord
	Err     error
}

func (m *MockFeedback) Append(_ context.Context, r *models.FeedbackRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Records = append(m.Records, r)
	return nil
}

func (m *MockFeedback) ListByScan(_ context.Context, scanID string) ([]*models.FeedbackRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []*models.FeedbackRecord{}
	for _, r := range m.Records {
		if r.ScanID == scanID {
			out = append(out, r)
		}
	}
	return out, nil
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
