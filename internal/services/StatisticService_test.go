package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credd/internal/fingerprint"
	"credd/internal/models"
	"credd/internal/testutil"
)

func storedScan(id, user string, score int, verdict models.Verdict, at time.Time, sources ...string) *models.ScanResult {
	src := make([]models.Source, len(sources))
	for i, name := range sources {
		src[i] = models.Source{Name: name}
	}
	return &models.ScanResult{
		ID:          id,
		Content:     id,
		Fingerprint: fingerprint.Compute(id),
		Verdict:     verdict,
		Score:       score,
		Sources:     src,
		UserHash:    user,
		CreatedAt:   at,
	}
}

func newStatsService(t *testing.T, scans ...*models.ScanResult) (*StatisticService, *testutil.MockHistory) {
	t.Helper()
	h := testutil.NewMockHistory()
	for _, s := range scans {
		require.NoError(t, h.Append(context.Background(), s))
	}
	svc := NewStatisticService(h).(*StatisticService)
	svc.now = func() time.Time { return base }
	return svc, h
}

func TestStatisticService_Aggregates(t *testing.T) {
	svc, _ := newStatsService(t,
		storedScan("a", "u1", 10, models.VerdictLikelyFake, base.Add(-time.Hour), "Reuters", "AP News"),
		storedScan("b", "u1", 20, models.VerdictLikelyFake, base.Add(-25*time.Hour), "Reuters"),
		storedScan("c", "u1", 25, models.VerdictConfirmedFake, base.Add(-26*time.Hour), "BBC News"),
		storedScan("old", "u1", 90, models.VerdictVerified, base.Add(-31*24*time.Hour), "Reuters"),
		storedScan("other", "u2", 90, models.VerdictVerified, base.Add(-time.Hour)),
	)

	stats, err := svc.Stats(context.Background(), "u1", 0)
	require.NoError(t, err)

	assert.Equal(t, "u1", stats.UserHash)
	assert.Equal(t, models.DefaultStatsDays, stats.WindowDays)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 18.33, stats.AverageScore)
	assert.Equal(t, map[models.Verdict]int{
		models.VerdictVerified:      0,
		models.VerdictUnclear:       0,
		models.VerdictLikelyFake:    2,
		models.VerdictConfirmedFake: 1,
	}, stats.CountsByVerdict)
	assert.Equal(t, map[string]int{"2026-03-10": 1, "2026-03-09": 2}, stats.CountsByDay)
	assert.Equal(t, []models.SourceCount{
		{Name: "Reuters", Count: 2},
		{Name: "AP News", Count: 1},
		{Name: "BBC News", Count: 1},
	}, stats.TopSources)
}

func TestStatisticService_TopSourcesLimit(t *testing.T) {
	var scans []*models.ScanResult
	names := []string{"F", "E", "D", "C", "B", "A", "G"}
	for i, n := range names {
		scans = append(scans, storedScan(fmt.Sprintf("s%d", i), "u1", 50, models.VerdictUnclear, base.Add(-time.Minute), n))
	}
	scans = append(scans, storedScan("extra", "u1", 50, models.VerdictUnclear, base.Add(-time.Minute), "G"))
	svc, _ := newStatsService(t, scans...)

	stats, err := svc.Stats(context.Background(), "u1", 7)
	require.NoError(t, err)
	require.Len(t, stats.TopSources, topSourcesLimit)
	assert.Equal(t, models.SourceCount{Name: "G", Count: 2}, stats.TopSources[0])
	assert.Equal(t, "A", stats.TopSources[1].Name)
	assert.Equal(t, "D", stats.TopSources[4].Name)
}

func TestStatisticService_Empty(t *testing.T) {
	svc, _ := newStatsService(t)

	stats, err := svc.Stats(context.Background(), "nobody", 30)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.AverageScore)
	assert.Len(t, stats.CountsByVerdict, 4)
	assert.Empty(t, stats.CountsByDay)
	assert.NotNil(t, stats.TopSources)
	assert.Empty(t, stats.TopSources)
}

func TestStatisticService_Validation(t *testing.T) {
	svc, _ := newStatsService(t)

	for _, days := range []int{-1, 366} {
		_, err := svc.Stats(context.Background(), "u1", days)
		assert.ErrorIs(t, err, models.ErrInvalidInput, "days=%d", days)
	}
	_, err := svc.Stats(context.Background(), "", 30)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.Stats(context.Background(), "u1", 365)
	assert.NoError(t, err)
}

func TestStatisticService_MatchesHistoryQuery(t *testing.T) {
	var scans []*models.ScanResult
	for i := 0; i < 40; i++ {
		scans = append(scans, storedScan(fmt.Sprintf("s%02d", i), "u1", i, models.VerdictLikelyFake, base.Add(-time.Duration(i)*12*time.Hour)))
	}
	svc, h := newStatsService(t, scans...)

	for _, days := range []int{1, 7, 30} {
		stats, err := svc.Stats(context.Background(), "u1", days)
		require.NoError(t, err)

		page, err := h.Query(context.Background(), WindowFilter("u1", days, base))
		require.NoError(t, err)
		assert.Equal(t, len(page.Scans), stats.Total, "days=%d", days)
	}
}

func TestStatisticService_StoreUnavailable(t *testing.T) {
	svc, h := newStatsService(t)
	h.Err = fmt.Errorf("%w: offline", models.ErrStoreUnavailable)

	_, err := svc.Stats(context.Background(), "u1", 30)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
}
