package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"credd/internal/models"
)

const (
	topSourcesLimit = 5
	dayLayout       = "2006-01-02"
)

type StatisticServiceInterface interface {
	Stats(ctx context.Context, userHash string, days int) (*models.UserStats, error)
}

// StatisticService aggregates a user's scans on demand. It keeps no state of its own
// and reads the history through the same filter as the history endpoint.
type StatisticService struct {
	history HistoryStore
	now     func() time.Time
}

func NewStatisticService(history HistoryStore) StatisticServiceInterface {
	return &StatisticService{history: history, now: time.Now}
}

// Stats summarizes the scans userHash made in the last days days; 0 selects the default window.
func (ss *StatisticService) Stats(ctx context.Context, userHash string, days int) (*models.UserStats, error) {
	if userHash == "" {
		return nil, fmt.Errorf("%w: user_id_hash is required", models.ErrInvalidInput)
	}
	if days == 0 {
		days = models.DefaultStatsDays
	}
	if days < 1 || days > models.MaxStatsDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", models.ErrInvalidInput, models.MaxStatsDays)
	}

	page, err := ss.history.Query(ctx, WindowFilter(userHash, days, ss.now()))
	if err != nil {
		return nil, err
	}
	return aggregate(userHash, days, page.Scans), nil
}

// WindowFilter selects every scan of userHash created within days of now.
func WindowFilter(userHash string, days int, now time.Time) models.HistoryFilter {
	return models.HistoryFilter{
		UserHash: userHash,
		From:     now.Add(-time.Duration(days) * 24 * time.Hour),
	}
}

func aggregate(userHash string, days int, scans []*models.ScanResult) *models.UserStats {
	stats := &models.UserStats{
		UserHash:        userHash,
		WindowDays:      days,
		Total:           len(scans),
		CountsByVerdict: make(map[models.Verdict]int, len(models.Verdicts)),
		CountsByDay:     make(map[string]int),
		TopSources:      []models.SourceCount{},
	}
	for _, v := range models.Verdicts {
		stats.CountsByVerdict[v] = 0
	}
	if len(scans) == 0 {
		return stats
	}

	sum := 0
	cited := make(map[string]int)
	for _, s := range scans {
		sum += s.Score
		stats.CountsByVerdict[s.Verdict]++
		stats.CountsByDay[s.CreatedAt.UTC().Format(dayLayout)]++
		for _, src := range s.Sources {
			if src.Name != "" {
				cited[src.Name]++
			}
		}
	}
	stats.AverageScore = math.Round(float64(sum)/float64(len(scans))*100) / 100

	for name, n := range cited {
		stats.TopSources = append(stats.TopSources, models.SourceCount{Name: name, Count: n})
	}
	sort.Slice(stats.TopSources, func(i, j int) bool {
		a, b := stats.TopSources[i], stats.TopSources[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})
	if len(stats.TopSources) > topSourcesLimit {
		stats.TopSources = stats.TopSources[:topSourcesLimit]
	}
	return stats
}
