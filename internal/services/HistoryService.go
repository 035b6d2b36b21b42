package services

import (
	"context"
	"fmt"

	"credd/internal/models"
)

type HistoryServiceInterface interface {
	History(ctx context.Context, f models.HistoryFilter) (*models.HistoryPage, error)
	Scan(ctx context.Context, id string) (*models.ScanResult, error)
}

type HistoryService struct {
	history HistoryStore
}

func NewHistoryService(history HistoryStore) HistoryServiceInterface {
	return &HistoryService{history: history}
}

// History returns one page of a user's scans, newest first. A zero Page or PageSize
// takes the default; the page size is capped at models.MaxPageSize.
func (hs *HistoryService) History(ctx context.Context, f models.HistoryFilter) (*models.HistoryPage, error) {
	if f.UserHash == "" {
		return nil, fmt.Errorf("%w: user_id_hash is required", models.ErrInvalidInput)
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.PageSize == 0 {
		f.PageSize = models.DefaultPageSize
	}
	if f.Page < 1 {
		return nil, fmt.Errorf("%w: page must be at least 1", models.ErrInvalidInput)
	}
	if f.PageSize < 1 || f.PageSize > models.MaxPageSize {
		return nil, fmt.Errorf("%w: page_size must be between 1 and %d", models.ErrInvalidInput, models.MaxPageSize)
	}
	return hs.history.Query(ctx, f)
}

func (hs *HistoryService) Scan(ctx context.Context, id string) (*models.ScanResult, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", models.ErrInvalidInput)
	}
	return hs.history.GetByID(ctx, id)
}
