package services

import (
	"context"

	"credd/internal/models"
)

// HistoryStore is the system of record for scan results.
type HistoryStore interface {
	Append(ctx context.Context, r *models.ScanResult) error
	Query(ctx context.Context, f models.HistoryFilter) (*models.HistoryPage, error)
	GetByID(ctx context.Context, id string) (*models.ScanResult, error)
}

type KnownFakeRegistry interface {
	Lookup(ctx context.Context, fp string) (*models.KnownFakeRecord, error)
	IncrementReports(ctx context.Context, fp string) (int, error)
}

type SourceRatings interface {
	Lookup(ctx context.Context, domain string) (*models.SourceCredibilityRecord, error)
}

type FeedbackStore interface {
	Append(ctx context.Context, r *models.FeedbackRecord) error
	ListByScan(ctx context.Context, scanID string) ([]*models.FeedbackRecord, error)
}
