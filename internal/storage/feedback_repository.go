package storage

import (
	"context"

	"gorm.io/gorm"

	"credd/internal/models"
	"credd/internal/structures"
)

// FeedbackRepository is an append-only log of user reactions to scans.
type FeedbackRepository struct {
	db    *gorm.DB
	retry retrier
}

func NewFeedbackRepository(db *gorm.DB, conf *structures.Config) *FeedbackRepository {
	return &FeedbackRepository{db: db, retry: newRetrier(conf)}
}

func (f *FeedbackRepository) Append(ctx context.Context, r *models.FeedbackRecord) error {
	row := &feedbackRow{
		ID:        r.ID,
		ScanID:    r.ScanID,
		UserHash:  r.UserHash,
		Kind:      string(r.Kind),
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.UTC(),
	}
	return f.retry.do(ctx, "append feedback", func() error {
		return f.db.WithContext(ctx).Create(row).Error
	})
}

// ListByScan returns the feedback left on one scan, oldest first.
func (f *FeedbackRepository) ListByScan(ctx context.Context, scanID string) ([]*models.FeedbackRecord, error) {
	var rows []feedbackRow
	err := f.retry.do(ctx, "list feedback", func() error {
		return f.db.WithContext(ctx).Where("scan_id = ?", scanID).Order("created_at ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]*models.FeedbackRecord, len(rows))
	for i, row := range rows {
		out[i] = &models.FeedbackRecord{
			ID:        row.ID,
			ScanID:    row.ScanID,
			UserHash:  row.UserHash,
			Kind:      models.FeedbackKind(row.Kind),
			Comment:   row.Comment,
			CreatedAt: row.CreatedAt.UTC(),
		}
	}
	return out, nil
}
