package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"credd/internal/models"
	"credd/internal/providers"
)

type FeedbackServiceInterface interface {
	Record(ctx context.Context, fb *models.FeedbackRecord) (*models.FeedbackRecord, error)
	List(ctx context.Context, scanID string) ([]*models.FeedbackRecord, error)
}

// FeedbackService appends user reactions to existing scans. The scan itself is never touched.
type FeedbackService struct {
	history  HistoryStore
	feedback FeedbackStore
	logger   providers.Logger
	now      func() time.Time
	newID    func() string
}

func NewFeedbackService(history HistoryStore, feedback FeedbackStore, logger providers.Logger) FeedbackServiceInterface {
	return &FeedbackService{
		history:  history,
		feedback: feedback,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (fs *FeedbackService) Record(ctx context.Context, fb *models.FeedbackRecord) (*models.FeedbackRecord, error) {
	if !fb.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown feedback type %q", models.ErrInvalidInput, fb.Kind)
	}
	if fb.ScanID == "" {
		return nil, fmt.Errorf("%w: scan_id is required", models.ErrInvalidInput)
	}
	if err := models.CheckLength("user_id_hash", fb.UserHash, models.MaxUserHashLength); err != nil {
		return nil, err
	}
	if _, err := fs.history.GetByID(ctx, fb.ScanID); err != nil {
		return nil, err
	}

	rec := &models.FeedbackRecord{
		ID:        fs.newID(),
		ScanID:    fb.ScanID,
		UserHash:  fb.UserHash,
		Kind:      fb.Kind,
		Comment:   fb.Comment,
		CreatedAt: fs.now().UTC(),
	}
	if rec.UserHash == "" {
		rec.UserHash = models.AnonymousUser
	}
	if err := fs.feedback.Append(ctx, rec); err != nil {
		return nil, err
	}
	fs.logger.Infof(providers.TypePost, "feedback %s on scan %s: %s", rec.ID, rec.ScanID, rec.Kind)
	return rec, nil
}

// List returns the feedback left on an existing scan, oldest first.
func (fs *FeedbackService) List(ctx context.Context, scanID string) ([]*models.FeedbackRecord, error) {
	if scanID == "" {
		return nil, fmt.Errorf("%w: id is required", models.ErrInvalidInput)
	}
	if _, err := fs.history.GetByID(ctx, scanID); err != nil {
		return nil, err
	}
	return fs.feedback.ListByScan(ctx, scanID)
}
