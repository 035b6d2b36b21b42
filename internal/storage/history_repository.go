package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"credd/internal/models"
	"credd/internal/structures"
)

// HistoryRepository is the system of record for scan results.
type HistoryRepository struct {
	db    *gorm.DB
	retry retrier
}

func NewHistoryRepository(db *gorm.DB, conf *structures.Config) *HistoryRepository {
	return &HistoryRepository{db: db, retry: newRetrier(conf)}
}

// Append stores r. Appending an id that already exists is a no-op.
func (h *HistoryRepository) Append(ctx context.Context, r *models.ScanResult) error {
	if err := r.Validate(); err != nil {
		return err
	}
	row := scanRowFrom(r)
	return h.retry.do(ctx, "append scan", func() error {
		return h.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
			Create(row).Error
	})
}

// Query returns one page of a user's scans, newest first. Ties on created_at are
// broken by id so paging is stable.
func (h *HistoryRepository) Query(ctx context.Context, f models.HistoryFilter) (*models.HistoryPage, error) {
	if f.PageSize < 0 || f.Page < 0 {
		return nil, fmt.Errorf("%w: negative page or page size", models.ErrInvalidInput)
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return nil, fmt.Errorf("%w: from is after to", models.ErrInvalidInput)
	}

	page := &models.HistoryPage{Scans: []*models.ScanResult{}, Page: f.Page, PageSize: f.PageSize}
	err := h.retry.do(ctx, "query history", func() error {
		q := h.filtered(ctx, f)
		if err := q.Model(&scanRow{}).Count(&page.Total).Error; err != nil {
			return err
		}

		q = h.filtered(ctx, f).Order("created_at DESC").Order("id DESC")
		if f.PageSize > 0 {
			p := max(f.Page, 1)
			q = q.Offset((p - 1) * f.PageSize).Limit(f.PageSize)
		}
		var rows []scanRow
		if err := q.Find(&rows).Error; err != nil {
			return err
		}
		page.Scans = make([]*models.ScanResult, len(rows))
		for i := range rows {
			page.Scans[i] = rows[i].model()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (h *HistoryRepository) filtered(ctx context.Context, f models.HistoryFilter) *gorm.DB {
	q := h.db.WithContext(ctx).Where("user_hash = ?", f.UserHash)
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From.UTC())
	}
	if !f.To.IsZero() {
		q = q.Where("created_at <= ?", f.To.UTC())
	}
	return q
}

func (h *HistoryRepository) GetByID(ctx context.Context, id string) (*models.ScanResult, error) {
	var row scanRow
	err := h.retry.do(ctx, "get scan", func() error {
		err := h.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: scan %s", models.ErrNotFound, id)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return row.model(), nil
}

func (h *HistoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := h.retry.do(ctx, "count scans", func() error {
		return h.db.WithContext(ctx).Model(&scanRow{}).Count(&n).Error
	})
	return n, err
}

// Export returns every stored scan, oldest first.
func (h *HistoryRepository) Export(ctx context.Context) ([]*models.ScanResult, error) {
	var rows []scanRow
	err := h.retry.do(ctx, "export history", func() error {
		return h.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]*models.ScanResult, len(rows))
	for i := range rows {
		out[i] = rows[i].model()
	}
	return out, nil
}

// Import appends scans in batches; ids already present are skipped. It returns the
// number of scans offered for insertion.
func (h *HistoryRepository) Import(ctx context.Context, scans []*models.ScanResult) (int, error) {
	rows := make([]*scanRow, 0, len(scans))
	for _, s := range scans {
		if s == nil || s.Validate() != nil {
			continue
		}
		rows = append(rows, scanRowFrom(s))
	}
	if len(rows) == 0 {
		return 0, nil
	}
	err := h.retry.do(ctx, "import history", func() error {
		return h.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
			CreateInBatches(rows, 200).Error
	})
	return len(rows), err
}

// Ping checks the underlying connection.
func (h *HistoryRepository) Ping(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
