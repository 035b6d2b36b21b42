package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"credd/internal/models"
	"credd/internal/structures"
)

// KnownFakeRepository is the registry of fingerprints confirmed false by a fact-checker.
type KnownFakeRepository struct {
	db    *gorm.DB
	retry retrier
	now   func() time.Time
}

func NewKnownFakeRepository(db *gorm.DB, conf *structures.Config) *KnownFakeRepository {
	return &KnownFakeRepository{db: db, retry: newRetrier(conf), now: time.Now}
}

// Lookup returns the record for fp, or nil when the fingerprint is not registered.
func (k *KnownFakeRepository) Lookup(ctx context.Context, fp string) (*models.KnownFakeRecord, error) {
	var row knownFakeRow
	found := false
	err := k.retry.do(ctx, "lookup known fake", func() error {
		err := k.db.WithContext(ctx).Where("fingerprint = ?", fp).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		found = err == nil
		return err
	})
	if err != nil || !found {
		return nil, err
	}
	return row.model(), nil
}

// IncrementReports bumps the report counter in a single UPDATE and returns the new value.
func (k *KnownFakeRepository) IncrementReports(ctx context.Context, fp string) (int, error) {
	var count int
	err := k.retry.do(ctx, "increment reports", func() error {
		return k.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&knownFakeRow{}).
				Where("fingerprint = ?", fp).
				UpdateColumn("report_count", gorm.Expr("report_count + ?", 1))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: known fake %s", models.ErrNotFound, fp)
			}
			var row knownFakeRow
			if err := tx.Where("fingerprint = ?", fp).Take(&row).Error; err != nil {
				return err
			}
			count = row.ReportCount
			return nil
		})
	})
	return count, err
}

// Register adds fp to the registry or, when it is already present, counts one more report.
func (k *KnownFakeRepository) Register(ctx context.Context, fp, contentType, factChecker string) (*models.KnownFakeRecord, error) {
	if len(fp) != 64 {
		return nil, fmt.Errorf("%w: malformed fingerprint %q", models.ErrInvalidInput, fp)
	}
	if factChecker == "" {
		return nil, fmt.Errorf("%w: fact checker is required", models.ErrInvalidInput)
	}
	if contentType == "" {
		contentType = models.ContentTypeText
	}

	row := &knownFakeRow{
		ID:           uuid.NewString(),
		Fingerprint:  fp,
		ContentType:  contentType,
		VerifiedFake: true,
		FactChecker:  factChecker,
		ReportCount:  1,
		AddedAt:      k.now().UTC(),
	}
	err := k.retry.do(ctx, "register known fake", func() error {
		return k.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fingerprint"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"report_count": gorm.Expr("known_fakes.report_count + 1")}),
		}).Create(row).Error
	})
	if err != nil {
		return nil, err
	}
	return k.Lookup(ctx, fp)
}

func (k *KnownFakeRepository) Export(ctx context.Context) ([]*models.KnownFakeRecord, error) {
	var rows []knownFakeRow
	err := k.retry.do(ctx, "export known fakes", func() error {
		return k.db.WithContext(ctx).Order("added_at ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]*models.KnownFakeRecord, len(rows))
	for i := range rows {
		out[i] = rows[i].model()
	}
	return out, nil
}

// Import restores records from a snapshot. An existing fingerprint keeps the larger
// of the two report counts.
func (k *KnownFakeRepository) Import(ctx context.Context, records []*models.KnownFakeRecord) (int, error) {
	rows := make([]*knownFakeRow, 0, len(records))
	for _, r := range records {
		if r == nil || len(r.Fingerprint) != 64 {
			continue
		}
		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		rows = append(rows, &knownFakeRow{
			ID:           id,
			Fingerprint:  r.Fingerprint,
			ContentType:  r.ContentType,
			VerifiedFake: true,
			FactChecker:  r.FactChecker,
			ReportCount:  max(r.ReportCount, 1),
			AddedAt:      r.AddedAt.UTC(),
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}
	err := k.retry.do(ctx, "import known fakes", func() error {
		return k.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, row := range rows {
				var existing knownFakeRow
				err := tx.Where("fingerprint = ?", row.Fingerprint).Take(&existing).Error
				switch {
				case errors.Is(err, gorm.ErrRecordNotFound):
					if err := tx.Create(row).Error; err != nil {
						return err
					}
				case err != nil:
					return err
				case row.ReportCount > existing.ReportCount:
					if err := tx.Model(&existing).UpdateColumn("report_count", row.ReportCount).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
	})
	return len(rows), err
}
