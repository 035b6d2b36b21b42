package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"credd/internal/models"
	"credd/internal/structures"
)

const defaultLookupTTL = 5 * time.Minute

// SourceRepository serves per-domain credibility ratings. Lookups, including misses,
// are kept in memory for sources.lookupTTL.
type SourceRepository struct {
	db    *gorm.DB
	retry retrier
	cache *gocache.Cache
	now   func() time.Time
}

func NewSourceRepository(db *gorm.DB, conf *structures.Config) *SourceRepository {
	ttl := conf.Sources.LookupTTL
	if ttl <= 0 {
		ttl = defaultLookupTTL
	}
	return &SourceRepository{
		db:    db,
		retry: newRetrier(conf),
		cache: gocache.New(ttl, 2*ttl),
		now:   time.Now,
	}
}

// NormalizeDomain lowercases raw and strips any scheme, credentials, "www." prefix,
// port and path, so "https://WWW.Reuters.com:443/world" becomes "reuters.com".
func NormalizeDomain(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	if d == "" {
		return ""
	}
	if strings.Contains(d, "://") {
		if u, err := url.Parse(d); err == nil && u.Host != "" {
			d = u.Host
		}
	}
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if i := strings.LastIndex(d, "@"); i >= 0 {
		d = d[i+1:]
	}
	if i := strings.LastIndex(d, ":"); i >= 0 {
		d = d[:i]
	}
	d = strings.TrimPrefix(d, "www.")
	return strings.TrimSuffix(d, ".")
}

// Lookup returns the rating for domain, or nil when the domain is empty or unrated.
func (s *SourceRepository) Lookup(ctx context.Context, domain string) (*models.SourceCredibilityRecord, error) {
	d := NormalizeDomain(domain)
	if d == "" {
		return nil, nil
	}
	if v, ok := s.cache.Get(d); ok {
		rec, _ := v.(*models.SourceCredibilityRecord)
		return rec, nil
	}

	var row sourceRow
	found := false
	err := s.retry.do(ctx, "lookup source", func() error {
		err := s.db.WithContext(ctx).Where("domain = ?", d).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		found = err == nil
		return err
	})
	if err != nil {
		return nil, err
	}

	var rec *models.SourceCredibilityRecord
	if found {
		rec = row.model()
	}
	s.cache.SetDefault(d, rec)
	return rec, nil
}

// Upsert creates or replaces the rating for rec.Domain.
func (s *SourceRepository) Upsert(ctx context.Context, rec *models.SourceCredibilityRecord) error {
	d := NormalizeDomain(rec.Domain)
	if d == "" {
		return fmt.Errorf("%w: domain is required", models.ErrInvalidInput)
	}
	if rec.Credibility < 0 || rec.Credibility > 1 {
		return fmt.Errorf("%w: credibility %f out of range", models.ErrInvalidInput, rec.Credibility)
	}
	bias := rec.Bias
	if bias == "" {
		bias = models.BiasUnknown
	}

	row := &sourceRow{
		Domain:        d,
		Credibility:   rec.Credibility,
		Bias:          string(bias),
		AccurateCount: rec.AccurateCount,
		FalseCount:    rec.FalseCount,
		LastUpdated:   s.now().UTC(),
	}
	err := s.retry.do(ctx, "upsert source", func() error {
		return s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "domain"}},
			DoUpdates: clause.AssignmentColumns([]string{"credibility", "bias", "accurate_count", "false_count", "last_updated"}),
		}).Create(row).Error
	})
	if err != nil {
		return err
	}
	s.cache.Delete(d)
	return nil
}

func (s *SourceRepository) List(ctx context.Context) ([]*models.SourceCredibilityRecord, error) {
	var rows []sourceRow
	err := s.retry.do(ctx, "list sources", func() error {
		return s.db.WithContext(ctx).Order("credibility DESC").Order("domain ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]*models.SourceCredibilityRecord, len(rows))
	for i := range rows {
		out[i] = rows[i].model()
	}
	return out, nil
}
