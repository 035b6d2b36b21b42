// Package storage holds the gorm-backed stores: scan history, the known-fakes registry,
// source credibility ratings and user feedback.
package storage

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"credd/internal/models"
)

type scanRow struct {
	ID             string          `gorm:"primaryKey;size:36"`
	Content        string          `gorm:"type:text;not null"`
	ContentType    string          `gorm:"size:16;not null"`
	Fingerprint    string          `gorm:"size:64;index;not null"`
	Verdict        string          `gorm:"size:16;not null"`
	Score          int             `gorm:"not null"`
	Confidence     float64         `gorm:"not null"`
	Summary        string          `gorm:"size:255"`
	Reasons        []string        `gorm:"serializer:json;type:text"`
	Sources        []models.Source `gorm:"serializer:json;type:text"`
	SourceApp      string          `gorm:"size:64"`
	SourceDomain   string          `gorm:"size:255"`
	UserHash       string          `gorm:"size:128;not null;index:idx_scan_user_created,priority:1"`
	ProcessingTier int             `gorm:"not null"`
	ProcessingMs   int64
	CreatedAt      time.Time       `gorm:"not null;index:idx_scan_user_created,priority:2"`
}

func (scanRow) TableName() string { return "scan_results" }

func scanRowFrom(r *models.ScanResult) *scanRow {
	return &scanRow{
		ID:             r.ID,
		Content:        r.Content,
		ContentType:    r.ContentType,
		Fingerprint:    r.Fingerprint,
		Verdict:        string(r.Verdict),
		Score:          r.Score,
		Confidence:     r.Confidence,
		Summary:        r.Summary,
		Reasons:        r.Reasons,
		Sources:        r.Sources,
		SourceApp:      r.SourceApp,
		SourceDomain:   r.SourceDomain,
		UserHash:       r.UserHash,
		ProcessingTier: r.ProcessingTier,
		ProcessingMs:   r.ProcessingMs,
		CreatedAt:      r.CreatedAt.UTC(),
	}
}

func (row *scanRow) model() *models.ScanResult {
	reasons := row.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	sources := row.Sources
	if sources == nil {
		sources = []models.Source{}
	}
	return &models.ScanResult{
		ID:             row.ID,
		Content:        row.Content,
		ContentType:    row.ContentType,
		Fingerprint:    row.Fingerprint,
		Verdict:        models.Verdict(row.Verdict),
		Score:          row.Score,
		Confidence:     row.Confidence,
		Summary:        row.Summary,
		Reasons:        reasons,
		Sources:        sources,
		SourceApp:      row.SourceApp,
		SourceDomain:   row.SourceDomain,
		UserHash:       row.UserHash,
		ProcessingTier: row.ProcessingTier,
		ProcessingMs:   row.ProcessingMs,
		CreatedAt:      row.CreatedAt.UTC(),
	}
}

type knownFakeRow struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Fingerprint  string    `gorm:"size:64;uniqueIndex;not null"`
	ContentType  string    `gorm:"size:16;not null"`
	VerifiedFake bool      `gorm:"not null"`
	FactChecker  string    `gorm:"size:255;not null"`
	ReportCount  int       `gorm:"not null"`
	AddedAt      time.Time `gorm:"not null"`
}

func (knownFakeRow) TableName() string { return "known_fakes" }

func (row *knownFakeRow) model() *models.KnownFakeRecord {
	return &models.KnownFakeRecord{
		ID:           row.ID,
		Fingerprint:  row.Fingerprint,
		ContentType:  row.ContentType,
		VerifiedFake: row.VerifiedFake,
		FactChecker:  row.FactChecker,
		ReportCount:  row.ReportCount,
		AddedAt:      row.AddedAt.UTC(),
	}
}

type sourceRow struct {
	Domain        string    `gorm:"primaryKey;size:255"`
	Credibility   float64   `gorm:"not null"`
	Bias          string    `gorm:"size:16;not null"`
	AccurateCount int       `gorm:"not null"`
	FalseCount    int       `gorm:"not null"`
	LastUpdated   time.Time `gorm:"not null"`
}

func (sourceRow) TableName() string { return "source_credibility" }

func (row *sourceRow) model() *models.SourceCredibilityRecord {
	return &models.SourceCredibilityRecord{
		Domain:        row.Domain,
		Credibility:   row.Credibility,
		Bias:          models.Bias(row.Bias),
		AccurateCount: row.AccurateCount,
		FalseCount:    row.FalseCount,
		LastUpdated:   row.LastUpdated.UTC(),
	}
}

type feedbackRow struct {
	ID        string    `gorm:"primaryKey;size:36"`
	ScanID    string    `gorm:"size:36;not null;index"`
	UserHash  string    `gorm:"size:128;not null"`
	Kind      string    `gorm:"size:16;not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
}

func (feedbackRow) TableName() string { return "feedback" }

// trustedSources is the rating table an empty deployment starts with.
var trustedSources = []sourceRow{
	{Domain: "reuters.com", Credibility: 0.95, Bias: string(models.BiasCenter)},
	{Domain: "apnews.com", Credibility: 0.94, Bias: string(models.BiasCenter)},
	{Domain: "bbc.com", Credibility: 0.93, Bias: string(models.BiasCenter)},
	{Domain: "npr.org", Credibility: 0.91, Bias: string(models.BiasCenter)},
	{Domain: "pbs.org", Credibility: 0.90, Bias: string(models.BiasCenter)},
	{Domain: "nytimes.com", Credibility: 0.88, Bias: string(models.BiasLeft)},
	{Domain: "washingtonpost.com", Credibility: 0.87, Bias: string(models.BiasLeft)},
	{Domain: "theguardian.com", Credibility: 0.86, Bias: string(models.BiasLeft)},
	{Domain: "cnn.com", Credibility: 0.82, Bias: string(models.BiasLeft)},
	{Domain: "abcnews.go.com", Credibility: 0.81, Bias: string(models.BiasCenter)},
	{Domain: "cbsnews.com", Credibility: 0.80, Bias: string(models.BiasCenter)},
}

// Migrate creates or updates every table and seeds the trusted source ratings.
// Existing ratings are never overwritten.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&scanRow{}, &knownFakeRow{}, &sourceRow{}, &feedbackRow{}); err != nil {
		return err
	}

	now := time.Now().UTC()
	seed := make([]sourceRow, len(trustedSources))
	for i, s := range trustedSources {
		s.LastUpdated = now
		seed[i] = s
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error
}
