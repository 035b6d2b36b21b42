package models

import "time"

// KnownFakeRecord is a fingerprint confirmed as misinformation by a fact-checker.
// Absence of a record means "not known", never "verified true".
type KnownFakeRecord struct {
	ID           string    `json:"id"`
	Fingerprint  string    `json:"fingerprint"`
	ContentType  string    `json:"content_type"`
	VerifiedFake bool      `json:"verified_fake"`
	FactChecker  string    `json:"fact_checker"`
	ReportCount  int       `json:"report_count"`
	AddedAt      time.Time `json:"added_at"`
}
