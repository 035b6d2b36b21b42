package models

import (
	"fmt"
	"time"
)

type Verdict string

const (
	VerdictVerified      Verdict = "VERIFIED"
	VerdictUnclear       Verdict = "UNCLEAR"
	VerdictLikelyFake    Verdict = "LIKELY_FAKE"
	VerdictConfirmedFake Verdict = "CONFIRMED_FAKE"
)

// Verdicts lists every verdict in severity order, mildest first.
var Verdicts = []Verdict{VerdictVerified, VerdictUnclear, VerdictLikelyFake, VerdictConfirmedFake}

func (v Verdict) Valid() bool {
	switch v {
	case VerdictVerified, VerdictUnclear, VerdictLikelyFake, VerdictConfirmedFake:
		return true
	}
	return false
}

const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
	ContentTypeVideo = "video"
	ContentTypeMixed = "mixed"
)

const (
	AnonymousUser     = "anonymous"
	UnknownSourceApp  = "Unknown"
	MaxContentLength  = 10000
	TierKnownFake     = 1
	TierComputed      = 2
	DefaultStatsDays  = 30
	MaxStatsDays      = 365
	DefaultPageSize   = 20
	MaxPageSize       = 100
	fingerprintLength = 64
)

// Column widths of the stored request metadata, counted in characters.
const (
	MaxSourceAppLength    = 64
	MaxSourceDomainLength = 255
	MaxUserHashLength     = 128
)

type Source struct {
	Name              string  `json:"name"`
	Url               string  `json:"url"`
	CredibilityRating float64 `json:"credibility_rating"`
}

// ScanResult is a single scored submission. Content and Fingerprint never change
// once stored; Cached only describes the response it travels in.
type ScanResult struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	ContentType    string    `json:"content_type"`
	Fingerprint    string    `json:"fingerprint"`
	Verdict        Verdict   `json:"verdict"`
	Score          int       `json:"credibility_score"`
	Confidence     float64   `json:"confidence"`
	Summary        string    `json:"summary"`
	Reasons        []string  `json:"reasons"`
	Sources        []Source  `json:"sources"`
	SourceApp      string    `json:"source_app"`
	SourceDomain   string    `json:"source_domain,omitempty"`
	UserHash       string    `json:"user_id_hash"`
	ProcessingTier int       `json:"processing_tier"`
	ProcessingMs   int64     `json:"processing_time_ms"`
	CreatedAt      time.Time `json:"created_at"`
	Cached         bool      `json:"cached"`
}

// Validate checks the range invariants every stored result must satisfy.
func (r *ScanResult) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: scan result without id", ErrInvalidInput)
	}
	if len(r.Fingerprint) != fingerprintLength {
		return fmt.Errorf("%w: malformed fingerprint %q", ErrInvalidInput, r.Fingerprint)
	}
	if !r.Verdict.Valid() {
		return fmt.Errorf("%w: unknown verdict %q", ErrInvalidInput, r.Verdict)
	}
	if r.Score < 0 || r.Score > 100 {
		return fmt.Errorf("%w: score %d out of range", ErrInvalidInput, r.Score)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("%w: confidence %f out of range", ErrInvalidInput, r.Confidence)
	}
	return nil
}

// Summary returns the one-line explanation shown next to a verdict.
func Summary(v Verdict) string {
	switch v {
	case VerdictVerified:
		return "Content appears credible"
	case VerdictUnclear:
		return "Credibility unclear - needs more verification"
	case VerdictConfirmedFake:
		return "This content is in our database of known misinformation"
	default:
		return "Content shows signs of misinformation"
	}
}
