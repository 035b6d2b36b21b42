package models

import "time"

type FeedbackKind string

const (
	FeedbackAgree       FeedbackKind = "agree"
	FeedbackDisagree    FeedbackKind = "disagree"
	FeedbackReportError FeedbackKind = "report_error"
)

func (k FeedbackKind) Valid() bool {
	return k == FeedbackAgree || k == FeedbackDisagree || k == FeedbackReportError
}

type FeedbackRecord struct {
	ID        string       `json:"id"`
	ScanID    string       `json:"scan_id"`
	UserHash  string       `json:"user_id_hash"`
	Kind      FeedbackKind `json:"feedback_type"`
	Comment   string       `json:"comment,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
