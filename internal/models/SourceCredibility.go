package models

import "time"

type Bias string

const (
	BiasLeft    Bias = "left"
	BiasCenter  Bias = "center"
	BiasRight   Bias = "right"
	BiasUnknown Bias = "unknown"
)

type SourceCredibilityRecord struct {
	Domain        string    `json:"domain"`
	Credibility   float64   `json:"credibility_score"`
	Bias          Bias      `json:"bias"`
	AccurateCount int       `json:"accurate_count"`
	FalseCount    int       `json:"false_count"`
	LastUpdated   time.Time `json:"last_updated"`
}
