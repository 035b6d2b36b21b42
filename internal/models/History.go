package models

import "time"

// HistoryFilter selects one user's scans. Zero From/To leave that side open;
// PageSize 0 returns every matching scan.
type HistoryFilter struct {
	UserHash string
	From     time.Time
	To       time.Time
	Page     int
	PageSize int
}

type HistoryPage struct {
	Scans    []*ScanResult `json:"scans"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}
