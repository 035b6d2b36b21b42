package models

type SourceCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type UserStats struct {
	UserHash        string          `json:"user_id_hash"`
	WindowDays      int             `json:"window_days"`
	Total           int             `json:"total_scans"`
	CountsByVerdict map[Verdict]int `json:"counts_by_verdict"`
	AverageScore    float64         `json:"average_credibility_score"`
	CountsByDay     map[string]int  `json:"scans_by_day"`
	TopSources      []SourceCount   `json:"top_sources"`
}
