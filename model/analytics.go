package model

import "time"

// SearchEvent represents a single search event for analytics tracking
type SearchEvent struct {
	Rule         string        `json:"rule"`
	Query        string        `json:"query"`
	ResponseTime time.Duration `json:"response_time"`
	ResultCount  int           `json:"result_count"`
	Timestamp    time.Time     `json:"timestamp"`
}

// PopularSearch represents aggregated data for popular search terms
type PopularSearch struct {
	Query       string `json:"query"`
	SearchCount int    `json:"search_count"`
}

// RuleUsage represents how often a search rule was used
type RuleUsage struct {
	Rule        string `json:"rule"`
	SearchCount int    `json:"search_count"`
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	TotalSearches   int             `json:"total_searches"`
	Searches24h     int             `json:"searches_24h"`
	AvgResponseTime int64           `json:"avg_response_time"` // in milliseconds
	ZeroResultRate  float64         `json:"zero_result_rate"`
	PopularSearches []PopularSearch `json:"popular_searches"`
	RuleUsage       []RuleUsage     `json:"rule_usage"`
}
