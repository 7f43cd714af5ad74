package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/sketchy-app/sketchy/model"
)

const (
	maxEventsToKeep = 10000 // Keep last 10k events
	popularLimit    = 5
)

// Service implements search analytics tracking and reporting
type Service struct {
	mutex  sync.RWMutex
	events []model.SearchEvent
	now    func() time.Time
}

// NewService creates a new analytics service
func NewService() *Service {
	return &Service{
		events: make([]model.SearchEvent, 0),
		now:    time.Now,
	}
}

// TrackSearchEvent records a new search event. A zero Timestamp is set to now.
func (s *Service) TrackSearchEvent(event model.SearchEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// GetDashboardData returns the aggregated analytics dashboard
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	yesterday := s.now().Add(-24 * time.Hour)

	return model.AnalyticsDashboard{
		TotalSearches:   len(s.events),
		Searches24h:     len(s.filterEventsByTime(yesterday)),
		AvgResponseTime: calculateAvgResponseTime(s.events),
		ZeroResultRate:  calculateZeroResultRate(s.events),
		PopularSearches: getPopularSearches(s.events),
		RuleUsage:       getRuleUsage(s.events),
	}
}

// filterEventsByTime returns events after the given time
func (s *Service) filterEventsByTime(after time.Time) []model.SearchEvent {
	var filtered []model.SearchEvent
	for _, event := range s.events {
		if event.Timestamp.After(after) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateAvgResponseTime calculates average response time for events in milliseconds
func calculateAvgResponseTime(events []model.SearchEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	return (total / time.Duration(len(events))).Milliseconds()
}

func calculateZeroResultRate(events []model.SearchEvent) float64 {
	if len(events) == 0 {
		return 0
	}

	zero := 0
	for _, event := range events {
		if event.ResultCount == 0 {
			zero++
		}
	}
	return float64(zero) / float64(len(events))
}

// getPopularSearches returns the most frequent queries, ties broken alphabetically
func getPopularSearches(events []model.SearchEvent) []model.PopularSearch {
	queryCounts := make(map[string]int)
	for _, event := range events {
		if event.Query != "" {
			queryCounts[event.Query]++
		}
	}

	popular := make([]model.PopularSearch, 0, len(queryCounts))
	for query, count := range queryCounts {
		popular = append(popular, model.PopularSearch{Query: query, SearchCount: count})
	}

	sort.Slice(popular, func(i, j int) bool {
		if popular[i].SearchCount != popular[j].SearchCount {
			return popular[i].SearchCount > popular[j].SearchCount
		}
		return popular[i].Query < popular[j].Query
	})

	if len(popular) > popularLimit {
		popular = popular[:popularLimit]
	}
	return popular
}

func getRuleUsage(events []model.SearchEvent) []model.RuleUsage {
	ruleCounts := make(map[string]int)
	for _, event := range events {
		ruleCounts[event.Rule]++
	}

	usage := make([]model.RuleUsage, 0, len(ruleCounts))
	for rule, count := range ruleCounts {
		usage = append(usage, model.RuleUsage{Rule: rule, SearchCount: count})
	}

	sort.Slice(usage, func(i, j int) bool {
		return usage[i].Rule < usage[j].Rule
	})
	return usage
}
