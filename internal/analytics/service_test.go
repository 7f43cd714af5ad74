package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchy-app/sketchy/model"
)

func TestAnalyticsService_TrackSearchEvent(t *testing.T) {
	service := NewService()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	service.TrackSearchEvent(model.SearchEvent{
		Rule:         "place",
		Query:        "Moscow",
		ResponseTime: 50 * time.Millisecond,
		ResultCount:  10,
	})

	require.Len(t, service.events, 1)
	assert.Equal(t, "Moscow", service.events[0].Query)
	assert.Equal(t, fixed, service.events[0].Timestamp)
}

func TestAnalyticsService_TrackSearchEvent_KeepsTimestamp(t *testing.T) {
	service := NewService()
	service.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	started := time.Date(2024, 5, 1, 11, 59, 59, 0, time.UTC)

	service.TrackSearchEvent(model.SearchEvent{Rule: "title", Query: "Eiffel", Timestamp: started})

	require.Len(t, service.events, 1)
	assert.Equal(t, started, service.events[0].Timestamp)
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	service := NewService()

	events := []model.SearchEvent{
		{Rule: "place", Query: "Moscow", ResponseTime: 10 * time.Millisecond, ResultCount: 3},
		{Rule: "place", Query: "Moscow", ResponseTime: 20 * time.Millisecond, ResultCount: 3},
		{Rule: "title", Query: "sketch", ResponseTime: 30 * time.Millisecond, ResultCount: 0},
		{Rule: "any", Query: "Paris", ResponseTime: 40 * time.Millisecond, ResultCount: 1},
	}
	for _, e := range events {
		service.TrackSearchEvent(e)
	}

	dashboard := service.GetDashboardData()

	assert.Equal(t, 4, dashboard.TotalSearches)
	assert.Equal(t, 4, dashboard.Searches24h)
	assert.Equal(t, int64(25), dashboard.AvgResponseTime)
	assert.InDelta(t, 0.25, dashboard.ZeroResultRate, 1e-9)

	require.NotEmpty(t, dashboard.PopularSearches)
	assert.Equal(t, model.PopularSearch{Query: "Moscow", SearchCount: 2}, dashboard.PopularSearches[0])
	assert.Equal(t, "Paris", dashboard.PopularSearches[1].Query)

	assert.Equal(t, []model.RuleUsage{
		{Rule: "any", SearchCount: 1},
		{Rule: "place", SearchCount: 2},
		{Rule: "title", SearchCount: 1},
	}, dashboard.RuleUsage)
}

func TestAnalyticsService_Empty(t *testing.T) {
	dashboard := NewService().GetDashboardData()

	assert.Equal(t, 0, dashboard.TotalSearches)
	assert.Equal(t, int64(0), dashboard.AvgResponseTime)
	assert.Equal(t, 0.0, dashboard.ZeroResultRate)
	assert.Empty(t, dashboard.PopularSearches)
}

func TestAnalyticsService_KeepsLatestEvents(t *testing.T) {
	service := NewService()
	for i := 0; i < maxEventsToKeep+10; i++ {
		service.TrackSearchEvent(model.SearchEvent{Rule: "any", Query: fmt.Sprintf("q%d", i)})
	}

	assert.Len(t, service.events, maxEventsToKeep)
	assert.Equal(t, "q10", service.events[0].Query)
}

func TestAnalyticsService_PopularLimit(t *testing.T) {
	service := NewService()
	for i := 0; i < 8; i++ {
		service.TrackSearchEvent(model.SearchEvent{Rule: "any", Query: fmt.Sprintf("q%d", i)})
	}

	assert.Len(t, service.GetDashboardData().PopularSearches, popularLimit)
}
