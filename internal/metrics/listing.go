package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	listingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sketchy",
			Name:      "listing_requests_total",
			Help:      "Listing requests by endpoint and response mode",
		},
		[]string{"endpoint", "mode"},
	)

	searchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sketchy",
			Name:      "search_candidates",
			Help:      "Number of sketches scanned per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	searchMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sketchy",
			Name:      "search_matches",
			Help:      "Number of ranked matches per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

func init() {
	prometheus.MustRegister(listingRequestsTotal, searchCandidates, searchMatches)
}

// ObserveListing counts a listing request answered in the given mode.
func ObserveListing(endpoint, mode string) {
	listingRequestsTotal.WithLabelValues(endpoint, mode).Inc()
}

// ObserveSearch records the size of a ranking pass.
func ObserveSearch(candidates, matches int) {
	searchCandidates.Observe(float64(candidates))
	searchMatches.Observe(float64(matches))
}
