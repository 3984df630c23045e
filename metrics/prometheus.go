package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// fetchDurationHistogram tracks the duration of upstream fetches
	fetchDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dashboard_fetch_duration_seconds",
			Help: "Time taken to fetch data from external APIs",
		},
		[]string{"component"},
	)

	// httpRequestsCounter counts requests by component and outcome
	httpRequestsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "Number of HTTP requests by component and status",
		},
		[]string{"component", "status"},
	)

	// httpRetriesCounter counts retry attempts by component
	httpRetriesCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_http_retries_total",
			Help: "Number of HTTP retry attempts by component",
		},
		[]string{"component"},
	)

	// cacheReadsCounter counts cache lookups by result
	cacheReadsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cache_reads_total",
			Help: "Number of cache reads by result (hit, miss, stale)",
		},
		[]string{"result"},
	)

	// fxResolutionsCounter counts which tier resolved a currency rate
	fxResolutionsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_fx_resolutions_total",
			Help: "Number of FX rate resolutions by source tier",
		},
		[]string{"source"},
	)
)

// RecordCacheRead records a cache lookup result: "hit", "miss" or "stale"
func RecordCacheRead(result string) {
	cacheReadsCounter.WithLabelValues(result).Inc()
}

// RecordFxResolution records the tier that produced an FX rate:
// "primary", "secondary", "builtin" or "none"
func RecordFxResolution(source string) {
	fxResolutionsCounter.WithLabelValues(source).Inc()
}

// RecordFetchDuration observes the elapsed time of one fetch operation
func RecordFetchDuration(component string, start time.Time) {
	fetchDurationHistogram.WithLabelValues(component).Observe(time.Since(start).Seconds())
}
