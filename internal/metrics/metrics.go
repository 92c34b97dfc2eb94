package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewDispatchRetriesTotal returns a Prometheus counter for the number of notification dispatch retries
func NewDispatchRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_dispatch_retries_total",
		Help: "Total number of retry attempts performed by notification dispatchers",
	})
}

// NewDispatchThrottledTotal returns a Prometheus counter for dispatches abandoned while waiting on a channel rate limit
func NewDispatchThrottledTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_dispatch_throttled_total",
		Help: "Total number of notification dispatches abandoned while waiting for a channel rate limit",
	})
}
