package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"

	obs "service-fleet-dispatch/internal/http/middleware"
	"service-fleet-dispatch/internal/metrics"
)

// newRegistry creates the per-process registry served on /metrics.
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter `name:"rate_limit_exceeded_total"`
	DispatchRetriesTotal   prometheus.Counter `name:"dispatch_retries_total"`
	DispatchThrottledTotal prometheus.Counter `name:"dispatch_throttled_total"`
	Offers                 *metrics.Offers
	HTTP                   *obs.HTTPMetrics
}

func provideMetrics(reg prometheus.Registerer) (metricsOut, error) {
	out := metricsOut{
		RateLimitExceededTotal: metrics.NewRateLimitExceededTotal(),
		DispatchRetriesTotal:   metrics.NewDispatchRetriesTotal(),
		DispatchThrottledTotal: metrics.NewDispatchThrottledTotal(),
		Offers:                 metrics.NewOffers(),
		HTTP:                   obs.NewHTTPMetrics(),
	}

	named := map[string]prometheus.Collector{
		"rate_limit_exceeded_total":             out.RateLimitExceededTotal,
		"notification_dispatch_retries_total":   out.DispatchRetriesTotal,
		"notification_dispatch_throttled_total": out.DispatchThrottledTotal,
	}
	for name, c := range named {
		if err := reg.Register(c); err != nil {
			return metricsOut{}, fmt.Errorf("register %s: %w", name, err)
		}
	}
	for _, c := range append(out.Offers.Collectors(), out.HTTP.Collectors()...) {
		if err := reg.Register(c); err != nil {
			return metricsOut{}, fmt.Errorf("register offer metrics: %w", err)
		}
	}
	return out, nil
}
