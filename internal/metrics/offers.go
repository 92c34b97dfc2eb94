package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Offers groups the offer workflow counters.
type Offers struct {
	created       prometheus.Counter
	expired       prometheus.Counter
	resolutions   *prometheus.CounterVec
	notifications *prometheus.CounterVec
	broadcasts    *prometheus.CounterVec
}

// NewOffers creates unregistered offer workflow counters.
func NewOffers() *Offers {
	return &Offers{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "offers_created_total",
			Help: "Total number of vehicle offers created by broadcasts",
		}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "offers_expired_total",
			Help: "Total number of offers expired by the sweep",
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "offer_resolutions_total",
			Help: "Total number of offer resolution attempts by action and outcome",
		}, []string{"action", "outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Total number of dispatched notifications by channel and status",
		}, []string{"channel", "status"}),
		broadcasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "offer_broadcasts_total",
			Help: "Total number of broadcasts by whether the pool was empty",
		}, []string{"empty_pool"}),
	}
}

// Collectors returns every collector for registration.
func (m *Offers) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.created, m.expired, m.resolutions, m.notifications, m.broadcasts}
}

// Broadcast records a finished broadcast.
func (m *Offers) Broadcast(offers int) {
	m.broadcasts.WithLabelValues(strconv.FormatBool(offers == 0)).Inc()
	m.created.Add(float64(offers))
}

// Resolved records a resolution attempt.
func (m *Offers) Resolved(action, outcome string) {
	m.resolutions.WithLabelValues(action, outcome).Inc()
}

// Notification records a dispatch outcome.
func (m *Offers) Notification(channel, status string) {
	m.notifications.WithLabelValues(channel, status).Inc()
}

// Expired records offers expired by the sweep.
func (m *Offers) Expired(n int64) {
	if n > 0 {
		m.expired.Add(float64(n))
	}
}
