package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring service health and throughput
var (
	LinksCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "links_created_total",
			Help: "Total number of tracking links created",
		},
	)

	ResolvesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "link_resolves_total",
			Help: "Total number of successful link resolutions",
		},
	)

	CapturesIngestedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "captures_ingested_total",
			Help: "Total number of capture events persisted",
		},
	)

	CapturesRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "captures_rejected_total",
			Help: "Total number of capture events that failed to persist",
		},
	)

	BroadcastsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcasts_total",
			Help: "Total number of capture events fanned out to observers",
		},
	)

	BroadcastDropsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_drops_total",
			Help: "Total number of deliveries dropped because an observer session was full",
		},
	)

	ObserverSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "observer_sessions",
			Help: "Number of currently connected observer sessions",
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(
		LinksCreatedTotal,
		ResolvesTotal,
		CapturesIngestedTotal,
		CapturesRejectedTotal,
		BroadcastsTotal,
		BroadcastDropsTotal,
		ObserverSessions,
	)
}
