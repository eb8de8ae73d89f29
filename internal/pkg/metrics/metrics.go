package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring service health and performance
var (
	DeliveriesCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "deliveries_created_total",
			Help: "Total number of deliveries created",
		},
	)

	StatusTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_status_transitions_total",
			Help: "Total number of delivery status transitions by target status",
		},
		[]string{"status"},
	)

	DriverLocationUpdatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "driver_location_updates_total",
			Help: "Total number of driver location updates accepted",
		},
	)

	ProximityQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proximity_queries_total",
			Help: "Total number of proximity queries by kind",
		},
		[]string{"kind"},
	)

	ProximityQueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "proximity_query_duration_seconds",
			Help:    "Duration of proximity queries",
			Buckets: prometheus.DefBuckets,
		},
	)

	LocationRecordsPrunedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "location_records_pruned_total",
			Help: "Total number of driver location records removed by pruning",
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(DeliveriesCreatedTotal)
	prometheus.MustRegister(StatusTransitionsTotal)
	prometheus.MustRegister(DriverLocationUpdatesTotal)
	prometheus.MustRegister(ProximityQueriesTotal)
	prometheus.MustRegister(ProximityQueryDuration)
	prometheus.MustRegister(LocationRecordsPrunedTotal)
}
