package observability

import "github.com/prometheus/client_golang/prometheus"

// Domain counters. HTTP traffic is instrumented separately by the metrics
// middleware; these track what the procurement engine did.
var (
	// RequirementWrites counts requirement writes by outcome:
	// created|merged|conflict|updated|deleted|replayed.
	RequirementWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procurement_requirement_writes_total",
			Help: "Requirement writes by outcome.",
		},
		[]string{"outcome"},
	)

	// DeliveriesMarked counts requirement rows moved from pending to delivered.
	DeliveriesMarked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "procurement_deliveries_marked_total",
			Help: "Requirements transitioned to delivered.",
		},
	)

	// MatrixCache counts matrix cache lookups by result: hit|miss.
	MatrixCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procurement_matrix_cache_total",
			Help: "Matrix cache lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(RequirementWrites, DeliveriesMarked, MatrixCache)
}
