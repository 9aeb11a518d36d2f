package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry served on /metrics
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// DistanceLookups counts resolved distances by the tier that produced them
	DistanceLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "distance_lookups_total", Help: "Distance lookups by source (cache, grid, routing, haversine)."},
		[]string{"source"},
	)
	// RoutingFailures counts routing service errors that fell back to Haversine
	RoutingFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "routing_failures_total", Help: "Routing service calls that failed or timed out."},
	)
	// RoutingLatency tracks routing service call latencies in milliseconds
	RoutingLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "routing_latency_ms", Help: "Routing service latency in ms.", Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000, 10000}},
	)

	// AssignmentRuns counts assignment runs by outcome (done, partial, error)
	AssignmentRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "assignment_runs_total", Help: "Assignment runs by status."},
		[]string{"status"},
	)
	// AssignmentUnassigned tracks how many people were left without a center per run
	AssignmentUnassigned = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "assignment_unassigned_people", Help: "Unassigned people per run.", Buckets: []float64{0, 1, 5, 10, 50, 100, 500}},
	)
	// MatrixDuration records distance matrix build times in seconds
	MatrixDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "distance_matrix_duration_seconds", Help: "Distance matrix build duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"mode"},
	)

	// StreamEvents counts worker stream events by outcome
	StreamEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "stream_events_total", Help: "Assignment stream events by outcome."},
		[]string{"outcome"},
	)
)

var regOnce sync.Once

// RegisterDefault registers collectors to the dedicated registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(DistanceLookups)
		Registry.MustRegister(RoutingFailures)
		Registry.MustRegister(RoutingLatency)
		Registry.MustRegister(AssignmentRuns)
		Registry.MustRegister(AssignmentUnassigned)
		Registry.MustRegister(MatrixDuration)
		Registry.MustRegister(StreamEvents)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
