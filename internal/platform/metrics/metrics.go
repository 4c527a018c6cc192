package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics provides observability for room allocation.
type Metrics struct {
	AllocationWrites    *prometheus.CounterVec
	AllocationConflicts *prometheus.CounterVec
	WriteDuration       *prometheus.HistogramVec
	AvailabilityQueries *prometheus.CounterVec
	AvailabilityLatency prometheus.Histogram
	RequestLatency      *prometheus.HistogramVec
}

// New registers the allocation metrics on reg. Pass prometheus.DefaultRegisterer
// in main and prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AllocationWrites: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hostel_allocation_writes_total",
			Help: "Committed allocation writes by operation",
		}, []string{"operation"}),
		AllocationConflicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hostel_allocation_conflicts_total",
			Help: "Allocation writes rejected because of an overlapping booking",
		}, []string{"operation"}),
		WriteDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hostel_allocation_write_duration_seconds",
			Help:    "Duration of conflict-checked allocation writes, lock wait included",
			Buckets: durationBuckets,
		}, []string{"operation"}),
		AvailabilityQueries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hostel_availability_queries_total",
			Help: "Availability listings served by classification",
		}, []string{"status"}),
		AvailabilityLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hostel_availability_duration_seconds",
			Help:    "Duration of per-center availability classification",
			Buckets: durationBuckets,
		}),
		RequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hostel_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: durationBuckets,
		}, []string{"method", "route"}),
	}
}

// IncrementWrite records a committed allocation write. Nil-safe.
func (m *Metrics) IncrementWrite(operation string) {
	if m == nil {
		return
	}
	m.AllocationWrites.WithLabelValues(operation).Inc()
}

// IncrementConflict records an overlap rejection. Nil-safe.
func (m *Metrics) IncrementConflict(operation string) {
	if m == nil {
		return
	}
	m.AllocationConflicts.WithLabelValues(operation).Inc()
}

// ObserveWrite records the duration of a write started at start. Nil-safe.
func (m *Metrics) ObserveWrite(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.WriteDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveAvailability records one classification pass. Nil-safe.
func (m *Metrics) ObserveAvailability(status string, start time.Time) {
	if m == nil {
		return
	}
	m.AvailabilityQueries.WithLabelValues(status).Inc()
	m.AvailabilityLatency.Observe(time.Since(start).Seconds())
}

// ObserveRequest records one HTTP request. Nil-safe.
func (m *Metrics) ObserveRequest(method, route string, start time.Time) {
	if m == nil {
		return
	}
	m.RequestLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}
