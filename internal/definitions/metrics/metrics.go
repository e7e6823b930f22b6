package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the definitions module.
type Metrics struct {
	// Records written by operation: create, patch, validity_period
	RecordsWritten *prometheus.CounterVec

	// Rejected writes by operation and error kind
	Rejections *prometheus.CounterVec

	OperationLatency *prometheus.HistogramVec

	// Latest-period definitions per status, set by the export job
	DefinitionsByStatus *prometheus.GaugeVec
}

// New creates a new Metrics instance with all definitions module metrics registered.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers against reg, so tests can use a private registry.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordsWritten: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vardef_definition_records_written_total",
			Help: "Persisted definition records by operation",
		}, []string{"operation"}),

		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vardef_definition_rejections_total",
			Help: "Rejected definition writes by operation and error code",
		}, []string{"operation", "code"}),

		OperationLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vardef_definition_operation_duration_seconds",
			Help:    "Duration of definition write operations",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		DefinitionsByStatus: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vardef_definitions_by_status",
			Help: "Variable definitions by status of their latest patch",
		}, []string{"status"}),
	}
}

func (m *Metrics) IncrementWritten(operation string, n int) {
	if m != nil {
		m.RecordsWritten.WithLabelValues(operation).Add(float64(n))
	}
}

func (m *Metrics) IncrementRejection(operation, code string) {
	if m != nil {
		m.Rejections.WithLabelValues(operation, code).Inc()
	}
}

func (m *Metrics) ObserveLatency(operation string, d time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// SetStatusCounts replaces the status gauge values.
func (m *Metrics) SetStatusCounts(counts map[string]int) {
	if m == nil {
		return
	}
	m.DefinitionsByStatus.Reset()
	for status, n := range counts {
		m.DefinitionsByStatus.WithLabelValues(status).Set(float64(n))
	}
}
