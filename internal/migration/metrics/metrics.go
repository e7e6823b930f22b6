package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for Vardok migrations.
type Metrics struct {
	// Migration attempts by outcome: migrated, unmapped, rejected
	Migrations *prometheus.CounterVec

	// Mappings recorded by the repair pass
	Repairs prometheus.Counter

	LegacyFetchLatency *prometheus.HistogramVec
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Migrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vardef_vardok_migrations_total",
			Help: "Vardok migration attempts by outcome",
		}, []string{"outcome"}),
		Repairs: f.NewCounter(prometheus.CounterOpts{
			Name: "vardef_vardok_mapping_repairs_total",
			Help: "Vardok mappings recorded by the repair pass",
		}),
		LegacyFetchLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vardef_vardok_fetch_duration_seconds",
			Help:    "Latency of single-language Vardok document fetches",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"language"}),
	}
}

func (m *Metrics) IncrementMigration(outcome string) {
	if m != nil {
		m.Migrations.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncrementRepair() {
	if m != nil {
		m.Repairs.Inc()
	}
}

func (m *Metrics) ObserveFetch(language string, d time.Duration) {
	if m != nil {
		m.LegacyFetchLatency.WithLabelValues(language).Observe(d.Seconds())
	}
}
