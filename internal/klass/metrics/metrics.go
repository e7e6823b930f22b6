package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the classification cache.
type Metrics struct {
	// Refresh attempts per classification; outcome is success or failure
	Refreshes *prometheus.CounterVec

	RefreshDuration *prometheus.HistogramVec

	// Distinct codes in the current snapshot
	CodesCached *prometheus.GaugeVec

	// 1 while a classification is served from a stale snapshot
	Stale *prometheus.GaugeVec
}

// New creates a new Metrics instance with all classification cache metrics registered.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Refreshes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vardef_klass_refreshes_total",
			Help: "Classification refresh attempts by outcome",
		}, []string{"classification", "outcome"}),

		RefreshDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vardef_klass_refresh_duration_seconds",
			Help:    "Duration of a full classification fetch",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"classification"}),

		CodesCached: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vardef_klass_codes_cached",
			Help: "Codes in the current classification snapshot",
		}, []string{"classification"}),

		Stale: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vardef_klass_snapshot_stale",
			Help: "Whether the classification is served from a stale snapshot",
		}, []string{"classification"}),
	}
}

func (m *Metrics) ObserveRefresh(classificationID string, ok bool, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.Refreshes.WithLabelValues(classificationID, outcome).Inc()
	m.RefreshDuration.WithLabelValues(classificationID).Observe(d.Seconds())
}

func (m *Metrics) SetCodes(classificationID string, n int) {
	if m != nil {
		m.CodesCached.WithLabelValues(classificationID).Set(float64(n))
	}
}

func (m *Metrics) SetStale(classificationID string, stale bool) {
	if m == nil {
		return
	}
	v := 0.0
	if stale {
		v = 1
	}
	m.Stale.WithLabelValues(classificationID).Set(v)
}
