package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the screening engine
type Metrics struct {
	ScreeningsTotal   *prometheus.CounterVec
	BlockedTotal      prometheus.Counter
	ScreeningDuration prometheus.Histogram
	BatchRowsTotal    *prometheus.CounterVec
	BatchDuration     prometheus.Histogram
}

// New registers the screening instruments on the given registerer
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ScreeningsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "screening",
			Name:      "verdicts_total",
			Help:      "Screening verdicts by risk level",
		}, []string{"risk_level"}),
		BlockedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "screening",
			Name:      "blocked_total",
			Help:      "Transactions flagged for blocking",
		}),
		ScreeningDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "screening",
			Name:      "duration_seconds",
			Help:      "Single-transaction screening latency",
			Buckets:   prometheus.DefBuckets,
		}),
		BatchRowsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "screening",
			Subsystem: "batch",
			Name:      "rows_total",
			Help:      "Batch rows by outcome",
		}, []string{"outcome"}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "screening",
			Subsystem: "batch",
			Name:      "duration_seconds",
			Help:      "Batch screening run duration",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120},
		}),
	}
}

// RecordVerdict counts one screening outcome
func (m *Metrics) RecordVerdict(level string, blocked bool, seconds float64) {
	if m == nil {
		return
	}
	m.ScreeningsTotal.WithLabelValues(level).Inc()
	if blocked {
		m.BlockedTotal.Inc()
	}
	m.ScreeningDuration.Observe(seconds)
}

// RecordBatchDuration observes one batch run's wall time
func (m *Metrics) RecordBatchDuration(seconds float64) {
	if m == nil {
		return
	}
	m.BatchDuration.Observe(seconds)
}

// RecordBatchRow counts one batch row outcome
func (m *Metrics) RecordBatchRow(outcome string) {
	if m == nil {
		return
	}
	m.BatchRowsTotal.WithLabelValues(outcome).Inc()
}
