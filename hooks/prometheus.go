package hooks

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics exports pipeline observations on a caller-supplied
// Registerer, satisfying core.MetricsCollector.
type PrometheusMetrics struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	fallbacks     prometheus.Counter
	throughput    prometheus.Counter
}

// NewPrometheusMetrics registers the pipeline collectors on reg.  Pass
// prometheus.DefaultRegisterer to use the process-global registry.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "placeholder_stage_duration_seconds",
				Help:    "Duration of pipeline stages per reference.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		stageErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "placeholder_stage_errors_total",
				Help: "Degraded stage outcomes by stage and classification.",
			},
			[]string{"stage", "category"},
		),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "placeholder_fallback_dimensions_total",
			Help: "References that fell back to default dimensions.",
		}),
		throughput: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "placeholder_synthesized_bytes_total",
			Help: "Total bytes of synthesized placeholder output.",
		}),
	}
	for _, c := range []prometheus.Collector{m.stageDuration, m.stageErrors, m.fallbacks, m.throughput} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) RecordStageTime(stage string, d interface{ Seconds() float64 }) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *PrometheusMetrics) RecordThroughput(bytes int64) {
	m.throughput.Add(float64(bytes))
}

func (m *PrometheusMetrics) RecordFallback() {
	m.fallbacks.Inc()
}

func (m *PrometheusMetrics) RecordError(stage string, category string) {
	m.stageErrors.WithLabelValues(stage, category).Inc()
}
