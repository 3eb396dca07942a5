// Package metrics exposes analysis results as Prometheus collectors on a
// private registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"StockAdvisor/internal/model"
)

// Metrics holds the advisor's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	subScore         *prometheus.GaugeVec
	finalScore       *prometheus.GaugeVec
	outcomes         *prometheus.CounterVec
	providerFailures *prometheus.CounterVec
	duration         prometheus.Histogram
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		subScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockadvisor_sub_score",
				Help: "Latest sub-score per symbol and factor (0 to 100)",
			},
			[]string{"symbol", "factor"},
		),
		finalScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockadvisor_final_score",
				Help: "Latest consolidated score per symbol (0 to 100)",
			},
			[]string{"symbol"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockadvisor_factor_outcomes_total",
				Help: "Sub-score outcomes by factor",
			},
			[]string{"factor", "outcome"},
		),
		providerFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockadvisor_provider_failures_total",
				Help: "Analyses in which a factor's data provider failed",
			},
			[]string{"factor"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stockadvisor_analysis_duration_seconds",
				Help:    "Wall time of one collect and evaluate cycle",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
	}
	m.registry.MustRegister(m.subScore, m.finalScore, m.outcomes, m.providerFailures, m.duration)
	return m
}

// ObserveAnalysis records the scores of a finished analysis and how long it took.
func (m *Metrics) ObserveAnalysis(a *model.Analysis, elapsed time.Duration) {
	for _, s := range a.SubScores() {
		m.subScore.WithLabelValues(a.Symbol, string(s.Factor)).Set(float64(s.Score))
		m.outcomes.WithLabelValues(string(s.Factor), string(s.Outcome)).Inc()
		if s.Outcome == model.OutcomeProviderFailure {
			m.providerFailures.WithLabelValues(string(s.Factor)).Inc()
		}
	}
	m.finalScore.WithLabelValues(a.Symbol).Set(float64(a.Consolidated.FinalScore))
	m.duration.Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
