package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query names used as label values.
const (
	QueryAvailable   = "available"
	QueryAlmostThere = "almost_there"
	QueryReadiness   = "readiness"
)

// Verdict label values for classified recipes.
const (
	VerdictReady       = "ready"
	VerdictAlmostThere = "almost_there"
	VerdictUnready     = "unready"
)

// Metrics holds the readiness engine collectors.
type Metrics struct {
	queriesTotal      *prometheus.CounterVec
	queryDuration     *prometheus.HistogramVec
	recipesClassified *prometheus.CounterVec
	stepWarnings      *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		queriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "barkeep",
				Name:      "readiness_queries_total",
				Help:      "Total number of readiness queries by outcome",
			},
			[]string{"query", "status"},
		),
		queryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "barkeep",
				Name:      "readiness_query_duration_seconds",
				Help:      "Readiness query duration in seconds, snapshot load included",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"query"},
		),
		recipesClassified: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "barkeep",
				Name:      "recipes_classified_total",
				Help:      "Total number of recipes classified by verdict",
			},
			[]string{"verdict"},
		),
		stepWarnings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "barkeep",
				Name:      "step_warnings_total",
				Help:      "Total number of recipe steps that could not be resolved",
			},
			[]string{"code"},
		),
	}
}

// ObserveQuery records the outcome and latency of a query started at start.
func (m *Metrics) ObserveQuery(query string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.queriesTotal.WithLabelValues(query, status).Inc()
	m.queryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}

// RecipeClassified counts one classified recipe.
func (m *Metrics) RecipeClassified(verdict string) {
	m.recipesClassified.WithLabelValues(verdict).Inc()
}

// StepWarning counts one unresolvable step.
func (m *Metrics) StepWarning(code string) {
	m.stepWarnings.WithLabelValues(code).Inc()
}
