// Package metrics exposes Prometheus instrumentation for solver runs and the
// HTTP service.
//
// SolverMetrics implements solver.Recorder, so any caller of solver.Solve
// can be instrumented by setting Config.Recorder. All metric operations are
// safe for concurrent use.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/knapsack/bnb"
	"github.com/katalvlaran/knapsack/dp"
	"github.com/katalvlaran/knapsack/instance"
	"github.com/katalvlaran/knapsack/solver"
)

const namespace = "knapsack"

// SolverMetrics holds the solver and HTTP collectors.
type SolverMetrics struct {
	// SolvesTotal counts successful runs.
	// Labels: algo (bnb, dp), variant (bounded, unbounded), stop.
	SolvesTotal *prometheus.CounterVec

	// FailuresTotal counts runs that returned an error.
	// Labels: algo, variant, reason (overflow, table_too_large, ...).
	FailuresTotal *prometheus.CounterVec

	// SolveDurationSeconds measures wall time per run.
	// Labels: algo, variant.
	SolveDurationSeconds *prometheus.HistogramVec

	// NodesTotal counts branch-and-bound nodes.
	// Labels: variant.
	NodesTotal *prometheus.CounterVec

	// HTTPRequestsTotal counts service requests.
	// Labels: route, code.
	HTTPRequestsTotal *prometheus.CounterVec

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal prometheus.Counter
}

var _ solver.Recorder = (*SolverMetrics)(nil)

// New registers all collectors on reg. Passing a fresh prometheus.Registry
// keeps tests independent; the binaries pass prometheus.DefaultRegisterer.
// Registering twice on the same registerer panics.
func New(reg prometheus.Registerer) *SolverMetrics {
	f := promauto.With(reg)

	return &SolverMetrics{
		SolvesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "solves_total",
				Help:      "Completed solver runs by algorithm, variant and stop reason",
			},
			[]string{"algo", "variant", "stop"},
		),
		FailuresTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "solve_failures_total",
				Help:      "Solver runs that returned an error",
			},
			[]string{"algo", "variant", "reason"},
		),
		SolveDurationSeconds: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "solve_duration_seconds",
				Help:      "Solver wall time in seconds",
				Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
			},
			[]string{"algo", "variant"},
		),
		NodesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bnb_nodes_total",
				Help:      "Branch-and-bound nodes expanded",
			},
			[]string{"variant"},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		RateLimitedTotal: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "rate_limited_total",
				Help:      "HTTP requests rejected by the rate limiter",
			},
		),
	}
}

// ObserveSolve records a successful run.
func (m *SolverMetrics) ObserveSolve(rep solver.Report) {
	algo, variant := rep.Algo.String(), rep.Variant.String()
	m.SolvesTotal.WithLabelValues(algo, variant, rep.Stop.String()).Inc()
	m.SolveDurationSeconds.WithLabelValues(algo, variant).Observe(rep.Elapsed.Seconds())
	if rep.Algo == solver.BranchAndBound {
		m.NodesTotal.WithLabelValues(variant).Add(float64(rep.Stats.Nodes))
	}
}

// ObserveFailure records a failed run under a bounded set of reasons.
func (m *SolverMetrics) ObserveFailure(algo solver.Algo, variant instance.Variant, err error) {
	m.FailuresTotal.WithLabelValues(algo.String(), variant.String(), Reason(err)).Inc()
}

// ObserveHTTP records one served request.
func (m *SolverMetrics) ObserveHTTP(route, code string, _ time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(route, code).Inc()
}

// Reason classifies err into a low-cardinality label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, bnb.ErrOverflow), errors.Is(err, dp.ErrOverflow):
		return "overflow"
	case errors.Is(err, bnb.ErrUnboundedObjective), errors.Is(err, dp.ErrUnboundedObjective):
		return "unbounded_objective"
	case errors.Is(err, dp.ErrTableTooLarge):
		return "table_too_large"
	case errors.Is(err, solver.ErrUnsupportedAlgorithm), errors.Is(err, solver.ErrNegativeTimeLimit),
		errors.Is(err, bnb.ErrNegativeTimeLimit):
		return "bad_config"
	case errors.Is(err, instance.ErrNegativeBudget), errors.Is(err, instance.ErrNegativeCost),
		errors.Is(err, instance.ErrNegativeValue):
		return "invalid_instance"
	default:
		return "other"
	}
}
