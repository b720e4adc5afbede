package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SolveDuration tracks how long a solve() invocation takes, end to end.
var SolveDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "vetoncall",
		Name:      "solve_duration_seconds",
		Help:      "Wall-clock duration of a solve invocation, in seconds.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
	},
)

// SolveStatusTotal counts solves by the status the solver reported.
var SolveStatusTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "vetoncall",
		Name:      "solve_status_total",
		Help:      "Total solves by terminal status.",
	},
	[]string{"status"},
)

// DiagnosticViolationsTotal accumulates violations the diagnostic oracle
// has found across runs. It should stay at zero; a nonzero value means
// the constraint compiler and the diagnostic rule table have drifted.
var DiagnosticViolationsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "vetoncall",
		Name:      "diagnostic_violations_total",
		Help:      "Total constraint violations found by the diagnostic oracle.",
	},
)

// BalanceGap records the last observed max-min spread per balancing
// category (primary_total, backup_weekday, secondary_weekend_day).
var BalanceGap = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "vetoncall",
		Name:      "balance_gap",
		Help:      "Last observed max-min spread for a balancing category.",
	},
	[]string{"category"},
)

// All returns every collector this package defines, for registration.
func All() []prometheus.Collector {
	return []prometheus.Collector{
		SolveDuration,
		SolveStatusTotal,
		DiagnosticViolationsTotal,
		BalanceGap,
	}
}

// NewRegistry creates a Prometheus registry with Go/process collectors
// plus this package's collectors and any extra ones passed in.
func NewRegistry(extra ...prometheus.Collector) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	for _, c := range All() {
		reg.MustRegister(c)
	}
	for _, c := range extra {
		reg.MustRegister(c)
	}
	return reg
}
