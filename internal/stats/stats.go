// Package stats exposes the core's Prometheus gauges and counters:
// term/clause store sizes, index occupancy, and interpolant-minimizer
// run outcomes and durations.
package stats

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeLabel names the result label shared by the minimizer
	// counters below.
	OutcomeLabel = "outcome"
)

var (
	termCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "proofcore_term_count",
		Help: "Number of distinct hash-consed terms currently interned",
	})

	literalCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "proofcore_literal_count",
		Help: "Number of distinct hash-consed literals currently interned",
	})

	totalSymbolWeight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "proofcore_total_symbol_weight",
		Help: "Sum of symbol-count weight across all interned terms and literals",
	})

	clauseCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "proofcore_clause_count",
		Help: "Number of clauses currently registered in the unit store",
	})

	indexEntryCount = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "proofcore_index_entry_count",
		Help: "Number of entries currently held by a term index, by name",
	}, []string{"index"})

	minimizerRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "proofcore_minimizer_runs_total",
		Help: "Count of interpolant-minimizer invocations by outcome",
	}, []string{OutcomeLabel})

	minimizerDuration = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name:       "proofcore_minimizer_duration_seconds",
		Help:       "Wall-clock duration of an interpolant-minimizer invocation",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{OutcomeLabel})

	slicedUnitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "proofcore_sliced_units_total",
		Help: "Monotonic count of proof-DAG units collapsed by the interpolant minimizer",
	})
)

// Register adds every stats collector to the default Prometheus
// registry. Call once at process startup.
func Register() {
	prometheus.MustRegister(
		termCount,
		literalCount,
		totalSymbolWeight,
		clauseCount,
		indexEntryCount,
		minimizerRuns,
		minimizerDuration,
		slicedUnitsTotal,
	)
}

// StoreSnapshot is the subset of term.StoreStats the stats package
// reports; defined locally to avoid internal/stats importing
// internal/term for a three-field struct.
type StoreSnapshot struct {
	NumTerms    int
	NumLiterals int
	TotalWeight int
}

// ObserveStore updates the term/literal gauges from a store snapshot.
func ObserveStore(snap StoreSnapshot) {
	termCount.Set(float64(snap.NumTerms))
	literalCount.Set(float64(snap.NumLiterals))
	totalSymbolWeight.Set(float64(snap.TotalWeight))
}

// ObserveClauseCount sets the registered-clause gauge.
func ObserveClauseCount(n int) {
	clauseCount.Set(float64(n))
}

// ObserveIndexSize sets the named index's entry-count gauge.
func ObserveIndexSize(name string, n int) {
	indexEntryCount.WithLabelValues(name).Set(float64(n))
}

// RecordMinimizerRun records one interpolant-minimizer invocation's
// outcome and duration, and adds slicedCount to the running total of
// collapsed units.
func RecordMinimizerRun(outcome string, duration time.Duration, slicedCount int) {
	minimizerRuns.WithLabelValues(outcome).Inc()
	minimizerDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	if slicedCount > 0 {
		slicedUnitsTotal.Add(float64(slicedCount))
	}
}
