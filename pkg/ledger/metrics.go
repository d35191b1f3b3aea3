package ledger

import "github.com/prometheus/client_golang/prometheus"

var entriesEmitted = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "ledger_recurring_entries_emitted_total",
		Help: "How many entries were created by catching up recurring rules.",
	},
)

var catchUpWarnings = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "ledger_catch_up_warnings_total",
		Help: "How many recurring rules could not be caught up completely.",
	},
)

var catchUpRuns = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_catch_up_runs_total",
		Help: "How many catch-up runs were made, partitioned by result.",
	},
	[]string{"result"},
)

// Collectors returns the Prometheus metrics of the ledger.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		entriesEmitted,
		catchUpWarnings,
		catchUpRuns,
	}
}
