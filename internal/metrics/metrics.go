// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ItemsCopied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pacs_sync",
		Subsystem: "copy",
		Name:      "items_copied_total",
		Help:      "Total number of items written to a destination, per workflow",
	}, []string{"workflow"})
	ItemsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pacs_sync",
		Subsystem: "copy",
		Name:      "items_failed_total",
		Help:      "Total number of items that could not be copied, per workflow",
	}, []string{"workflow"})
	ItemsMissing = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pacs_sync",
		Subsystem: "copy",
		Name:      "items_missing",
		Help:      "Number of items missing from the destination at the start of the last run, per workflow",
	}, []string{"workflow"})

	SearchPolls = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pacs_sync",
		Subsystem: "search",
		Name:      "job_polls_total",
		Help:      "Total number of search job status requests",
	})
	SearchJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pacs_sync",
		Subsystem: "search",
		Name:      "jobs_total",
		Help:      "Total number of search jobs, per terminal state (done/timed_out/failed)",
	}, []string{"state"})
	SearchResultRows = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pacs_sync",
		Subsystem: "search",
		Name:      "result_rows_total",
		Help:      "Total number of result rows fetched from search jobs",
	})

	Runs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pacs_sync",
		Subsystem: "workflow",
		Name:      "runs_total",
		Help:      "Total number of workflow runs, per workflow and outcome (ok/error)",
	}, []string{"workflow", "outcome"})
	RunSeconds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pacs_sync",
		Subsystem: "workflow",
		Name:      "run_seconds_total",
		Help:      "Total time spent in workflow runs, per workflow",
	}, []string{"workflow"})
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
