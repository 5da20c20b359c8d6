package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"clinton-lexicon/internal/pkg/config"
)

// WorkerMetrics provides Prometheus metrics for the worker component.
// It embeds ConfigMetrics for configuration monitoring and adds job
// execution metrics for the scheduled definition updater:
//
//   - worker_definition_job_runs_total: Runs by status (success/failure/skipped)
//   - worker_definition_job_duration_seconds: Duration histogram per run
//   - worker_definition_job_entries_processed_total: Entries attempted across runs
//   - worker_definition_job_last_success_timestamp: Unix time of last successful run
type WorkerMetrics struct {
	*config.ConfigMetrics

	JobRunsTotal             *prometheus.CounterVec
	JobDurationSeconds       prometheus.Histogram
	JobEntriesProcessedTotal prometheus.Counter
	JobLastSuccessTimestamp  prometheus.Gauge
}

// NewWorkerMetrics creates worker metrics. Registration with the default
// Prometheus registry happens on creation via promauto.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		JobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_definition_job_runs_total",
			Help: "Total number of definition update job runs by status (success/failure/skipped)",
		}, []string{"status"}),

		JobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name: "worker_definition_job_duration_seconds",
			Help: "Duration of definition update job runs in seconds",
			// A full run is at most max_requests lookups a few seconds apart.
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		}),

		JobEntriesProcessedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_definition_job_entries_processed_total",
			Help: "Total number of lexicon entries attempted across all update runs",
		}),

		JobLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_definition_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful definition update run",
		}),
	}
}

// RecordJobRun increments the run counter for the given status. Status is
// "success", "failure", or "skipped" (another run was already in flight).
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.JobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes the duration of a job run in seconds.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.JobDurationSeconds.Observe(seconds)
}

// RecordEntriesProcessed adds the number of entries attempted in a run.
func (m *WorkerMetrics) RecordEntriesProcessed(count int) {
	m.JobEntriesProcessedTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.JobLastSuccessTimestamp.SetToCurrentTime()
}
