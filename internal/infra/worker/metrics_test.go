package worker

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobRunCount(t *testing.T, m *WorkerMetrics, status string) float64 {
	t.Helper()

	metric := &dto.Metric{}
	require.NoError(t, m.JobRunsTotal.WithLabelValues(status).Write(metric))
	return metric.GetCounter().GetValue()
}

func readGauge(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()

	metric := &dto.Metric{}
	require.NoError(t, g.Write(metric))
	return metric.GetGauge().GetValue()
}

func TestWorkerMetrics_RecordJobRun(t *testing.T) {
	m := testMetrics()

	before := jobRunCount(t, m, "success")
	m.RecordJobRun("success")
	m.RecordJobRun("success")
	m.RecordJobRun("failure")

	assert.Equal(t, before+2, jobRunCount(t, m, "success"))
	assert.GreaterOrEqual(t, jobRunCount(t, m, "failure"), 1.0)
}

func TestWorkerMetrics_RecordEntriesProcessed(t *testing.T) {
	m := testMetrics()

	metric := &dto.Metric{}
	require.NoError(t, m.JobEntriesProcessedTotal.Write(metric))
	before := metric.GetCounter().GetValue()

	m.RecordEntriesProcessed(7)

	require.NoError(t, m.JobEntriesProcessedTotal.Write(metric))
	assert.Equal(t, before+7, metric.GetCounter().GetValue())
}

func TestWorkerMetrics_RecordJobDuration(t *testing.T) {
	m := testMetrics()

	m.RecordJobDuration(12.5)

	metric := &dto.Metric{}
	require.NoError(t, m.JobDurationSeconds.Write(metric))
	assert.GreaterOrEqual(t, metric.GetHistogram().GetSampleCount(), uint64(1))
}

func TestWorkerMetrics_RecordLastSuccess(t *testing.T) {
	m := testMetrics()

	m.RecordLastSuccess()
	assert.Greater(t, readGauge(t, m.JobLastSuccessTimestamp), 0.0)
}
