package flakeaggregatorlib

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const metricsNamespace = "flake_aggregator"

// Metrics describes one aggregation run. It is pushed to a Pushgateway at the end of the run,
// since the process does not live long enough to be scraped.
// A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	buildsProcessed      *prometheus.CounterVec
	buildsWithoutResults *prometheus.CounterVec
	testFailures         *prometheus.CounterVec
	jobsSkipped          prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		buildsProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "builds_processed_total",
				Help:      "number of builds inspected, sorted by job",
			},
			[]string{"job_name"},
		),
		buildsWithoutResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "builds_without_results_total",
				Help:      "number of builds that had no test report or no longer exist, sorted by job",
			},
			[]string{"job_name"},
		),
		testFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "test_failures_total",
				Help:      "number of failing test results counted, sorted by job",
			},
			[]string{"job_name"},
		),
		jobsSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "unknown_jobs_skipped_total",
				Help:      "number of requested jobs that do not exist on the CI server",
			},
		),
	}
	m.registry.MustRegister(m.buildsProcessed, m.buildsWithoutResults, m.testFailures, m.jobsSkipped)
	return m
}

func (m *Metrics) recordBuild(jobName string, failures int) {
	if m == nil {
		return
	}
	m.buildsProcessed.WithLabelValues(jobName).Inc()
	m.testFailures.WithLabelValues(jobName).Add(float64(failures))
}

func (m *Metrics) recordBuildWithoutResults(jobName string) {
	if m == nil {
		return
	}
	m.buildsWithoutResults.WithLabelValues(jobName).Inc()
}

func (m *Metrics) recordSkippedJob() {
	if m == nil {
		return
	}
	m.jobsSkipped.Inc()
}

// Push sends the collected metrics to the Pushgateway at url, grouped under job.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if m == nil {
		return nil
	}
	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
