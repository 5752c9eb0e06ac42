package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QueueMetrics records instrumentation for scheduled-job operations.
type QueueMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

type prometheusQueueMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewQueueMetrics registers and returns Prometheus-backed queue metrics.
func NewQueueMetrics(reg prometheus.Registerer) QueueMetrics {
	labels := []string{"operation", "service"}
	m := &prometheusQueueMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prode_queue_operation_attempts_total",
			Help: "Number of queue operations started.",
		}, labels),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prode_queue_operation_successes_total",
			Help: "Number of queue operations that succeeded.",
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prode_queue_operation_failures_total",
			Help: "Number of queue operations that failed.",
		}, labels),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prode_queue_operation_duration_seconds",
			Help:    "Duration of queue operations.",
			Buckets: prometheus.DefBuckets,
		}, labels),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations)
	return m
}

func (m *prometheusQueueMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *prometheusQueueMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *prometheusQueueMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *prometheusQueueMetrics) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	m.durations.WithLabelValues(operation, service).Observe(duration.Seconds())
}

// NoOpQueueMetrics discards all measurements. Used in tests.
type NoOpQueueMetrics struct{}

func (NoOpQueueMetrics) RecordOperationAttempt(context.Context, string, string) {}
func (NoOpQueueMetrics) RecordOperationSuccess(context.Context, string, string) {}
func (NoOpQueueMetrics) RecordOperationFailure(context.Context, string, string) {}
func (NoOpQueueMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {
}
