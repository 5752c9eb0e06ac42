package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// ScoringMetrics records instrumentation for the match scoring engine.
type ScoringMetrics interface {
	RecordScoringAttempt(ctx context.Context, matchID sharedtypes.MatchID)
	RecordScoringSuccess(ctx context.Context, matchID sharedtypes.MatchID)
	RecordScoringFailure(ctx context.Context, matchID sharedtypes.MatchID)
	RecordPredictionsScored(ctx context.Context, count int)
	RecordPredictionsSkipped(ctx context.Context, count int)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
}

type prometheusScoringMetrics struct {
	attempts          prometheus.Counter
	successes         prometheus.Counter
	failures          prometheus.Counter
	predictionsScored prometheus.Counter
	predictionsSkip   prometheus.Counter
	operationDuration *prometheus.HistogramVec
}

// NewScoringMetrics registers and returns Prometheus-backed scoring metrics.
func NewScoringMetrics(reg prometheus.Registerer) ScoringMetrics {
	m := &prometheusScoringMetrics{
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prode_scoring_attempts_total",
			Help: "Number of scoring passes started.",
		}),
		successes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prode_scoring_successes_total",
			Help: "Number of scoring passes that committed.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prode_scoring_failures_total",
			Help: "Number of scoring passes that failed.",
		}),
		predictionsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prode_predictions_scored_total",
			Help: "Number of predictions scored across all passes.",
		}),
		predictionsSkip: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prode_predictions_skipped_total",
			Help: "Number of malformed predictions skipped.",
		}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prode_scoring_operation_duration_seconds",
			Help:    "Duration of scoring operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.predictionsScored, m.predictionsSkip, m.operationDuration)
	return m
}

func (m *prometheusScoringMetrics) RecordScoringAttempt(_ context.Context, _ sharedtypes.MatchID) {
	m.attempts.Inc()
}

func (m *prometheusScoringMetrics) RecordScoringSuccess(_ context.Context, _ sharedtypes.MatchID) {
	m.successes.Inc()
}

func (m *prometheusScoringMetrics) RecordScoringFailure(_ context.Context, _ sharedtypes.MatchID) {
	m.failures.Inc()
}

func (m *prometheusScoringMetrics) RecordPredictionsScored(_ context.Context, count int) {
	m.predictionsScored.Add(float64(count))
}

func (m *prometheusScoringMetrics) RecordPredictionsSkipped(_ context.Context, count int) {
	m.predictionsSkip.Add(float64(count))
}

func (m *prometheusScoringMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// NoOpScoringMetrics discards all measurements. Used in tests.
type NoOpScoringMetrics struct{}

func (NoOpScoringMetrics) RecordScoringAttempt(context.Context, sharedtypes.MatchID) {}
func (NoOpScoringMetrics) RecordScoringSuccess(context.Context, sharedtypes.MatchID) {}
func (NoOpScoringMetrics) RecordScoringFailure(context.Context, sharedtypes.MatchID) {}
func (NoOpScoringMetrics) RecordPredictionsScored(context.Context, int)              {}
func (NoOpScoringMetrics) RecordPredictionsSkipped(context.Context, int)             {}
func (NoOpScoringMetrics) RecordOperationDuration(context.Context, string, time.Duration) {
}
