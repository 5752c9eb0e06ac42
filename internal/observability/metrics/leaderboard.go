package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LeaderboardMetrics records instrumentation for leaderboard refreshes.
type LeaderboardMetrics interface {
	RecordRefreshAttempt(ctx context.Context)
	RecordRefreshSuccess(ctx context.Context)
	RecordRefreshFailure(ctx context.Context)
	RecordUsersRefreshed(ctx context.Context, count int)
	RecordRefreshDuration(ctx context.Context, duration time.Duration)
}

type prometheusLeaderboardMetrics struct {
	attempts        prometheus.Counter
	successes       prometheus.Counter
	failures        prometheus.Counter
	usersRefreshed  prometheus.Counter
	refreshDuration prometheus.Histogram
}

// NewLeaderboardMetrics registers and returns Prometheus-backed leaderboard metrics.
func NewLeaderboardMetrics(reg prometheus.Registerer) LeaderboardMetrics {
	m := &prometheusLeaderboardMetrics{
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prode_leaderboard_refresh_attempts_total",
			Help: "Number of leaderboard refreshes started.",
		}),
		successes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prode_leaderboard_refresh_successes_total",
			Help: "Number of leaderboard refreshes that committed.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prode_leaderboard_refresh_failures_total",
			Help: "Number of leaderboard refreshes that failed.",
		}),
		usersRefreshed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prode_leaderboard_users_refreshed_total",
			Help: "Number of user aggregate rows recomputed.",
		}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "prode_leaderboard_refresh_duration_seconds",
			Help:    "Duration of leaderboard refresh operations.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.usersRefreshed, m.refreshDuration)
	return m
}

func (m *prometheusLeaderboardMetrics) RecordRefreshAttempt(_ context.Context) { m.attempts.Inc() }
func (m *prometheusLeaderboardMetrics) RecordRefreshSuccess(_ context.Context) { m.successes.Inc() }
func (m *prometheusLeaderboardMetrics) RecordRefreshFailure(_ context.Context) { m.failures.Inc() }

func (m *prometheusLeaderboardMetrics) RecordUsersRefreshed(_ context.Context, count int) {
	m.usersRefreshed.Add(float64(count))
}

func (m *prometheusLeaderboardMetrics) RecordRefreshDuration(_ context.Context, duration time.Duration) {
	m.refreshDuration.Observe(duration.Seconds())
}

// NoOpLeaderboardMetrics discards all measurements. Used in tests.
type NoOpLeaderboardMetrics struct{}

func (NoOpLeaderboardMetrics) RecordRefreshAttempt(context.Context)                  {}
func (NoOpLeaderboardMetrics) RecordRefreshSuccess(context.Context)                  {}
func (NoOpLeaderboardMetrics) RecordRefreshFailure(context.Context)                  {}
func (NoOpLeaderboardMetrics) RecordUsersRefreshed(context.Context, int)             {}
func (NoOpLeaderboardMetrics) RecordRefreshDuration(context.Context, time.Duration)  {}
