package matchqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	tournamentdb "github.com/mundo-prode/prode-backend/app/modules/tournament/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/eventbus"
	"github.com/mundo-prode/prode-backend/internal/observability/attr"
	"github.com/mundo-prode/prode-backend/internal/observability/metrics"
)

const matchQueueName = "match"

// Service schedules match lock jobs using River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics metrics.QueueMetrics
}

// NewService creates a River-based queue service for match lifecycle jobs.
// River needs its own pgx pool; it cannot share the bun database/sql handle.
func NewService(
	ctx context.Context,
	dsn string,
	repo tournamentdb.Repository,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	queueMetrics metrics.QueueMetrics,
) (*Service, error) {
	queueMetrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		queueMetrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("matchqueue.NewService: failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		queueMetrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("matchqueue.NewService: failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		queueMetrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("matchqueue.NewService: failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewMatchLockWorker(repo, eventBus, logger))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			matchQueueName:     {MaxWorkers: 5},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		queueMetrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("matchqueue.NewService: failed to create River client: %w", err)
	}

	queueMetrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	logger.InfoContext(ctx, "Match queue service initialized")

	return &Service{
		client:  client,
		pool:    pool,
		logger:  logger,
		metrics: queueMetrics,
	}, nil
}

// Start begins processing scheduled jobs.
func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("matchqueue.Start: %w", err)
	}
	s.logger.InfoContext(ctx, "Match queue service started")
	return nil
}

// Stop drains in-flight jobs and closes the pool.
func (s *Service) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("matchqueue.Stop: %w", err)
	}
	s.pool.Close()
	s.logger.InfoContext(ctx, "Match queue service stopped")
	return nil
}

// ScheduleMatchLock enqueues a lock job at the match's lock time. Scheduling
// the same match twice is a no-op thanks to unique-by-args insertion.
func (s *Service) ScheduleMatchLock(ctx context.Context, match *tournamentdb.Match) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_match_lock", "river")
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "schedule_match_lock", "river", time.Since(start))
	}()

	opts := &river.InsertOpts{
		Queue:       matchQueueName,
		ScheduledAt: match.LockAt,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	}
	// A lock time already in the past runs immediately.
	if !match.LockAt.After(time.Now()) {
		opts.ScheduledAt = time.Time{}
	}

	result, err := s.client.Insert(ctx, MatchLockJob{MatchID: match.ID.String()}, opts)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "schedule_match_lock", "river")
		return fmt.Errorf("matchqueue.ScheduleMatchLock: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "schedule_match_lock", "river")
	s.logger.InfoContext(ctx, "Match lock job scheduled",
		attr.MatchID("match_id", match.ID),
		attr.Time("lock_at", match.LockAt),
		attr.Int64("job_id", result.Job.ID),
	)
	return nil
}

// HealthCheck verifies the queue's database connectivity.
func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("matchqueue.HealthCheck: %w", err)
	}
	return nil
}
