package scoringservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	predictiondb "github.com/mundo-prode/prode-backend/app/modules/prediction/infrastructure/repositories"
	scoringdomain "github.com/mundo-prode/prode-backend/app/modules/scoring/domain"
	tournamentdb "github.com/mundo-prode/prode-backend/app/modules/tournament/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/eventbus"
	"github.com/mundo-prode/prode-backend/internal/observability/attr"
	"github.com/mundo-prode/prode-backend/internal/observability/metrics"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// ScoringService implements the Service interface.
type ScoringService struct {
	matchRepo      tournamentdb.Repository
	predictionRepo predictiondb.Repository
	leaderboard    LeaderboardRefresher
	eventBus       eventbus.EventBus
	logger         *slog.Logger
	metrics        metrics.ScoringMetrics
	tracer         trace.Tracer
	db             *bun.DB
	points         scoringdomain.PointsConfig
}

var _ Service = (*ScoringService)(nil)

// NewScoringService creates a new ScoringService.
func NewScoringService(
	matchRepo tournamentdb.Repository,
	predictionRepo predictiondb.Repository,
	leaderboard LeaderboardRefresher,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	scoringMetrics metrics.ScoringMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	points scoringdomain.PointsConfig,
) *ScoringService {
	return &ScoringService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		leaderboard:    leaderboard,
		eventBus:       eventBus,
		logger:         logger,
		metrics:        scoringMetrics,
		tracer:         tracer,
		db:             db,
		points:         points,
	}
}

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[T any](
	s *ScoringService,
	ctx context.Context,
	operationName string,
	matchID sharedtypes.MatchID,
	op func(ctx context.Context) (T, error),
) (result T, err error) {

	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("match_id", matchID.String()),
	))
	defer span.End()

	s.metrics.RecordScoringAttempt(ctx, matchID)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.MatchID("match_id", matchID),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.MatchID("match_id", matchID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordScoringFailure(ctx, matchID)
			span.RecordError(err)
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.MatchID("match_id", matchID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordScoringFailure(ctx, matchID)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	s.logger.InfoContext(ctx, operationName+" completed successfully",
		attr.String("operation", operationName),
		attr.MatchID("match_id", matchID),
		attr.ExtractCorrelationID(ctx),
	)
	s.metrics.RecordScoringSuccess(ctx, matchID)

	return result, nil
}

// runInTx ensures the operation runs within a transaction. With a nil DB
// (unit tests) fn runs directly against the repositories' own handles.
func runInTx[T any](
	s *ScoringService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (T, error),
) (T, error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result T
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}
