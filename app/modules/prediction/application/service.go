package predictionservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	predictiondb "github.com/mundo-prode/prode-backend/app/modules/prediction/infrastructure/repositories"
	tournamentdb "github.com/mundo-prode/prode-backend/app/modules/tournament/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/observability/attr"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// PredictionService implements the Service interface.
type PredictionService struct {
	repo      predictiondb.Repository
	matchRepo tournamentdb.Repository
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

var _ Service = (*PredictionService)(nil)

// NewPredictionService creates a new PredictionService.
func NewPredictionService(
	repo predictiondb.Repository,
	matchRepo tournamentdb.Repository,
	logger *slog.Logger,
	tracer trace.Tracer,
) *PredictionService {
	return &PredictionService{
		repo:      repo,
		matchRepo: matchRepo,
		logger:    logger,
		tracer:    tracer,
		now:       time.Now,
	}
}

// SubmitPrediction validates the forecast against the match state and upserts
// it. Resubmitting before lock replaces the previous forecast.
func (s *PredictionService) SubmitPrediction(ctx context.Context, userID sharedtypes.UserID, matchID sharedtypes.MatchID, home, away sharedtypes.Score) (*predictiondb.Prediction, error) {
	ctx, span := s.tracer.Start(ctx, "SubmitPrediction")
	defer span.End()

	if home < 0 || away < 0 {
		return nil, &InvalidForecastError{Reason: "scores must be non-negative"}
	}

	match, err := s.matchRepo.GetMatch(ctx, nil, matchID)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrMatchNotFound) {
			return nil, &MatchNotFoundError{MatchID: matchID}
		}
		return nil, fmt.Errorf("SubmitPrediction: %w", err)
	}

	switch {
	case match.Locked:
		return nil, &MatchLockedError{MatchID: matchID, Reason: "match is locked"}
	case !s.now().Before(match.LockAt):
		return nil, &MatchLockedError{MatchID: matchID, Reason: "lock time has passed"}
	case match.Status != sharedtypes.MatchScheduled:
		return nil, &MatchLockedError{MatchID: matchID, Reason: fmt.Sprintf("match is %s", match.Status)}
	}

	prediction := &predictiondb.Prediction{
		UserID:        userID,
		MatchID:       matchID,
		PredictedHome: &home,
		PredictedAway: &away,
	}
	if err := s.repo.UpsertForecast(ctx, nil, prediction); err != nil {
		return nil, fmt.Errorf("SubmitPrediction: %w", err)
	}

	s.logger.InfoContext(ctx, "Prediction submitted",
		attr.ExtractCorrelationID(ctx),
		attr.UserID("user_id", userID),
		attr.MatchID("match_id", matchID),
	)
	return prediction, nil
}

func (s *PredictionService) GetPredictionsForUser(ctx context.Context, userID sharedtypes.UserID) ([]predictiondb.Prediction, error) {
	return s.repo.GetForUser(ctx, nil, userID)
}

func (s *PredictionService) GetPredictionsForMatch(ctx context.Context, matchID sharedtypes.MatchID) ([]predictiondb.Prediction, error) {
	return s.repo.GetForMatch(ctx, nil, matchID)
}
