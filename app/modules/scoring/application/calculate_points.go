package scoringservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	predictiondb "github.com/mundo-prode/prode-backend/app/modules/prediction/infrastructure/repositories"
	scoringdomain "github.com/mundo-prode/prode-backend/app/modules/scoring/domain"
	tournamentdb "github.com/mundo-prode/prode-backend/app/modules/tournament/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/events"
	"github.com/mundo-prode/prode-backend/internal/observability/attr"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// CalculatePointsForMatch scores every prediction for a finished match and
// refreshes the affected leaderboard rows inside the same transaction. The
// match row is locked for the duration of the pass, so concurrent calls for
// the same match serialize. Each pass replaces previously computed points,
// which makes rescoring after a result correction safe.
func (s *ScoringService) CalculatePointsForMatch(ctx context.Context, matchID sharedtypes.MatchID) (*ScoreCalculationResult, error) {
	return withTelemetry(s, ctx, "CalculatePointsForMatch", matchID,
		func(ctx context.Context) (*ScoreCalculationResult, error) {
			result, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*ScoreCalculationResult, error) {
				return s.scoreMatch(ctx, db, matchID)
			})
			if err != nil {
				return nil, err
			}

			s.publishScoringEvents(ctx, result)
			return result, nil
		})
}

func (s *ScoringService) scoreMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*ScoreCalculationResult, error) {
	match, err := s.matchRepo.GetMatchForUpdate(ctx, db, matchID)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrMatchNotFound) {
			return nil, &NotFoundError{MatchID: matchID}
		}
		return nil, fmt.Errorf("failed to load match: %w", err)
	}

	if match.Status != sharedtypes.MatchFinished {
		return nil, &InvalidStateError{MatchID: matchID, Status: match.Status, Reason: "match is not finished"}
	}
	if match.HomeScore == nil || match.AwayScore == nil {
		return nil, &InvalidStateError{MatchID: matchID, Status: match.Status, Reason: "final score is missing"}
	}

	predictions, err := s.predictionRepo.GetForMatch(ctx, db, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load predictions: %w", err)
	}

	multiplier := match.Multiplier()
	now := time.Now().UTC()

	result := &ScoreCalculationResult{MatchID: matchID}
	updates := make([]*predictiondb.Prediction, 0, len(predictions))
	for i := range predictions {
		p := &predictions[i]
		result.UserIDs = append(result.UserIDs, p.UserID)

		if p.PredictedHome == nil || p.PredictedAway == nil {
			result.SkippedCount++
			s.logger.WarnContext(ctx, "Skipping prediction with missing scores",
				attr.ExtractCorrelationID(ctx),
				attr.MatchID("match_id", matchID),
				attr.UserID("user_id", p.UserID),
			)
			continue
		}

		breakdown := scoringdomain.Evaluate(s.points,
			*p.PredictedHome, *p.PredictedAway,
			*match.HomeScore, *match.AwayScore,
			multiplier,
		)

		total := breakdown.Total
		p.PointsEarned = &total
		p.PointsBreakdown = &breakdown
		p.IsExact = breakdown.IsExact()
		p.UpdatedAt = now
		updates = append(updates, p)
	}
	result.UpdatedCount = len(updates)

	if len(updates) > 0 {
		if err := s.predictionRepo.UpdateScores(ctx, db, updates); err != nil {
			return nil, fmt.Errorf("failed to persist scores: %w", err)
		}
	}

	// Skipped predictions still count toward totals, so every user with a
	// prediction for this match gets refreshed.
	if err := s.leaderboard.RefreshForUsers(ctx, db, result.UserIDs); err != nil {
		return nil, fmt.Errorf("failed to refresh leaderboard: %w", err)
	}

	result.HomeScore = *match.HomeScore
	result.AwayScore = *match.AwayScore

	s.metrics.RecordPredictionsScored(ctx, result.UpdatedCount)
	s.metrics.RecordPredictionsSkipped(ctx, result.SkippedCount)

	return result, nil
}

// publishScoringEvents announces a committed scoring pass. Publish failures
// are logged, not returned; the points are already persisted.
func (s *ScoringService) publishScoringEvents(ctx context.Context, result *ScoreCalculationResult) {
	if s.eventBus == nil {
		return
	}

	if err := s.eventBus.Publish(ctx, events.MatchFinalized, events.MatchFinalizedPayloadV1{
		MatchID:      result.MatchID,
		HomeScore:    result.HomeScore,
		AwayScore:    result.AwayScore,
		UpdatedCount: result.UpdatedCount,
		SkippedCount: result.SkippedCount,
	}); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish match finalized event",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID("match_id", result.MatchID),
			attr.Error(err),
		)
	}

	if len(result.UserIDs) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events.LeaderboardUpdated, events.LeaderboardUpdatedPayloadV1{
		UserIDs: result.UserIDs,
	}); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish leaderboard updated event",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID("match_id", result.MatchID),
			attr.Error(err),
		)
	}
}
