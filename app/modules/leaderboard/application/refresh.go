package leaderboardservice

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	leaderboarddb "github.com/mundo-prode/prode-backend/app/modules/leaderboard/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/events"
	"github.com/mundo-prode/prode-backend/internal/observability/attr"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// RefreshForUsers recomputes aggregates for the given users, then reassigns
// global ranks over the whole cache. It writes on the caller's db handle, so
// the scoring orchestrator can run it inside the same transaction that
// persisted the points.
func (s *LeaderboardService) RefreshForUsers(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) error {
	userIDs = dedupe(userIDs)
	if len(userIDs) == 0 {
		return nil
	}

	start := time.Now()
	s.metrics.RecordRefreshAttempt(ctx)
	defer func() {
		s.metrics.RecordRefreshDuration(ctx, time.Since(start))
	}()

	ctx, span := s.tracer.Start(ctx, "RefreshLeaderboardForUsers")
	defer span.End()

	aggregates, err := s.repo.ComputeUserAggregates(ctx, db, userIDs)
	if err != nil {
		s.metrics.RecordRefreshFailure(ctx)
		return fmt.Errorf("RefreshForUsers: %w", err)
	}

	byUser := make(map[sharedtypes.UserID]leaderboarddb.UserAggregate, len(aggregates))
	for _, agg := range aggregates {
		byUser[agg.UserID] = agg
	}

	rows := make([]*leaderboarddb.LeaderboardRow, 0, len(userIDs))
	for _, userID := range userIDs {
		agg := byUser[userID] // zero aggregate when the user has no scored predictions
		rows = append(rows, &leaderboarddb.LeaderboardRow{
			UserID:             userID,
			TotalPoints:        agg.TotalPoints,
			TotalPredictions:   agg.TotalPredictions,
			CorrectPredictions: agg.CorrectPredictions,
			ExactScores:        agg.ExactScores,
			AccuracyRate:       accuracyRate(agg.CorrectPredictions, agg.TotalPredictions),
		})
	}

	if err := s.repo.UpsertAggregates(ctx, db, rows); err != nil {
		s.metrics.RecordRefreshFailure(ctx)
		return fmt.Errorf("RefreshForUsers: %w", err)
	}

	if err := s.reassignRanks(ctx, db, userIDs); err != nil {
		s.metrics.RecordRefreshFailure(ctx)
		return fmt.Errorf("RefreshForUsers: %w", err)
	}

	s.metrics.RecordRefreshSuccess(ctx)
	s.metrics.RecordUsersRefreshed(ctx, len(userIDs))
	s.logger.InfoContext(ctx, "Leaderboard refreshed",
		attr.ExtractCorrelationID(ctx),
		attr.Int("num_users", len(userIDs)),
	)
	return nil
}

// reassignRanks recomputes the global ordering and persists rank changes,
// appending rank history for the users this refresh touched.
func (s *LeaderboardService) reassignRanks(ctx context.Context, db bun.IDB, touched []sharedtypes.UserID) error {
	entries, err := s.repo.GetRankingEntries(ctx, db)
	if err != nil {
		return err
	}

	assignments := assignRanks(entries)
	now := time.Now().UTC()

	var updates []*leaderboarddb.LeaderboardRow
	rankByUser := make(map[sharedtypes.UserID]rankAssignment, len(assignments))
	for _, a := range assignments {
		rankByUser[a.Entry.UserID] = a
		if a.Rank == a.Entry.Ranking {
			continue
		}
		change := 0
		if a.Entry.Ranking != 0 {
			change = a.Entry.Ranking - a.Rank // positive means the user moved up
		}
		updates = append(updates, &leaderboarddb.LeaderboardRow{
			UserID:          a.Entry.UserID,
			Ranking:         a.Rank,
			PreviousRanking: a.Entry.Ranking,
			RankingChange:   change,
			UpdatedAt:       now,
		})
	}

	if err := s.repo.UpdateRankings(ctx, db, updates); err != nil {
		return err
	}

	var history []*leaderboarddb.RankHistory
	for _, userID := range touched {
		a, ok := rankByUser[userID]
		if !ok {
			continue
		}
		history = append(history, &leaderboarddb.RankHistory{
			UserID:      userID,
			Ranking:     a.Rank,
			TotalPoints: a.Entry.TotalPoints,
			CreatedAt:   now,
		})
	}
	return s.repo.InsertRankHistory(ctx, db, history)
}

// RefreshForUser refreshes a single user in its own transaction and returns
// the resulting cache row.
func (s *LeaderboardService) RefreshForUser(ctx context.Context, userID sharedtypes.UserID) (*leaderboarddb.LeaderboardRow, error) {
	var row *leaderboarddb.LeaderboardRow
	err := s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		if err := s.RefreshForUsers(ctx, db, []sharedtypes.UserID{userID}); err != nil {
			return err
		}
		var err error
		row, err = s.repo.GetRowForUser(ctx, db, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// RefreshAll rebuilds the whole leaderboard and announces the update.
func (s *LeaderboardService) RefreshAll(ctx context.Context) error {
	userIDs, err := s.userRepo.ListUserIDs(ctx, nil)
	if err != nil {
		return fmt.Errorf("RefreshAll: %w", err)
	}

	if err := s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		return s.RefreshForUsers(ctx, db, userIDs)
	}); err != nil {
		return err
	}

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, events.LeaderboardUpdated, events.LeaderboardUpdatedPayloadV1{UserIDs: userIDs}); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish leaderboard update",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
		}
	}
	return nil
}

func accuracyRate(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

func dedupe(userIDs []sharedtypes.UserID) []sharedtypes.UserID {
	seen := make(map[sharedtypes.UserID]struct{}, len(userIDs))
	out := userIDs[:0:0]
	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
