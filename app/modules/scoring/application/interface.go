package scoringservice

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// Service is the scoring module contract.
type Service interface {
	// CalculatePointsForMatch runs a full scoring pass over every prediction
	// for the match and refreshes the affected leaderboard rows in the same
	// transaction. Safe to call repeatedly; each pass replaces prior points.
	CalculatePointsForMatch(ctx context.Context, matchID sharedtypes.MatchID) (*ScoreCalculationResult, error)
}

// LeaderboardRefresher is the slice of the leaderboard service the scoring
// orchestrator needs. It runs on the caller's db handle so the refresh joins
// the scoring transaction.
type LeaderboardRefresher interface {
	RefreshForUsers(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) error
}

// ScoreCalculationResult summarizes a committed scoring pass.
type ScoreCalculationResult struct {
	MatchID      sharedtypes.MatchID `json:"match_id"`
	HomeScore    sharedtypes.Score   `json:"home_score"`
	AwayScore    sharedtypes.Score   `json:"away_score"`
	UpdatedCount int                 `json:"updated_count"`
	SkippedCount int                 `json:"skipped_count"`
	// UserIDs lists every user holding a prediction for the match,
	// including those whose rows were skipped.
	UserIDs []sharedtypes.UserID `json:"user_ids"`
}
