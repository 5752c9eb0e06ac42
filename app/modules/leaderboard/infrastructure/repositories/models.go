package leaderboarddb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// LeaderboardRow is the per-user denormalized aggregate. It is owned by the
// refresher; nothing else writes it.
type LeaderboardRow struct {
	bun.BaseModel `bun:"table:leaderboard_cache,alias:lc"`

	UserID             sharedtypes.UserID `bun:"user_id,pk,type:uuid"`
	TotalPoints        int                `bun:"total_points,notnull,default:0"`
	TotalPredictions   int                `bun:"total_predictions,notnull,default:0"`
	CorrectPredictions int                `bun:"correct_predictions,notnull,default:0"`
	ExactScores        int                `bun:"exact_scores,notnull,default:0"`
	AccuracyRate       float64            `bun:"accuracy_rate,notnull,default:0"`
	Ranking            int                `bun:"ranking,notnull,default:0"`
	PreviousRanking    int                `bun:"previous_ranking,notnull,default:0"`
	RankingChange      int                `bun:"ranking_change,notnull,default:0"`

	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// RankHistory is an append-only record of a user's rank after each refresh
// that touched them. Feeds the ranking trend chart.
type RankHistory struct {
	bun.BaseModel `bun:"table:leaderboard_rank_history,alias:rh"`

	ID          int64              `bun:"id,pk,autoincrement"`
	UserID      sharedtypes.UserID `bun:"user_id,type:uuid,notnull"`
	Ranking     int                `bun:"ranking,notnull"`
	TotalPoints int                `bun:"total_points,notnull"`
	CreatedAt   time.Time          `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// UserAggregate is the raw per-user rollup computed from predictions on
// finished matches.
type UserAggregate struct {
	UserID             sharedtypes.UserID `bun:"user_id"`
	TotalPoints        int                `bun:"total_points"`
	TotalPredictions   int                `bun:"total_predictions"`
	CorrectPredictions int                `bun:"correct_predictions"`
	ExactScores        int                `bun:"exact_scores"`
}

// RankingEntry is the slice of a cache row the ranking pass needs, joined
// with the account creation time used as the final tie-break.
type RankingEntry struct {
	UserID        sharedtypes.UserID `bun:"user_id"`
	TotalPoints   int                `bun:"total_points"`
	ExactScores   int                `bun:"exact_scores"`
	Ranking       int                `bun:"ranking"`
	UserCreatedAt time.Time          `bun:"user_created_at"`
}

// StandingView is a cache row joined with the user's display name, for read
// endpoints and exports.
type StandingView struct {
	UserID             sharedtypes.UserID `bun:"user_id"`
	DisplayName        string             `bun:"display_name"`
	TotalPoints        int                `bun:"total_points"`
	TotalPredictions   int                `bun:"total_predictions"`
	CorrectPredictions int                `bun:"correct_predictions"`
	ExactScores        int                `bun:"exact_scores"`
	AccuracyRate       float64            `bun:"accuracy_rate"`
	Ranking            int                `bun:"ranking"`
	PreviousRanking    int                `bun:"previous_ranking"`
	RankingChange      int                `bun:"ranking_change"`
}
