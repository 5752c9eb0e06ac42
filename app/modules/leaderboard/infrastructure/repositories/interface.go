package leaderboarddb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// Repository is the leaderboard storage contract. A nil db falls back to the
// repository's own handle; passing a bun.Tx runs the call inside that
// transaction.
type Repository interface {
	// ComputeUserAggregates rolls up predictions on finished matches for the
	// given users. Users with no such predictions produce no row.
	ComputeUserAggregates(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) ([]UserAggregate, error)
	// UpsertAggregates writes aggregate columns, leaving ranking columns as
	// they are for existing rows.
	UpsertAggregates(ctx context.Context, db bun.IDB, rows []*LeaderboardRow) error
	GetRankingEntries(ctx context.Context, db bun.IDB) ([]RankingEntry, error)
	UpdateRankings(ctx context.Context, db bun.IDB, rows []*LeaderboardRow) error

	GetStandings(ctx context.Context, db bun.IDB, limit int) ([]StandingView, error)
	GetRowForUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*LeaderboardRow, error)

	InsertRankHistory(ctx context.Context, db bun.IDB, entries []*RankHistory) error
	GetRankHistoryForUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, limit int) ([]RankHistory, error)
}
