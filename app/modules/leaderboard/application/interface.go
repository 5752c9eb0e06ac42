package leaderboardservice

import (
	"context"

	"github.com/uptrace/bun"

	leaderboarddb "github.com/mundo-prode/prode-backend/app/modules/leaderboard/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// Service is the leaderboard module contract.
type Service interface {
	// RefreshForUsers recomputes aggregates for the given users and reassigns
	// global ranks. Runs on the given db handle so callers can include it in
	// their own transaction.
	RefreshForUsers(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) error
	// RefreshForUser refreshes a single user in its own transaction and
	// returns the resulting cache row.
	RefreshForUser(ctx context.Context, userID sharedtypes.UserID) (*leaderboarddb.LeaderboardRow, error)
	// RefreshAll rebuilds the whole leaderboard.
	RefreshAll(ctx context.Context) error

	GetStandings(ctx context.Context, limit int) ([]leaderboarddb.StandingView, error)
	GetRowForUser(ctx context.Context, userID sharedtypes.UserID) (*leaderboarddb.LeaderboardRow, error)
	ExportStandings(ctx context.Context) ([]byte, error)
	RankingChart(ctx context.Context, userID sharedtypes.UserID) ([]byte, error)
}
