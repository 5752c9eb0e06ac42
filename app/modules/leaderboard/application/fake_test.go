package leaderboardservice

import (
	"context"

	"github.com/uptrace/bun"

	leaderboarddb "github.com/mundo-prode/prode-backend/app/modules/leaderboard/infrastructure/repositories"
	userdb "github.com/mundo-prode/prode-backend/app/modules/user/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// ------------------------
// Fake Leaderboard Repo
// ------------------------

// FakeLeaderboardRepository provides a programmable stub for leaderboarddb.Repository.
type FakeLeaderboardRepository struct {
	trace []string

	ComputeUserAggregatesFunc func(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) ([]leaderboarddb.UserAggregate, error)
	UpsertAggregatesFunc      func(ctx context.Context, db bun.IDB, rows []*leaderboarddb.LeaderboardRow) error
	GetRankingEntriesFunc     func(ctx context.Context, db bun.IDB) ([]leaderboarddb.RankingEntry, error)
	UpdateRankingsFunc        func(ctx context.Context, db bun.IDB, rows []*leaderboarddb.LeaderboardRow) error
	GetStandingsFunc          func(ctx context.Context, db bun.IDB, limit int) ([]leaderboarddb.StandingView, error)
	GetRowForUserFunc         func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*leaderboarddb.LeaderboardRow, error)
	InsertRankHistoryFunc     func(ctx context.Context, db bun.IDB, entries []*leaderboarddb.RankHistory) error
	GetRankHistoryForUserFunc func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, limit int) ([]leaderboarddb.RankHistory, error)

	LastUpsertedRows    []*leaderboarddb.LeaderboardRow
	LastRankingUpdates  []*leaderboarddb.LeaderboardRow
	LastInsertedHistory []*leaderboarddb.RankHistory
}

func NewFakeLeaderboardRepository() *FakeLeaderboardRepository {
	return &FakeLeaderboardRepository{trace: []string{}}
}

func (f *FakeLeaderboardRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeLeaderboardRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeLeaderboardRepository) ComputeUserAggregates(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) ([]leaderboarddb.UserAggregate, error) {
	f.record("ComputeUserAggregates")
	if f.ComputeUserAggregatesFunc != nil {
		return f.ComputeUserAggregatesFunc(ctx, db, userIDs)
	}
	return []leaderboarddb.UserAggregate{}, nil
}

func (f *FakeLeaderboardRepository) UpsertAggregates(ctx context.Context, db bun.IDB, rows []*leaderboarddb.LeaderboardRow) error {
	f.record("UpsertAggregates")
	f.LastUpsertedRows = rows
	if f.UpsertAggregatesFunc != nil {
		return f.UpsertAggregatesFunc(ctx, db, rows)
	}
	return nil
}

func (f *FakeLeaderboardRepository) GetRankingEntries(ctx context.Context, db bun.IDB) ([]leaderboarddb.RankingEntry, error) {
	f.record("GetRankingEntries")
	if f.GetRankingEntriesFunc != nil {
		return f.GetRankingEntriesFunc(ctx, db)
	}
	return []leaderboarddb.RankingEntry{}, nil
}

func (f *FakeLeaderboardRepository) UpdateRankings(ctx context.Context, db bun.IDB, rows []*leaderboarddb.LeaderboardRow) error {
	f.record("UpdateRankings")
	f.LastRankingUpdates = rows
	if f.UpdateRankingsFunc != nil {
		return f.UpdateRankingsFunc(ctx, db, rows)
	}
	return nil
}

func (f *FakeLeaderboardRepository) GetStandings(ctx context.Context, db bun.IDB, limit int) ([]leaderboarddb.StandingView, error) {
	f.record("GetStandings")
	if f.GetStandingsFunc != nil {
		return f.GetStandingsFunc(ctx, db, limit)
	}
	return []leaderboarddb.StandingView{}, nil
}

func (f *FakeLeaderboardRepository) GetRowForUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*leaderboarddb.LeaderboardRow, error) {
	f.record("GetRowForUser")
	if f.GetRowForUserFunc != nil {
		return f.GetRowForUserFunc(ctx, db, userID)
	}
	return nil, leaderboarddb.ErrRowNotFound
}

func (f *FakeLeaderboardRepository) InsertRankHistory(ctx context.Context, db bun.IDB, entries []*leaderboarddb.RankHistory) error {
	f.record("InsertRankHistory")
	f.LastInsertedHistory = entries
	if f.InsertRankHistoryFunc != nil {
		return f.InsertRankHistoryFunc(ctx, db, entries)
	}
	return nil
}

func (f *FakeLeaderboardRepository) GetRankHistoryForUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, limit int) ([]leaderboarddb.RankHistory, error) {
	f.record("GetRankHistoryForUser")
	if f.GetRankHistoryForUserFunc != nil {
		return f.GetRankHistoryForUserFunc(ctx, db, userID, limit)
	}
	return []leaderboarddb.RankHistory{}, nil
}

var _ leaderboarddb.Repository = (*FakeLeaderboardRepository)(nil)

// ------------------------
// Fake User Repo
// ------------------------

type FakeUserRepository struct {
	CreateUserFunc  func(ctx context.Context, db bun.IDB, user *userdb.User) error
	GetUserFunc     func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*userdb.User, error)
	ListUserIDsFunc func(ctx context.Context, db bun.IDB) ([]sharedtypes.UserID, error)
}

func (f *FakeUserRepository) CreateUser(ctx context.Context, db bun.IDB, user *userdb.User) error {
	if f.CreateUserFunc != nil {
		return f.CreateUserFunc(ctx, db, user)
	}
	return nil
}

func (f *FakeUserRepository) GetUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*userdb.User, error) {
	if f.GetUserFunc != nil {
		return f.GetUserFunc(ctx, db, userID)
	}
	return nil, userdb.ErrUserNotFound
}

func (f *FakeUserRepository) ListUserIDs(ctx context.Context, db bun.IDB) ([]sharedtypes.UserID, error) {
	if f.ListUserIDsFunc != nil {
		return f.ListUserIDsFunc(ctx, db)
	}
	return []sharedtypes.UserID{}, nil
}

var _ userdb.Repository = (*FakeUserRepository)(nil)

// ------------------------
// Fake Event Bus
// ------------------------

type publishedEvent struct {
	Topic   string
	Payload any
}

type FakeEventBus struct {
	PublishFunc func(ctx context.Context, topic string, payload any) error
	Published   []publishedEvent
}

func (f *FakeEventBus) Publish(ctx context.Context, topic string, payload any) error {
	f.Published = append(f.Published, publishedEvent{Topic: topic, Payload: payload})
	if f.PublishFunc != nil {
		return f.PublishFunc(ctx, topic, payload)
	}
	return nil
}

func (f *FakeEventBus) Close() error { return nil }
