package scoringservice

import (
	"context"

	"github.com/uptrace/bun"

	predictiondb "github.com/mundo-prode/prode-backend/app/modules/prediction/infrastructure/repositories"
	tournamentdb "github.com/mundo-prode/prode-backend/app/modules/tournament/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// ------------------------
// Fake Match Repo
// ------------------------

// FakeMatchRepository provides a programmable stub for tournamentdb.Repository.
type FakeMatchRepository struct {
	trace []string

	CreatePhaseFunc       func(ctx context.Context, db bun.IDB, phase *tournamentdb.Phase) error
	GetPhaseFunc          func(ctx context.Context, db bun.IDB, phaseID sharedtypes.PhaseID) (*tournamentdb.Phase, error)
	CreateMatchFunc       func(ctx context.Context, db bun.IDB, match *tournamentdb.Match) error
	GetMatchFunc          func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*tournamentdb.Match, error)
	GetMatchForUpdateFunc func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*tournamentdb.Match, error)
	ListMatchesFunc       func(ctx context.Context, db bun.IDB) ([]tournamentdb.Match, error)
	SetFinalScoreFunc     func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, home, away sharedtypes.Score) error
	LockMatchFunc         func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) error
}

func NewFakeMatchRepository() *FakeMatchRepository {
	return &FakeMatchRepository{trace: []string{}}
}

func (f *FakeMatchRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeMatchRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeMatchRepository) CreatePhase(ctx context.Context, db bun.IDB, phase *tournamentdb.Phase) error {
	f.record("CreatePhase")
	if f.CreatePhaseFunc != nil {
		return f.CreatePhaseFunc(ctx, db, phase)
	}
	return nil
}

func (f *FakeMatchRepository) GetPhase(ctx context.Context, db bun.IDB, phaseID sharedtypes.PhaseID) (*tournamentdb.Phase, error) {
	f.record("GetPhase")
	if f.GetPhaseFunc != nil {
		return f.GetPhaseFunc(ctx, db, phaseID)
	}
	return &tournamentdb.Phase{ID: phaseID, PointsMultiplier: 1}, nil
}

func (f *FakeMatchRepository) CreateMatch(ctx context.Context, db bun.IDB, match *tournamentdb.Match) error {
	f.record("CreateMatch")
	if f.CreateMatchFunc != nil {
		return f.CreateMatchFunc(ctx, db, match)
	}
	return nil
}

func (f *FakeMatchRepository) GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*tournamentdb.Match, error) {
	f.record("GetMatch")
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, db, matchID)
	}
	return nil, tournamentdb.ErrMatchNotFound
}

func (f *FakeMatchRepository) GetMatchForUpdate(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*tournamentdb.Match, error) {
	f.record("GetMatchForUpdate")
	if f.GetMatchForUpdateFunc != nil {
		return f.GetMatchForUpdateFunc(ctx, db, matchID)
	}
	return nil, tournamentdb.ErrMatchNotFound
}

func (f *FakeMatchRepository) ListMatches(ctx context.Context, db bun.IDB) ([]tournamentdb.Match, error) {
	f.record("ListMatches")
	if f.ListMatchesFunc != nil {
		return f.ListMatchesFunc(ctx, db)
	}
	return []tournamentdb.Match{}, nil
}

func (f *FakeMatchRepository) SetFinalScore(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, home, away sharedtypes.Score) error {
	f.record("SetFinalScore")
	if f.SetFinalScoreFunc != nil {
		return f.SetFinalScoreFunc(ctx, db, matchID, home, away)
	}
	return nil
}

func (f *FakeMatchRepository) LockMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) error {
	f.record("LockMatch")
	if f.LockMatchFunc != nil {
		return f.LockMatchFunc(ctx, db, matchID)
	}
	return nil
}

var _ tournamentdb.Repository = (*FakeMatchRepository)(nil)

// ------------------------
// Fake Prediction Repo
// ------------------------

// FakePredictionRepository provides a programmable stub for predictiondb.Repository.
type FakePredictionRepository struct {
	trace []string

	UpsertForecastFunc func(ctx context.Context, db bun.IDB, prediction *predictiondb.Prediction) error
	GetForMatchFunc    func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]predictiondb.Prediction, error)
	GetForUserFunc     func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]predictiondb.Prediction, error)
	UpdateScoresFunc   func(ctx context.Context, db bun.IDB, predictions []*predictiondb.Prediction) error

	LastUpdatedScores []*predictiondb.Prediction
}

func NewFakePredictionRepository() *FakePredictionRepository {
	return &FakePredictionRepository{trace: []string{}}
}

func (f *FakePredictionRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakePredictionRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakePredictionRepository) UpsertForecast(ctx context.Context, db bun.IDB, prediction *predictiondb.Prediction) error {
	f.record("UpsertForecast")
	if f.UpsertForecastFunc != nil {
		return f.UpsertForecastFunc(ctx, db, prediction)
	}
	return nil
}

func (f *FakePredictionRepository) GetForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]predictiondb.Prediction, error) {
	f.record("GetForMatch")
	if f.GetForMatchFunc != nil {
		return f.GetForMatchFunc(ctx, db, matchID)
	}
	return []predictiondb.Prediction{}, nil
}

func (f *FakePredictionRepository) GetForUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]predictiondb.Prediction, error) {
	f.record("GetForUser")
	if f.GetForUserFunc != nil {
		return f.GetForUserFunc(ctx, db, userID)
	}
	return []predictiondb.Prediction{}, nil
}

func (f *FakePredictionRepository) UpdateScores(ctx context.Context, db bun.IDB, predictions []*predictiondb.Prediction) error {
	f.record("UpdateScores")
	f.LastUpdatedScores = predictions
	if f.UpdateScoresFunc != nil {
		return f.UpdateScoresFunc(ctx, db, predictions)
	}
	return nil
}

var _ predictiondb.Repository = (*FakePredictionRepository)(nil)

// ------------------------
// Fake Leaderboard Refresher
// ------------------------

type FakeLeaderboardRefresher struct {
	RefreshForUsersFunc func(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) error
	LastRefreshedUsers  []sharedtypes.UserID
	Calls               int
}

func (f *FakeLeaderboardRefresher) RefreshForUsers(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) error {
	f.Calls++
	f.LastRefreshedUsers = userIDs
	if f.RefreshForUsersFunc != nil {
		return f.RefreshForUsersFunc(ctx, db, userIDs)
	}
	return nil
}

var _ LeaderboardRefresher = (*FakeLeaderboardRefresher)(nil)

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
