package tournamentservice

import (
	"context"

	"github.com/uptrace/bun"

	scoringservice "github.com/mundo-prode/prode-backend/app/modules/scoring/application"
	tournamentdb "github.com/mundo-prode/prode-backend/app/modules/tournament/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// FakeTournamentRepository provides a programmable stub for tournamentdb.Repository.
type FakeTournamentRepository struct {
	CreatePhaseFunc   func(ctx context.Context, db bun.IDB, phase *tournamentdb.Phase) error
	GetPhaseFunc      func(ctx context.Context, db bun.IDB, phaseID sharedtypes.PhaseID) (*tournamentdb.Phase, error)
	CreateMatchFunc   func(ctx context.Context, db bun.IDB, match *tournamentdb.Match) error
	GetMatchFunc      func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*tournamentdb.Match, error)
	ListMatchesFunc   func(ctx context.Context, db bun.IDB) ([]tournamentdb.Match, error)
	SetFinalScoreFunc func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, home, away sharedtypes.Score) error
	LockMatchFunc     func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) error

	LastCreatedMatch *tournamentdb.Match
}

func (f *FakeTournamentRepository) CreatePhase(ctx context.Context, db bun.IDB, phase *tournamentdb.Phase) error {
	if f.CreatePhaseFunc != nil {
		return f.CreatePhaseFunc(ctx, db, phase)
	}
	return nil
}

func (f *FakeTournamentRepository) GetPhase(ctx context.Context, db bun.IDB, phaseID sharedtypes.PhaseID) (*tournamentdb.Phase, error) {
	if f.GetPhaseFunc != nil {
		return f.GetPhaseFunc(ctx, db, phaseID)
	}
	return &tournamentdb.Phase{ID: phaseID, Name: "Group stage", PointsMultiplier: 1}, nil
}

func (f *FakeTournamentRepository) CreateMatch(ctx context.Context, db bun.IDB, match *tournamentdb.Match) error {
	f.LastCreatedMatch = match
	if f.CreateMatchFunc != nil {
		return f.CreateMatchFunc(ctx, db, match)
	}
	return nil
}

func (f *FakeTournamentRepository) GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*tournamentdb.Match, error) {
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, db, matchID)
	}
	return nil, tournamentdb.ErrMatchNotFound
}

func (f *FakeTournamentRepository) GetMatchForUpdate(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*tournamentdb.Match, error) {
	return f.GetMatch(ctx, db, matchID)
}

func (f *FakeTournamentRepository) ListMatches(ctx context.Context, db bun.IDB) ([]tournamentdb.Match, error) {
	if f.ListMatchesFunc != nil {
		return f.ListMatchesFunc(ctx, db)
	}
	return []tournamentdb.Match{}, nil
}

func (f *FakeTournamentRepository) SetFinalScore(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, home, away sharedtypes.Score) error {
	if f.SetFinalScoreFunc != nil {
		return f.SetFinalScoreFunc(ctx, db, matchID, home, away)
	}
	return nil
}

func (f *FakeTournamentRepository) LockMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) error {
	if f.LockMatchFunc != nil {
		return f.LockMatchFunc(ctx, db, matchID)
	}
	return nil
}

var _ tournamentdb.Repository = (*FakeTournamentRepository)(nil)

// FakeScoringService provides a programmable stub for the scoring contract.
type FakeScoringService struct {
	CalculatePointsForMatchFunc func(ctx context.Context, matchID sharedtypes.MatchID) (*scoringservice.ScoreCalculationResult, error)
	Calls                       int
}

func (f *FakeScoringService) CalculatePointsForMatch(ctx context.Context, matchID sharedtypes.MatchID) (*scoringservice.ScoreCalculationResult, error) {
	f.Calls++
	if f.CalculatePointsForMatchFunc != nil {
		return f.CalculatePointsForMatchFunc(ctx, matchID)
	}
	return &scoringservice.ScoreCalculationResult{MatchID: matchID}, nil
}

var _ scoringservice.Service = (*FakeScoringService)(nil)

// FakeScheduler records scheduled lock jobs.
type FakeScheduler struct {
	ScheduleMatchLockFunc func(ctx context.Context, match *tournamentdb.Match) error
	Scheduled             []*tournamentdb.Match
}

func (f *FakeScheduler) ScheduleMatchLock(ctx context.Context, match *tournamentdb.Match) error {
	f.Scheduled = append(f.Scheduled, match)
	if f.ScheduleMatchLockFunc != nil {
		return f.ScheduleMatchLockFunc(ctx, match)
	}
	return nil
}

var _ MatchLockScheduler = (*FakeScheduler)(nil)

// FakeEventBus records published events.
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
