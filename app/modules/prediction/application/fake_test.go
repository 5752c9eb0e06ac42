package predictionservice

import (
	"context"

	"github.com/uptrace/bun"

	predictiondb "github.com/mundo-prode/prode-backend/app/modules/prediction/infrastructure/repositories"
	tournamentdb "github.com/mundo-prode/prode-backend/app/modules/tournament/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// FakePredictionRepository provides a programmable stub for predictiondb.Repository.
type FakePredictionRepository struct {
	UpsertForecastFunc func(ctx context.Context, db bun.IDB, prediction *predictiondb.Prediction) error
	GetForMatchFunc    func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]predictiondb.Prediction, error)
	GetForUserFunc     func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]predictiondb.Prediction, error)
	UpdateScoresFunc   func(ctx context.Context, db bun.IDB, predictions []*predictiondb.Prediction) error

	LastUpserted *predictiondb.Prediction
}

func (f *FakePredictionRepository) UpsertForecast(ctx context.Context, db bun.IDB, prediction *predictiondb.Prediction) error {
	f.LastUpserted = prediction
	if f.UpsertForecastFunc != nil {
		return f.UpsertForecastFunc(ctx, db, prediction)
	}
	return nil
}

func (f *FakePredictionRepository) GetForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]predictiondb.Prediction, error) {
	if f.GetForMatchFunc != nil {
		return f.GetForMatchFunc(ctx, db, matchID)
	}
	return []predictiondb.Prediction{}, nil
}

func (f *FakePredictionRepository) GetForUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]predictiondb.Prediction, error) {
	if f.GetForUserFunc != nil {
		return f.GetForUserFunc(ctx, db, userID)
	}
	return []predictiondb.Prediction{}, nil
}

func (f *FakePredictionRepository) UpdateScores(ctx context.Context, db bun.IDB, predictions []*predictiondb.Prediction) error {
	if f.UpdateScoresFunc != nil {
		return f.UpdateScoresFunc(ctx, db, predictions)
	}
	return nil
}

var _ predictiondb.Repository = (*FakePredictionRepository)(nil)

// FakeMatchRepository provides a programmable stub for tournamentdb.Repository.
type FakeMatchRepository struct {
	GetMatchFunc func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*tournamentdb.Match, error)
}

func (f *FakeMatchRepository) CreatePhase(context.Context, bun.IDB, *tournamentdb.Phase) error {
	return nil
}

func (f *FakeMatchRepository) GetPhase(_ context.Context, _ bun.IDB, phaseID sharedtypes.PhaseID) (*tournamentdb.Phase, error) {
	return &tournamentdb.Phase{ID: phaseID, PointsMultiplier: 1}, nil
}

func (f *FakeMatchRepository) CreateMatch(context.Context, bun.IDB, *tournamentdb.Match) error {
	return nil
}

func (f *FakeMatchRepository) GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*tournamentdb.Match, error) {
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, db, matchID)
	}
	return nil, tournamentdb.ErrMatchNotFound
}

func (f *FakeMatchRepository) GetMatchForUpdate(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*tournamentdb.Match, error) {
	return f.GetMatch(ctx, db, matchID)
}

func (f *FakeMatchRepository) ListMatches(context.Context, bun.IDB) ([]tournamentdb.Match, error) {
	return []tournamentdb.Match{}, nil
}

func (f *FakeMatchRepository) SetFinalScore(context.Context, bun.IDB, sharedtypes.MatchID, sharedtypes.Score, sharedtypes.Score) error {
	return nil
}

func (f *FakeMatchRepository) LockMatch(context.Context, bun.IDB, sharedtypes.MatchID) error {
	return nil
}

var _ tournamentdb.Repository = (*FakeMatchRepository)(nil)
