package tournamentservice

import (
	"context"
	"time"

	scoringservice "github.com/mundo-prode/prode-backend/app/modules/scoring/application"
	tournamentdb "github.com/mundo-prode/prode-backend/app/modules/tournament/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// Service is the tournament module contract.
type Service interface {
	CreatePhase(ctx context.Context, phase *tournamentdb.Phase) error
	CreateMatch(ctx context.Context, input CreateMatchInput) (*tournamentdb.Match, error)
	GetMatch(ctx context.Context, matchID sharedtypes.MatchID) (*tournamentdb.Match, error)
	ListMatches(ctx context.Context) ([]tournamentdb.Match, error)

	// FinalizeResult records the final score, moves the match to FINISHED and
	// triggers the scoring pass. Calling it again with a corrected score
	// rescores every prediction.
	FinalizeResult(ctx context.Context, matchID sharedtypes.MatchID, home, away sharedtypes.Score) (*scoringservice.ScoreCalculationResult, error)

	// LockMatch freezes predictions for the match and announces the lock.
	LockMatch(ctx context.Context, matchID sharedtypes.MatchID) error
}

// CreateMatchInput carries the fields needed to schedule a match.
type CreateMatchInput struct {
	HomeTeam  string
	AwayTeam  string
	KickoffAt time.Time
	LockAt    time.Time
	PhaseID   sharedtypes.PhaseID
}
