package tournamentdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// Repository is the match/phase storage contract. A nil db falls back to the
// repository's own handle; passing a bun.Tx runs the call inside that
// transaction.
type Repository interface {
	CreatePhase(ctx context.Context, db bun.IDB, phase *Phase) error
	GetPhase(ctx context.Context, db bun.IDB, phaseID sharedtypes.PhaseID) (*Phase, error)

	CreateMatch(ctx context.Context, db bun.IDB, match *Match) error
	GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*Match, error)
	// GetMatchForUpdate loads the match with its phase and takes a row-level
	// lock on the match, serializing concurrent scoring passes for it.
	GetMatchForUpdate(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*Match, error)
	ListMatches(ctx context.Context, db bun.IDB) ([]Match, error)

	// SetFinalScore records the result and moves the match to FINISHED.
	// Calling it again overwrites the result (score corrections).
	SetFinalScore(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, home, away sharedtypes.Score) error
	// LockMatch marks the match's predictions immutable.
	LockMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) error
}
