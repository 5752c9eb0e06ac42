package predictiondb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// Repository is the prediction storage contract. A nil db falls back to the
// repository's own handle; passing a bun.Tx runs the call inside that
// transaction.
type Repository interface {
	// UpsertForecast creates or replaces the user's predicted scores for a
	// match. Computed points fields are left untouched.
	UpsertForecast(ctx context.Context, db bun.IDB, prediction *Prediction) error
	GetForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]Prediction, error)
	GetForUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]Prediction, error)
	// UpdateScores overwrites the computed points fields of the given rows.
	// Recomputation replaces prior values, never accumulates.
	UpdateScores(ctx context.Context, db bun.IDB, predictions []*Prediction) error
}
