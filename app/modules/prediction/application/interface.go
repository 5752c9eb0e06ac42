package predictionservice

import (
	"context"

	predictiondb "github.com/mundo-prode/prode-backend/app/modules/prediction/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// Service is the prediction module contract.
type Service interface {
	// SubmitPrediction creates or replaces the user's forecast for a match.
	// Forecasts are rejected once the match is locked.
	SubmitPrediction(ctx context.Context, userID sharedtypes.UserID, matchID sharedtypes.MatchID, home, away sharedtypes.Score) (*predictiondb.Prediction, error)
	GetPredictionsForUser(ctx context.Context, userID sharedtypes.UserID) ([]predictiondb.Prediction, error)
	GetPredictionsForMatch(ctx context.Context, matchID sharedtypes.MatchID) ([]predictiondb.Prediction, error)
}
