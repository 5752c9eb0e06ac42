package predictionservice

import (
	"fmt"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// MatchNotFoundError reports a forecast for a match that does not exist.
type MatchNotFoundError struct {
	MatchID sharedtypes.MatchID
}

func (e *MatchNotFoundError) Error() string {
	return fmt.Sprintf("match %s not found", e.MatchID)
}

// MatchLockedError reports a forecast for a match whose predictions are
// already immutable.
type MatchLockedError struct {
	MatchID sharedtypes.MatchID
	Reason  string
}

func (e *MatchLockedError) Error() string {
	return fmt.Sprintf("match %s no longer accepts predictions: %s", e.MatchID, e.Reason)
}

// InvalidForecastError reports a forecast that fails validation.
type InvalidForecastError struct {
	Reason string
}

func (e *InvalidForecastError) Error() string {
	return fmt.Sprintf("invalid forecast: %s", e.Reason)
}
