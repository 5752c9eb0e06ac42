package scoringservice

import (
	"fmt"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// NotFoundError reports a scoring request for a match that does not exist.
type NotFoundError struct {
	MatchID sharedtypes.MatchID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("match %s not found", e.MatchID)
}

// InvalidStateError reports a scoring request against a match that cannot be
// scored, e.g. one that is not finished or is missing a final score.
type InvalidStateError struct {
	MatchID sharedtypes.MatchID
	Status  sharedtypes.MatchStatus
	Reason  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("match %s (status %s) cannot be scored: %s", e.MatchID, e.Status, e.Reason)
}
