package tournamentservice

import (
	"fmt"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// MatchNotFoundError reports an operation on a match that does not exist.
type MatchNotFoundError struct {
	MatchID sharedtypes.MatchID
}

func (e *MatchNotFoundError) Error() string {
	return fmt.Sprintf("match %s not found", e.MatchID)
}

// PhaseNotFoundError reports a match referencing an unknown phase.
type PhaseNotFoundError struct {
	PhaseID sharedtypes.PhaseID
}

func (e *PhaseNotFoundError) Error() string {
	return fmt.Sprintf("phase %q not found", e.PhaseID)
}

// InvalidMatchError reports a match definition that fails validation.
type InvalidMatchError struct {
	Reason string
}

func (e *InvalidMatchError) Error() string {
	return fmt.Sprintf("invalid match: %s", e.Reason)
}

// InvalidResultError reports a final score that fails validation.
type InvalidResultError struct {
	Reason string
}

func (e *InvalidResultError) Error() string {
	return fmt.Sprintf("invalid result: %s", e.Reason)
}
