package tournamentdb

import "errors"

// Sentinel errors for the repository layer. The service layer decides whether
// they are domain failures.
var (
	// ErrMatchNotFound indicates the requested match does not exist.
	ErrMatchNotFound = errors.New("match not found")

	// ErrPhaseNotFound indicates the requested phase does not exist.
	ErrPhaseNotFound = errors.New("phase not found")
)
