package leaderboarddb

import "errors"

// ErrRowNotFound indicates no cache row exists for the requested user.
var ErrRowNotFound = errors.New("leaderboard row not found")
