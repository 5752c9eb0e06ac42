// Package events defines the topics and payloads this service publishes.
package events

import (
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

const (
	MatchLocked                 = "match.locked"
	MatchFinalized              = "match.finalized"
	LeaderboardUpdated          = "leaderboard.updated"
	LeaderboardRefreshRequested = "leaderboard.refresh.requested"
)

// MatchLockedPayloadV1 is published when a match's lock time passes and its
// predictions become immutable.
type MatchLockedPayloadV1 struct {
	MatchID sharedtypes.MatchID `json:"match_id"`
}

// MatchFinalizedPayloadV1 is published after a scoring pass commits.
type MatchFinalizedPayloadV1 struct {
	MatchID      sharedtypes.MatchID `json:"match_id"`
	HomeScore    sharedtypes.Score   `json:"home_score"`
	AwayScore    sharedtypes.Score   `json:"away_score"`
	UpdatedCount int                 `json:"updated_count"`
	SkippedCount int                 `json:"skipped_count"`
}

// LeaderboardUpdatedPayloadV1 is published after aggregates are recomputed.
type LeaderboardUpdatedPayloadV1 struct {
	UserIDs []sharedtypes.UserID `json:"user_ids"`
}

// LeaderboardRefreshRequestedPayloadV1 asks for a full leaderboard re-sync.
// Empty UserIDs means every user.
type LeaderboardRefreshRequestedPayloadV1 struct {
	UserIDs []sharedtypes.UserID `json:"user_ids,omitempty"`
}
