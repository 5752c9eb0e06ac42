package tournamentdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// Phase is a tournament stage. Its multiplier scales every prediction scored
// against matches in the stage.
type Phase struct {
	bun.BaseModel `bun:"table:phases,alias:p"`

	ID               sharedtypes.PhaseID `bun:"id,pk"`
	Name             string              `bun:"name,notnull"`
	PointsMultiplier float64             `bun:"points_multiplier,notnull,default:1"`
}

// Match is a fixture. Final scores stay NULL until the match is FINISHED;
// the write path in SetFinalScore keeps that invariant.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	ID        sharedtypes.MatchID     `bun:"id,pk,type:uuid"`
	HomeTeam  string                  `bun:"home_team,notnull"`
	AwayTeam  string                  `bun:"away_team,notnull"`
	KickoffAt time.Time               `bun:"kickoff_at,notnull"`
	LockAt    time.Time               `bun:"lock_at,notnull"`
	Locked    bool                    `bun:"locked,notnull,default:false"`
	Status    sharedtypes.MatchStatus `bun:"status,notnull,default:'SCHEDULED'"`
	HomeScore *sharedtypes.Score      `bun:"home_score"`
	AwayScore *sharedtypes.Score      `bun:"away_score"`
	PhaseID   sharedtypes.PhaseID     `bun:"phase_id,notnull"`
	Phase     *Phase                  `bun:"rel:belongs-to,join:phase_id=id"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Multiplier returns the phase multiplier, defaulting to 1 when the phase
// relation was not loaded.
func (m *Match) Multiplier() float64 {
	if m.Phase == nil || m.Phase.PointsMultiplier <= 0 {
		return 1
	}
	return m.Phase.PointsMultiplier
}
