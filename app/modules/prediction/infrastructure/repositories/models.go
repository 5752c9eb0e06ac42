package predictiondb

import (
	"time"

	"github.com/uptrace/bun"

	scoringdomain "github.com/mundo-prode/prode-backend/app/modules/scoring/domain"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// Prediction is one user's forecast for one match, unique per (user, match).
// Predicted scores are pointers because historical rows imported from the old
// system can miss one side; such rows are skipped (never scored) and reported
// in the skip count. Points fields stay NULL until a scoring pass runs.
type Prediction struct {
	bun.BaseModel `bun:"table:predictions,alias:pr"`

	ID            int64               `bun:"id,pk,autoincrement"`
	UserID        sharedtypes.UserID  `bun:"user_id,type:uuid,notnull,unique:predictions_user_match_key"`
	MatchID       sharedtypes.MatchID `bun:"match_id,type:uuid,notnull,unique:predictions_user_match_key"`
	PredictedHome *sharedtypes.Score  `bun:"predicted_home"`
	PredictedAway *sharedtypes.Score  `bun:"predicted_away"`

	PointsEarned    *int                           `bun:"points_earned"`
	PointsBreakdown *scoringdomain.PointsBreakdown `bun:"points_breakdown,type:jsonb"`
	IsExact         bool                           `bun:"is_exact,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
