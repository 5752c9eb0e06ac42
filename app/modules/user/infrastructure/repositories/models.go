package userdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// User is the minimal account record this service needs. Registration and
// authentication live in an upstream service; the row exists for leaderboard
// display names and the account-age ranking tie-break.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          sharedtypes.UserID `bun:"id,pk,type:uuid"`
	DisplayName string             `bun:"display_name,notnull"`
	CreatedAt   time.Time          `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
