package userdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// Repository is the user storage contract. A nil db falls back to the
// repository's own handle; passing a bun.Tx runs the call inside that
// transaction.
type Repository interface {
	CreateUser(ctx context.Context, db bun.IDB, user *User) error
	GetUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*User, error)
	ListUserIDs(ctx context.Context, db bun.IDB) ([]sharedtypes.UserID, error)
}
