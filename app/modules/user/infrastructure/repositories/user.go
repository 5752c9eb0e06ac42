package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// Impl is the bun-backed user repository.
type Impl struct {
	db *bun.DB
}

var _ Repository = (*Impl)(nil)

func NewRepository(db *bun.DB) *Impl {
	return &Impl{db: db}
}

func (r *Impl) CreateUser(ctx context.Context, db bun.IDB, user *User) error {
	if db == nil {
		db = r.db
	}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return fmt.Errorf("userdb.CreateUser: %w", err)
	}
	return nil
}

func (r *Impl) GetUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*User, error) {
	if db == nil {
		db = r.db
	}
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Where("id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("userdb.GetUser: %w", err)
	}
	return user, nil
}

func (r *Impl) ListUserIDs(ctx context.Context, db bun.IDB) ([]sharedtypes.UserID, error) {
	if db == nil {
		db = r.db
	}
	var ids []sharedtypes.UserID
	err := db.NewSelect().
		Model((*User)(nil)).
		Column("id").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("userdb.ListUserIDs: %w", err)
	}
	return ids, nil
}
