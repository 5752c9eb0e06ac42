package usermigrations

import (
	"context"

	"github.com/uptrace/bun"

	userdb "github.com/mundo-prode/prode-backend/app/modules/user/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().Model((*userdb.User)(nil)).IfNotExists().Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*userdb.User)(nil)).IfExists().Exec(ctx)
		return err
	})
}
