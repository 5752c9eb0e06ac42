package tournamentmigrations

import (
	"context"

	"github.com/uptrace/bun"

	tournamentdb "github.com/mundo-prode/prode-backend/app/modules/tournament/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().Model((*tournamentdb.Phase)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*tournamentdb.Match)(nil)).IfNotExists().
			ForeignKey(`("phase_id") REFERENCES "phases" ("id")`).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().Model((*tournamentdb.Match)(nil)).
			Index("matches_status_idx").
			Column("status").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewDropTable().Model((*tournamentdb.Match)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*tournamentdb.Phase)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		return nil
	})
}
