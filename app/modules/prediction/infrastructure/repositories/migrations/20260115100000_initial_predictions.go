package predictionmigrations

import (
	"context"

	"github.com/uptrace/bun"

	predictiondb "github.com/mundo-prode/prode-backend/app/modules/prediction/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().Model((*predictiondb.Prediction)(nil)).IfNotExists().
			ForeignKey(`("user_id") REFERENCES "users" ("id")`).
			ForeignKey(`("match_id") REFERENCES "matches" ("id")`).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().Model((*predictiondb.Prediction)(nil)).
			Index("predictions_match_id_idx").
			Column("match_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().Model((*predictiondb.Prediction)(nil)).
			Index("predictions_user_id_idx").
			Column("user_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*predictiondb.Prediction)(nil)).IfExists().Exec(ctx)
		return err
	})
}
