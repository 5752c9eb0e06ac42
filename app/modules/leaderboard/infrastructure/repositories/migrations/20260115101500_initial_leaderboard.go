package leaderboardmigrations

import (
	"context"

	"github.com/uptrace/bun"

	leaderboarddb "github.com/mundo-prode/prode-backend/app/modules/leaderboard/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().Model((*leaderboarddb.LeaderboardRow)(nil)).IfNotExists().
			ForeignKey(`("user_id") REFERENCES "users" ("id")`).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*leaderboarddb.RankHistory)(nil)).IfNotExists().
			ForeignKey(`("user_id") REFERENCES "users" ("id")`).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().Model((*leaderboarddb.RankHistory)(nil)).
			Index("leaderboard_rank_history_user_id_idx").
			Column("user_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewDropTable().Model((*leaderboarddb.RankHistory)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*leaderboarddb.LeaderboardRow)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		return nil
	})
}
