package leaderboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// Impl is the bun-backed leaderboard repository.
type Impl struct {
	db *bun.DB
}

var _ Repository = (*Impl)(nil)

func NewRepository(db *bun.DB) *Impl {
	return &Impl{db: db}
}

func (r *Impl) ComputeUserAggregates(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) ([]UserAggregate, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	if db == nil {
		db = r.db
	}

	var aggregates []UserAggregate
	err := db.NewSelect().
		TableExpr("predictions AS pr").
		Join("JOIN matches AS m ON m.id = pr.match_id").
		ColumnExpr("pr.user_id").
		ColumnExpr("COALESCE(SUM(pr.points_earned), 0) AS total_points").
		ColumnExpr("COUNT(*) AS total_predictions").
		ColumnExpr("COUNT(*) FILTER (WHERE pr.points_earned > 0) AS correct_predictions").
		ColumnExpr("COUNT(*) FILTER (WHERE pr.is_exact) AS exact_scores").
		Where("m.status = ?", sharedtypes.MatchFinished).
		Where("pr.user_id IN (?)", bun.In(userIDs)).
		GroupExpr("pr.user_id").
		Scan(ctx, &aggregates)
	if err != nil {
		return nil, fmt.Errorf("leaderboarddb.ComputeUserAggregates: %w", err)
	}
	return aggregates, nil
}

func (r *Impl) UpsertAggregates(ctx context.Context, db bun.IDB, rows []*LeaderboardRow) error {
	if len(rows) == 0 {
		return nil
	}
	if db == nil {
		db = r.db
	}
	now := time.Now().UTC()
	for _, row := range rows {
		row.UpdatedAt = now
	}
	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (user_id) DO UPDATE").
		Set("total_points = EXCLUDED.total_points").
		Set("total_predictions = EXCLUDED.total_predictions").
		Set("correct_predictions = EXCLUDED.correct_predictions").
		Set("exact_scores = EXCLUDED.exact_scores").
		Set("accuracy_rate = EXCLUDED.accuracy_rate").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("leaderboarddb.UpsertAggregates: %w", err)
	}
	return nil
}

func (r *Impl) GetRankingEntries(ctx context.Context, db bun.IDB) ([]RankingEntry, error) {
	if db == nil {
		db = r.db
	}
	var entries []RankingEntry
	err := db.NewSelect().
		Model((*LeaderboardRow)(nil)).
		ColumnExpr("lc.user_id, lc.total_points, lc.exact_scores, lc.ranking").
		ColumnExpr("u.created_at AS user_created_at").
		Join("JOIN users AS u ON u.id = lc.user_id").
		Scan(ctx, &entries)
	if err != nil {
		return nil, fmt.Errorf("leaderboarddb.GetRankingEntries: %w", err)
	}
	return entries, nil
}

func (r *Impl) UpdateRankings(ctx context.Context, db bun.IDB, rows []*LeaderboardRow) error {
	if len(rows) == 0 {
		return nil
	}
	if db == nil {
		db = r.db
	}
	_, err := db.NewUpdate().
		Model(&rows).
		Column("ranking", "previous_ranking", "ranking_change", "updated_at").
		Bulk().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("leaderboarddb.UpdateRankings: %w", err)
	}
	return nil
}

func (r *Impl) GetStandings(ctx context.Context, db bun.IDB, limit int) ([]StandingView, error) {
	if db == nil {
		db = r.db
	}
	var standings []StandingView
	q := db.NewSelect().
		Model((*LeaderboardRow)(nil)).
		ColumnExpr("lc.user_id, lc.total_points, lc.total_predictions, lc.correct_predictions").
		ColumnExpr("lc.exact_scores, lc.accuracy_rate, lc.ranking, lc.previous_ranking, lc.ranking_change").
		ColumnExpr("u.display_name").
		Join("JOIN users AS u ON u.id = lc.user_id").
		OrderExpr("lc.ranking ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx, &standings); err != nil {
		return nil, fmt.Errorf("leaderboarddb.GetStandings: %w", err)
	}
	return standings, nil
}

func (r *Impl) GetRowForUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*LeaderboardRow, error) {
	if db == nil {
		db = r.db
	}
	row := new(LeaderboardRow)
	err := db.NewSelect().
		Model(row).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRowNotFound
		}
		return nil, fmt.Errorf("leaderboarddb.GetRowForUser: %w", err)
	}
	return row, nil
}

func (r *Impl) InsertRankHistory(ctx context.Context, db bun.IDB, entries []*RankHistory) error {
	if len(entries) == 0 {
		return nil
	}
	if db == nil {
		db = r.db
	}
	_, err := db.NewInsert().Model(&entries).Exec(ctx)
	if err != nil {
		return fmt.Errorf("leaderboarddb.InsertRankHistory: %w", err)
	}
	return nil
}

func (r *Impl) GetRankHistoryForUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, limit int) ([]RankHistory, error) {
	if db == nil {
		db = r.db
	}
	var history []RankHistory
	q := db.NewSelect().
		Model(&history).
		Where("user_id = ?", userID).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("leaderboarddb.GetRankHistoryForUser: %w", err)
	}
	return history, nil
}
