package predictiondb

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// Impl is the bun-backed prediction repository.
type Impl struct {
	db *bun.DB
}

var _ Repository = (*Impl)(nil)

func NewRepository(db *bun.DB) *Impl {
	return &Impl{db: db}
}

func (r *Impl) UpsertForecast(ctx context.Context, db bun.IDB, prediction *Prediction) error {
	if db == nil {
		db = r.db
	}
	prediction.UpdatedAt = time.Now().UTC()
	_, err := db.NewInsert().
		Model(prediction).
		On("CONFLICT (user_id, match_id) DO UPDATE").
		Set("predicted_home = EXCLUDED.predicted_home").
		Set("predicted_away = EXCLUDED.predicted_away").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("predictiondb.UpsertForecast: %w", err)
	}
	return nil
}

func (r *Impl) GetForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]Prediction, error) {
	if db == nil {
		db = r.db
	}
	var predictions []Prediction
	err := db.NewSelect().
		Model(&predictions).
		Where("match_id = ?", matchID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("predictiondb.GetForMatch: %w", err)
	}
	return predictions, nil
}

func (r *Impl) GetForUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]Prediction, error) {
	if db == nil {
		db = r.db
	}
	var predictions []Prediction
	err := db.NewSelect().
		Model(&predictions).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("predictiondb.GetForUser: %w", err)
	}
	return predictions, nil
}

func (r *Impl) UpdateScores(ctx context.Context, db bun.IDB, predictions []*Prediction) error {
	if len(predictions) == 0 {
		return nil
	}
	if db == nil {
		db = r.db
	}
	_, err := db.NewUpdate().
		Model(&predictions).
		Column("points_earned", "points_breakdown", "is_exact", "updated_at").
		Bulk().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("predictiondb.UpdateScores: %w", err)
	}
	return nil
}
