package tournamentdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// Impl is the bun-backed match/phase repository.
type Impl struct {
	db *bun.DB
}

var _ Repository = (*Impl)(nil)

func NewRepository(db *bun.DB) *Impl {
	return &Impl{db: db}
}

func (r *Impl) CreatePhase(ctx context.Context, db bun.IDB, phase *Phase) error {
	if db == nil {
		db = r.db
	}
	_, err := db.NewInsert().
		Model(phase).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("points_multiplier = EXCLUDED.points_multiplier").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("tournamentdb.CreatePhase: %w", err)
	}
	return nil
}

func (r *Impl) GetPhase(ctx context.Context, db bun.IDB, phaseID sharedtypes.PhaseID) (*Phase, error) {
	if db == nil {
		db = r.db
	}
	phase := new(Phase)
	err := db.NewSelect().
		Model(phase).
		Where("id = ?", phaseID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPhaseNotFound
		}
		return nil, fmt.Errorf("tournamentdb.GetPhase: %w", err)
	}
	return phase, nil
}

func (r *Impl) CreateMatch(ctx context.Context, db bun.IDB, match *Match) error {
	if db == nil {
		db = r.db
	}
	_, err := db.NewInsert().Model(match).Exec(ctx)
	if err != nil {
		return fmt.Errorf("tournamentdb.CreateMatch: %w", err)
	}
	return nil
}

func (r *Impl) GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*Match, error) {
	if db == nil {
		db = r.db
	}
	match := new(Match)
	err := db.NewSelect().
		Model(match).
		Relation("Phase").
		Where("m.id = ?", matchID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("tournamentdb.GetMatch: %w", err)
	}
	return match, nil
}

func (r *Impl) GetMatchForUpdate(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*Match, error) {
	if db == nil {
		db = r.db
	}

	// The row lock has to target the matches table only, so the phase
	// relation is loaded in a second query.
	match := new(Match)
	err := db.NewSelect().
		Model(match).
		Where("m.id = ?", matchID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("tournamentdb.GetMatchForUpdate: %w", err)
	}

	phase, err := r.GetPhase(ctx, db, match.PhaseID)
	if err != nil && !errors.Is(err, ErrPhaseNotFound) {
		return nil, fmt.Errorf("tournamentdb.GetMatchForUpdate: %w", err)
	}
	match.Phase = phase

	return match, nil
}

func (r *Impl) ListMatches(ctx context.Context, db bun.IDB) ([]Match, error) {
	if db == nil {
		db = r.db
	}
	var matches []Match
	err := db.NewSelect().
		Model(&matches).
		Relation("Phase").
		Order("kickoff_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("tournamentdb.ListMatches: %w", err)
	}
	return matches, nil
}

func (r *Impl) SetFinalScore(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, home, away sharedtypes.Score) error {
	if db == nil {
		db = r.db
	}
	res, err := db.NewUpdate().
		Model((*Match)(nil)).
		Set("home_score = ?", home).
		Set("away_score = ?", away).
		Set("status = ?", sharedtypes.MatchFinished).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", matchID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("tournamentdb.SetFinalScore: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("tournamentdb.SetFinalScore: %w", err)
	}
	if rows == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *Impl) LockMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) error {
	if db == nil {
		db = r.db
	}
	res, err := db.NewUpdate().
		Model((*Match)(nil)).
		Set("locked = true").
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", matchID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("tournamentdb.LockMatch: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("tournamentdb.LockMatch: %w", err)
	}
	if rows == 0 {
		return ErrMatchNotFound
	}
	return nil
}
