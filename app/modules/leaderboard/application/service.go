package leaderboardservice

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	leaderboarddb "github.com/mundo-prode/prode-backend/app/modules/leaderboard/infrastructure/repositories"
	userdb "github.com/mundo-prode/prode-backend/app/modules/user/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/eventbus"
	"github.com/mundo-prode/prode-backend/internal/observability/metrics"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	repo     leaderboarddb.Repository
	userRepo userdb.Repository
	eventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  metrics.LeaderboardMetrics
	tracer   trace.Tracer
	db       *bun.DB
}

var _ Service = (*LeaderboardService)(nil)

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	repo leaderboarddb.Repository,
	userRepo userdb.Repository,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	lbMetrics metrics.LeaderboardMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *LeaderboardService {
	return &LeaderboardService{
		repo:     repo,
		userRepo: userRepo,
		eventBus: eventBus,
		logger:   logger,
		metrics:  lbMetrics,
		tracer:   tracer,
		db:       db,
	}
}

// runInTx ensures fn runs within a transaction. With a nil DB (unit tests)
// fn runs directly against the repository's own handle.
func (s *LeaderboardService) runInTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}

// --- Reads ---

func (s *LeaderboardService) GetStandings(ctx context.Context, limit int) ([]leaderboarddb.StandingView, error) {
	return s.repo.GetStandings(ctx, nil, limit)
}

func (s *LeaderboardService) GetRowForUser(ctx context.Context, userID sharedtypes.UserID) (*leaderboarddb.LeaderboardRow, error) {
	return s.repo.GetRowForUser(ctx, nil, userID)
}
