package matchqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/riverqueue/river"

	tournamentdb "github.com/mundo-prode/prode-backend/app/modules/tournament/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/eventbus"
	"github.com/mundo-prode/prode-backend/internal/events"
	"github.com/mundo-prode/prode-backend/internal/observability/attr"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// MatchLockWorker executes match lock jobs at their scheduled time.
type MatchLockWorker struct {
	river.WorkerDefaults[MatchLockJob]
	repo     tournamentdb.Repository
	eventBus eventbus.EventBus
	logger   *slog.Logger
}

// NewMatchLockWorker creates a worker that locks matches and announces it.
func NewMatchLockWorker(repo tournamentdb.Repository, eventBus eventbus.EventBus, logger *slog.Logger) *MatchLockWorker {
	return &MatchLockWorker{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (w *MatchLockWorker) Work(ctx context.Context, job *river.Job[MatchLockJob]) error {
	id, err := uuid.Parse(job.Args.MatchID)
	if err != nil {
		// A malformed ID never becomes valid; don't retry.
		w.logger.ErrorContext(ctx, "Match lock job has malformed match ID",
			attr.String("match_id", job.Args.MatchID),
			attr.Error(err),
		)
		return river.JobCancel(err)
	}
	matchID := sharedtypes.MatchID(id)

	if err := w.repo.LockMatch(ctx, nil, matchID); err != nil {
		if errors.Is(err, tournamentdb.ErrMatchNotFound) {
			w.logger.WarnContext(ctx, "Match lock job for deleted match, skipping",
				attr.MatchID("match_id", matchID),
			)
			return nil
		}
		return fmt.Errorf("match lock job: %w", err)
	}

	if w.eventBus != nil {
		if err := w.eventBus.Publish(ctx, events.MatchLocked, events.MatchLockedPayloadV1{MatchID: matchID}); err != nil {
			w.logger.WarnContext(ctx, "Failed to publish match locked event",
				attr.MatchID("match_id", matchID),
				attr.Error(err),
			)
		}
	}

	w.logger.InfoContext(ctx, "Match locked on schedule",
		attr.MatchID("match_id", matchID),
	)
	return nil
}
