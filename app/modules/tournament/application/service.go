package tournamentservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	scoringservice "github.com/mundo-prode/prode-backend/app/modules/scoring/application"
	tournamentdb "github.com/mundo-prode/prode-backend/app/modules/tournament/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/eventbus"
	"github.com/mundo-prode/prode-backend/internal/events"
	"github.com/mundo-prode/prode-backend/internal/observability/attr"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// MatchLockScheduler enqueues the job that locks a match when its lock time
// arrives.
type MatchLockScheduler interface {
	ScheduleMatchLock(ctx context.Context, match *tournamentdb.Match) error
}

// TournamentService implements the Service interface.
type TournamentService struct {
	repo      tournamentdb.Repository
	scoring   scoringservice.Service
	scheduler MatchLockScheduler
	eventBus  eventbus.EventBus
	logger    *slog.Logger
	tracer    trace.Tracer
}

var _ Service = (*TournamentService)(nil)

// NewTournamentService creates a new TournamentService.
func NewTournamentService(
	repo tournamentdb.Repository,
	scoring scoringservice.Service,
	scheduler MatchLockScheduler,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	tracer trace.Tracer,
) *TournamentService {
	return &TournamentService{
		repo:      repo,
		scoring:   scoring,
		scheduler: scheduler,
		eventBus:  eventBus,
		logger:    logger,
		tracer:    tracer,
	}
}

func (s *TournamentService) CreatePhase(ctx context.Context, phase *tournamentdb.Phase) error {
	if err := s.repo.CreatePhase(ctx, nil, phase); err != nil {
		return fmt.Errorf("CreatePhase: %w", err)
	}
	return nil
}

func (s *TournamentService) CreateMatch(ctx context.Context, input CreateMatchInput) (*tournamentdb.Match, error) {
	ctx, span := s.tracer.Start(ctx, "CreateMatch")
	defer span.End()

	switch {
	case input.HomeTeam == "" || input.AwayTeam == "":
		return nil, &InvalidMatchError{Reason: "both teams are required"}
	case input.KickoffAt.IsZero():
		return nil, &InvalidMatchError{Reason: "kickoff time is required"}
	case input.LockAt.After(input.KickoffAt):
		return nil, &InvalidMatchError{Reason: "lock time must not be after kickoff"}
	}
	if input.LockAt.IsZero() {
		input.LockAt = input.KickoffAt
	}

	if _, err := s.repo.GetPhase(ctx, nil, input.PhaseID); err != nil {
		if errors.Is(err, tournamentdb.ErrPhaseNotFound) {
			return nil, &PhaseNotFoundError{PhaseID: input.PhaseID}
		}
		return nil, fmt.Errorf("CreateMatch: %w", err)
	}

	match := &tournamentdb.Match{
		ID:        sharedtypes.MatchID(uuid.New()),
		HomeTeam:  input.HomeTeam,
		AwayTeam:  input.AwayTeam,
		KickoffAt: input.KickoffAt,
		LockAt:    input.LockAt,
		Status:    sharedtypes.MatchScheduled,
		PhaseID:   input.PhaseID,
	}
	if err := s.repo.CreateMatch(ctx, nil, match); err != nil {
		return nil, fmt.Errorf("CreateMatch: %w", err)
	}

	if s.scheduler != nil {
		if err := s.scheduler.ScheduleMatchLock(ctx, match); err != nil {
			s.logger.WarnContext(ctx, "Failed to schedule match lock job",
				attr.ExtractCorrelationID(ctx),
				attr.MatchID("match_id", match.ID),
				attr.Error(err),
			)
		}
	}

	s.logger.InfoContext(ctx, "Match created",
		attr.ExtractCorrelationID(ctx),
		attr.MatchID("match_id", match.ID),
		attr.String("phase_id", string(match.PhaseID)),
	)
	return match, nil
}

func (s *TournamentService) GetMatch(ctx context.Context, matchID sharedtypes.MatchID) (*tournamentdb.Match, error) {
	match, err := s.repo.GetMatch(ctx, nil, matchID)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrMatchNotFound) {
			return nil, &MatchNotFoundError{MatchID: matchID}
		}
		return nil, fmt.Errorf("GetMatch: %w", err)
	}
	return match, nil
}

func (s *TournamentService) ListMatches(ctx context.Context) ([]tournamentdb.Match, error) {
	return s.repo.ListMatches(ctx, nil)
}

// FinalizeResult records the final score and runs the scoring pass. The
// scoring service locks the match row, so a concurrent finalize for the same
// match waits rather than interleaving.
func (s *TournamentService) FinalizeResult(ctx context.Context, matchID sharedtypes.MatchID, home, away sharedtypes.Score) (*scoringservice.ScoreCalculationResult, error) {
	ctx, span := s.tracer.Start(ctx, "FinalizeResult")
	defer span.End()

	if home < 0 || away < 0 {
		return nil, &InvalidResultError{Reason: "scores must be non-negative"}
	}

	if err := s.repo.SetFinalScore(ctx, nil, matchID, home, away); err != nil {
		if errors.Is(err, tournamentdb.ErrMatchNotFound) {
			return nil, &MatchNotFoundError{MatchID: matchID}
		}
		return nil, fmt.Errorf("FinalizeResult: %w", err)
	}

	result, err := s.scoring.CalculatePointsForMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("FinalizeResult: %w", err)
	}
	return result, nil
}

func (s *TournamentService) LockMatch(ctx context.Context, matchID sharedtypes.MatchID) error {
	if err := s.repo.LockMatch(ctx, nil, matchID); err != nil {
		if errors.Is(err, tournamentdb.ErrMatchNotFound) {
			return &MatchNotFoundError{MatchID: matchID}
		}
		return fmt.Errorf("LockMatch: %w", err)
	}

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, events.MatchLocked, events.MatchLockedPayloadV1{MatchID: matchID}); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish match locked event",
				attr.ExtractCorrelationID(ctx),
				attr.MatchID("match_id", matchID),
				attr.Error(err),
			)
		}
	}

	s.logger.InfoContext(ctx, "Match locked",
		attr.ExtractCorrelationID(ctx),
		attr.MatchID("match_id", matchID),
	)
	return nil
}
