package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scoringservice "github.com/mundo-prode/prode-backend/app/modules/scoring/application"
	tournamentservice "github.com/mundo-prode/prode-backend/app/modules/tournament/application"
	tournamentdb "github.com/mundo-prode/prode-backend/app/modules/tournament/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// FakeTournamentService provides a programmable stub for the tournament contract.
type FakeTournamentService struct {
	CreatePhaseFunc    func(ctx context.Context, phase *tournamentdb.Phase) error
	CreateMatchFunc    func(ctx context.Context, input tournamentservice.CreateMatchInput) (*tournamentdb.Match, error)
	GetMatchFunc       func(ctx context.Context, matchID sharedtypes.MatchID) (*tournamentdb.Match, error)
	ListMatchesFunc    func(ctx context.Context) ([]tournamentdb.Match, error)
	FinalizeResultFunc func(ctx context.Context, matchID sharedtypes.MatchID, home, away sharedtypes.Score) (*scoringservice.ScoreCalculationResult, error)
	LockMatchFunc      func(ctx context.Context, matchID sharedtypes.MatchID) error
}

func (f *FakeTournamentService) CreatePhase(ctx context.Context, phase *tournamentdb.Phase) error {
	if f.CreatePhaseFunc != nil {
		return f.CreatePhaseFunc(ctx, phase)
	}
	return nil
}

func (f *FakeTournamentService) CreateMatch(ctx context.Context, input tournamentservice.CreateMatchInput) (*tournamentdb.Match, error) {
	if f.CreateMatchFunc != nil {
		return f.CreateMatchFunc(ctx, input)
	}
	return &tournamentdb.Match{}, nil
}

func (f *FakeTournamentService) GetMatch(ctx context.Context, matchID sharedtypes.MatchID) (*tournamentdb.Match, error) {
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, matchID)
	}
	return &tournamentdb.Match{ID: matchID}, nil
}

func (f *FakeTournamentService) ListMatches(ctx context.Context) ([]tournamentdb.Match, error) {
	if f.ListMatchesFunc != nil {
		return f.ListMatchesFunc(ctx)
	}
	return nil, nil
}

func (f *FakeTournamentService) FinalizeResult(ctx context.Context, matchID sharedtypes.MatchID, home, away sharedtypes.Score) (*scoringservice.ScoreCalculationResult, error) {
	if f.FinalizeResultFunc != nil {
		return f.FinalizeResultFunc(ctx, matchID, home, away)
	}
	return &scoringservice.ScoreCalculationResult{MatchID: matchID}, nil
}

func (f *FakeTournamentService) LockMatch(ctx context.Context, matchID sharedtypes.MatchID) error {
	if f.LockMatchFunc != nil {
		return f.LockMatchFunc(ctx, matchID)
	}
	return nil
}

var _ tournamentservice.Service = (*FakeTournamentService)(nil)

func TestFinalizeResultResponse(t *testing.T) {
	matchID := sharedtypes.MatchID(uuid.MustParse("c0a80101-0000-4000-8000-000000000042"))
	userID := sharedtypes.UserID(uuid.MustParse("5e0061e7-53a9-4f7d-9a48-2f3a1f1c6f8e"))

	service := &FakeTournamentService{
		FinalizeResultFunc: func(_ context.Context, id sharedtypes.MatchID, home, away sharedtypes.Score) (*scoringservice.ScoreCalculationResult, error) {
			return &scoringservice.ScoreCalculationResult{
				MatchID:      id,
				HomeScore:    home,
				AwayScore:    away,
				UpdatedCount: 7,
				SkippedCount: 1,
				UserIDs:      []sharedtypes.UserID{userID},
			}, nil
		},
	}
	handler := NewMatchHandler(service, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	router.Post("/matches/{matchID}/result", handler.FinalizeResult)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/matches/"+matchID.String()+"/result",
		strings.NewReader(`{"home_score":3,"away_score":1}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "match finalized", body.Message)

	// IDs come out as UUID strings and counters in snake_case, same as the
	// event payloads.
	assert.JSONEq(t, `{
		"match_id": "c0a80101-0000-4000-8000-000000000042",
		"home_score": 3,
		"away_score": 1,
		"updated_count": 7,
		"skipped_count": 1,
		"user_ids": ["5e0061e7-53a9-4f7d-9a48-2f3a1f1c6f8e"]
	}`, string(body.Data))
}

func TestFinalizeResultMalformedMatchID(t *testing.T) {
	handler := NewMatchHandler(&FakeTournamentService{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	router.Post("/matches/{matchID}/result", handler.FinalizeResult)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/matches/not-a-uuid/result",
		strings.NewReader(`{"home_score":1,"away_score":0}`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
