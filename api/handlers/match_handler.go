package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	tournamentservice "github.com/mundo-prode/prode-backend/app/modules/tournament/application"
	tournamentdb "github.com/mundo-prode/prode-backend/app/modules/tournament/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// MatchHandler serves match and phase administration endpoints.
type MatchHandler struct {
	service tournamentservice.Service
	logger  *slog.Logger
}

func NewMatchHandler(service tournamentservice.Service, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{service: service, logger: logger}
}

func matchIDFromURL(w http.ResponseWriter, r *http.Request) (sharedtypes.MatchID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "matchID"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, "malformed match ID", nil)
		return sharedtypes.MatchID{}, false
	}
	return sharedtypes.MatchID(id), true
}

type createPhaseRequest struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	PointsMultiplier float64 `json:"points_multiplier"`
}

func (h *MatchHandler) CreatePhase(w http.ResponseWriter, r *http.Request) {
	var req createPhaseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ID == "" || req.Name == "" {
		respondJSON(w, http.StatusBadRequest, "phase id and name are required", nil)
		return
	}
	if req.PointsMultiplier == 0 {
		req.PointsMultiplier = 1
	}

	phase := &tournamentdb.Phase{
		ID:               sharedtypes.PhaseID(req.ID),
		Name:             req.Name,
		PointsMultiplier: req.PointsMultiplier,
	}
	if err := h.service.CreatePhase(r.Context(), phase); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, "phase created", phase)
}

type createMatchRequest struct {
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	KickoffAt time.Time `json:"kickoff_at"`
	LockAt    time.Time `json:"lock_at"`
	PhaseID   string    `json:"phase_id"`
}

func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	match, err := h.service.CreateMatch(r.Context(), tournamentservice.CreateMatchInput{
		HomeTeam:  req.HomeTeam,
		AwayTeam:  req.AwayTeam,
		KickoffAt: req.KickoffAt,
		LockAt:    req.LockAt,
		PhaseID:   sharedtypes.PhaseID(req.PhaseID),
	})
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, "match created", match)
}

func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDFromURL(w, r)
	if !ok {
		return
	}
	match, err := h.service.GetMatch(r.Context(), matchID)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, "match", match)
}

func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.service.ListMatches(r.Context())
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, "matches", matches)
}

type finalizeResultRequest struct {
	HomeScore int `json:"home_score"`
	AwayScore int `json:"away_score"`
}

// FinalizeResult records the final score and runs the scoring pass. Posting a
// corrected score rescores every prediction for the match.
func (h *MatchHandler) FinalizeResult(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDFromURL(w, r)
	if !ok {
		return
	}
	var req finalizeResultRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.service.FinalizeResult(r.Context(), matchID,
		sharedtypes.Score(req.HomeScore), sharedtypes.Score(req.AwayScore))
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, "match finalized", result)
}

func (h *MatchHandler) LockMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDFromURL(w, r)
	if !ok {
		return
	}
	if err := h.service.LockMatch(r.Context(), matchID); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, "match locked", nil)
}
