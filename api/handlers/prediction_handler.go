package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	predictionservice "github.com/mundo-prode/prode-backend/app/modules/prediction/application"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// PredictionHandler serves forecast submission and retrieval endpoints.
type PredictionHandler struct {
	service predictionservice.Service
	logger  *slog.Logger
}

func NewPredictionHandler(service predictionservice.Service, logger *slog.Logger) *PredictionHandler {
	return &PredictionHandler{service: service, logger: logger}
}

func userIDFromURL(w http.ResponseWriter, r *http.Request) (sharedtypes.UserID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, "malformed user ID", nil)
		return sharedtypes.UserID{}, false
	}
	return sharedtypes.UserID(id), true
}

type submitPredictionRequest struct {
	UserID        string `json:"user_id"`
	PredictedHome int    `json:"predicted_home"`
	PredictedAway int    `json:"predicted_away"`
}

func (h *PredictionHandler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDFromURL(w, r)
	if !ok {
		return
	}
	var req submitPredictionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, "malformed user ID", nil)
		return
	}

	prediction, err := h.service.SubmitPrediction(r.Context(),
		sharedtypes.UserID(userUUID), matchID,
		sharedtypes.Score(req.PredictedHome), sharedtypes.Score(req.PredictedAway))
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, "prediction submitted", prediction)
}

func (h *PredictionHandler) GetPredictionsForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromURL(w, r)
	if !ok {
		return
	}
	predictions, err := h.service.GetPredictionsForUser(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, "predictions", predictions)
}

func (h *PredictionHandler) GetPredictionsForMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDFromURL(w, r)
	if !ok {
		return
	}
	predictions, err := h.service.GetPredictionsForMatch(r.Context(), matchID)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, "predictions", predictions)
}
