// Package handlers implements the HTTP surface of the service.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	predictionservice "github.com/mundo-prode/prode-backend/app/modules/prediction/application"
	scoringservice "github.com/mundo-prode/prode-backend/app/modules/scoring/application"
	tournamentservice "github.com/mundo-prode/prode-backend/app/modules/tournament/application"
	userservice "github.com/mundo-prode/prode-backend/app/modules/user/application"
	"github.com/mundo-prode/prode-backend/internal/observability/attr"
)

type response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response{Message: message, Data: data})
}

// respondError maps application errors onto HTTP statuses. Unknown errors
// become 500 without leaking internals.
func respondError(w http.ResponseWriter, logger *slog.Logger, r *http.Request, err error) {
	var (
		scoringNotFound *scoringservice.NotFoundError
		invalidState    *scoringservice.InvalidStateError
		matchNotFound   *tournamentservice.MatchNotFoundError
		phaseNotFound   *tournamentservice.PhaseNotFoundError
		invalidMatch    *tournamentservice.InvalidMatchError
		invalidResult   *tournamentservice.InvalidResultError
		predNotFound    *predictionservice.MatchNotFoundError
		matchLocked     *predictionservice.MatchLockedError
		invalidForecast *predictionservice.InvalidForecastError
		userNotFound    *userservice.NotFoundError
		invalidUser     *userservice.InvalidUserError
	)

	switch {
	case errors.As(err, &scoringNotFound),
		errors.As(err, &matchNotFound),
		errors.As(err, &phaseNotFound),
		errors.As(err, &predNotFound),
		errors.As(err, &userNotFound):
		respondJSON(w, http.StatusNotFound, err.Error(), nil)
	case errors.As(err, &invalidState),
		errors.As(err, &matchLocked):
		respondJSON(w, http.StatusConflict, err.Error(), nil)
	case errors.As(err, &invalidMatch),
		errors.As(err, &invalidResult),
		errors.As(err, &invalidForecast),
		errors.As(err, &invalidUser):
		respondJSON(w, http.StatusBadRequest, err.Error(), nil)
	default:
		logger.ErrorContext(r.Context(), "Unhandled request error",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		respondJSON(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, "malformed request body", nil)
		return false
	}
	return true
}
