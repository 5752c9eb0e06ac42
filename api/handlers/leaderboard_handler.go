package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	leaderboardservice "github.com/mundo-prode/prode-backend/app/modules/leaderboard/application"
)

// LeaderboardHandler serves standings, per-user rows, and exports.
type LeaderboardHandler struct {
	service leaderboardservice.Service
	logger  *slog.Logger
}

func NewLeaderboardHandler(service leaderboardservice.Service, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{service: service, logger: logger}
}

func (h *LeaderboardHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondJSON(w, http.StatusBadRequest, "limit must be a non-negative integer", nil)
			return
		}
		limit = parsed
	}

	standings, err := h.service.GetStandings(r.Context(), limit)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, "standings", standings)
}

func (h *LeaderboardHandler) GetRowForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromURL(w, r)
	if !ok {
		return
	}
	row, err := h.service.GetRowForUser(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, "leaderboard row", row)
}

func (h *LeaderboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RefreshAll(r.Context()); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, "leaderboard refreshed", nil)
}

func (h *LeaderboardHandler) ExportStandings(w http.ResponseWriter, r *http.Request) {
	workbook, err := h.service.ExportStandings(r.Context())
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="standings.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

func (h *LeaderboardHandler) RankingChart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromURL(w, r)
	if !ok {
		return
	}
	chart, err := h.service.RankingChart(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(chart)
}
