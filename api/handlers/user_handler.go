package handlers

import (
	"log/slog"
	"net/http"

	userservice "github.com/mundo-prode/prode-backend/app/modules/user/application"
)

// UserHandler serves player registration endpoints.
type UserHandler struct {
	service userservice.Service
	logger  *slog.Logger
}

func NewUserHandler(service userservice.Service, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: service, logger: logger}
}

type createUserRequest struct {
	DisplayName string `json:"display_name"`
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.service.CreateUser(r.Context(), req.DisplayName)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, "user created", user)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromURL(w, r)
	if !ok {
		return
	}
	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, "user", user)
}
