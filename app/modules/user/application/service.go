// Package userservice manages player registration.
package userservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	userdb "github.com/mundo-prode/prode-backend/app/modules/user/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/observability/attr"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// NotFoundError reports a lookup for an unknown user.
type NotFoundError struct {
	UserID sharedtypes.UserID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user %s not found", e.UserID)
}

// InvalidUserError reports a registration that fails validation.
type InvalidUserError struct {
	Reason string
}

func (e *InvalidUserError) Error() string {
	return fmt.Sprintf("invalid user: %s", e.Reason)
}

// Service is the user module contract.
type Service interface {
	CreateUser(ctx context.Context, displayName string) (*userdb.User, error)
	GetUser(ctx context.Context, userID sharedtypes.UserID) (*userdb.User, error)
}

// UserService implements the Service interface.
type UserService struct {
	repo   userdb.Repository
	logger *slog.Logger
}

var _ Service = (*UserService)(nil)

// NewUserService creates a new UserService.
func NewUserService(repo userdb.Repository, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, displayName string) (*userdb.User, error) {
	if displayName == "" {
		return nil, &InvalidUserError{Reason: "display name is required"}
	}

	user := &userdb.User{
		ID:          sharedtypes.UserID(uuid.New()),
		DisplayName: displayName,
	}
	if err := s.repo.CreateUser(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}

	s.logger.InfoContext(ctx, "User created",
		attr.ExtractCorrelationID(ctx),
		attr.UserID("user_id", user.ID),
	)
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID sharedtypes.UserID) (*userdb.User, error) {
	user, err := s.repo.GetUser(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, userdb.ErrUserNotFound) {
			return nil, &NotFoundError{UserID: userID}
		}
		return nil, fmt.Errorf("GetUser: %w", err)
	}
	return user, nil
}
