// Package user resolves user accounts for display.
package user

import (
	"context"

	"github.com/acp/web/internal/domain/user"
	"github.com/acp/web/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ManageUsersAPI reads user accounts
type ManageUsersAPI interface {
	GetUserFromUsername(ctx context.Context, token, username string) (*user.User, error)
}

// UserService resolves usernames using the caller's own token
type UserService struct {
	api ManageUsersAPI
}

// NewUserService creates a new UserService
func NewUserService(api ManageUsersAPI) *UserService {
	return &UserService{api: api}
}

// GetUser returns the account for username
func (s *UserService) GetUser(ctx context.Context, userToken, username string) (*user.User, error) {
	return s.api.GetUserFromUsername(ctx, userToken, username)
}

// GetFullNameFromUsername returns the user's display name, falling back to
// the username itself when the account cannot be read.
func (s *UserService) GetFullNameFromUsername(ctx context.Context, userToken, username string) string {
	u, err := s.api.GetUserFromUsername(ctx, userToken, username)
	if err != nil {
		logger.L(ctx).Debug("Could not resolve user name", zap.String("username", username), zap.Error(err))
		return username
	}
	if u.Name == "" {
		return username
	}
	return u.Name
}
