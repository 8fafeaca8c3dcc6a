package client

import (
	"context"
	"net/url"

	"github.com/acp/web/internal/domain/user"
)

// ManageUsersClient reads user accounts
type ManageUsersClient struct {
	rest *RestClient
}

// NewManageUsersClient creates a client over rest
func NewManageUsersClient(rest *RestClient) *ManageUsersClient {
	return &ManageUsersClient{rest: rest}
}

// GetUserFromUsername returns the account for username
func (c *ManageUsersClient) GetUserFromUsername(ctx context.Context, token, username string) (*user.User, error) {
	var out user.User
	if err := c.rest.Get(ctx, token, "/users/"+url.PathEscape(username), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
