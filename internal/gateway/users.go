package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/smartkiosk/console/internal/model"
)

// ListUsers returns the full operator account collection. The gateway
// includes the cleartext password in each record; both the login scan and
// the retain-on-empty-edit rule depend on it.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.getJSON(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser posts a single account; the gateway assigns the id.
func (c *Client) CreateUser(ctx context.Context, u model.User) (*model.User, error) {
	var created model.User
	if err := c.sendJSON(ctx, http.MethodPost, "/users", u, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUser replaces the account identified by id.
func (c *Client) UpdateUser(ctx context.Context, id int, u model.User) error {
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), u, nil)
}

// DeleteUser removes the account identified by id.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}
