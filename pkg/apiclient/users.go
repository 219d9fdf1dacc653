package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"gomelclient/pkg/models"
)

func (c *Client) ListUsers(ctx context.Context, bearer string) ([]models.User, error) {
	var out []models.User
	if err := c.do(ctx, http.MethodGet, "/users", bearer, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser resolves a single user profile; the backend wraps it in a
// {"user": ...} envelope.
func (c *Client) GetUser(ctx context.Context, bearer string, id models.ID) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id.String()), bearer, nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, &Error{Status: http.StatusNotFound, Message: "user not found"}
	}
	return out.User, nil
}
