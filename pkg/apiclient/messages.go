package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"gomelclient/pkg/models"
)

// CreateMessage submits a contact-form message; the endpoint is open.
func (c *Client) CreateMessage(ctx context.Context, m models.Message) (models.Message, error) {
	var out models.Message
	err := c.do(ctx, http.MethodPost, "/messages", "", m, &out)
	return out, err
}

func (c *Client) ListMessages(ctx context.Context, bearer string) ([]models.Message, error) {
	var out []models.Message
	if err := c.do(ctx, http.MethodGet, "/messages", bearer, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMessage(ctx context.Context, bearer string, id models.ID) (models.Message, error) {
	var out models.Message
	err := c.do(ctx, http.MethodGet, "/messages/"+url.PathEscape(id.String()), bearer, nil, &out)
	return out, err
}

func (c *Client) DeleteMessage(ctx context.Context, bearer string, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/messages/"+url.PathEscape(id.String()), bearer, nil, nil)
}

func (c *Client) ReplyMessage(ctx context.Context, bearer string, id models.ID, reply string) error {
	body := map[string]string{"reply": reply}
	return c.do(ctx, http.MethodPost, "/messages/"+url.PathEscape(id.String())+"/reply", bearer, body, nil)
}
