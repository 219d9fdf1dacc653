package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"gomelclient/pkg/models"
)

type PayoutRequest struct {
	BookingID models.ID `json:"bookingId"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note,omitempty"`
}

func (c *Client) RequestPayout(ctx context.Context, bearer string, req PayoutRequest) (models.Payout, error) {
	var out models.Payout
	err := c.do(ctx, http.MethodPost, "/payouts/request", bearer, req, &out)
	return out, err
}

func (c *Client) ListPayouts(ctx context.Context, bearer string) ([]models.Payout, error) {
	var out []models.Payout
	if err := c.do(ctx, http.MethodGet, "/payouts", bearer, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApprovePayout(ctx context.Context, bearer string, id models.ID) (models.Payout, error) {
	var out models.Payout
	err := c.do(ctx, http.MethodPost, "/payouts/"+url.PathEscape(id.String())+"/approve", bearer, nil, &out)
	return out, err
}

func (c *Client) RejectPayout(ctx context.Context, bearer string, id models.ID) (models.Payout, error) {
	var out models.Payout
	err := c.do(ctx, http.MethodPost, "/payouts/"+url.PathEscape(id.String())+"/reject", bearer, nil, &out)
	return out, err
}
