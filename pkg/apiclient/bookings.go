package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"gomelclient/pkg/models"
)

// ListBookings is the admin all-bookings view.
func (c *Client) ListBookings(ctx context.Context, bearer string) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings", bearer, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyBookings lists bookings owned by the bearer's user.
func (c *Client) MyBookings(ctx context.Context, bearer string) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/me", bearer, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// HostBookings lists bookings placed against cars the bearer's user hosts.
func (c *Client) HostBookings(ctx context.Context, bearer string) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/host", bearer, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBooking(ctx context.Context, bearer string, b models.Booking) (models.Booking, error) {
	var out models.Booking
	err := c.do(ctx, http.MethodPost, "/bookings", bearer, b, &out)
	return out, err
}

func (c *Client) DeleteBooking(ctx context.Context, bearer string, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/bookings/"+url.PathEscape(id.String()), bearer, nil, nil)
}
