package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"gomelclient/pkg/models"
)

func (c *Client) ListCars(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	if err := c.do(ctx, http.MethodGet, "/cars", "", nil, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// CarAvailability resolves per-car availability for a date range. The result
// is keyed by car id.
func (c *Client) CarAvailability(ctx context.Context, pickup, ret, city string) (map[string]bool, error) {
	q := url.Values{}
	q.Set("pickup", pickup)
	q.Set("return", ret)
	if city != "" {
		q.Set("city", city)
	}
	var out map[string]bool
	if err := c.do(ctx, http.MethodGet, "/cars/availability?"+q.Encode(), "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCar is the admin-scoped creation endpoint.
func (c *Client) CreateCar(ctx context.Context, bearer string, car models.Car) (models.Car, error) {
	var out models.Car
	err := c.do(ctx, http.MethodPost, "/cars", bearer, car, &out)
	return out, err
}

// CreateHostCar is the host-scoped creation endpoint; ownership is derived
// from the bearer server-side.
func (c *Client) CreateHostCar(ctx context.Context, bearer string, car models.Car) (models.Car, error) {
	var out models.Car
	err := c.do(ctx, http.MethodPost, "/cars/host", bearer, car, &out)
	return out, err
}

func (c *Client) UpdateCar(ctx context.Context, bearer string, id models.ID, patch models.Car) (models.Car, error) {
	var out models.Car
	err := c.do(ctx, http.MethodPut, "/cars/"+url.PathEscape(id.String()), bearer, patch, &out)
	return out, err
}

func (c *Client) DeleteCar(ctx context.Context, bearer string, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/cars/"+url.PathEscape(id.String()), bearer, nil, nil)
}
