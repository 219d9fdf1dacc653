package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gomelclient/pkg/apiclient"
	"gomelclient/pkg/logger"
	"gomelclient/pkg/models"
)

var testLog = logger.New("apiclient-test", "error")

func TestRequestCarriesBearerAndRequestID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		require.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.Booking{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := apiclient.New(srv.URL, testLog)
	_, err := c.ListBookings(context.Background(), "admin-token")
	require.NoError(t, err)
}

func TestUnauthenticatedCallOmitsAuthorization(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cars", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		require.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.Car{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := apiclient.New(srv.URL, testLog)
	_, err := c.ListCars(context.Background())
	require.NoError(t, err)
}

func TestJSONErrorBodyIsSurfaced(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "car not available"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := apiclient.New(srv.URL, testLog)
	_, err := c.CreateBooking(context.Background(), "user-token", models.Booking{})
	require.Error(t, err)

	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "car not available", apiErr.Message)
	require.True(t, apiclient.IsRejection(err))
}

func TestNonJSONErrorBodyIsSniffed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/payouts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html><body>SPA fallback page</body></html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := apiclient.New(srv.URL, testLog)
	_, err := c.ListPayouts(context.Background(), "admin-token")
	require.Error(t, err)

	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Contains(t, apiErr.Message, "SPA fallback", "html body is folded into a readable error")
}

func TestTransportErrorIsNotRejection(t *testing.T) {
	srv := httptest.NewServer(http.NewServeMux())
	url := srv.URL
	srv.Close()

	c := apiclient.New(url, testLog)
	_, err := c.ListCars(context.Background())
	require.Error(t, err)
	require.False(t, apiclient.IsRejection(err))
}

func TestGetUserUnwrapsEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/h1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"user": models.User{ID: "h1", Email: "host@example.com"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := apiclient.New(srv.URL, testLog)
	u, err := c.GetUser(context.Background(), "admin-token", "h1")
	require.NoError(t, err)
	require.Equal(t, "host@example.com", u.Email)
}

func TestHealth(t *testing.T) {
	healthy := true
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := apiclient.New(srv.URL, testLog)
	require.True(t, c.Health(context.Background()))

	healthy = false
	require.False(t, c.Health(context.Background()))
}
