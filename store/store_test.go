package store_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"gomelclient/pkg/apiclient"
	"gomelclient/pkg/logger"
	"gomelclient/pkg/models"
	"gomelclient/store"
)

var testLog = logger.New("store-test", "error")

// identityHolder is a mutable identity source so tests can flip the active
// identity mid-flight.
type identityHolder struct {
	mu sync.Mutex
	id models.Identity
}

func (h *identityHolder) get() models.Identity {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.id
}

func (h *identityHolder) set(id models.Identity) {
	h.mu.Lock()
	h.id = id
	h.mu.Unlock()
}

func adminIdentity() models.Identity {
	return models.Identity{AdminToken: "admin-token"}
}

func userIdentity() models.Identity {
	return models.Identity{
		UserToken: "user-token",
		User:      &models.User{ID: "u1", Email: "u1@example.com", FullName: "User One"},
	}
}

func newStore(t *testing.T, handler http.Handler, id models.Identity) (*store.Store, *identityHolder, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	holder := &identityHolder{id: id}
	api := apiclient.New(srv.URL, testLog)
	return store.New(api, testLog, holder.get, 4), holder, srv
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func seedCars() []models.Car {
	return []models.Car{
		{ID: "1", Name: "Swift", City: "Pune", PricePerDay: 1000},
		{ID: "2", Name: "Creta", City: "Goa", PricePerDay: 3000},
	}
}

func TestLoadCatalogFailureClearsLoading(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cars", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
	})
	st, _, _ := newStore(t, mux, models.Identity{})

	require.True(t, st.Loading())
	st.LoadCatalog(context.Background())

	require.False(t, st.Loading(), "loading must clear even when the fetch fails")
	require.Empty(t, st.Cars())
}

func TestUpdateCarReplacesExactlyOne(t *testing.T) {
	updated := models.Car{ID: "1", Name: "Swift Facelift", City: "Pune", PricePerDay: 1200}

	mux := http.NewServeMux()
	mux.HandleFunc("/cars", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, seedCars())
	})
	mux.HandleFunc("/cars/1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		require.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, updated)
	})
	st, _, _ := newStore(t, mux, adminIdentity())
	st.LoadCatalog(context.Background())

	got, err := st.UpdateCar(context.Background(), "1", updated)
	require.NoError(t, err)
	require.Equal(t, updated, got)

	count := 0
	for _, c := range st.Cars() {
		if c.ID == "1" {
			count++
			require.Equal(t, updated, c)
		}
	}
	require.Equal(t, 1, count, "cache must hold exactly one entry per id")
}

func TestUpdateCarRequiresAdmin(t *testing.T) {
	st, _, _ := newStore(t, http.NewServeMux(), userIdentity())
	_, err := st.UpdateCar(context.Background(), "1", models.Car{})
	require.ErrorIs(t, err, apiclient.ErrNotAuthenticated)
}

func TestRemoveCarIdempotentInEffect(t *testing.T) {
	deletes := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/cars", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, seedCars())
	})
	mux.HandleFunc("/cars/1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		deletes++
		if deletes > 1 {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	st, _, _ := newStore(t, mux, adminIdentity())
	st.LoadCatalog(context.Background())

	require.True(t, st.RemoveCar(context.Background(), "1"))
	require.False(t, st.RemoveCar(context.Background(), "1"), "second removal must report failure")

	for _, c := range st.Cars() {
		require.NotEqual(t, models.ID("1"), c.ID)
	}
}

func TestRemoveCarWithoutIdentity(t *testing.T) {
	hits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { hits++ })
	st, _, _ := newStore(t, mux, models.Identity{})

	require.False(t, st.RemoveCar(context.Background(), "1"))
	require.Zero(t, hits, "no identity means no request")
}

func TestCreateCarRoutesByIdentity(t *testing.T) {
	var adminHits, hostHits int
	mux := http.NewServeMux()
	mux.HandleFunc("/cars", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		adminHits++
		writeJSON(w, http.StatusOK, models.Car{ID: "10"})
	})
	mux.HandleFunc("/cars/host", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		hostHits++
		require.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, models.Car{ID: "11"})
	})

	st, holder, _ := newStore(t, mux, userIdentity())

	created, err := st.CreateCar(context.Background(), models.Car{Name: "Host Car"})
	require.NoError(t, err)
	require.Equal(t, models.ID("11"), created.ID)
	require.Equal(t, 1, hostHits)
	require.Zero(t, adminHits)

	holder.set(adminIdentity())
	created, err = st.CreateCar(context.Background(), models.Car{Name: "Admin Car"})
	require.NoError(t, err)
	require.Equal(t, models.ID("10"), created.ID)
	require.Equal(t, 1, adminHits)

	// Both creations were prepended, newest first.
	cars := st.Cars()
	require.Equal(t, models.ID("10"), cars[0].ID)
	require.Equal(t, models.ID("11"), cars[1].ID)

	holder.set(models.Identity{})
	_, err = st.CreateCar(context.Background(), models.Car{})
	require.ErrorIs(t, err, apiclient.ErrNotAuthenticated)
}

func TestRefreshForRoleEnrichment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cars", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, []models.Car{
			{ID: "1", HostID: "h1"},
			{ID: "2", HostID: "h2"},
			{ID: "3"},
		})
	})
	mux.HandleFunc("/users/h1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		require.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"user": models.User{ID: "h1", Email: "host@example.com", FullName: "Host One"},
		})
	})
	mux.HandleFunc("/users/h2", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
	})

	st, _, _ := newStore(t, mux, adminIdentity())
	require.NoError(t, st.RefreshForRole(context.Background()))

	cars := st.Cars()
	require.Len(t, cars, 3)

	byID := map[models.ID]models.Car{}
	for _, c := range cars {
		byID[c.ID] = c
	}
	require.Equal(t, "host@example.com", byID["1"].HostEmail)
	require.Equal(t, "Host One", byID["1"].HostFullName)
	require.NotNil(t, byID["1"].Host)
	require.Empty(t, byID["2"].HostEmail, "failed lookup leaves the car without host info")
	require.Nil(t, byID["2"].Host)
}

func TestRefreshForRoleSkipsWithoutAdmin(t *testing.T) {
	hits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { hits++ })
	st, _, _ := newStore(t, mux, userIdentity())

	require.NoError(t, st.RefreshForRole(context.Background()))
	require.Zero(t, hits)
}

func TestLoadBookingsByRole(t *testing.T) {
	adminList := []models.Booking{
		{ID: "b1", User: &models.UserRef{FullName: "Alice", Email: "a@example.com"}},
		{ID: "b2"},
	}
	userList := []models.Booking{{ID: "b3"}}

	mux := http.NewServeMux()
	mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		require.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, adminList)
	})
	mux.HandleFunc("/bookings/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		require.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, userList)
	})

	st, holder, _ := newStore(t, mux, adminIdentity())

	// Admin view wins even with both tokens present.
	holder.set(models.Identity{AdminToken: "admin-token", UserToken: "user-token"})
	require.NoError(t, st.LoadBookings(context.Background()))
	got := st.Bookings()
	require.Len(t, got, 2)
	require.Equal(t, "Alice", got[0].UserName)
	require.Equal(t, "a@example.com", got[0].UserEmail)
	require.Equal(t, "-", got[1].UserName, "missing user flattens to placeholder")

	holder.set(userIdentity())
	require.NoError(t, st.LoadBookings(context.Background()))
	require.Equal(t, userList, st.Bookings())

	holder.set(models.Identity{})
	require.NoError(t, st.LoadBookings(context.Background()))
	require.Empty(t, st.Bookings())
}

func TestLoadBookingsDiscardsStaleResponse(t *testing.T) {
	var holderRef *identityHolder
	mux := http.NewServeMux()
	mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		// Identity changes while the request is in flight.
		holderRef.set(models.Identity{})
		writeJSON(w, http.StatusOK, []models.Booking{{ID: "stale"}})
	})

	st, holder, _ := newStore(t, mux, adminIdentity())
	holderRef = holder

	require.NoError(t, st.LoadBookings(context.Background()))
	require.Empty(t, st.Bookings(), "response issued under the old identity must be discarded")
}

func TestCreateBookingNoMutationBeforeSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "down"})
	})
	st, _, _ := newStore(t, mux, userIdentity())

	_, err := st.CreateBooking(context.Background(), models.Booking{
		CarID:      "1",
		PickupDate: "2026-09-01",
		ReturnDate: "2026-09-03",
	})
	require.Error(t, err)
	require.Empty(t, st.Bookings(), "failed mutation must leave the cache untouched")
}

func TestCreateBookingValidatesDates(t *testing.T) {
	hits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { hits++ })
	st, _, _ := newStore(t, mux, userIdentity())

	_, err := st.CreateBooking(context.Background(), models.Booking{
		CarID:      "1",
		PickupDate: "2026-09-03",
		ReturnDate: "2026-09-01",
	})
	require.Error(t, err)
	require.Zero(t, hits, "bad dates are rejected before the network call")
}

func TestRemoveBookingAdminOnly(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bookings/b1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	st, holder, _ := newStore(t, mux, userIdentity())

	require.False(t, st.RemoveBooking(context.Background(), "b1"))

	holder.set(adminIdentity())
	require.True(t, st.RemoveBooking(context.Background(), "b1"))
}
