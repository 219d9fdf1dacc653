package store

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"gomelclient/pkg/apiclient"
	"gomelclient/pkg/logger"
	"gomelclient/pkg/models"
)

// LoadCatalog fetches the full unauthenticated catalog, once at startup.
// Failure leaves the cache empty but still clears the loading flag: the
// consumer renders "no data" rather than blocking forever.
func (s *Store) LoadCatalog(ctx context.Context) {
	cars, err := s.api.ListCars(ctx)

	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.cars = cars
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Warning("store: catalog load failed", logger.Error(err))
		return
	}
	s.publish(Change{Kind: ChangeCatalog})
}

// RefreshForRole re-fetches the catalog when the admin identity toggles and,
// while admin, enriches each car with its host profile. Host lookups run in
// parallel, bounded and deduplicated by host id; a failed lookup leaves that
// one car without host info and never fails the refresh.
func (s *Store) RefreshForRole(ctx context.Context) error {
	snap := s.identity()
	if !snap.IsAdmin() {
		return nil
	}

	cars, err := s.api.ListCars(ctx)
	if err != nil {
		return err
	}

	hostIDs := make([]models.ID, 0)
	seen := map[models.ID]bool{}
	for _, c := range cars {
		if c.HostID != "" && !seen[c.HostID] {
			seen[c.HostID] = true
			hostIDs = append(hostIDs, c.HostID)
		}
	}

	var hostMu sync.Mutex
	hosts := map[models.ID]*models.User{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.lookupLimit)
	for _, id := range hostIDs {
		id := id
		g.Go(func() error {
			u, err := s.api.GetUser(gctx, snap.AdminToken, id)
			if err != nil {
				s.log.Debug("store: host lookup failed", logger.String("host", id.String()), logger.Error(err))
				return nil
			}
			hostMu.Lock()
			hosts[id] = u
			hostMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for i := range cars {
		u, ok := hosts[cars[i].HostID]
		if !ok {
			continue
		}
		cars[i].Host = &models.HostInfo{
			ID:       cars[i].HostID,
			Email:    u.Email,
			FullName: u.FullName,
			Mobile:   u.Mobile,
		}
		cars[i].HostEmail = u.Email
		cars[i].HostFullName = u.FullName
	}

	s.mu.Lock()
	if !s.current(snap) {
		s.mu.Unlock()
		s.log.Debug("store: discarding stale catalog refresh")
		return nil
	}
	s.cars = cars
	s.mu.Unlock()

	s.publish(Change{Kind: ChangeCatalog})
	return nil
}

// LoadAvailability resolves per-car availability for a date range and
// annotates the cached catalog. The annotation is derived state only.
func (s *Store) LoadAvailability(ctx context.Context, pickup, ret, city string) error {
	avail, err := s.api.CarAvailability(ctx, pickup, ret, city)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.cars {
		if ok, known := avail[s.cars[i].ID.String()]; known {
			v := ok
			s.cars[i].AvailableForRange = &v
		} else {
			s.cars[i].AvailableForRange = nil
		}
	}
	s.mu.Unlock()

	s.publish(Change{Kind: ChangeCatalog})
	return nil
}

// CreateCar routes to the admin- or host-scoped endpoint depending on which
// identity is active; with no identity present it fails before the network.
func (s *Store) CreateCar(ctx context.Context, car models.Car) (models.Car, error) {
	snap := s.identity()

	var created models.Car
	var err error
	switch {
	case snap.IsAdmin():
		created, err = s.api.CreateCar(ctx, snap.AdminToken, car)
	case snap.HasUser():
		created, err = s.api.CreateHostCar(ctx, snap.UserToken, car)
	default:
		return models.Car{}, apiclient.ErrNotAuthenticated
	}
	if err != nil {
		return models.Car{}, err
	}

	s.mu.Lock()
	s.cars = append([]models.Car{created}, s.cars...)
	s.mu.Unlock()

	s.publish(Change{Kind: ChangeCatalog})
	return created, nil
}

// UpdateCar is admin-only. On success the cached entry with the same id is
// replaced by the server's representation, leaving exactly one entry per id.
func (s *Store) UpdateCar(ctx context.Context, id models.ID, patch models.Car) (models.Car, error) {
	snap := s.identity()
	if !snap.IsAdmin() {
		return models.Car{}, apiclient.ErrNotAuthenticated
	}

	updated, err := s.api.UpdateCar(ctx, snap.AdminToken, id, patch)
	if err != nil {
		return models.Car{}, err
	}

	s.mu.Lock()
	for i := range s.cars {
		if s.cars[i].ID.String() == id.String() {
			s.cars[i] = updated
		}
	}
	s.mu.Unlock()

	s.publish(Change{Kind: ChangeCatalog})
	return updated, nil
}

// RemoveCar may be attempted by either identity; the server enforces
// ownership. It reports success as a bool so callers can show a generic
// "not permitted" message without distinguishing the failure reason.
func (s *Store) RemoveCar(ctx context.Context, id models.ID) bool {
	snap := s.identity()
	bearer := snap.AdminToken
	if bearer == "" {
		bearer = snap.UserToken
	}
	if bearer == "" {
		return false
	}

	if err := s.api.DeleteCar(ctx, bearer, id); err != nil {
		s.log.Debug("store: remove car refused", logger.String("car", id.String()), logger.Error(err))
		return false
	}

	s.mu.Lock()
	kept := s.cars[:0]
	for _, c := range s.cars {
		if c.ID.String() != id.String() {
			kept = append(kept, c)
		}
	}
	s.cars = kept
	s.mu.Unlock()

	s.publish(Change{Kind: ChangeCatalog})
	return true
}

// CarByID looks up a cached car.
func (s *Store) CarByID(id models.ID) (models.Car, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cars {
		if c.ID.String() == id.String() {
			return c, true
		}
	}
	return models.Car{}, false
}

func (s *Store) CarsByCity(city string) []models.Car {
	if city == "" {
		return s.Cars()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Car, 0)
	for _, c := range s.cars {
		if c.City == city {
			out = append(out, c)
		}
	}
	return out
}

// FilterCars applies a filter and sort order to the cached catalog and
// returns the result as a fresh slice.
func (s *Store) FilterCars(f models.CarFilter, sortBy string) []models.Car {
	return SortCars(FilterCars(s.Cars(), f), sortBy)
}
