package store

import (
	"sync"

	"gomelclient/pkg/apiclient"
	"gomelclient/pkg/logger"
	"gomelclient/pkg/models"
)

// Change kinds published to store listeners.
const (
	ChangeCatalog        = "catalog"
	ChangeBookings       = "bookings"
	ChangeHostBookings   = "host_bookings"
	ChangePayouts        = "payouts"
	ChangeBookingCreated = "booking_created"
	ChangePayoutCreated  = "payout_created"
	ChangePayoutUpdated  = "payout_updated"
)

type Change struct {
	Kind    string
	Booking *models.Booking
	Payout  *models.Payout
}

// Store is the single source of truth for cars, bookings, host bookings and
// payouts within a running session. Every mutation goes through the remote
// service first; the cache is written only after the server confirms, so a
// failed call leaves local state untouched until the next reload.
type Store struct {
	api      *apiclient.Client
	log      logger.ILogger
	identity func() models.Identity

	lookupLimit int

	mu           sync.RWMutex
	cars         []models.Car
	bookings     []models.Booking
	hostBookings []models.Booking
	payouts      []models.Payout
	loading      bool
	adminView    bool
	listeners    []func(Change)
}

// New builds a store bound to an identity snapshot provider, normally
// session.Manager.Identity. lookupLimit bounds the parallel host lookups
// during admin catalog enrichment.
func New(api *apiclient.Client, log logger.ILogger, identity func() models.Identity, lookupLimit int) *Store {
	if lookupLimit <= 0 {
		lookupLimit = 8
	}
	return &Store{
		api:         api,
		log:         log,
		identity:    identity,
		lookupLimit: lookupLimit,
		loading:     true,
	}
}

// Subscribe registers a change listener. Listeners are invoked synchronously
// after the cache write, outside the store lock.
func (s *Store) Subscribe(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) publish(c Change) {
	s.mu.RLock()
	listeners := make([]func(Change), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(c)
	}
}

// current reports whether a snapshot taken when a load was issued still
// matches the active identity; stale results are discarded.
func (s *Store) current(snap models.Identity) bool {
	return snap.Equal(s.identity())
}

func (s *Store) Cars() []models.Car {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Car, len(s.cars))
	copy(out, s.cars)
	return out
}

func (s *Store) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

func (s *Store) HostBookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Booking, len(s.hostBookings))
	copy(out, s.hostBookings)
	return out
}

func (s *Store) Payouts() []models.Payout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Payout, len(s.payouts))
	copy(out, s.payouts)
	return out
}

// Loading reports whether the initial catalog load has finished yet.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetAdminView marks whether an admin back-office view is active. Payout
// listing only hits the network while it is; this replaces the browser
// build's URL-path sniffing with an explicit owner.
func (s *Store) SetAdminView(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adminView = active
}

func (s *Store) AdminViewActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adminView
}
