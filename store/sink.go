package store

import (
	"context"
	"encoding/json"

	"gomelclient/pkg/logger"
	"gomelclient/pkg/models"
)

// The methods below fold live-channel deltas into the cache. They apply only
// while the corresponding identity is present, and malformed payloads are
// dropped without disturbing the channel.

// BookingCreated handles a pushed booking. Admin sessions prepend the
// payload to the all-bookings list; user sessions refetch host bookings
// instead, because the pushed payload may not carry the host-booking shape.
func (s *Store) BookingCreated(ctx context.Context, data json.RawMessage) {
	snap := s.identity()

	if snap.IsAdmin() {
		var b models.Booking
		if err := json.Unmarshal(data, &b); err != nil {
			s.log.Debug("store: dropping malformed booking event", logger.Error(err))
		} else {
			flattenBookingUser(&b)
			s.mu.Lock()
			s.bookings = append([]models.Booking{b}, s.bookings...)
			s.mu.Unlock()
			s.publish(Change{Kind: ChangeBookingCreated, Booking: &b})
		}
	}

	if snap.HasUser() {
		if err := s.LoadHostBookings(ctx); err != nil {
			s.log.Debug("store: host bookings refetch failed", logger.Error(err))
		}
	}
}

// PayoutCreated prepends a pushed payout to the admin payout cache.
func (s *Store) PayoutCreated(ctx context.Context, data json.RawMessage) {
	snap := s.identity()
	if !snap.IsAdmin() {
		return
	}

	var p models.Payout
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Debug("store: dropping malformed payout event", logger.Error(err))
		return
	}

	s.mu.Lock()
	s.payouts = append([]models.Payout{p}, s.payouts...)
	s.mu.Unlock()
	s.publish(Change{Kind: ChangePayoutCreated, Payout: &p})
}

// PayoutUpdated replaces the matching cached payout. An update for an id the
// cache does not hold is a no-op; an update implies prior existence, so
// nothing is appended.
func (s *Store) PayoutUpdated(ctx context.Context, data json.RawMessage) {
	snap := s.identity()
	if !snap.IsAdmin() {
		return
	}

	var p models.Payout
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Debug("store: dropping malformed payout event", logger.Error(err))
		return
	}

	replaced := false
	s.mu.Lock()
	for i := range s.payouts {
		if s.payouts[i].ID.String() == p.ID.String() {
			s.payouts[i] = p
			replaced = true
		}
	}
	s.mu.Unlock()

	if replaced {
		s.publish(Change{Kind: ChangePayoutUpdated, Payout: &p})
	}
}
