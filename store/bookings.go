package store

import (
	"context"

	"gomelclient/pkg/apiclient"
	"gomelclient/pkg/logger"
	"gomelclient/pkg/models"
	"gomelclient/verify"
)

// LoadBookings is role dependent: admin present loads the all-bookings view
// with flattened display fields, otherwise a user session loads only that
// user's bookings, otherwise the cache clears to empty.
func (s *Store) LoadBookings(ctx context.Context) error {
	snap := s.identity()

	var list []models.Booking
	var err error
	switch {
	case snap.IsAdmin():
		list, err = s.api.ListBookings(ctx, snap.AdminToken)
		if err == nil {
			for i := range list {
				flattenBookingUser(&list[i])
			}
		}
	case snap.HasUser():
		list, err = s.api.MyBookings(ctx, snap.UserToken)
	default:
		list = nil
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	if !s.current(snap) {
		s.mu.Unlock()
		s.log.Debug("store: discarding stale bookings load")
		return nil
	}
	s.bookings = list
	s.mu.Unlock()

	s.publish(Change{Kind: ChangeBookings})
	return nil
}

// flattenBookingUser lifts the embedded user into the display name/email
// pair the back-office tables render, with "-" for missing data.
func flattenBookingUser(b *models.Booking) {
	if b.User != nil {
		if b.User.FullName != "" {
			b.UserName = b.User.FullName
		}
		if b.User.Email != "" {
			b.UserEmail = b.User.Email
		}
	}
	if b.UserName == "" {
		b.UserName = "-"
	}
	if b.UserEmail == "" {
		b.UserEmail = "-"
	}
}

// LoadHostBookings fetches bookings placed against cars the signed-in user
// hosts; with no user session the list is empty.
func (s *Store) LoadHostBookings(ctx context.Context) error {
	snap := s.identity()
	if !snap.HasUser() {
		s.mu.Lock()
		s.hostBookings = nil
		s.mu.Unlock()
		s.publish(Change{Kind: ChangeHostBookings})
		return nil
	}

	list, err := s.api.HostBookings(ctx, snap.UserToken)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if !s.current(snap) {
		s.mu.Unlock()
		s.log.Debug("store: discarding stale host bookings load")
		return nil
	}
	s.hostBookings = list
	s.mu.Unlock()

	s.publish(Change{Kind: ChangeHostBookings})
	return nil
}

// CreateBooking is a user-only action. Dates are checked before the network
// call; the cache is only touched after the server confirms.
func (s *Store) CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	snap := s.identity()
	if !snap.HasUser() {
		return models.Booking{}, apiclient.ErrNotAuthenticated
	}
	if err := verify.BookingDates(b.PickupDate, b.ReturnDate); err != nil {
		return models.Booking{}, err
	}

	created, err := s.api.CreateBooking(ctx, snap.UserToken, b)
	if err != nil {
		return models.Booking{}, err
	}

	s.mu.Lock()
	s.bookings = append([]models.Booking{created}, s.bookings...)
	s.mu.Unlock()

	s.publish(Change{Kind: ChangeBookings})
	return created, nil
}

// RemoveBooking is admin-only and reports success as a bool.
func (s *Store) RemoveBooking(ctx context.Context, id models.ID) bool {
	snap := s.identity()
	if !snap.IsAdmin() {
		return false
	}

	if err := s.api.DeleteBooking(ctx, snap.AdminToken, id); err != nil {
		s.log.Debug("store: remove booking refused", logger.String("booking", id.String()), logger.Error(err))
		return false
	}

	s.mu.Lock()
	kept := s.bookings[:0]
	for _, b := range s.bookings {
		if b.ID.String() != id.String() {
			kept = append(kept, b)
		}
	}
	s.bookings = kept
	s.mu.Unlock()

	s.publish(Change{Kind: ChangeBookings})
	return true
}
