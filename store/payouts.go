package store

import (
	"context"
	"errors"

	"gomelclient/pkg/apiclient"
	"gomelclient/pkg/logger"
	"gomelclient/pkg/models"
	"gomelclient/verify"
)

var errPayoutResolved = errors.New("payout already resolved")

// RequestPayout is a host (user-session) action. It does not touch the
// local payout cache; the admin view is refreshed separately.
func (s *Store) RequestPayout(ctx context.Context, bookingID models.ID, amount float64, note string) (models.Payout, error) {
	snap := s.identity()
	if !snap.HasUser() {
		return models.Payout{}, apiclient.ErrNotAuthenticated
	}
	req := apiclient.PayoutRequest{BookingID: bookingID, Amount: amount, Note: note}
	if err := verify.Struct(verify.PayoutInput{BookingID: bookingID.String(), Amount: amount}); err != nil {
		return models.Payout{}, err
	}
	return s.api.RequestPayout(ctx, snap.UserToken, req)
}

// AdminListPayouts loads the admin payout view. Payouts are best-effort
// telemetry, not critical path: the call is gated on an active admin view
// and a successful admin whoami, and any non-success anywhere (404 included)
// degrades to an empty list instead of an error.
func (s *Store) AdminListPayouts(ctx context.Context) []models.Payout {
	snap := s.identity()
	if !snap.IsAdmin() {
		s.mu.Lock()
		s.payouts = nil
		s.mu.Unlock()
		return []models.Payout{}
	}
	if !s.AdminViewActive() {
		return []models.Payout{}
	}

	if err := s.api.AdminMe(ctx, snap.AdminToken); err != nil {
		s.log.Debug("store: admin whoami failed, skipping payouts", logger.Error(err))
		return []models.Payout{}
	}

	list, err := s.api.ListPayouts(ctx, snap.AdminToken)
	if err != nil {
		s.log.Debug("store: payout list failed", logger.Error(err))
		return []models.Payout{}
	}

	s.mu.Lock()
	if !s.current(snap) {
		s.mu.Unlock()
		s.log.Debug("store: discarding stale payout load")
		return []models.Payout{}
	}
	s.payouts = list
	s.mu.Unlock()

	s.publish(Change{Kind: ChangePayouts})
	out := make([]models.Payout, len(list))
	copy(out, list)
	return out
}

// ApprovePayout transitions a pending payout to approved. The transition is
// one-way: a payout the cache already knows to be resolved is refused before
// the network call, and the cache never regresses a terminal status.
func (s *Store) ApprovePayout(ctx context.Context, id models.ID) error {
	return s.resolvePayout(ctx, id, s.api.ApprovePayout)
}

// RejectPayout transitions a pending payout to rejected; same one-way rules
// as ApprovePayout.
func (s *Store) RejectPayout(ctx context.Context, id models.ID) error {
	return s.resolvePayout(ctx, id, s.api.RejectPayout)
}

func (s *Store) resolvePayout(ctx context.Context, id models.ID, call func(context.Context, string, models.ID) (models.Payout, error)) error {
	snap := s.identity()
	if !snap.IsAdmin() {
		return apiclient.ErrNotAuthenticated
	}

	s.mu.RLock()
	for _, p := range s.payouts {
		if p.ID.String() == id.String() && p.Terminal() {
			s.mu.RUnlock()
			return errPayoutResolved
		}
	}
	s.mu.RUnlock()

	updated, err := call(ctx, snap.AdminToken, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.payouts {
		if s.payouts[i].ID.String() != id.String() {
			continue
		}
		if s.payouts[i].Terminal() {
			// A concurrent resolution won; never regress a terminal status.
			break
		}
		s.payouts[i] = updated
	}
	s.mu.Unlock()

	s.publish(Change{Kind: ChangePayoutUpdated, Payout: &updated})
	return nil
}
