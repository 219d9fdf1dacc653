package store

import (
	"context"

	"gomelclient/pkg/apiclient"
	"gomelclient/pkg/models"
	"gomelclient/verify"
)

// SubmitContactForm sends a support message; the endpoint is open, no
// identity required. Inputs are checked before the network call.
func (s *Store) SubmitContactForm(ctx context.Context, m models.Message) (models.Message, error) {
	in := verify.ContactInput{
		Name:    m.Name,
		Email:   m.Email,
		Message: m.Message,
	}
	if err := verify.Struct(in); err != nil {
		return models.Message{}, err
	}
	return s.api.CreateMessage(ctx, m)
}

// ListMessages is the admin support inbox.
func (s *Store) ListMessages(ctx context.Context) ([]models.Message, error) {
	snap := s.identity()
	if !snap.IsAdmin() {
		return nil, apiclient.ErrNotAuthenticated
	}
	return s.api.ListMessages(ctx, snap.AdminToken)
}

func (s *Store) GetMessage(ctx context.Context, id models.ID) (models.Message, error) {
	snap := s.identity()
	if !snap.IsAdmin() {
		return models.Message{}, apiclient.ErrNotAuthenticated
	}
	return s.api.GetMessage(ctx, snap.AdminToken, id)
}

// DeleteMessage reports success as a bool, like the other destructive
// admin actions.
func (s *Store) DeleteMessage(ctx context.Context, id models.ID) bool {
	snap := s.identity()
	if !snap.IsAdmin() {
		return false
	}
	return s.api.DeleteMessage(ctx, snap.AdminToken, id) == nil
}

func (s *Store) ReplyToMessage(ctx context.Context, id models.ID, reply string) error {
	snap := s.identity()
	if !snap.IsAdmin() {
		return apiclient.ErrNotAuthenticated
	}
	return s.api.ReplyMessage(ctx, snap.AdminToken, id, reply)
}
