package resourcestore

import (
	"context"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

// Register submits a public team registration. It needs no session and
// touches no cache.
func (s *Store) Register(ctx context.Context, registration models.Registration) (*models.RegistrationReceipt, error) {
	var receipt *models.RegistrationReceipt
	err := s.run(ctx, "Register", func(ctx context.Context) error {
		out, err := s.gateway.Public().Register(ctx, registration)
		if err != nil {
			return err
		}
		receipt = out
		return nil
	})
	return receipt, err
}

// ConfirmPayment links a payment to a registered team.
func (s *Store) ConfirmPayment(ctx context.Context, confirmation models.PaymentConfirmation) error {
	return s.run(ctx, "ConfirmPayment", func(ctx context.Context) error {
		return s.gateway.Public().ConfirmPayment(ctx, confirmation)
	})
}
