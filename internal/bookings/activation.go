package bookings

import (
	"context"
	"fmt"

	"gridspot/internal/notifications"
	"gridspot/internal/shared/apperrors"
	"gridspot/pkg/logger"
)

// Activation consumes the payment collaborator's confirmation events. Every
// transition is a conditional update whose predicate includes the current
// status, so a redelivered event matches zero rows and reports
// ErrAlreadyResolved instead of double-applying.

// ActivateBySession transitions the pending booking for a checkout session to
// active, exactly once, storing the charge reference.
func (s *service) ActivateBySession(ctx context.Context, sessionRef, chargeRef string) error {
	rows, err := s.repo.ActivateBySession(ctx, sessionRef, chargeRef)
	if err != nil {
		return fmt.Errorf("activate session %s: %w", sessionRef, err)
	}
	if rows == 0 {
		exists, err := s.repo.SessionExists(ctx, sessionRef)
		if err != nil {
			return fmt.Errorf("activate session %s: %w", sessionRef, err)
		}
		if !exists {
			return fmt.Errorf("session %s: %w", sessionRef, apperrors.ErrNotFound)
		}
		return fmt.Errorf("session %s: %w", sessionRef, apperrors.ErrAlreadyResolved)
	}

	logger.GetDefault().LogBookingActivated(ctx, sessionRef, sessionRef)
	s.invalidateSnapshot(ctx)
	s.notifyPaymentConfirmed(ctx, sessionRef)
	return nil
}

// CancelBySession cancels a still-pending booking whose checkout session
// expired without payment
func (s *service) CancelBySession(ctx context.Context, sessionRef string) error {
	rows, err := s.repo.CancelBySession(ctx, sessionRef)
	if err != nil {
		return fmt.Errorf("cancel session %s: %w", sessionRef, err)
	}
	if rows == 0 {
		exists, err := s.repo.SessionExists(ctx, sessionRef)
		if err != nil {
			return fmt.Errorf("cancel session %s: %w", sessionRef, err)
		}
		if !exists {
			return fmt.Errorf("session %s: %w", sessionRef, apperrors.ErrNotFound)
		}
		return fmt.Errorf("session %s: %w", sessionRef, apperrors.ErrAlreadyResolved)
	}

	logger.GetDefault().LogBookingCancelled(ctx, sessionRef, "payment session expired")
	return nil
}

// CancelByCharge cancels an active booking whose charge was refunded
func (s *service) CancelByCharge(ctx context.Context, chargeRef string) error {
	rows, err := s.repo.CancelByCharge(ctx, chargeRef)
	if err != nil {
		return fmt.Errorf("cancel charge %s: %w", chargeRef, err)
	}
	if rows == 0 {
		exists, err := s.repo.ChargeExists(ctx, chargeRef)
		if err != nil {
			return fmt.Errorf("cancel charge %s: %w", chargeRef, err)
		}
		if !exists {
			return fmt.Errorf("charge %s: %w", chargeRef, apperrors.ErrNotFound)
		}
		return fmt.Errorf("charge %s: %w", chargeRef, apperrors.ErrAlreadyResolved)
	}

	logger.GetDefault().LogBookingCancelled(ctx, chargeRef, "charge refunded")
	s.invalidateSnapshot(ctx)
	return nil
}

// notifyPaymentConfirmed requests the confirmation message; best-effort,
// failure never rolls back the activation
func (s *service) notifyPaymentConfirmed(ctx context.Context, sessionRef string) {
	if s.notifier == nil {
		return
	}

	booking, err := s.repo.GetBookingBySession(ctx, sessionRef)
	if err != nil {
		logger.GetDefault().LogNotificationFailure(ctx, string(notifications.KindPaymentConfirmed), sessionRef, err)
		return
	}
	holder, err := s.holders.GetByID(ctx, booking.HolderID)
	if err != nil {
		logger.GetDefault().LogNotificationFailure(ctx, string(notifications.KindPaymentConfirmed), sessionRef, err)
		return
	}

	err = s.notifier.Notify(ctx, notifications.KindPaymentConfirmed, holder.Email, map[string]interface{}{
		"booking_id":   booking.ID.String(),
		"slot_x":       booking.SlotX,
		"slot_y":       booking.SlotY,
		"tier":         booking.Tier.String(),
		"start_date":   booking.StartDate.Format("2006-01-02"),
		"end_date":     booking.EndDate.Format("2006-01-02"),
		"amount_cents": booking.AmountCents,
	})
	if err != nil {
		logger.GetDefault().LogNotificationFailure(ctx, string(notifications.KindPaymentConfirmed), holder.Email, err)
	}
}
