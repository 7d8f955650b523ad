package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"gridspot/internal/bookings"
	"gridspot/internal/offers"
	"gridspot/internal/tiers"
	"gridspot/pkg/logger"

	"github.com/google/uuid"
)

// BookingReader exposes the operator's view over bookings
type BookingReader interface {
	ListBookings(ctx context.Context, query bookings.BookingListQuery) ([]bookings.Booking, int64, error)
	GetBookingByID(ctx context.Context, id uuid.UUID) (*bookings.Booking, error)
}

// OfferReader exposes the operator's view over buyout offers
type OfferReader interface {
	ListOffers(ctx context.Context, query offers.OfferListQuery) ([]offers.BuyoutOffer, int64, error)
}

// TierAdmin mutates and reads the tier configuration
type TierAdmin interface {
	ListConfigs(ctx context.Context) ([]tiers.TierConfig, error)
	SetAvailability(ctx context.Context, tier tiers.Tier, available bool, actor string) error
	SetPrice(ctx context.Context, tier tiers.Tier, pricePerDay float64, actor string) error
}

// Service interface defines the operator override channel. Every mutation
// names the acting operator and lands in the audit log.
type Service interface {
	CancelBooking(ctx context.Context, bookingID uuid.UUID, actor, reason string) error
	ForceActivate(ctx context.Context, bookingID uuid.UUID, actor string) error
	ExtendBooking(ctx context.Context, bookingID uuid.UUID, days int, actor string) (*bookings.Booking, error)
	ResolveOffer(ctx context.Context, offerID uuid.UUID, decision, actor string) (*offers.BuyoutOffer, error)
	SetTierAvailability(ctx context.Context, tier tiers.Tier, available bool, actor string) error
	SetTierPrice(ctx context.Context, tier tiers.Tier, pricePerDay float64, actor string) error

	ListBookings(ctx context.Context, query bookings.BookingListQuery) ([]bookings.Booking, int64, error)
	ListOffers(ctx context.Context, query offers.OfferListQuery) ([]offers.BuyoutOffer, int64, error)
	ListTierConfigs(ctx context.Context) ([]tiers.TierConfig, error)
	ListAudit(ctx context.Context, query AuditListQuery) ([]AuditLogEntry, int64, error)
}

// service implements the Service interface
type service struct {
	repo         Repository
	bookingRead  BookingReader
	offerRead    OfferReader
	offerService offers.Service
	tierAdmin    TierAdmin
	cache        bookings.GridCache
}

// NewService creates a new operator override service instance
func NewService(repo Repository, bookingRead BookingReader, offerRead OfferReader, offerService offers.Service, tierAdmin TierAdmin, cache bookings.GridCache) Service {
	return &service{
		repo:         repo,
		bookingRead:  bookingRead,
		offerRead:    offerRead,
		offerService: offerService,
		tierAdmin:    tierAdmin,
		cache:        cache,
	}
}

func (s *service) CancelBooking(ctx context.Context, bookingID uuid.UUID, actor, reason string) error {
	entry := newAuditEntry(actor, ActionCancelBooking, TargetBooking, bookingID.String(), map[string]interface{}{
		"reason": reason,
	})

	if err := s.repo.CancelBooking(ctx, bookingID, entry); err != nil {
		return err
	}

	logger.GetDefault().LogOperatorOverride(ctx, actor, ActionCancelBooking, bookingID.String())
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *service) ForceActivate(ctx context.Context, bookingID uuid.UUID, actor string) error {
	entry := newAuditEntry(actor, ActionForceActivate, TargetBooking, bookingID.String(), nil)

	if err := s.repo.ForceActivate(ctx, bookingID, entry); err != nil {
		return err
	}

	logger.GetDefault().LogOperatorOverride(ctx, actor, ActionForceActivate, bookingID.String())
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *service) ExtendBooking(ctx context.Context, bookingID uuid.UUID, days int, actor string) (*bookings.Booking, error) {
	entry := newAuditEntry(actor, ActionExtendBooking, TargetBooking, bookingID.String(), map[string]interface{}{
		"days": days,
	})

	extended, err := s.repo.ExtendBooking(ctx, bookingID, days, entry)
	if err != nil {
		return nil, err
	}

	logger.GetDefault().LogOperatorOverride(ctx, actor, ActionExtendBooking, bookingID.String())
	return extended, nil
}

// ResolveOffer runs the holder decision path with the ownership check
// bypassed, then records the override. The offer resolution itself is
// guarded by the same conditional transitions as the holder channel.
func (s *service) ResolveOffer(ctx context.Context, offerID uuid.UUID, decision, actor string) (*offers.BuyoutOffer, error) {
	offer, err := s.offerService.ResolveOffer(ctx, offerID, decision, uuid.Nil)
	if err != nil {
		return nil, err
	}

	entry := newAuditEntry(actor, ActionResolveOffer, TargetOffer, offerID.String(), map[string]interface{}{
		"decision": decision,
	})
	if err := s.repo.AppendAudit(ctx, entry); err != nil {
		return nil, fmt.Errorf("audit append: %w", err)
	}

	logger.GetDefault().LogOperatorOverride(ctx, actor, ActionResolveOffer, offerID.String())
	return offer, nil
}

func (s *service) SetTierAvailability(ctx context.Context, tier tiers.Tier, available bool, actor string) error {
	if err := s.tierAdmin.SetAvailability(ctx, tier, available, actor); err != nil {
		return err
	}

	entry := newAuditEntry(actor, ActionSetTierAvailability, TargetTier, string(tier), map[string]interface{}{
		"available": available,
	})
	if err := s.repo.AppendAudit(ctx, entry); err != nil {
		return fmt.Errorf("audit append: %w", err)
	}

	logger.GetDefault().LogOperatorOverride(ctx, actor, ActionSetTierAvailability, string(tier))
	return nil
}

func (s *service) SetTierPrice(ctx context.Context, tier tiers.Tier, pricePerDay float64, actor string) error {
	if err := s.tierAdmin.SetPrice(ctx, tier, pricePerDay, actor); err != nil {
		return err
	}

	entry := newAuditEntry(actor, ActionSetTierPrice, TargetTier, string(tier), map[string]interface{}{
		"price_per_day": pricePerDay,
	})
	if err := s.repo.AppendAudit(ctx, entry); err != nil {
		return fmt.Errorf("audit append: %w", err)
	}

	logger.GetDefault().LogOperatorOverride(ctx, actor, ActionSetTierPrice, string(tier))
	return nil
}

func (s *service) ListBookings(ctx context.Context, query bookings.BookingListQuery) ([]bookings.Booking, int64, error) {
	return s.bookingRead.ListBookings(ctx, query)
}

func (s *service) ListOffers(ctx context.Context, query offers.OfferListQuery) ([]offers.BuyoutOffer, int64, error) {
	return s.offerRead.ListOffers(ctx, query)
}

func (s *service) ListTierConfigs(ctx context.Context) ([]tiers.TierConfig, error) {
	return s.tierAdmin.ListConfigs(ctx)
}

func (s *service) ListAudit(ctx context.Context, query AuditListQuery) ([]AuditLogEntry, int64, error) {
	return s.repo.ListAudit(ctx, query)
}

func (s *service) invalidateSnapshot(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func newAuditEntry(actor, action, targetType, targetID string, detail map[string]interface{}) *AuditLogEntry {
	detailJSON := "{}"
	if len(detail) > 0 {
		if raw, err := json.Marshal(detail); err == nil {
			detailJSON = string(raw)
		}
	}

	return &AuditLogEntry{
		ID:         uuid.New(),
		Actor:      actor,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detailJSON,
	}
}
