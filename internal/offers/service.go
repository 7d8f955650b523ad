package offers

import (
	"context"
	"fmt"
	"math"
	"time"

	"gridspot/internal/bookings"
	"gridspot/internal/holders"
	"gridspot/internal/notifications"
	"gridspot/internal/shared/apperrors"
	"gridspot/internal/shared/config"
	"gridspot/internal/tiers"
	"gridspot/pkg/logger"

	"github.com/google/uuid"
)

// BookingStore is the slice of the booking repository this service needs
type BookingStore interface {
	GetBookingByID(ctx context.Context, id uuid.UUID) (*bookings.Booking, error)
}

// TierPricer reads the current daily rate for settlement math
type TierPricer interface {
	GetConfig(ctx context.Context, tier tiers.Tier) (*tiers.TierConfig, error)
}

// HolderStore resolves buyer identities and looks up the current holder
type HolderStore interface {
	ResolveOrCreate(ctx context.Context, name, email string) (*holders.Holder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*holders.Holder, error)
}

// Service interface defines the contract for buyout negotiation
type Service interface {
	SubmitOffer(ctx context.Context, req SubmitOfferRequest) (*BuyoutOffer, error)

	// ResolveOffer applies the holder's accept/reject decision.
	// deciderHolderID == uuid.Nil marks the operator channel, which bypasses
	// the ownership check.
	ResolveOffer(ctx context.Context, offerID uuid.UUID, decision string, deciderHolderID uuid.UUID) (*BuyoutOffer, error)

	GetOffer(ctx context.Context, offerID uuid.UUID) (*BuyoutOffer, error)
}

// service implements the Service interface
type service struct {
	repo         Repository
	bookingStore BookingStore
	tierPricer   TierPricer
	holderStore  HolderStore
	notifier     notifications.Notifier
	tokens       *TokenManager
	cache        bookings.GridCache

	ttl            time.Duration
	minAmountCents int64

	now func() time.Time
}

// NewService creates a new buyout negotiation service instance. cache may be
// nil when no snapshot cache is wired.
func NewService(repo Repository, bookingStore BookingStore, tierPricer TierPricer, holderStore HolderStore, notifier notifications.Notifier, tokens *TokenManager, cache bookings.GridCache, cfg config.OfferConfig) Service {
	return &service{
		repo:           repo,
		bookingStore:   bookingStore,
		tierPricer:     tierPricer,
		holderStore:    holderStore,
		notifier:       notifier,
		tokens:         tokens,
		cache:          cache,
		ttl:            cfg.TTL,
		minAmountCents: cfg.MinAmountCents,
		now:            time.Now,
	}
}

// ComputeSettlement derives the fund split recorded on acceptance. The buyer
// is charged the full offer amount by the payment collaborator; this core
// only records the numbers.
//
//	residual     = remainingDays * dailyRate, in cents
//	holderPayout = round(0.70 * residual) + round(0.30 * amount)
//	commission   = round(0.20 * amount)
func ComputeSettlement(remainingDays int, dailyRate float64, amountCents int64) Settlement {
	residual := int64(math.Round(float64(remainingDays) * dailyRate * 100))
	payout := int64(math.Round(0.70*float64(residual))) + int64(math.Round(0.30*float64(amountCents)))
	commission := int64(math.Round(0.20 * float64(amountCents)))

	return Settlement{
		ResidualValueCents: residual,
		HolderPayoutCents:  payout,
		CommissionCents:    commission,
		BuyerChargedCents:  amountCents,
	}
}

// SubmitOffer validates and records a buyout offer against an active booking
func (s *service) SubmitOffer(ctx context.Context, req SubmitOfferRequest) (*BuyoutOffer, error) {
	if req.AmountCents < s.minAmountCents {
		return nil, fmt.Errorf("amount %d below floor %d: %w", req.AmountCents, s.minAmountCents, apperrors.ErrInvalidAmount)
	}

	bookingID, err := uuid.Parse(req.TargetBookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid target booking id: %w", apperrors.ErrNotFound)
	}

	booking, err := s.bookingStore.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.SlotX != req.X || booking.SlotY != req.Y {
		return nil, fmt.Errorf("booking %s is not on slot (%d,%d): %w", bookingID, req.X, req.Y, apperrors.ErrNotFound)
	}
	if !booking.IsActive() {
		return nil, fmt.Errorf("booking %s is %s: %w", bookingID, booking.Status, apperrors.ErrBookingNotActive)
	}

	now := s.now()
	hasPending, err := s.repo.HasPendingOffer(ctx, req.X, req.Y, req.BuyerEmail, now)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if hasPending {
		return nil, fmt.Errorf("buyer %s on slot (%d,%d): %w", req.BuyerEmail, req.X, req.Y, apperrors.ErrDuplicateOffer)
	}

	offer := &BuyoutOffer{
		ID:          uuid.New(),
		SlotX:       req.X,
		SlotY:       req.Y,
		BookingID:   booking.ID,
		BuyerName:   req.BuyerName,
		BuyerEmail:  req.BuyerEmail,
		AmountCents: req.AmountCents,
		Message:     req.Message,
		DisplayName: req.DisplayName,
		TargetURL:   req.TargetURL,
		ImageURL:    req.ImageURL,
		Status:      StatusPending,
		ExpiresAt:   now.Add(s.ttl),
	}

	if err := s.repo.CreateOffer(ctx, offer); err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}

	logger.GetDefault().LogOfferSubmitted(ctx, offer.ID.String(), booking.ID.String(), offer.AmountCents)

	s.notifyHolder(ctx, offer, booking)
	return offer, nil
}

// ResolveOffer applies the decision and, on accept, performs the settlement
// computation, cascade-cancel and slot transfer atomically
func (s *service) ResolveOffer(ctx context.Context, offerID uuid.UUID, decision string, deciderHolderID uuid.UUID) (*BuyoutOffer, error) {
	offer, err := s.repo.GetOfferByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !offer.IsPending() {
		return nil, fmt.Errorf("offer %s is %s: %w", offerID, offer.Status, apperrors.ErrAlreadyResolved)
	}

	now := s.now()
	if offer.DeadlinePassed(now) {
		// The sweeper will flip it to EXPIRED on its next pass; the decision
		// window is closed either way.
		return nil, fmt.Errorf("offer %s decision window closed: %w", offerID, apperrors.ErrAlreadyResolved)
	}

	booking, err := s.bookingStore.GetBookingByID(ctx, offer.BookingID)
	if err != nil {
		return nil, err
	}
	if deciderHolderID != uuid.Nil && booking.HolderID != deciderHolderID {
		return nil, fmt.Errorf("holder %s does not own booking %s: %w", deciderHolderID, booking.ID, apperrors.ErrUnauthorized)
	}

	switch decision {
	case "reject":
		rows, err := s.repo.RejectOffer(ctx, offerID)
		if err != nil {
			return nil, fmt.Errorf("reject offer: %w", err)
		}
		if rows == 0 {
			return nil, fmt.Errorf("offer %s: %w", offerID, apperrors.ErrAlreadyResolved)
		}

	case "accept":
		if !booking.IsActive() {
			return nil, fmt.Errorf("booking %s is %s: %w", booking.ID, booking.Status, apperrors.ErrBookingNotActive)
		}

		tierCfg, err := s.tierPricer.GetConfig(ctx, booking.Tier)
		if err != nil {
			return nil, err
		}
		settlement := ComputeSettlement(booking.RemainingDays(now), tierCfg.PricePerDay, offer.AmountCents)

		buyer, err := s.holderStore.ResolveOrCreate(ctx, offer.BuyerName, offer.BuyerEmail)
		if err != nil {
			return nil, fmt.Errorf("resolve buyer: %w", err)
		}

		err = s.repo.AcceptOffer(ctx, AcceptParams{
			OfferID:           offer.ID,
			BookingID:         booking.ID,
			SlotX:             offer.SlotX,
			SlotY:             offer.SlotY,
			NewHolderID:       buyer.ID,
			HolderPayoutCents: settlement.HolderPayoutCents,
			CommissionCents:   settlement.CommissionCents,
			DisplayName:       offer.DisplayName,
			TargetURL:         offer.TargetURL,
			ImageURL:          offer.ImageURL,
		})
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			s.cache.Invalidate(ctx)
		}

	default:
		return nil, fmt.Errorf("unknown decision %q: %w", decision, apperrors.ErrNotFound)
	}

	logger.GetDefault().LogOfferResolved(ctx, offerID.String(), decision)
	return s.repo.GetOfferByID(ctx, offerID)
}

func (s *service) GetOffer(ctx context.Context, offerID uuid.UUID) (*BuyoutOffer, error) {
	return s.repo.GetOfferByID(ctx, offerID)
}

// notifyHolder requests the offer-received message with the signed decision
// token; best-effort
func (s *service) notifyHolder(ctx context.Context, offer *BuyoutOffer, booking *bookings.Booking) {
	if s.notifier == nil {
		return
	}

	holder, err := s.holderStore.GetByID(ctx, booking.HolderID)
	if err != nil {
		logger.GetDefault().LogNotificationFailure(ctx, string(notifications.KindOfferReceived), booking.HolderID.String(), err)
		return
	}

	token, err := s.tokens.IssueDecisionToken(offer.ID, holder.ID, offer.ExpiresAt)
	if err != nil {
		logger.GetDefault().LogNotificationFailure(ctx, string(notifications.KindOfferReceived), holder.Email, err)
		return
	}

	err = s.notifier.Notify(ctx, notifications.KindOfferReceived, holder.Email, map[string]interface{}{
		"offer_id":       offer.ID.String(),
		"slot_x":         offer.SlotX,
		"slot_y":         offer.SlotY,
		"amount_cents":   offer.AmountCents,
		"buyer_name":     offer.BuyerName,
		"message":        offer.Message,
		"expires_at":     offer.ExpiresAt.Format(time.RFC3339),
		"decision_token": token,
	})
	if err != nil {
		logger.GetDefault().LogNotificationFailure(ctx, string(notifications.KindOfferReceived), holder.Email, err)
	}
}
