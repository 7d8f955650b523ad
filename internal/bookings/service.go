package bookings

import (
	"context"
	"fmt"
	"math"
	"time"

	"gridspot/internal/holders"
	"gridspot/internal/notifications"
	"gridspot/internal/shared/apperrors"
	"gridspot/internal/tiers"
	"gridspot/pkg/logger"

	"github.com/google/uuid"
)

// SlotPricer resolves a coordinate to tier, price and availability.
// Implemented by the tiers service; declared here so tests can fake it.
type SlotPricer interface {
	SlotInfoAt(ctx context.Context, x, y int) (*tiers.SlotInfo, error)
}

// HolderResolver resolves holder identities from contact info
type HolderResolver interface {
	ResolveOrCreate(ctx context.Context, name, email string) (*holders.Holder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*holders.Holder, error)
}

// CheckoutParams is what the external payment collaborator needs to open a
// checkout session
type CheckoutParams struct {
	AmountCents int64
	Description string
	SuccessRef  string
	CancelRef   string
	BuyerEmail  string
}

// CheckoutSession is the provider's handle for a session: the identifier we
// store on the booking plus the redirect the client follows.
type CheckoutSession struct {
	SessionID   string
	RedirectURL string
}

// CheckoutClient is the payment collaborator boundary consumed by the
// reservation service
type CheckoutClient interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
}

// GridCache invalidates the public occupancy snapshot after a mutation
type GridCache interface {
	Invalidate(ctx context.Context)
}

// Service interface defines the contract for the reservation and activation
// lifecycle
type Service interface {
	CreateReservation(ctx context.Context, req ReservationRequest) (*ReservationResponse, error)
	GetPublicBooking(ctx context.Context, id uuid.UUID) (*PublicBooking, error)

	// Payment event handlers (see activation.go)
	ActivateBySession(ctx context.Context, sessionRef, chargeRef string) error
	CancelBySession(ctx context.Context, sessionRef string) error
	CancelByCharge(ctx context.Context, chargeRef string) error
}

// service implements the Service interface
type service struct {
	repo     Repository
	pricer   SlotPricer
	holders  HolderResolver
	checkout CheckoutClient
	notifier notifications.Notifier
	cache    GridCache

	now func() time.Time
}

// NewService creates a new booking service instance. cache may be nil when
// no snapshot cache is wired.
func NewService(repo Repository, pricer SlotPricer, holderResolver HolderResolver, checkout CheckoutClient, notifier notifications.Notifier, cache GridCache) Service {
	return &service{
		repo:     repo,
		pricer:   pricer,
		holders:  holderResolver,
		checkout: checkout,
		notifier: notifier,
		cache:    cache,
		now:      time.Now,
	}
}

// CreateReservation validates the slot, prices the window, opens a checkout
// session and inserts the pending booking. Nothing is committed when the
// payment provider call fails.
func (s *service) CreateReservation(ctx context.Context, req ReservationRequest) (*ReservationResponse, error) {
	if !tiers.InGrid(req.X, req.Y) {
		return nil, fmt.Errorf("coordinate (%d,%d): %w", req.X, req.Y, apperrors.ErrNotFound)
	}

	// Recompute the tier server-side; a stale client sees a mismatch, not a
	// mispriced booking.
	slotInfo, err := s.pricer.SlotInfoAt(ctx, req.X, req.Y)
	if err != nil {
		return nil, err
	}
	if string(slotInfo.Tier) != req.Tier {
		return nil, fmt.Errorf("slot (%d,%d) is tier %s: %w", req.X, req.Y, slotInfo.Tier, apperrors.ErrTierMismatch)
	}
	if !slotInfo.Available {
		return nil, fmt.Errorf("tier %s: %w", slotInfo.Tier, apperrors.ErrTierClosed)
	}

	now := s.now()
	startDate := DateOnly(now)
	endDate := startDate.AddDate(0, 0, req.DurationDays)

	// Check-then-insert; the exclusion constraint backstops the race window.
	overlapping, err := s.repo.FindOverlapping(ctx, req.X, req.Y, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("overlap check: %w", err)
	}
	if len(overlapping) > 0 {
		return nil, fmt.Errorf("slot (%d,%d) window [%s, %s): %w",
			req.X, req.Y, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"), apperrors.ErrSlotConflict)
	}

	amountCents := int64(math.Round(slotInfo.PricePerDay * float64(req.DurationDays) * 100))

	holder, err := s.holders.ResolveOrCreate(ctx, req.HolderName, req.HolderEmail)
	if err != nil {
		return nil, fmt.Errorf("resolve holder: %w", err)
	}

	bookingID := uuid.New()
	session, err := s.checkout.CreateCheckoutSession(ctx, CheckoutParams{
		AmountCents: amountCents,
		Description: fmt.Sprintf("Slot (%d,%d) tier %s for %d days", req.X, req.Y, slotInfo.Tier, req.DurationDays),
		SuccessRef:  bookingID.String(),
		CancelRef:   bookingID.String(),
		BuyerEmail:  holder.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamPayment, err)
	}

	booking := &Booking{
		ID:                bookingID,
		SlotX:             req.X,
		SlotY:             req.Y,
		Tier:              slotInfo.Tier,
		HolderID:          holder.ID,
		Status:            StatusPending,
		StartDate:         startDate,
		EndDate:           endDate,
		AmountCents:       amountCents,
		CheckoutSessionID: session.SessionID,
		DisplayName:       req.DisplayName,
		TargetURL:         req.TargetURL,
		ImageURL:          req.ImageURL,
		Boosted:           req.Boosted,
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	logger.GetDefault().LogReservationCreated(ctx, booking.ID.String(), req.X, req.Y, slotInfo.Tier.String(), amountCents)

	return &ReservationResponse{
		Booking:     booking.ToPublic(),
		AmountCents: amountCents,
		RedirectURL: session.RedirectURL,
	}, nil
}

// GetPublicBooking returns the public-safe projection of a booking
func (s *service) GetPublicBooking(ctx context.Context, id uuid.UUID) (*PublicBooking, error) {
	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := booking.ToPublic()
	return &pub, nil
}

// invalidateSnapshot drops the cached occupancy grid; best-effort
func (s *service) invalidateSnapshot(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
