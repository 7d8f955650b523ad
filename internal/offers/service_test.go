package offers

import (
	"context"
	"errors"
	"testing"
	"time"

	"gridspot/internal/bookings"
	"gridspot/internal/holders"
	"gridspot/internal/notifications"
	"gridspot/internal/shared/apperrors"
	"gridspot/internal/shared/config"
	"gridspot/internal/tiers"

	"github.com/google/uuid"
)

// fakeOfferRepo is an in-memory Repository for service tests
type fakeOfferRepo struct {
	offers map[uuid.UUID]*BuyoutOffer

	acceptCalls  []AcceptParams
	transferFail bool
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: map[uuid.UUID]*BuyoutOffer{}}
}

func (f *fakeOfferRepo) CreateOffer(_ context.Context, offer *BuyoutOffer) error {
	f.offers[offer.ID] = offer
	return nil
}

func (f *fakeOfferRepo) GetOfferByID(_ context.Context, id uuid.UUID) (*BuyoutOffer, error) {
	offer, ok := f.offers[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *offer
	return &clone, nil
}

func (f *fakeOfferRepo) HasPendingOffer(_ context.Context, x, y int, buyerEmail string, now time.Time) (bool, error) {
	for _, o := range f.offers {
		if o.SlotX == x && o.SlotY == y && o.BuyerEmail == buyerEmail && o.Status == StatusPending && o.ExpiresAt.After(now) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOfferRepo) RejectOffer(_ context.Context, id uuid.UUID) (int64, error) {
	offer, ok := f.offers[id]
	if !ok || offer.Status != StatusPending {
		return 0, nil
	}
	now := time.Now()
	offer.Status = StatusRejected
	offer.ResolvedAt = &now
	return 1, nil
}

func (f *fakeOfferRepo) AcceptOffer(_ context.Context, params AcceptParams) error {
	offer, ok := f.offers[params.OfferID]
	if !ok || offer.Status != StatusPending {
		return apperrors.ErrAlreadyResolved
	}
	if f.transferFail {
		return apperrors.ErrAlreadyResolved
	}

	now := time.Now()
	offer.Status = StatusAccepted
	offer.HolderPayoutCents = params.HolderPayoutCents
	offer.CommissionCents = params.CommissionCents
	offer.ResolvedAt = &now

	for _, other := range f.offers {
		if other.ID != params.OfferID && other.SlotX == params.SlotX && other.SlotY == params.SlotY && other.Status == StatusPending {
			other.Status = StatusCancelled
			other.ResolvedAt = &now
		}
	}
	f.acceptCalls = append(f.acceptCalls, params)
	return nil
}

func (f *fakeOfferRepo) ListOffers(_ context.Context, _ OfferListQuery) ([]BuyoutOffer, int64, error) {
	return nil, 0, nil
}

type fakeBookingStore struct {
	bookings map[uuid.UUID]*bookings.Booking
}

func (f *fakeBookingStore) GetBookingByID(_ context.Context, id uuid.UUID) (*bookings.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

type fakeTierPricer struct {
	pricePerDay float64
}

func (f *fakeTierPricer) GetConfig(_ context.Context, tier tiers.Tier) (*tiers.TierConfig, error) {
	return &tiers.TierConfig{Tier: tier, Available: true, PricePerDay: f.pricePerDay}, nil
}

type fakeHolderStore struct {
	byEmail map[string]*holders.Holder
	byID    map[uuid.UUID]*holders.Holder
}

func newFakeHolderStore() *fakeHolderStore {
	return &fakeHolderStore{
		byEmail: map[string]*holders.Holder{},
		byID:    map[uuid.UUID]*holders.Holder{},
	}
}

func (f *fakeHolderStore) add(name, email string) *holders.Holder {
	h := &holders.Holder{ID: uuid.New(), Name: name, Email: email}
	f.byEmail[email] = h
	f.byID[h.ID] = h
	return h
}

func (f *fakeHolderStore) ResolveOrCreate(_ context.Context, name, email string) (*holders.Holder, error) {
	if h, ok := f.byEmail[email]; ok {
		return h, nil
	}
	return f.add(name, email), nil
}

func (f *fakeHolderStore) GetByID(_ context.Context, id uuid.UUID) (*holders.Holder, error) {
	h, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return h, nil
}

type recordingNotifier struct {
	kinds []notifications.Kind
	data  []map[string]interface{}
}

func (r *recordingNotifier) Notify(_ context.Context, kind notifications.Kind, _ string, data map[string]interface{}) error {
	r.kinds = append(r.kinds, kind)
	r.data = append(r.data, data)
	return nil
}

type testHarness struct {
	svc      *service
	repo     *fakeOfferRepo
	store    *fakeBookingStore
	holders  *fakeHolderStore
	notifier *recordingNotifier
	holder   *holders.Holder
	booking  *bookings.Booking
	now      time.Time
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	repo := newFakeOfferRepo()
	holderStore := newFakeHolderStore()
	holder := holderStore.add("Current Holder", "holder@example.com")

	booking := &bookings.Booking{
		ID:        uuid.New(),
		SlotX:     10,
		SlotY:     10,
		Tier:      tiers.TierHundred,
		HolderID:  holder.ID,
		Status:    bookings.StatusActive,
		StartDate: bookings.DateOnly(now).AddDate(0, 0, -20),
		EndDate:   bookings.DateOnly(now).AddDate(0, 0, 10),
	}
	store := &fakeBookingStore{bookings: map[uuid.UUID]*bookings.Booking{booking.ID: booking}}

	notifier := &recordingNotifier{}
	cfg := config.OfferConfig{TTL: 72 * time.Hour, MinAmountCents: 100, TokenSecret: "test-secret"}
	tokens := NewTokenManager(cfg.TokenSecret)

	svc := NewService(repo, store, &fakeTierPricer{pricePerDay: 10}, holderStore, notifier, tokens, nil, cfg).(*service)
	svc.now = func() time.Time { return now }

	return &testHarness{
		svc:      svc,
		repo:     repo,
		store:    store,
		holders:  holderStore,
		notifier: notifier,
		holder:   holder,
		booking:  booking,
		now:      now,
	}
}

func (h *testHarness) submitRequest() SubmitOfferRequest {
	return SubmitOfferRequest{
		X:               10,
		Y:               10,
		TargetBookingID: h.booking.ID.String(),
		BuyerName:       "Eager Buyer",
		BuyerEmail:      "buyer@example.com",
		AmountCents:     20000,
		DisplayName:     "New Creative",
	}
}

func TestComputeSettlement(t *testing.T) {
	// 10 remaining days at 10.00/day: residual 10000 cents. Offer of 20000
	// cents splits into a 13000 holder payout and 4000 commission.
	s := ComputeSettlement(10, 10, 20000)

	if s.ResidualValueCents != 10000 {
		t.Errorf("residual: got %d, want 10000", s.ResidualValueCents)
	}
	if s.HolderPayoutCents != 13000 {
		t.Errorf("holder payout: got %d, want 13000", s.HolderPayoutCents)
	}
	if s.CommissionCents != 4000 {
		t.Errorf("commission: got %d, want 4000", s.CommissionCents)
	}
	if s.BuyerChargedCents != 20000 {
		t.Errorf("buyer charged: got %d, want 20000", s.BuyerChargedCents)
	}
}

func TestComputeSettlementZeroRemainingDays(t *testing.T) {
	s := ComputeSettlement(0, 500, 10000)

	if s.ResidualValueCents != 0 {
		t.Errorf("residual: got %d, want 0", s.ResidualValueCents)
	}
	// Payout degenerates to the 30% amount share
	if s.HolderPayoutCents != 3000 {
		t.Errorf("holder payout: got %d, want 3000", s.HolderPayoutCents)
	}
	if s.CommissionCents != 2000 {
		t.Errorf("commission: got %d, want 2000", s.CommissionCents)
	}
}

func TestSubmitOffer(t *testing.T) {
	h := newHarness(t)

	offer, err := h.svc.SubmitOffer(context.Background(), h.submitRequest())
	if err != nil {
		t.Fatalf("SubmitOffer: %v", err)
	}

	if offer.Status != StatusPending {
		t.Errorf("status: got %s, want %s", offer.Status, StatusPending)
	}
	if want := h.now.Add(72 * time.Hour); !offer.ExpiresAt.Equal(want) {
		t.Errorf("expires_at: got %v, want %v", offer.ExpiresAt, want)
	}
	if offer.BookingID != h.booking.ID {
		t.Errorf("booking_id: got %s, want %s", offer.BookingID, h.booking.ID)
	}

	if len(h.notifier.kinds) != 1 || h.notifier.kinds[0] != notifications.KindOfferReceived {
		t.Fatalf("expected one offer-received notification, got %v", h.notifier.kinds)
	}
	token, ok := h.notifier.data[0]["decision_token"].(string)
	if !ok || token == "" {
		t.Fatal("notification must carry a decision token")
	}

	offerID, holderID, err := h.svc.tokens.ParseDecisionToken(token)
	if err != nil {
		t.Fatalf("ParseDecisionToken: %v", err)
	}
	if offerID != offer.ID || holderID != h.holder.ID {
		t.Error("decision token must bind the offer to the current holder")
	}
}

func TestSubmitOfferBelowFloor(t *testing.T) {
	h := newHarness(t)

	req := h.submitRequest()
	req.AmountCents = 50

	_, err := h.svc.SubmitOffer(context.Background(), req)
	if !errors.Is(err, apperrors.ErrInvalidAmount) {
		t.Errorf("got %v, want ErrInvalidAmount", err)
	}
}

func TestSubmitOfferBookingNotActive(t *testing.T) {
	h := newHarness(t)
	h.booking.Status = bookings.StatusExpired

	_, err := h.svc.SubmitOffer(context.Background(), h.submitRequest())
	if !errors.Is(err, apperrors.ErrBookingNotActive) {
		t.Errorf("got %v, want ErrBookingNotActive", err)
	}
}

func TestSubmitOfferSlotMismatch(t *testing.T) {
	h := newHarness(t)

	req := h.submitRequest()
	req.X, req.Y = 3, 4

	_, err := h.svc.SubmitOffer(context.Background(), req)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestSubmitOfferDuplicateBuyer(t *testing.T) {
	h := newHarness(t)

	if _, err := h.svc.SubmitOffer(context.Background(), h.submitRequest()); err != nil {
		t.Fatalf("first SubmitOffer: %v", err)
	}

	_, err := h.svc.SubmitOffer(context.Background(), h.submitRequest())
	if !errors.Is(err, apperrors.ErrDuplicateOffer) {
		t.Errorf("got %v, want ErrDuplicateOffer", err)
	}
}

func TestResolveOfferReject(t *testing.T) {
	h := newHarness(t)

	offer, err := h.svc.SubmitOffer(context.Background(), h.submitRequest())
	if err != nil {
		t.Fatalf("SubmitOffer: %v", err)
	}

	resolved, err := h.svc.ResolveOffer(context.Background(), offer.ID, "reject", h.holder.ID)
	if err != nil {
		t.Fatalf("ResolveOffer: %v", err)
	}
	if resolved.Status != StatusRejected {
		t.Errorf("status: got %s, want %s", resolved.Status, StatusRejected)
	}
	if len(h.repo.acceptCalls) != 0 {
		t.Error("reject must not touch the booking")
	}
}

func TestResolveOfferAcceptRecordsSettlement(t *testing.T) {
	h := newHarness(t)

	offer, err := h.svc.SubmitOffer(context.Background(), h.submitRequest())
	if err != nil {
		t.Fatalf("SubmitOffer: %v", err)
	}

	resolved, err := h.svc.ResolveOffer(context.Background(), offer.ID, "accept", h.holder.ID)
	if err != nil {
		t.Fatalf("ResolveOffer: %v", err)
	}
	if resolved.Status != StatusAccepted {
		t.Errorf("status: got %s, want %s", resolved.Status, StatusAccepted)
	}

	// 10 remaining days at 10.00/day against a 20000 cent offer
	if resolved.HolderPayoutCents != 13000 {
		t.Errorf("holder payout: got %d, want 13000", resolved.HolderPayoutCents)
	}
	if resolved.CommissionCents != 4000 {
		t.Errorf("commission: got %d, want 4000", resolved.CommissionCents)
	}

	if len(h.repo.acceptCalls) != 1 {
		t.Fatalf("expected one accept transaction, got %d", len(h.repo.acceptCalls))
	}
	params := h.repo.acceptCalls[0]
	buyer, _ := h.holders.ResolveOrCreate(context.Background(), "Eager Buyer", "buyer@example.com")
	if params.NewHolderID != buyer.ID {
		t.Error("accept must transfer the booking to the buyer's holder record")
	}
	if params.DisplayName != "New Creative" {
		t.Errorf("accept must carry the replacement creative, got %q", params.DisplayName)
	}
}

func TestResolveOfferAcceptCancelsCompetingOffers(t *testing.T) {
	h := newHarness(t)

	first, err := h.svc.SubmitOffer(context.Background(), h.submitRequest())
	if err != nil {
		t.Fatalf("first SubmitOffer: %v", err)
	}

	second := h.submitRequest()
	second.BuyerEmail = "rival@example.com"
	rival, err := h.svc.SubmitOffer(context.Background(), second)
	if err != nil {
		t.Fatalf("second SubmitOffer: %v", err)
	}

	if _, err := h.svc.ResolveOffer(context.Background(), first.ID, "accept", h.holder.ID); err != nil {
		t.Fatalf("ResolveOffer: %v", err)
	}

	cancelled, err := h.repo.GetOfferByID(context.Background(), rival.ID)
	if err != nil {
		t.Fatalf("GetOfferByID: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("competing offer: got %s, want %s", cancelled.Status, StatusCancelled)
	}
}

func TestResolveOfferWrongHolder(t *testing.T) {
	h := newHarness(t)

	offer, err := h.svc.SubmitOffer(context.Background(), h.submitRequest())
	if err != nil {
		t.Fatalf("SubmitOffer: %v", err)
	}

	stranger := h.holders.add("Stranger", "stranger@example.com")
	_, err = h.svc.ResolveOffer(context.Background(), offer.ID, "accept", stranger.ID)
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestResolveOfferOperatorBypassesOwnership(t *testing.T) {
	h := newHarness(t)

	offer, err := h.svc.SubmitOffer(context.Background(), h.submitRequest())
	if err != nil {
		t.Fatalf("SubmitOffer: %v", err)
	}

	resolved, err := h.svc.ResolveOffer(context.Background(), offer.ID, "reject", uuid.Nil)
	if err != nil {
		t.Fatalf("operator ResolveOffer: %v", err)
	}
	if resolved.Status != StatusRejected {
		t.Errorf("status: got %s, want %s", resolved.Status, StatusRejected)
	}
}

func TestResolveOfferTwice(t *testing.T) {
	h := newHarness(t)

	offer, err := h.svc.SubmitOffer(context.Background(), h.submitRequest())
	if err != nil {
		t.Fatalf("SubmitOffer: %v", err)
	}

	if _, err := h.svc.ResolveOffer(context.Background(), offer.ID, "reject", h.holder.ID); err != nil {
		t.Fatalf("first ResolveOffer: %v", err)
	}

	_, err = h.svc.ResolveOffer(context.Background(), offer.ID, "accept", h.holder.ID)
	if !errors.Is(err, apperrors.ErrAlreadyResolved) {
		t.Errorf("got %v, want ErrAlreadyResolved", err)
	}
}

func TestResolveOfferAfterDeadline(t *testing.T) {
	h := newHarness(t)

	offer, err := h.svc.SubmitOffer(context.Background(), h.submitRequest())
	if err != nil {
		t.Fatalf("SubmitOffer: %v", err)
	}

	h.svc.now = func() time.Time { return h.now.Add(73 * time.Hour) }

	_, err = h.svc.ResolveOffer(context.Background(), offer.ID, "accept", h.holder.ID)
	if !errors.Is(err, apperrors.ErrAlreadyResolved) {
		t.Errorf("got %v, want ErrAlreadyResolved", err)
	}
}

func TestResolveOfferAtExactDeadline(t *testing.T) {
	h := newHarness(t)

	offer, err := h.svc.SubmitOffer(context.Background(), h.submitRequest())
	if err != nil {
		t.Fatalf("SubmitOffer: %v", err)
	}

	// The decision window is open through expires_at itself
	h.svc.now = func() time.Time { return offer.ExpiresAt }

	resolved, err := h.svc.ResolveOffer(context.Background(), offer.ID, "reject", h.holder.ID)
	if err != nil {
		t.Fatalf("ResolveOffer at the deadline instant: %v", err)
	}
	if resolved.Status != StatusRejected {
		t.Errorf("status: got %s, want %s", resolved.Status, StatusRejected)
	}
}

func TestResolveOfferAcceptOnRetiredBooking(t *testing.T) {
	h := newHarness(t)

	offer, err := h.svc.SubmitOffer(context.Background(), h.submitRequest())
	if err != nil {
		t.Fatalf("SubmitOffer: %v", err)
	}

	h.booking.Status = bookings.StatusExpired

	_, err = h.svc.ResolveOffer(context.Background(), offer.ID, "accept", h.holder.ID)
	if !errors.Is(err, apperrors.ErrBookingNotActive) {
		t.Errorf("got %v, want ErrBookingNotActive", err)
	}
}
