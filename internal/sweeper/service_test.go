package sweeper

import (
	"context"
	"testing"
	"time"

	"gridspot/internal/bookings"
	"gridspot/internal/holders"
	"gridspot/internal/notifications"
	"gridspot/internal/shared/apperrors"
	"gridspot/internal/shared/config"

	"github.com/google/uuid"
)

// fakeSweepRepo mirrors the conditional bulk updates in memory
type fakeSweepRepo struct {
	bookings map[uuid.UUID]*bookings.Booking
	offers   map[uuid.UUID]*offerRow
}

type offerRow struct {
	status    string
	expiresAt time.Time
}

func newFakeSweepRepo() *fakeSweepRepo {
	return &fakeSweepRepo{
		bookings: map[uuid.UUID]*bookings.Booking{},
		offers:   map[uuid.UUID]*offerRow{},
	}
}

func (f *fakeSweepRepo) ExpireDueBookings(_ context.Context, now time.Time) (int64, error) {
	var affected int64
	for _, b := range f.bookings {
		if b.Status == bookings.StatusActive && b.DeadlinePassed(now) {
			b.Status = bookings.StatusExpired
			affected++
		}
	}
	return affected, nil
}

func (f *fakeSweepRepo) ExpireDueOffers(_ context.Context, now time.Time) (int64, error) {
	var affected int64
	for _, o := range f.offers {
		if o.status == "PENDING" && o.expiresAt.Before(now) {
			o.status = "EXPIRED"
			affected++
		}
	}
	return affected, nil
}

func (f *fakeSweepRepo) FindReminderDue(_ context.Context, now time.Time, window time.Duration) ([]bookings.Booking, error) {
	var due []bookings.Booking
	horizon := now.Add(window)
	for _, b := range f.bookings {
		if b.Status != bookings.StatusActive || b.ReminderSent {
			continue
		}
		if !b.DeadlinePassed(now) && b.DeadlinePassed(horizon) {
			due = append(due, *b)
		}
	}
	return due, nil
}

func (f *fakeSweepRepo) MarkReminderSent(_ context.Context, id uuid.UUID) (int64, error) {
	b, ok := f.bookings[id]
	if !ok || b.ReminderSent {
		return 0, nil
	}
	b.ReminderSent = true
	return 1, nil
}

func (f *fakeSweepRepo) FindExpiryNoticeDue(_ context.Context) ([]bookings.Booking, error) {
	var due []bookings.Booking
	for _, b := range f.bookings {
		if b.Status == bookings.StatusExpired && !b.ExpiryNotified {
			due = append(due, *b)
		}
	}
	return due, nil
}

func (f *fakeSweepRepo) MarkExpiryNotified(_ context.Context, id uuid.UUID) (int64, error) {
	b, ok := f.bookings[id]
	if !ok || b.ExpiryNotified {
		return 0, nil
	}
	b.ExpiryNotified = true
	return 1, nil
}

type fakeHolderEmails struct{}

func (fakeHolderEmails) GetByID(_ context.Context, id uuid.UUID) (*holders.Holder, error) {
	if id == uuid.Nil {
		return nil, apperrors.ErrNotFound
	}
	return &holders.Holder{ID: id, Email: "holder@example.com"}, nil
}

type countingNotifier struct {
	byKind map[notifications.Kind]int
}

func (c *countingNotifier) Notify(_ context.Context, kind notifications.Kind, _ string, _ map[string]interface{}) error {
	if c.byKind == nil {
		c.byKind = map[notifications.Kind]int{}
	}
	c.byKind[kind]++
	return nil
}

func newSweepService(repo *fakeSweepRepo, notifier *countingNotifier, now time.Time) *service {
	cfg := config.SweeperConfig{
		SweepInterval:    time.Minute,
		ReminderInterval: time.Minute,
		ReminderWindow:   72 * time.Hour,
	}
	svc := NewService(repo, fakeHolderEmails{}, notifier, nil, cfg).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func activeBooking(now time.Time, endInDays int) *bookings.Booking {
	return &bookings.Booking{
		ID:       uuid.New(),
		HolderID: uuid.New(),
		Status:   bookings.StatusActive,
		EndDate:  bookings.DateOnly(now).AddDate(0, 0, endInDays),
	}
}

func TestSweepExpiredBookings(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeSweepRepo()

	overdue := activeBooking(now, -1)
	alive := activeBooking(now, 5)
	repo.bookings[overdue.ID] = overdue
	repo.bookings[alive.ID] = alive

	svc := newSweepService(repo, &countingNotifier{}, now)

	affected, err := svc.SweepExpiredBookings(context.Background())
	if err != nil {
		t.Fatalf("SweepExpiredBookings: %v", err)
	}
	if affected != 1 {
		t.Errorf("affected: got %d, want 1", affected)
	}
	if overdue.Status != bookings.StatusExpired {
		t.Error("overdue booking must be expired")
	}
	if alive.Status != bookings.StatusActive {
		t.Error("live booking must be untouched")
	}
}

func TestSweepExpiredBookingsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeSweepRepo()
	overdue := activeBooking(now, -1)
	repo.bookings[overdue.ID] = overdue

	svc := newSweepService(repo, &countingNotifier{}, now)

	if _, err := svc.SweepExpiredBookings(context.Background()); err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	affected, err := svc.SweepExpiredBookings(context.Background())
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if affected != 0 {
		t.Errorf("second sweep affected %d rows, want 0", affected)
	}
}

func TestSweepHonorsExpiresAtOverEndDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeSweepRepo()

	// end_date passed but expires_at keeps it alive
	future := now.Add(6 * time.Hour)
	graced := activeBooking(now, -1)
	graced.ExpiresAt = &future
	repo.bookings[graced.ID] = graced

	svc := newSweepService(repo, &countingNotifier{}, now)

	affected, err := svc.SweepExpiredBookings(context.Background())
	if err != nil {
		t.Fatalf("SweepExpiredBookings: %v", err)
	}
	if affected != 0 {
		t.Errorf("affected: got %d, want 0", affected)
	}
	if graced.Status != bookings.StatusActive {
		t.Error("booking with a future expires_at must stay active")
	}
}

func TestSweepExpiredOffers(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeSweepRepo()

	lapsed := uuid.New()
	pending := uuid.New()
	atDeadline := uuid.New()
	repo.offers[lapsed] = &offerRow{status: "PENDING", expiresAt: now.Add(-time.Hour)}
	repo.offers[pending] = &offerRow{status: "PENDING", expiresAt: now.Add(time.Hour)}
	repo.offers[atDeadline] = &offerRow{status: "PENDING", expiresAt: now}

	svc := newSweepService(repo, &countingNotifier{}, now)

	affected, err := svc.SweepExpiredOffers(context.Background())
	if err != nil {
		t.Fatalf("SweepExpiredOffers: %v", err)
	}
	if affected != 1 {
		t.Errorf("affected: got %d, want 1", affected)
	}
	if repo.offers[lapsed].status != "EXPIRED" {
		t.Error("lapsed offer must be expired")
	}
	if repo.offers[pending].status != "PENDING" {
		t.Error("offer inside its window must be untouched")
	}
	if repo.offers[atDeadline].status != "PENDING" {
		t.Error("the window is open through expires_at itself")
	}
}

func TestSendExpiryRemindersAtMostOnce(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeSweepRepo()

	soon := activeBooking(now, 2) // inside the 72h window
	far := activeBooking(now, 30)
	repo.bookings[soon.ID] = soon
	repo.bookings[far.ID] = far

	notifier := &countingNotifier{}
	svc := newSweepService(repo, notifier, now)

	sent, err := svc.SendExpiryReminders(context.Background())
	if err != nil {
		t.Fatalf("SendExpiryReminders: %v", err)
	}
	if sent != 1 {
		t.Errorf("sent: got %d, want 1", sent)
	}
	if !soon.ReminderSent {
		t.Error("reminder mark must be set")
	}

	// Second pass finds nothing new
	sent, err = svc.SendExpiryReminders(context.Background())
	if err != nil {
		t.Fatalf("second SendExpiryReminders: %v", err)
	}
	if sent != 0 {
		t.Errorf("second pass sent %d, want 0", sent)
	}
	if notifier.byKind[notifications.KindExpiryReminder] != 1 {
		t.Errorf("reminder notifications: got %d, want 1", notifier.byKind[notifications.KindExpiryReminder])
	}
}

func TestSendExpiryNoticesAtMostOnce(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeSweepRepo()

	expired := activeBooking(now, -1)
	expired.Status = bookings.StatusExpired
	repo.bookings[expired.ID] = expired

	notifier := &countingNotifier{}
	svc := newSweepService(repo, notifier, now)

	for i := 0; i < 2; i++ {
		if _, err := svc.SendExpiryNotices(context.Background()); err != nil {
			t.Fatalf("SendExpiryNotices: %v", err)
		}
	}
	if notifier.byKind[notifications.KindExpiryNotice] != 1 {
		t.Errorf("expiry notices: got %d, want 1", notifier.byKind[notifications.KindExpiryNotice])
	}
}
