package sweeper

import (
	"context"
	"time"

	"gridspot/internal/bookings"
	"gridspot/internal/holders"
	"gridspot/internal/notifications"
	"gridspot/internal/shared/config"
	"gridspot/pkg/logger"

	"github.com/google/uuid"
)

// HolderEmails resolves holder contact addresses for the notification passes
type HolderEmails interface {
	GetByID(ctx context.Context, id uuid.UUID) (*holders.Holder, error)
}

// Service interface defines the periodic maintenance passes. All passes are
// idempotent: running any of them twice in a row changes nothing the second
// time.
type Service interface {
	SweepExpiredBookings(ctx context.Context) (int64, error)
	SweepExpiredOffers(ctx context.Context) (int64, error)
	SendExpiryReminders(ctx context.Context) (int64, error)
	SendExpiryNotices(ctx context.Context) (int64, error)
}

type service struct {
	repo         Repository
	holderEmails HolderEmails
	notifier     notifications.Notifier
	cache        bookings.GridCache

	reminderWindow time.Duration

	now func() time.Time
}

// NewService creates a new sweeper service instance. cache and notifier may
// be nil; the sweeps themselves never depend on them.
func NewService(repo Repository, holderEmails HolderEmails, notifier notifications.Notifier, cache bookings.GridCache, cfg config.SweeperConfig) Service {
	return &service{
		repo:           repo,
		holderEmails:   holderEmails,
		notifier:       notifier,
		cache:          cache,
		reminderWindow: cfg.ReminderWindow,
		now:            time.Now,
	}
}

// SweepExpiredBookings retires every booking past its deadline in one
// conditional bulk update
func (s *service) SweepExpiredBookings(ctx context.Context) (int64, error) {
	affected, err := s.repo.ExpireDueBookings(ctx, s.now())
	if err != nil {
		return 0, err
	}

	if affected > 0 {
		logger.GetDefault().LogSweepResult(ctx, "bookings", affected)
		if s.cache != nil {
			s.cache.Invalidate(ctx)
		}
	}
	return affected, nil
}

// SweepExpiredOffers closes offers whose 72h decision window lapsed without
// a holder decision. No funds move on this path.
func (s *service) SweepExpiredOffers(ctx context.Context) (int64, error) {
	affected, err := s.repo.ExpireDueOffers(ctx, s.now())
	if err != nil {
		return 0, err
	}

	if affected > 0 {
		logger.GetDefault().LogSweepResult(ctx, "offers", affected)
	}
	return affected, nil
}

// SendExpiryReminders notifies holders whose term ends within the reminder
// window. The reminder_sent mark is claimed before sending, so a holder gets
// at most one reminder even across overlapping sweep runs.
func (s *service) SendExpiryReminders(ctx context.Context) (int64, error) {
	due, err := s.repo.FindReminderDue(ctx, s.now(), s.reminderWindow)
	if err != nil {
		return 0, err
	}

	var sent int64
	for i := range due {
		booking := &due[i]

		rows, err := s.repo.MarkReminderSent(ctx, booking.ID)
		if err != nil {
			return sent, err
		}
		if rows == 0 {
			// Another sweep run claimed it first
			continue
		}

		s.notifyHolder(ctx, booking, notifications.KindExpiryReminder)
		sent++
	}
	return sent, nil
}

// SendExpiryNotices notifies holders whose booking was retired by the
// expiration sweep
func (s *service) SendExpiryNotices(ctx context.Context) (int64, error) {
	due, err := s.repo.FindExpiryNoticeDue(ctx)
	if err != nil {
		return 0, err
	}

	var sent int64
	for i := range due {
		booking := &due[i]

		rows, err := s.repo.MarkExpiryNotified(ctx, booking.ID)
		if err != nil {
			return sent, err
		}
		if rows == 0 {
			continue
		}

		s.notifyHolder(ctx, booking, notifications.KindExpiryNotice)
		sent++
	}
	return sent, nil
}

func (s *service) notifyHolder(ctx context.Context, booking *bookings.Booking, kind notifications.Kind) {
	if s.notifier == nil {
		return
	}

	holder, err := s.holderEmails.GetByID(ctx, booking.HolderID)
	if err != nil {
		logger.GetDefault().LogNotificationFailure(ctx, string(kind), booking.HolderID.String(), err)
		return
	}

	err = s.notifier.Notify(ctx, kind, holder.Email, map[string]interface{}{
		"booking_id": booking.ID.String(),
		"slot_x":     booking.SlotX,
		"slot_y":     booking.SlotY,
		"end_date":   booking.EndDate.Format("2006-01-02"),
	})
	if err != nil {
		logger.GetDefault().LogNotificationFailure(ctx, string(kind), holder.Email, err)
	}
}
