package sweeper

import (
	"context"
	"time"

	"gridspot/internal/bookings"
	"gridspot/internal/offers"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository performs the bulk conditional transitions the sweeps rely on.
// Every write is status-guarded so concurrent sweeps and the interactive
// paths cannot double-apply a transition.
type Repository interface {
	// ExpireDueBookings retires every ACTIVE booking past its deadline.
	// expires_at governs when present; older rows fall back to end_date.
	ExpireDueBookings(ctx context.Context, now time.Time) (int64, error)

	// ExpireDueOffers closes every PENDING offer whose decision window passed.
	// The window is open through expires_at itself, so the comparison is strict.
	ExpireDueOffers(ctx context.Context, now time.Time) (int64, error)

	FindReminderDue(ctx context.Context, now time.Time, window time.Duration) ([]bookings.Booking, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) (int64, error)

	FindExpiryNoticeDue(ctx context.Context) ([]bookings.Booking, error)
	MarkExpiryNotified(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ExpireDueBookings(ctx context.Context, now time.Time) (int64, error) {
	today := bookings.DateOnly(now)

	result := r.db.WithContext(ctx).
		Model(&bookings.Booking{}).
		Where("status = ?", bookings.StatusActive).
		Where("(expires_at IS NOT NULL AND expires_at <= ?) OR (expires_at IS NULL AND end_date <= ?)", now, today).
		Updates(map[string]interface{}{
			"status":     bookings.StatusExpired,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) ExpireDueOffers(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&offers.BuyoutOffer{}).
		Where("status = ?", offers.StatusPending).
		Where("expires_at < ?", now).
		Updates(map[string]interface{}{
			"status":      offers.StatusExpired,
			"resolved_at": now,
			"updated_at":  now,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) FindReminderDue(ctx context.Context, now time.Time, window time.Duration) ([]bookings.Booking, error) {
	horizon := now.Add(window)
	todayHorizon := bookings.DateOnly(horizon)
	today := bookings.DateOnly(now)

	var due []bookings.Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", bookings.StatusActive).
		Where("reminder_sent = ?", false).
		Where("(expires_at IS NOT NULL AND expires_at > ? AND expires_at <= ?) OR (expires_at IS NULL AND end_date > ? AND end_date <= ?)",
			now, horizon, today, todayHorizon).
		Find(&due).Error
	return due, err
}

func (r *repository) MarkReminderSent(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&bookings.Booking{}).
		Where("id = ? AND reminder_sent = ?", id, false).
		Update("reminder_sent", true)
	return result.RowsAffected, result.Error
}

func (r *repository) FindExpiryNoticeDue(ctx context.Context) ([]bookings.Booking, error) {
	var due []bookings.Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", bookings.StatusExpired).
		Where("expiry_notified = ?", false).
		Find(&due).Error
	return due, err
}

func (r *repository) MarkExpiryNotified(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&bookings.Booking{}).
		Where("id = ? AND expiry_notified = ?", id, false).
		Update("expiry_notified", true)
	return result.RowsAffected, result.Error
}
