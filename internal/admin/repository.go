package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gridspot/internal/bookings"
	"gridspot/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuditListQuery filters the audit log read endpoint
type AuditListQuery struct {
	Actor    string
	Action   string
	TargetID string
	Page     int
	Limit    int
}

// Repository couples each override mutation with its audit entry in one
// transaction: the mutation lands if and only if the audit record does.
type Repository interface {
	// CancelBooking forces any not-yet-cancelled booking to CANCELLED
	CancelBooking(ctx context.Context, bookingID uuid.UUID, entry *AuditLogEntry) error

	// ForceActivate flips a PENDING booking to ACTIVE without payment proof
	ForceActivate(ctx context.Context, bookingID uuid.UUID, entry *AuditLogEntry) error

	// ExtendBooking pushes an ACTIVE booking's deadline out by whole days
	ExtendBooking(ctx context.Context, bookingID uuid.UUID, days int, entry *AuditLogEntry) (*bookings.Booking, error)

	// AppendAudit records an override whose mutation ran elsewhere
	AppendAudit(ctx context.Context, entry *AuditLogEntry) error

	ListAudit(ctx context.Context, query AuditListQuery) ([]AuditLogEntry, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// An operator cancel reaches every status except CANCELLED itself, so the
// override lands even on bookings the sweeper already retired. A booking that
// is already CANCELLED stays put, keeping redelivered overrides no-ops.
var cancellableStatuses = []bookings.Status{
	bookings.StatusPending,
	bookings.StatusActive,
	bookings.StatusExpired,
}

func (r *repository) CancelBooking(ctx context.Context, bookingID uuid.UUID, entry *AuditLogEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&bookings.Booking{}).
			Where("id = ? AND status IN ?", bookingID, cancellableStatuses).
			Updates(map[string]interface{}{
				"status":     bookings.StatusCancelled,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("booking %s already cancelled: %w", bookingID, apperrors.ErrAlreadyResolved)
		}

		return tx.Create(entry).Error
	})
}

func (r *repository) ForceActivate(ctx context.Context, bookingID uuid.UUID, entry *AuditLogEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&bookings.Booking{}).
			Where("id = ? AND status = ?", bookingID, bookings.StatusPending).
			Updates(map[string]interface{}{
				"status":     bookings.StatusActive,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("booking %s not pending: %w", bookingID, apperrors.ErrAlreadyResolved)
		}

		return tx.Create(entry).Error
	})
}

func (r *repository) ExtendBooking(ctx context.Context, bookingID uuid.UUID, days int, entry *AuditLogEntry) (*bookings.Booking, error) {
	var extended bookings.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking bookings.Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", bookingID).First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("booking %s: %w", bookingID, apperrors.ErrNotFound)
			}
			return err
		}
		if !booking.IsActive() {
			return fmt.Errorf("booking %s is %s: %w", bookingID, booking.Status, apperrors.ErrBookingNotActive)
		}

		updates := map[string]interface{}{
			"end_date":   booking.EndDate.AddDate(0, 0, days),
			"updated_at": time.Now(),
		}
		if booking.ExpiresAt != nil {
			updates["expires_at"] = booking.ExpiresAt.AddDate(0, 0, days)
		}

		if err := tx.Model(&bookings.Booking{}).Where("id = ?", bookingID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", bookingID).First(&extended).Error
	})
	if err != nil {
		return nil, err
	}
	return &extended, nil
}

func (r *repository) AppendAudit(ctx context.Context, entry *AuditLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListAudit(ctx context.Context, query AuditListQuery) ([]AuditLogEntry, int64, error) {
	var entries []AuditLogEntry
	var totalCount int64

	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 50
	}

	baseQuery := r.db.WithContext(ctx).Model(&AuditLogEntry{})
	if query.Actor != "" {
		baseQuery = baseQuery.Where("actor = ?", query.Actor)
	}
	if query.Action != "" {
		baseQuery = baseQuery.Where("action = ?", query.Action)
	}
	if query.TargetID != "" {
		baseQuery = baseQuery.Where("target_id = ?", query.TargetID)
	}

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&entries).Error

	return entries, totalCount, err
}
