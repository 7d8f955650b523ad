package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gridspot/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingListQuery filters the operator read endpoints
type BookingListQuery struct {
	Status string
	Tier   string
	Search string
	Page   int
	Limit  int
}

type Repository interface {
	// Core booking operations
	CreateBooking(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetBookingBySession(ctx context.Context, sessionRef string) (*Booking, error)

	// Overlap check for reservation
	FindOverlapping(ctx context.Context, x, y int, start, end time.Time) ([]Booking, error)

	// Conditional transitions; the WHERE predicate includes the expected
	// current status so duplicate deliveries match zero rows.
	ActivateBySession(ctx context.Context, sessionRef, chargeRef string) (int64, error)
	CancelBySession(ctx context.Context, sessionRef string) (int64, error)
	CancelByCharge(ctx context.Context, chargeRef string) (int64, error)

	// Existence probes to tell NotFound apart from already-transitioned
	SessionExists(ctx context.Context, sessionRef string) (bool, error)
	ChargeExists(ctx context.Context, chargeRef string) (bool, error)

	// Query surface
	ListActiveAt(ctx context.Context, at time.Time) ([]Booking, error)
	ListBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, booking *Booking) error {
	err := r.db.WithContext(ctx).Create(booking).Error
	if err != nil {
		// The exclusion constraint on (slot, daterange) backstops the
		// overlap pre-check under concurrency.
		if isExclusionViolation(err) {
			return fmt.Errorf("slot (%d,%d): %w", booking.SlotX, booking.SlotY, apperrors.ErrSlotConflict)
		}
		return err
	}
	return nil
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetBookingBySession(ctx context.Context, sessionRef string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("checkout_session_id = ?", sessionRef).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session %s: %w", sessionRef, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) FindOverlapping(ctx context.Context, x, y int, start, end time.Time) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("slot_x = ? AND slot_y = ?", x, y).
		Where("status IN ?", []Status{StatusPending, StatusActive}).
		Where("start_date < ? AND end_date > ?", end, start).
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) ActivateBySession(ctx context.Context, sessionRef, chargeRef string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("checkout_session_id = ? AND status = ?", sessionRef, StatusPending).
		Updates(map[string]interface{}{
			"status":     StatusActive,
			"charge_id":  chargeRef,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *repository) CancelBySession(ctx context.Context, sessionRef string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("checkout_session_id = ? AND status = ?", sessionRef, StatusPending).
		Updates(map[string]interface{}{
			"status":     StatusCancelled,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *repository) CancelByCharge(ctx context.Context, chargeRef string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("charge_id = ? AND status = ?", chargeRef, StatusActive).
		Updates(map[string]interface{}{
			"status":     StatusCancelled,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *repository) SessionExists(ctx context.Context, sessionRef string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("checkout_session_id = ?", sessionRef).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ChargeExists(ctx context.Context, chargeRef string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("charge_id = ?", chargeRef).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListActiveAt(ctx context.Context, at time.Time) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusActive).
		Where("start_date <= ? AND end_date > ?", DateOnly(at), DateOnly(at)).
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) ListBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	baseQuery := r.db.WithContext(ctx).Model(&Booking{})
	baseQuery = r.applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

// applyFilters applies query filters to the GORM query
func (r *repository) applyFilters(query *gorm.DB, filters BookingListQuery) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.Tier != "" {
		query = query.Where("tier = ?", filters.Tier)
	}

	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("display_name ILIKE ? OR target_url ILIKE ?", like, like)
	}

	return query
}

// isExclusionViolation matches the Postgres exclusion_violation SQLSTATE 23P01
func isExclusionViolation(err error) bool {
	type sqlState interface {
		SQLState() string
	}
	var state sqlState
	if errors.As(err, &state) {
		return state.SQLState() == "23P01"
	}
	return false
}

// CalculateTotalPages is a helper for paginated responses
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
