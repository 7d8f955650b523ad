package offers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gridspot/internal/bookings"
	"gridspot/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OfferListQuery filters the operator read endpoints
type OfferListQuery struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// AcceptParams carries everything the acceptance transaction needs
type AcceptParams struct {
	OfferID     uuid.UUID
	BookingID   uuid.UUID
	SlotX       int
	SlotY       int
	NewHolderID uuid.UUID

	HolderPayoutCents int64
	CommissionCents   int64

	// Replacement creative for the transferred booking
	DisplayName string
	TargetURL   string
	ImageURL    string
}

type Repository interface {
	CreateOffer(ctx context.Context, offer *BuyoutOffer) error
	GetOfferByID(ctx context.Context, id uuid.UUID) (*BuyoutOffer, error)
	HasPendingOffer(ctx context.Context, x, y int, buyerEmail string, now time.Time) (bool, error)

	// RejectOffer is a conditional PENDING -> REJECTED transition
	RejectOffer(ctx context.Context, id uuid.UUID) (int64, error)

	// AcceptOffer runs the acceptance atomically: offer PENDING -> ACCEPTED
	// with recorded splits, cascade-cancel of the slot's other pending
	// offers, and holder/creative transfer on the still-active booking.
	AcceptOffer(ctx context.Context, params AcceptParams) error

	ListOffers(ctx context.Context, query OfferListQuery) ([]BuyoutOffer, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOffer(ctx context.Context, offer *BuyoutOffer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *repository) GetOfferByID(ctx context.Context, id uuid.UUID) (*BuyoutOffer, error) {
	var offer BuyoutOffer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("offer %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &offer, nil
}

func (r *repository) HasPendingOffer(ctx context.Context, x, y int, buyerEmail string, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&BuyoutOffer{}).
		Where("slot_x = ? AND slot_y = ?", x, y).
		Where("buyer_email = ?", buyerEmail).
		Where("status = ?", StatusPending).
		Where("expires_at > ?", now).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) RejectOffer(ctx context.Context, id uuid.UUID) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&BuyoutOffer{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]interface{}{
			"status":      StatusRejected,
			"resolved_at": now,
			"updated_at":  now,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) AcceptOffer(ctx context.Context, params AcceptParams) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// 1. Claim the offer. The status guard serializes concurrent
		// resolutions and the sweeper's expiry of the same offer.
		result := tx.Model(&BuyoutOffer{}).
			Where("id = ? AND status = ?", params.OfferID, StatusPending).
			Updates(map[string]interface{}{
				"status":              StatusAccepted,
				"holder_payout_cents": params.HolderPayoutCents,
				"commission_cents":    params.CommissionCents,
				"resolved_at":         now,
				"updated_at":          now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("offer %s: %w", params.OfferID, apperrors.ErrAlreadyResolved)
		}

		// 2. Cascade: every other pending offer on this slot is cancelled
		err := tx.Model(&BuyoutOffer{}).
			Where("slot_x = ? AND slot_y = ?", params.SlotX, params.SlotY).
			Where("id <> ? AND status = ?", params.OfferID, StatusPending).
			Updates(map[string]interface{}{
				"status":      StatusCancelled,
				"resolved_at": now,
				"updated_at":  now,
			}).Error
		if err != nil {
			return err
		}

		// 3. Transfer the slot: the buyer inherits the remaining term, so
		// only holder and creative change. The ACTIVE guard makes a race
		// against the expiry sweep roll the whole acceptance back.
		bookingUpdates := map[string]interface{}{
			"holder_id":  params.NewHolderID,
			"updated_at": now,
		}
		if params.DisplayName != "" {
			bookingUpdates["display_name"] = params.DisplayName
		}
		if params.TargetURL != "" {
			bookingUpdates["target_url"] = params.TargetURL
		}
		if params.ImageURL != "" {
			bookingUpdates["image_url"] = params.ImageURL
		}

		result = tx.Model(&bookings.Booking{}).
			Where("id = ? AND status = ?", params.BookingID, bookings.StatusActive).
			Updates(bookingUpdates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("booking %s no longer active: %w", params.BookingID, apperrors.ErrAlreadyResolved)
		}

		return nil
	})
}

func (r *repository) ListOffers(ctx context.Context, query OfferListQuery) ([]BuyoutOffer, int64, error) {
	var offers []BuyoutOffer
	var totalCount int64

	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	baseQuery := r.db.WithContext(ctx).Model(&BuyoutOffer{})
	if query.Status != "" {
		baseQuery = baseQuery.Where("status = ?", query.Status)
	}
	if query.Search != "" {
		like := "%" + query.Search + "%"
		baseQuery = baseQuery.Where("buyer_name ILIKE ? OR buyer_email ILIKE ?", like, like)
	}

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&offers).Error

	return offers, totalCount, err
}
