package offers

import (
	"time"

	"github.com/google/uuid"
)

// BuyoutOffer is a third party's proposal to take over an active booking's
// slot before its natural expiration. The holder has until expires_at (72h
// from creation) to accept or reject; inaction is a valid terminal path
// resolved by the sweeper with no funds moved.
type BuyoutOffer struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SlotX     int       `gorm:"not null;index:idx_buyout_offers_slot" json:"slot_x"`
	SlotY     int       `gorm:"not null;index:idx_buyout_offers_slot" json:"slot_y"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`

	BuyerName  string `gorm:"type:varchar(100);not null" json:"buyer_name"`
	BuyerEmail string `gorm:"type:varchar(255);not null;index" json:"buyer_email"`

	AmountCents int64  `gorm:"not null" json:"amount_cents"`
	Message     string `gorm:"type:varchar(500)" json:"message,omitempty"`

	// Replacement creative applied to the booking if the offer is accepted
	DisplayName string `gorm:"type:varchar(100)" json:"display_name,omitempty"`
	TargetURL   string `json:"target_url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`

	Status    Status    `gorm:"type:varchar(20);check:status IN ('PENDING', 'ACCEPTED', 'REJECTED', 'EXPIRED', 'CANCELLED');default:'PENDING'" json:"status"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	// Settlement splits recorded on acceptance; no money moves here
	HolderPayoutCents int64 `json:"holder_payout_cents,omitempty"`
	CommissionCents   int64 `json:"commission_cents,omitempty"`

	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName sets the table name for BuyoutOffer
func (BuyoutOffer) TableName() string {
	return "buyout_offers"
}

// IsPending reports whether the offer still awaits a decision
func (o *BuyoutOffer) IsPending() bool {
	return o.Status == StatusPending
}

// DeadlinePassed reports whether the decision window has closed. The window
// is open through expires_at itself; a decision at the exact instant counts.
func (o *BuyoutOffer) DeadlinePassed(now time.Time) bool {
	return o.ExpiresAt.Before(now)
}

// Settlement holds the fund-split computation recorded on acceptance
type Settlement struct {
	ResidualValueCents int64 `json:"residual_value_cents"`
	HolderPayoutCents  int64 `json:"holder_payout_cents"`
	CommissionCents    int64 `json:"commission_cents"`
	BuyerChargedCents  int64 `json:"buyer_charged_cents"`
}
