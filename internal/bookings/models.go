package bookings

import (
	"time"

	"gridspot/internal/tiers"

	"github.com/google/uuid"
)

// Booking is the time-boxed occupancy right over one slot.
//
// end_date is date-granular; expires_at is a later, second-granular addition
// and supersedes end_date whenever it is set. Both eras of bookings remain
// valid, so every expiry decision checks expires_at first.
type Booking struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SlotX    int        `gorm:"not null;index:idx_bookings_slot" json:"slot_x"`
	SlotY    int        `gorm:"not null;index:idx_bookings_slot" json:"slot_y"`
	Tier     tiers.Tier `gorm:"type:varchar(20);not null" json:"tier"`
	HolderID uuid.UUID  `gorm:"type:uuid;index;not null" json:"holder_id"`
	Status   Status     `gorm:"type:varchar(20);check:status IN ('PENDING', 'ACTIVE', 'EXPIRED', 'CANCELLED');default:'PENDING'" json:"status"`

	StartDate time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time  `gorm:"type:date;not null" json:"end_date"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	AmountCents int64 `gorm:"not null" json:"amount_cents"`

	// External payment references; never exposed on the public surface
	CheckoutSessionID string `gorm:"index" json:"-"`
	ChargeID          string `gorm:"index" json:"-"`

	// Creative content, opaque to the lifecycle engine
	DisplayName string `gorm:"type:varchar(100)" json:"display_name"`
	TargetURL   string `json:"target_url"`
	ImageURL    string `json:"image_url,omitempty"`
	Boosted     bool   `gorm:"default:false" json:"boosted"`

	// At-most-once markers for the reminder/notice passes
	ReminderSent   bool `gorm:"default:false" json:"-"`
	ExpiryNotified bool `gorm:"default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// IsActive reports whether the booking currently occupies its slot for real
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// DeadlinePassed applies the dual-era expiry rule: expires_at governs when
// present, otherwise the date-granular end_date does.
func (b *Booking) DeadlinePassed(now time.Time) bool {
	if b.ExpiresAt != nil {
		return !b.ExpiresAt.After(now)
	}
	return !b.EndDate.After(DateOnly(now))
}

// RemainingDays returns the unconsumed whole days until end_date, floored at
// zero. Used for buyout settlement.
func (b *Booking) RemainingDays(now time.Time) int {
	days := int(b.EndDate.Sub(DateOnly(now)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// DateOnly truncates a timestamp to its UTC calendar date
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PublicBooking is the public-safe projection: no holder contact, no payment
// references.
type PublicBooking struct {
	ID          uuid.UUID  `json:"id"`
	SlotX       int        `json:"slot_x"`
	SlotY       int        `json:"slot_y"`
	Tier        tiers.Tier `json:"tier"`
	Status      Status     `json:"status"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	DisplayName string     `json:"display_name"`
	TargetURL   string     `json:"target_url"`
	ImageURL    string     `json:"image_url,omitempty"`
	Boosted     bool       `json:"boosted"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToPublic converts a Booking to its public projection
func (b *Booking) ToPublic() PublicBooking {
	return PublicBooking{
		ID:          b.ID,
		SlotX:       b.SlotX,
		SlotY:       b.SlotY,
		Tier:        b.Tier,
		Status:      b.Status,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		DisplayName: b.DisplayName,
		TargetURL:   b.TargetURL,
		ImageURL:    b.ImageURL,
		Boosted:     b.Boosted,
		CreatedAt:   b.CreatedAt,
	}
}
