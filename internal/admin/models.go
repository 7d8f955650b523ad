package admin

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogEntry is one append-only record of a privileged mutation on the
// operator channel. Entries are never updated or deleted.
type AuditLogEntry struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Actor      string `gorm:"type:varchar(100);not null;index" json:"actor"`
	Action     string `gorm:"type:varchar(50);not null;index" json:"action"`
	TargetType string `gorm:"type:varchar(30);not null" json:"target_type"`
	TargetID   string `gorm:"type:varchar(64);not null;index" json:"target_id"`

	// Free-form JSON describing the mutation (reason, old/new values)
	Detail string `gorm:"type:jsonb;default:'{}'" json:"detail"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for AuditLogEntry
func (AuditLogEntry) TableName() string {
	return "operator_audit_log"
}

// Override actions recorded in the audit log
const (
	ActionCancelBooking       = "CANCEL_BOOKING"
	ActionForceActivate       = "FORCE_ACTIVATE"
	ActionExtendBooking       = "EXTEND_BOOKING"
	ActionResolveOffer        = "RESOLVE_OFFER"
	ActionSetTierAvailability = "SET_TIER_AVAILABILITY"
	ActionSetTierPrice        = "SET_TIER_PRICE"
)

// Target types recorded in the audit log
const (
	TargetBooking = "booking"
	TargetOffer   = "offer"
	TargetTier    = "tier"
)
