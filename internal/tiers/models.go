package tiers

import (
	"time"
)

// TierConfig is the operator-mutable row per tier: price and whether the tier
// is open for new reservations. Reservation reads it fresh on every attempt
// so availability flips take effect immediately.
type TierConfig struct {
	Tier        Tier      `gorm:"type:varchar(20);primaryKey" json:"tier"`
	Available   bool      `gorm:"not null;default:true" json:"available"`
	PricePerDay float64   `gorm:"not null" json:"price_per_day"`
	UpdatedBy   string    `gorm:"type:varchar(100)" json:"updated_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the table name for TierConfig
func (TierConfig) TableName() string {
	return "tier_configs"
}

// DefaultConfigs returns the seed rows. Prices are seed data, not code
// constants; operators change them in place afterwards.
func DefaultConfigs() []TierConfig {
	return []TierConfig{
		{Tier: TierOne, Available: true, PricePerDay: 500},
		{Tier: TierTen, Available: true, PricePerDay: 100},
		{Tier: TierCornerTen, Available: true, PricePerDay: 150},
		{Tier: TierHundred, Available: true, PricePerDay: 25},
		{Tier: TierViral, Available: true, PricePerDay: 5},
	}
}

// SlotInfo is the public projection of a slot's tier metadata
type SlotInfo struct {
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Tier        Tier    `json:"tier"`
	PricePerDay float64 `json:"price_per_day"`
	Available   bool    `json:"available"`
}
