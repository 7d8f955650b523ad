package database

import (
	"gridspot/internal/admin"
	"gridspot/internal/bookings"
	"gridspot/internal/holders"
	"gridspot/internal/offers"
	"gridspot/internal/tiers"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&holders.Holder{},
		&tiers.TierConfig{},
		&bookings.Booking{},
		&offers.BuyoutOffer{},
		&admin.AuditLogEntry{},
	)
}
