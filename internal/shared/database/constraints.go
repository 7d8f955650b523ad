package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// btree_gist is required for the exclusion constraint below
	err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist;`).Error
	if err != nil {
		return err
	}

	// Reject two PENDING/ACTIVE bookings on the same slot with overlapping
	// [start_date, end_date) windows. The application performs the same check
	// before inserting; this closes the check-then-insert window.
	err = db.Exec(`
		DO $$ BEGIN
			ALTER TABLE bookings
			ADD CONSTRAINT excl_slot_window_overlap
			EXCLUDE USING gist (
				slot_x WITH =,
				slot_y WITH =,
				daterange(start_date::date, end_date::date) WITH &&
			) WHERE (status IN ('PENDING', 'ACTIVE'));
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	// Index for the overlap check and the public occupancy queries
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_slot_status
		ON bookings (slot_x, slot_y, status);
	`).Error
	if err != nil {
		return err
	}

	// Index for the expiry sweep predicate
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_active_expiry
		ON bookings (status, expires_at, end_date);
	`).Error
	if err != nil {
		return err
	}

	// Index for the offer expiry sweep
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_buyout_offers_status_expires
		ON buyout_offers (status, expires_at);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
