package repository

import (
	"fmt"

	"hotelsite/models"

	"gorm.io/gorm"
)

// bookingsNoOverlap backs the booking writer on postgres: occupying stays of one room
// may never intersect, whatever path wrote them.
const bookingsNoOverlap = `
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
		ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap EXCLUDE USING gist (
			room_id WITH =,
			daterange(check_in_date, check_out_date, '[)') WITH &&
		) WHERE (status IN ('pending', 'confirmed', 'checked_in'));
	END IF;
END $$;`

// Migrate creates or updates the rooms and bookings tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Room{}, &models.Booking{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}
	if err := db.Exec(bookingsNoOverlap).Error; err != nil {
		return fmt.Errorf("add bookings_no_overlap: %w", err)
	}
	return nil
}
