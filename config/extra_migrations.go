package config

import (
	"log"

	"gorm.io/gorm"
)

// BackfillLegacyRoomReferences resolves reservations that predate the
// room_id column. Old records referenced rooms by free-text name in a
// "room" column; this resolves every such reference to the room's id and
// drops the column so no dual-key lookup survives in the application.
//
// Why this is needed:
// The previous system inserted both room_id and the room name into every
// reservation "for backward compatibility", which forced every conflict
// check to match on either key. Collapsing to the foreign key has to happen
// exactly once, before the first request is served.
func BackfillLegacyRoomReferences(db *gorm.DB) error {
	if !db.Migrator().HasColumn("reservations", "room") {
		return nil
	}

	log.Println("[DB-MIGRATE] Legacy 'room' column found, backfilling room_id from room names")

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			UPDATE reservations r
			SET room_id = rooms.id
			FROM rooms
			WHERE r.room_id IS NULL
			  AND r.room IS NOT NULL
			  AND rooms.name = r.room;
		`).Error; err != nil {
			return err
		}

		// Anything still unresolved names a room that no longer exists.
		// Those rows are unbookable history; keep them but log the count.
		var orphaned int64
		if err := tx.Raw(`
			SELECT COUNT(*) FROM reservations WHERE room_id IS NULL;
		`).Scan(&orphaned).Error; err != nil {
			return err
		}
		if orphaned > 0 {
			log.Printf("[DB-MIGRATE] %d legacy reservations reference unknown rooms and were left without a room_id", orphaned)
		}

		return tx.Exec(`ALTER TABLE reservations DROP COLUMN room;`).Error
	})
}

// CreateReservationRangeConstraint creates an exclusion constraint so two
// pending/approved reservations for the same room can never hold
// overlapping [date_from, date_to) ranges, even across concurrent requests
// on separate connections.
//
// Why this is needed:
// The conflict check (read) and the reservation insert (write) are separate
// statements. Two requests can both pass the check before either commits;
// without this constraint the second insert would silently double-book the
// room. With it, postgres rejects the second insert and the application
// surfaces a retryable conflict error.
func CreateReservationRangeConstraint(db *gorm.DB) error {
	return db.Exec(`
		CREATE EXTENSION IF NOT EXISTS btree_gist;
		ALTER TABLE reservations DROP CONSTRAINT IF EXISTS reservations_no_overlap;
		ALTER TABLE reservations ADD CONSTRAINT reservations_no_overlap
		EXCLUDE USING gist (
			room_id WITH =,
			daterange(date_from, date_to) WITH &&
		)
		WHERE (status IN ('pending', 'approved') AND deleted_at IS NULL);
	`).Error
}
