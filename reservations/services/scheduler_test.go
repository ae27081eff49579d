package services

import (
	"testing"
	"time"

	"dorm-reservation-backend/db/models"
	"dorm-reservation-backend/reservations/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestScheduler(db *gorm.DB, now time.Time) *MaintenanceScheduler {
	scheduler := NewMaintenanceScheduler(repositories.NewReservationRepository(db))
	scheduler.nowFunc = func() time.Time { return now }
	return scheduler
}

func reservationStatus(t *testing.T, db *gorm.DB, id interface{}) models.ReservationStatus {
	t.Helper()
	var stored models.Reservation
	require.NoError(t, db.First(&stored, "id = ?", id).Error)
	return stored.Status
}

func TestMaintenanceCompletesPastApprovedStays(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	past := seedReservation(t, db, user.ID, room.ID, day(2), day(5), models.ApprovedReservationStatus)
	ongoing := seedReservation(t, db, user.ID, room.ID, day(8), day(12), models.ApprovedReservationStatus)
	future := seedReservation(t, db, user.ID, room.ID, day(20), day(25), models.ApprovedReservationStatus)

	now := time.Date(2025, time.June, 10, 2, 0, 0, 0, time.UTC)
	require.NoError(t, newTestScheduler(db, now).RunOnce())

	assert.Equal(t, models.CompletedReservationStatus, reservationStatus(t, db, past.ID))
	// A stay whose checkout has not passed stays approved
	assert.Equal(t, models.ApprovedReservationStatus, reservationStatus(t, db, ongoing.ID))
	assert.Equal(t, models.ApprovedReservationStatus, reservationStatus(t, db, future.ID))
}

func TestMaintenanceCancelsStalePending(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	stale := seedReservation(t, db, user.ID, room.ID, day(1), day(3), models.PendingReservationStatus)
	recent := seedReservation(t, db, user.ID, room.ID, day(8), day(12), models.PendingReservationStatus)
	future := seedReservation(t, db, user.ID, room.ID, day(20), day(25), models.PendingReservationStatus)

	// June 10th: check-ins before June 3rd have been stale for over a week
	now := time.Date(2025, time.June, 10, 2, 0, 0, 0, time.UTC)
	require.NoError(t, newTestScheduler(db, now).RunOnce())

	assert.Equal(t, models.CancelledReservationStatus, reservationStatus(t, db, stale.ID))
	assert.Equal(t, models.PendingReservationStatus, reservationStatus(t, db, recent.ID))
	assert.Equal(t, models.PendingReservationStatus, reservationStatus(t, db, future.ID))
}
