package services

import (
	"testing"
	"time"

	"dorm-reservation-backend/db/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRoomAvailabilityCalendar(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	seedReservation(t, db, user.ID, room.ID, day(10), day(15), models.ApprovedReservationStatus)
	svc := newTestAvailabilityService(db)

	calendar, err := svc.GetRoomAvailabilityCalendar(room.ID.String(), 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, 6, calendar.Month)
	assert.Equal(t, 2025, calendar.Year)
	assert.Len(t, calendar.Days, 30)

	assert.True(t, calendar.Days[9].Available)
	for d := 10; d <= 14; d++ {
		entry := calendar.Days[d]
		assert.False(t, entry.Available, "day %d should be booked", d)
		assert.Equal(t, "Booked until 2025-06-15", entry.ConflictInfo)
	}
	// Checkout day is open for the next guest
	assert.True(t, calendar.Days[15].Available)
	assert.Empty(t, calendar.Days[15].ConflictInfo)
}

func TestGetRoomAvailabilityCalendarIgnoresOtherMonths(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	seedReservation(t, db, user.ID, room.ID, day(10), day(15), models.ApprovedReservationStatus)
	svc := newTestAvailabilityService(db)

	calendar, err := svc.GetRoomAvailabilityCalendar(room.ID.String(), 7, 2025)
	require.NoError(t, err)
	for d := 1; d <= 31; d++ {
		assert.True(t, calendar.Days[d].Available, "day %d of July should be free", d)
	}
}

func TestGetRoomAvailabilityCalendarErrors(t *testing.T) {
	db := newTestDB(t)
	room := createTestRoom(t, db, "Room 101", true)
	svc := newTestAvailabilityService(db)

	_, err := svc.GetRoomAvailabilityCalendar(room.ID.String(), 13, 2025)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.GetRoomAvailabilityCalendar(room.ID.String(), 0, 2025)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.GetRoomAvailabilityCalendar(uuid.NewString(), 6, 2025)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

// A deactivated room must not be advertised as bookable; both projections
// refuse it outright instead of returning an all-free result.
func TestAvailabilityRejectsInactiveRoom(t *testing.T) {
	db := newTestDB(t)
	closed := createTestRoom(t, db, "Closed Room", false)
	svc := newTestAvailabilityService(db)

	_, err := svc.GetRoomAvailabilityCalendar(closed.ID.String(), 6, 2025)
	assert.ErrorIs(t, err, ErrRoomInactive)

	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	_, err = svc.FindAvailableDateRanges(closed.ID.String(), 10, now)
	assert.ErrorIs(t, err, ErrRoomInactive)
}

func TestFindAvailableDateRanges(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	seedReservation(t, db, user.ID, room.ID, day(5), day(8), models.ApprovedReservationStatus)
	svc := newTestAvailabilityService(db)

	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	ranges, err := svc.FindAvailableDateRanges(room.ID.String(), 10, now)
	require.NoError(t, err)
	require.Len(t, ranges, 2)

	assert.Equal(t, "2025-06-01", ranges[0].DateFrom)
	assert.Equal(t, "2025-06-04", ranges[0].DateTo)
	assert.Equal(t, 4, ranges[0].Days)

	assert.Equal(t, "2025-06-08", ranges[1].DateFrom)
	assert.Equal(t, "2025-06-10", ranges[1].DateTo)
	assert.Equal(t, 3, ranges[1].Days)
}

func TestFindAvailableDateRangesDefaultWindow(t *testing.T) {
	db := newTestDB(t)
	room := createTestRoom(t, db, "Room 101", true)
	svc := newTestAvailabilityService(db)

	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	ranges, err := svc.FindAvailableDateRanges(room.ID.String(), 0, now)
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, "2025-06-01", ranges[0].DateFrom)
	assert.Equal(t, "2025-06-30", ranges[0].DateTo)
	assert.Equal(t, 30, ranges[0].Days)
}

func TestDebugRoomAvailability(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	blocking := seedReservation(t, db, user.ID, room.ID, day(10), day(15), models.PendingReservationStatus)
	seedReservation(t, db, user.ID, room.ID, day(20), day(25), models.ApprovedReservationStatus)
	svc := newTestAvailabilityService(db)

	debug, err := svc.DebugRoomAvailability(room.ID.String(), "2025-06-12", "2025-06-18")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-12", debug.DateFrom)
	assert.Equal(t, "2025-06-18", debug.DateTo)
	require.Len(t, debug.Conflicts, 1)
	assert.Equal(t, blocking.ID, debug.Conflicts[0].ID)

	clear, err := svc.DebugRoomAvailability(room.ID.String(), "2025-06-15", "2025-06-20")
	require.NoError(t, err)
	assert.Empty(t, clear.Conflicts)
}

func TestHasConflict(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	seedReservation(t, db, user.ID, room.ID, day(10), day(15), models.ApprovedReservationStatus)
	svc := newTestAvailabilityService(db)

	conflict, err := svc.HasConflict(room.ID, day(12), day(14))
	require.NoError(t, err)
	assert.True(t, conflict)

	conflict, err = svc.HasConflict(room.ID, day(15), day(20))
	require.NoError(t, err)
	assert.False(t, conflict)
}
