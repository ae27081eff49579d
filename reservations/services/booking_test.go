package services

import (
	"testing"
	"time"

	"dorm-reservation-backend/db/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// "Today" for every booking test
var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func TestCreateReservationSuccess(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	svc := newTestBookingService(db, testNow)

	reservation, err := svc.CreateReservation(user.ID, room.ID.String(), "2025-06-10", "2025-06-15")
	require.NoError(t, err)
	require.NotNil(t, reservation)
	assert.Equal(t, models.PendingReservationStatus, reservation.Status)
	assert.Equal(t, "2025-06-10", reservation.DateFrom.String())
	assert.Equal(t, "2025-06-15", reservation.DateTo.String())
	assert.Equal(t, user.ID, reservation.UserID)
	assert.Equal(t, room.ID, reservation.RoomID)
}

func TestCreateReservationOverlapRejected(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	other := createTestUser(t, db, "other@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	seedReservation(t, db, other.ID, room.ID, day(10), day(15), models.ApprovedReservationStatus)
	svc := newTestBookingService(db, testNow)

	_, err := svc.CreateReservation(user.ID, room.ID.String(), "2025-06-12", "2025-06-18")
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	// Fully containing range is also a conflict
	_, err = svc.CreateReservation(user.ID, room.ID.String(), "2025-06-08", "2025-06-20")
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

// Back-to-back stays share a turnover day: a new check-in on an existing
// checkout date must be accepted.
func TestCreateReservationAdjacentAllowed(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	other := createTestUser(t, db, "other@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	seedReservation(t, db, other.ID, room.ID, day(10), day(15), models.ApprovedReservationStatus)
	svc := newTestBookingService(db, testNow)

	after, err := svc.CreateReservation(user.ID, room.ID.String(), "2025-06-15", "2025-06-20")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", after.DateFrom.String())

	before, err := svc.CreateReservation(user.ID, room.ID.String(), "2025-06-05", "2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", before.DateTo.String())
}

func TestCreateReservationIgnoresInactiveStatuses(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	other := createTestUser(t, db, "other@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	seedReservation(t, db, other.ID, room.ID, day(10), day(15), models.RejectedReservationStatus)
	seedReservation(t, db, other.ID, room.ID, day(10), day(15), models.CancelledReservationStatus)
	seedReservation(t, db, other.ID, room.ID, day(10), day(15), models.CompletedReservationStatus)
	svc := newTestBookingService(db, testNow)

	_, err := svc.CreateReservation(user.ID, room.ID.String(), "2025-06-10", "2025-06-15")
	assert.NoError(t, err)
}

func TestCreateReservationConflictAcrossFormats(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	svc := newTestBookingService(db, testNow)

	_, err := svc.CreateReservation(user.ID, room.ID.String(), "06/10/2025", "06/15/2025")
	require.NoError(t, err)

	// The same dates written differently still collide
	_, err = svc.CreateReservation(user.ID, room.ID.String(), "2025-06-12", "2025-06-14")
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestCreateReservationMinStay(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	svc := newTestBookingService(db, testNow)

	_, err := svc.CreateReservation(user.ID, room.ID.String(), "2025-06-10", "2025-06-10")
	assert.ErrorIs(t, err, ErrMinStay)

	_, err = svc.CreateReservation(user.ID, room.ID.String(), "2025-06-15", "2025-06-10")
	assert.ErrorIs(t, err, ErrMinStay)
}

func TestCreateReservationPastCheckIn(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	svc := newTestBookingService(db, testNow)

	_, err := svc.CreateReservation(user.ID, room.ID.String(), "2025-05-31", "2025-06-05")
	assert.ErrorIs(t, err, ErrPastCheckIn)

	// Checking in today is fine
	_, err = svc.CreateReservation(user.ID, room.ID.String(), "2025-06-01", "2025-06-05")
	assert.NoError(t, err)
}

func TestCreateReservationRoomChecks(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	inactive := createTestRoom(t, db, "Closed Room", false)
	svc := newTestBookingService(db, testNow)

	_, err := svc.CreateReservation(user.ID, uuid.NewString(), "2025-06-10", "2025-06-15")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = svc.CreateReservation(user.ID, inactive.ID.String(), "2025-06-10", "2025-06-15")
	assert.ErrorIs(t, err, ErrRoomInactive)
}

func TestCreateReservationInvalidDates(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	svc := newTestBookingService(db, testNow)

	_, err := svc.CreateReservation(user.ID, room.ID.String(), "2025-13-40", "2025-06-15")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.CreateReservation(user.ID, room.ID.String(), "2025-06-10", "garbage")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUpdateReservationStatus(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	staff := createTestUser(t, db, "manager@example.com")
	reservation := seedReservation(t, db, user.ID, room.ID, day(10), day(15), models.PendingReservationStatus)
	svc := newTestBookingService(db, testNow)

	updated, err := svc.UpdateReservationStatus(staff.ID, reservation.ID.String(), models.ApprovedReservationStatus)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovedReservationStatus, updated.Status)

	var stored models.Reservation
	require.NoError(t, db.First(&stored, "id = ?", reservation.ID).Error)
	assert.Equal(t, models.ApprovedReservationStatus, stored.Status)
}

func TestUpdateReservationStatusRejectsCompleted(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	reservation := seedReservation(t, db, user.ID, room.ID, day(10), day(15), models.ApprovedReservationStatus)
	svc := newTestBookingService(db, testNow)

	_, err := svc.UpdateReservationStatus(user.ID, reservation.ID.String(), models.CompletedReservationStatus)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateReservationStatus(user.ID, reservation.ID.String(), models.ReservationStatus("confirmed"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateReservationStatusNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newTestBookingService(db, testNow)

	_, err := svc.UpdateReservationStatus(uuid.New(), uuid.NewString(), models.ApprovedReservationStatus)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestDeleteReservationOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	reservation := seedReservation(t, db, owner.ID, room.ID, day(10), day(15), models.PendingReservationStatus)
	svc := newTestBookingService(db, testNow)

	err := svc.DeleteReservation(reservation.ID.String(), stranger.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.DeleteReservation(reservation.ID.String(), owner.ID)
	require.NoError(t, err)

	got, err := svc.GetReservationByID(reservation.ID.String())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteReservationOnlyPending(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	reservation := seedReservation(t, db, owner.ID, room.ID, day(10), day(15), models.ApprovedReservationStatus)
	svc := newTestBookingService(db, testNow)

	err := svc.DeleteReservation(reservation.ID.String(), owner.ID)
	assert.ErrorIs(t, err, ErrNotPending)

	err = svc.DeleteReservation(uuid.NewString(), owner.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetUserReservationsWithRooms(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "guest@example.com")
	other := createTestUser(t, db, "other@example.com")
	room := createTestRoom(t, db, "Room 101", true)
	seedReservation(t, db, user.ID, room.ID, day(10), day(15), models.PendingReservationStatus)
	seedReservation(t, db, other.ID, room.ID, day(20), day(25), models.PendingReservationStatus)
	svc := newTestBookingService(db, testNow)

	mine, err := svc.GetUserReservations(user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Room 101", mine[0].RoomName)
	assert.Equal(t, 2, mine[0].RoomCapacity)
}
