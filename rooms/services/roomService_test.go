package services

import (
	"os"
	"strings"
	"testing"
	"time"

	"dorm-reservation-backend/config"
	"dorm-reservation-backend/db/models"
	reservation_repositories "dorm-reservation-backend/reservations/repositories"
	"dorm-reservation-backend/rooms/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	config.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func newTestRoomService(t *testing.T) (*RoomService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Room{}, &models.Reservation{}))

	svc := NewRoomService(
		repositories.NewRoomRepository(db),
		reservation_repositories.NewReservationRepository(db),
	)
	return svc, db
}

func TestCreateRoomValid(t *testing.T) {
	svc, _ := newTestRoomService(t)

	room, err := svc.CreateRoom("  Room   101 ", "Quiet corner room", 2, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Room 101", room.Name)
	assert.Equal(t, "Quiet corner room", room.Description)
	assert.Equal(t, 2, room.Capacity)
	assert.True(t, room.IsActive)
}

func TestCreateRoomDefaultsCapacity(t *testing.T) {
	svc, _ := newTestRoomService(t)

	room, err := svc.CreateRoom("Room 102", "", 0, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, room.Capacity)
}

// Any invalid field fails the whole create; nothing is persisted.
func TestCreateRoomRejectsInvalidInput(t *testing.T) {
	svc, db := newTestRoomService(t)

	_, err := svc.CreateRoom("", "desc", 2, "admin@example.com")
	assert.Error(t, err)

	_, err = svc.CreateRoom(strings.Repeat("a", 65), "desc", 2, "admin@example.com")
	assert.Error(t, err)

	_, err = svc.CreateRoom("Room 103", strings.Repeat("a", 256), 2, "admin@example.com")
	assert.Error(t, err)

	_, err = svc.CreateRoom("Room 103", "desc", 11, "admin@example.com")
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Room{}).Count(&count).Error)
	assert.Zero(t, count)
}

// Updates drop invalid fields and apply the rest.
func TestUpdateRoomDropsInvalidFields(t *testing.T) {
	svc, db := newTestRoomService(t)
	room, err := svc.CreateRoom("Room 104", "old", 2, "admin@example.com")
	require.NoError(t, err)

	badName := strings.Repeat("a", 65)
	capacity := 4
	updated, err := svc.UpdateRoom(room.ID.String(), RoomUpdateInput{
		Name:     &badName,
		Capacity: &capacity,
	}, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, updated)

	var stored models.Room
	require.NoError(t, db.First(&stored, "id = ?", room.ID).Error)
	assert.Equal(t, "Room 104", stored.Name)
	assert.Equal(t, 4, stored.Capacity)
}

func TestUpdateRoomFailsWhenNothingValid(t *testing.T) {
	svc, _ := newTestRoomService(t)
	room, err := svc.CreateRoom("Room 105", "", 2, "admin@example.com")
	require.NoError(t, err)

	badName := ""
	badCapacity := 99
	updated, err := svc.UpdateRoom(room.ID.String(), RoomUpdateInput{
		Name:     &badName,
		Capacity: &badCapacity,
	}, "admin@example.com")
	require.NoError(t, err)
	assert.False(t, updated)
}

// A room inserted with IsActive false must stay false after a round trip;
// a column default would make GORM drop the zero value on insert.
func TestRoomStoredInactiveStaysInactive(t *testing.T) {
	_, db := newTestRoomService(t)

	room := &models.Room{Name: "Mothballed Room", Capacity: 2, IsActive: false}
	require.NoError(t, db.Create(room).Error)

	var stored models.Room
	require.NoError(t, db.First(&stored, "id = ?", room.ID).Error)
	assert.False(t, stored.IsActive)
}

func TestDeleteRoomGuardedByReservations(t *testing.T) {
	svc, db := newTestRoomService(t)
	room, err := svc.CreateRoom("Room 106", "", 2, "admin@example.com")
	require.NoError(t, err)

	user := &models.User{Email: "guest@example.com", Password: "x", Role: models.CustomerRole}
	require.NoError(t, db.Create(user).Error)

	from := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	reservation := &models.Reservation{
		UserID:   user.ID,
		RoomID:   room.ID,
		DateFrom: models.NewDateOnly(from),
		DateTo:   models.NewDateOnly(from.AddDate(0, 0, 5)),
		Status:   models.CancelledReservationStatus,
	}
	require.NoError(t, db.Create(reservation).Error)

	// Even a cancelled reservation pins the room in place
	deleted, err := svc.DeleteRoom(room.ID.String())
	require.NoError(t, err)
	assert.False(t, deleted)

	var count int64
	require.NoError(t, db.Model(&models.Room{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteRoomWithoutHistory(t *testing.T) {
	svc, db := newTestRoomService(t)
	room, err := svc.CreateRoom("Room 107", "", 2, "admin@example.com")
	require.NoError(t, err)

	deleted, err := svc.DeleteRoom(room.ID.String())
	require.NoError(t, err)
	assert.True(t, deleted)

	var count int64
	require.NoError(t, db.Model(&models.Room{}).Count(&count).Error)
	assert.Zero(t, count)
}
