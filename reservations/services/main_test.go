package services

import (
	"os"
	"testing"
	"time"

	"dorm-reservation-backend/config"
	"dorm-reservation-backend/db/models"
	"dorm-reservation-backend/reservations/repositories"
	room_repositories "dorm-reservation-backend/rooms/repositories"

	"github.com/google/uuid"
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

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second connection would get its own empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Room{}, &models.Reservation{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "x", Role: models.CustomerRole}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestRoom(t *testing.T, db *gorm.DB, name string, active bool) *models.Room {
	t.Helper()
	room := &models.Room{Name: name, Capacity: 2, IsActive: active}
	require.NoError(t, db.Create(room).Error)
	return room
}

func seedReservation(t *testing.T, db *gorm.DB, userID, roomID uuid.UUID, from, to time.Time, status models.ReservationStatus) *models.Reservation {
	t.Helper()
	reservation := &models.Reservation{
		UserID:   userID,
		RoomID:   roomID,
		DateFrom: models.NewDateOnly(from),
		DateTo:   models.NewDateOnly(to),
		Status:   status,
	}
	require.NoError(t, db.Create(reservation).Error)
	return reservation
}

func newTestBookingService(db *gorm.DB, now time.Time) *BookingService {
	svc := NewBookingService(
		db,
		repositories.NewReservationRepository(db),
		room_repositories.NewRoomRepository(db),
		nil,
	)
	svc.nowFunc = func() time.Time { return now }
	return svc
}

func newTestAvailabilityService(db *gorm.DB) *AvailabilityService {
	return NewAvailabilityService(
		repositories.NewReservationRepository(db),
		room_repositories.NewRoomRepository(db),
	)
}
