package services

import (
	"strings"
	"time"

	"dorm-reservation-backend/config"
	"dorm-reservation-backend/db/models"
	"dorm-reservation-backend/reservations/repositories"
	room_repositories "dorm-reservation-backend/rooms/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// rangeConstraintName is the store-side exclusion constraint that rejects
// overlapping active reservations on the same room.
const rangeConstraintName = "reservations_no_overlap"

// ReservationNotifier delivers status emails out of band. The booking path
// never blocks on delivery.
type ReservationNotifier interface {
	NotifyReservationStatus(email, roomName, dateFrom, dateTo string, status models.ReservationStatus)
}

// BookingService owns the reservation lifecycle: validated creation with
// conflict protection, staff status transitions, and owner cancellation.
type BookingService struct {
	db              *gorm.DB
	reservationRepo repositories.ReservationRepository
	roomRepo        room_repositories.RoomRepository
	locks           *roomLocks
	notifier        ReservationNotifier

	// nowFunc is swapped in tests to pin "today"
	nowFunc func() time.Time
}

func NewBookingService(db *gorm.DB, reservationRepo repositories.ReservationRepository, roomRepo room_repositories.RoomRepository, notifier ReservationNotifier) *BookingService {
	return &BookingService{
		db:              db,
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		locks:           newRoomLocks(),
		notifier:        notifier,
		nowFunc:         time.Now,
	}
}

// CreateReservation runs the full booking pipeline: room checks, date
// normalization, stay validation, then a per-room-serialized conflict check
// and insert inside one transaction. New reservations always start pending.
func (s *BookingService) CreateReservation(userID uuid.UUID, roomID, rawDateFrom, rawDateTo string) (*models.Reservation, error) {
	room, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if !room.IsActive {
		return nil, ErrRoomInactive
	}

	dateFrom, ok := NormalizeDate(rawDateFrom)
	if !ok {
		return nil, ErrInvalidDate
	}
	dateTo, ok := NormalizeDate(rawDateTo)
	if !ok {
		return nil, ErrInvalidDate
	}

	if !dateFrom.Before(dateTo) {
		return nil, ErrMinStay
	}

	today := truncateToDate(s.nowFunc().UTC())
	if dateFrom.Before(today) {
		return nil, ErrPastCheckIn
	}

	unlock := s.locks.Lock(room.ID)
	defer unlock()

	var created *models.Reservation
	err = s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.reservationRepo.WithTx(tx)

		conflict, err := conflictsWithTx(txRepo, room.ID, dateFrom, dateTo)
		if err != nil {
			return err
		}
		if conflict {
			return ErrRoomUnavailable
		}

		reservation := &models.Reservation{
			UserID:   userID,
			RoomID:   room.ID,
			DateFrom: models.NewDateOnly(dateFrom),
			DateTo:   models.NewDateOnly(dateTo),
			Status:   models.PendingReservationStatus,
		}
		created, err = txRepo.CreateReservation(reservation)
		return err
	})
	if err != nil {
		if isRangeConstraintViolation(err) {
			// A concurrent writer on another instance won the race; the
			// store's exclusion constraint closed the gap.
			config.Logger.Warn("Reservation insert lost a concurrent race",
				zap.String("room_id", room.ID.String()),
				zap.String("user_id", userID.String()),
			)
			return nil, ErrConflictDuringCommit
		}
		return nil, err
	}

	config.Logger.Info("Reservation created",
		zap.String("reservation_id", created.ID.String()),
		zap.String("room_id", room.ID.String()),
		zap.String("date_from", FormatDate(dateFrom)),
		zap.String("date_to", FormatDate(dateTo)),
	)
	return created, nil
}

func isRangeConstraintViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), rangeConstraintName)
}

// UpdateReservationStatus applies a staff status transition on behalf of
// actorID. Completed is not assignable here; only the scheduler sets it.
func (s *BookingService) UpdateReservationStatus(actorID uuid.UUID, reservationID string, status models.ReservationStatus) (*models.Reservation, error) {
	assignable := false
	for _, candidate := range models.AssignableReservationStatuses {
		if candidate == status {
			assignable = true
			break
		}
	}
	if !assignable {
		return nil, ErrInvalidStatus
	}

	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}

	updated, err := s.reservationRepo.UpdateReservationStatus(reservation.ID, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrReservationNotFound
	}
	reservation.Status = status

	config.Logger.Info("Reservation status updated",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("actor_id", actorID.String()),
		zap.String("status", string(status)),
	)

	if s.notifier != nil && reservation.User != nil && reservation.Room != nil {
		s.notifier.NotifyReservationStatus(
			reservation.User.Email,
			reservation.Room.Name,
			reservation.DateFrom.String(),
			reservation.DateTo.String(),
			status,
		)
	}

	return reservation, nil
}

// DeleteReservation lets a customer withdraw their own pending request.
// Ownership is checked here and enforced again in the store delete itself.
func (s *BookingService) DeleteReservation(reservationID string, ownerID uuid.UUID) error {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		return err
	}
	if reservation == nil {
		return ErrReservationNotFound
	}
	if reservation.UserID != ownerID {
		return ErrNotOwner
	}
	if reservation.Status != models.PendingReservationStatus {
		return ErrNotPending
	}

	deleted, err := s.reservationRepo.DeleteReservationOwned(reservation.ID, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrReservationNotFound
	}
	return nil
}

func (s *BookingService) GetReservationByID(reservationID string) (*models.Reservation, error) {
	return s.reservationRepo.GetReservationByID(reservationID)
}

func (s *BookingService) GetUserReservations(userID uuid.UUID) ([]models.ReservationWithRoom, error) {
	return s.reservationRepo.GetUserReservationsWithRooms(userID)
}

func (s *BookingService) GetFilteredReservations(filters map[string]string, paginationEnabled bool, limit, offset int) ([]models.ReservationWithRoom, int64, error) {
	return s.reservationRepo.GetFilteredReservationsWithRooms(filters, paginationEnabled, limit, offset)
}
