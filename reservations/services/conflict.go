package services

import (
	"time"

	"dorm-reservation-backend/db/models"
	"dorm-reservation-backend/reservations/repositories"
	room_repositories "dorm-reservation-backend/rooms/repositories"

	"github.com/google/uuid"
)

// overlapsHalfOpen reports whether the half-open intervals [fromA, toA) and
// [fromB, toB) intersect. A checkout date equal to another booking's
// check-in date is not a conflict.
func overlapsHalfOpen(fromA, toA, fromB, toB time.Time) bool {
	return fromA.Before(toB) && toA.After(fromB)
}

// AvailabilityService answers "is this room free" questions: the live
// conflict check used on the booking path and the diagnostic conflict set
// used for operator troubleshooting.
type AvailabilityService struct {
	reservationRepo repositories.ReservationRepository
	roomRepo        room_repositories.RoomRepository
}

func NewAvailabilityService(reservationRepo repositories.ReservationRepository, roomRepo room_repositories.RoomRepository) *AvailabilityService {
	return &AvailabilityService{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
	}
}

// HasConflict reports whether any pending/approved reservation on the room
// overlaps [dateFrom, dateTo). The store does a loose interval prefilter;
// the exact half-open test runs here.
func (s *AvailabilityService) HasConflict(roomID uuid.UUID, dateFrom, dateTo time.Time) (bool, error) {
	candidates, err := s.reservationRepo.GetActiveReservationsInRange(roomID, dateFrom, dateTo)
	if err != nil {
		return false, err
	}
	for _, candidate := range candidates {
		if overlapsHalfOpen(dateFrom, dateTo, candidate.DateFrom.Time(), candidate.DateTo.Time()) {
			return true, nil
		}
	}
	return false, nil
}

// conflictsWithTx runs the same test against a transaction-bound
// repository; the booking path uses this inside its commit transaction.
func conflictsWithTx(repo repositories.ReservationRepository, roomID uuid.UUID, dateFrom, dateTo time.Time) (bool, error) {
	candidates, err := repo.GetActiveReservationsInRange(roomID, dateFrom, dateTo)
	if err != nil {
		return false, err
	}
	for _, candidate := range candidates {
		if overlapsHalfOpen(dateFrom, dateTo, candidate.DateFrom.Time(), candidate.DateTo.Time()) {
			return true, nil
		}
	}
	return false, nil
}

// AvailabilityDebug is the diagnostic conflict set for a candidate range.
// Read-only; never consulted by the booking decision path.
type AvailabilityDebug struct {
	Room      *models.Room         `json:"room"`
	DateFrom  string               `json:"date_from"`
	DateTo    string               `json:"date_to"`
	Conflicts []models.Reservation `json:"conflicts"`
}

// DebugRoomAvailability returns every reservation that makes the candidate
// range unbookable, for operator troubleshooting.
func (s *AvailabilityService) DebugRoomAvailability(roomID string, rawDateFrom, rawDateTo string) (*AvailabilityDebug, error) {
	room, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	dateFrom, ok := NormalizeDate(rawDateFrom)
	if !ok {
		return nil, ErrInvalidDate
	}
	dateTo, ok := NormalizeDate(rawDateTo)
	if !ok {
		return nil, ErrInvalidDate
	}

	candidates, err := s.reservationRepo.GetActiveReservationsInRange(room.ID, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	debug := &AvailabilityDebug{
		Room:      room,
		DateFrom:  FormatDate(dateFrom),
		DateTo:    FormatDate(dateTo),
		Conflicts: []models.Reservation{},
	}
	for _, candidate := range candidates {
		if overlapsHalfOpen(dateFrom, dateTo, candidate.DateFrom.Time(), candidate.DateTo.Time()) {
			debug.Conflicts = append(debug.Conflicts, candidate)
		}
	}
	return debug, nil
}
