package repositories

import (
	"errors"
	"fmt"
	"time"

	"dorm-reservation-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	CreateReservation(reservation *models.Reservation) (*models.Reservation, error)
	GetReservationByID(id string) (*models.Reservation, error)
	GetActiveReservationsInRange(roomID uuid.UUID, dateFrom, dateTo time.Time) ([]models.Reservation, error)
	UpdateReservationStatus(id uuid.UUID, status models.ReservationStatus) (bool, error)
	DeleteReservationOwned(id, ownerID uuid.UUID) (bool, error)
	GetUserReservationsWithRooms(userID uuid.UUID) ([]models.ReservationWithRoom, error)
	GetFilteredReservationsWithRooms(filters map[string]string, paginationEnabled bool, limit, offset int) ([]models.ReservationWithRoom, int64, error)
	HasReservationsForRoom(roomID uuid.UUID) (bool, error)
	CompletePastApproved(today time.Time) (int64, error)
	CancelStalePending(checkInBefore time.Time) (int64, error)
	WithTx(tx *gorm.DB) ReservationRepository
}

// Implementations
type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *reservationRepository) WithTx(tx *gorm.DB) ReservationRepository {
	return &reservationRepository{db: tx}
}

// activeStatuses are the statuses that hold a room's dates
var activeStatuses = []models.ReservationStatus{
	models.PendingReservationStatus,
	models.ApprovedReservationStatus,
}

func (r *reservationRepository) CreateReservation(reservation *models.Reservation) (*models.Reservation, error) {
	if err := r.db.Create(reservation).Error; err != nil {
		return nil, fmt.Errorf("failed to create reservation in database: %w", err)
	}
	return reservation, nil
}

func (r *reservationRepository) GetReservationByID(id string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.Preload("Room").Preload("User").Where("id = ?", id).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reservation, nil
}

// GetActiveReservationsInRange fetches pending/approved reservations for a
// room whose stored interval loosely intersects [dateFrom, dateTo]. This is
// the store-side prefilter; the precise half-open overlap test happens in
// the service layer.
func (r *reservationRepository) GetActiveReservationsInRange(roomID uuid.UUID, dateFrom, dateTo time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.
		Where("room_id = ?", roomID).
		Where("status IN ?", activeStatuses).
		Where("date_from <= ? AND date_to >= ?", dateTo.Format("2006-01-02"), dateFrom.Format("2006-01-02")).
		Order("date_from ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) UpdateReservationStatus(id uuid.UUID, status models.ReservationStatus) (bool, error) {
	result := r.db.Model(&models.Reservation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteReservationOwned deletes only when both the reservation id and the
// owner id match; the ownership filter is part of the store call itself.
func (r *reservationRepository) DeleteReservationOwned(id, ownerID uuid.UUID) (bool, error) {
	result := r.db.
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Reservation{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *reservationRepository) GetUserReservationsWithRooms(userID uuid.UUID) ([]models.ReservationWithRoom, error) {
	var reservations []models.Reservation
	err := r.db.
		Preload("Room").
		Where("user_id = ?", userID).
		Order("date_from DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return denormalizeWithRooms(reservations, false), nil
}

// reservationsQueryBuilder builds queries for reservation filtering
type reservationsQueryBuilder struct {
	query   *gorm.DB
	filters map[string]string
}

func newReservationsQueryBuilder(db *gorm.DB, filters map[string]string) *reservationsQueryBuilder {
	return &reservationsQueryBuilder{
		query:   db.Model(&models.Reservation{}),
		filters: filters,
	}
}

func (rqb *reservationsQueryBuilder) applyBasicFilters() *reservationsQueryBuilder {
	if status, ok := rqb.filters["status"]; ok && status != "" {
		rqb.query = rqb.query.Where("status = ?", status)
	}
	if roomID, ok := rqb.filters["room_id"]; ok && roomID != "" {
		rqb.query = rqb.query.Where("room_id = ?", roomID)
	}
	if userID, ok := rqb.filters["user_id"]; ok && userID != "" {
		rqb.query = rqb.query.Where("user_id = ?", userID)
	}
	return rqb
}

func (rqb *reservationsQueryBuilder) applyStayDateRangeFilter() *reservationsQueryBuilder {
	startDate := rqb.filters["start_date"]
	endDate := rqb.filters["end_date"]

	if startDate != "" && startDate != "null" && endDate != "" && endDate != "null" {
		rqb.query = rqb.query.Where("date_from <= ? AND date_to >= ?", endDate, startDate)
	}
	return rqb
}

func (rqb *reservationsQueryBuilder) applyLatestOrder() *reservationsQueryBuilder {
	rqb.query = rqb.query.Order("created_at DESC")
	return rqb
}

// GetFilteredReservationsWithRooms returns filtered reservations with
// pagination, denormalized with room details and the owner's email for
// admin/manager views.
func (r *reservationRepository) GetFilteredReservationsWithRooms(filters map[string]string, paginationEnabled bool, limit, offset int) ([]models.ReservationWithRoom, int64, error) {
	rqb := newReservationsQueryBuilder(r.db, filters).applyBasicFilters().applyStayDateRangeFilter().applyLatestOrder()
	countQuery := newReservationsQueryBuilder(r.db, filters).applyBasicFilters().applyStayDateRangeFilter()

	if paginationEnabled {
		rqb.query = rqb.query.Limit(limit).Offset(offset)
	}

	var reservations []models.Reservation
	if err := rqb.query.Preload("Room").Preload("User").Find(&reservations).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := countQuery.query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return denormalizeWithRooms(reservations, true), total, nil
}

func (r *reservationRepository) HasReservationsForRoom(roomID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Reservation{}).
		Unscoped().
		Where("room_id = ?", roomID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CompletePastApproved closes out approved stays whose checkout date has
// passed. Only the scheduler calls this.
func (r *reservationRepository) CompletePastApproved(today time.Time) (int64, error) {
	result := r.db.Model(&models.Reservation{}).
		Where("status = ?", models.ApprovedReservationStatus).
		Where("date_to < ?", today.Format("2006-01-02")).
		Updates(map[string]interface{}{
			"status":     models.CompletedReservationStatus,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

// CancelStalePending cancels pending requests whose check-in date passed
// long enough ago that nobody is coming.
func (r *reservationRepository) CancelStalePending(checkInBefore time.Time) (int64, error) {
	result := r.db.Model(&models.Reservation{}).
		Where("status = ?", models.PendingReservationStatus).
		Where("date_from < ?", checkInBefore.Format("2006-01-02")).
		Updates(map[string]interface{}{
			"status":     models.CancelledReservationStatus,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

func denormalizeWithRooms(reservations []models.Reservation, includeUserEmail bool) []models.ReservationWithRoom {
	out := make([]models.ReservationWithRoom, 0, len(reservations))
	for _, reservation := range reservations {
		row := models.ReservationWithRoom{Reservation: reservation}
		if reservation.Room != nil {
			row.RoomName = reservation.Room.Name
			row.RoomDescription = reservation.Room.Description
			row.RoomCapacity = reservation.Room.Capacity
		}
		if includeUserEmail && reservation.User != nil {
			row.UserEmail = reservation.User.Email
		}
		// The join is display-only; drop the preloaded structs from the payload
		row.Room = nil
		row.User = nil
		out = append(out, row)
	}
	return out
}
