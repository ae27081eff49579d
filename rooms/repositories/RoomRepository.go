package repositories

import (
	"errors"
	"fmt"
	"time"

	"dorm-reservation-backend/db/models"

	"gorm.io/gorm"
)

type RoomRepository interface {
	CreateRoom(room *models.Room) (*models.Room, error)
	GetRoomByID(id string) (*models.Room, error)
	GetRoomByName(name string) (*models.Room, error)
	GetAllRooms() ([]models.Room, error)
	GetActiveRooms() ([]models.Room, error)
	UpdateRoom(id string, updates map[string]interface{}) (bool, error)
	DeleteRoom(id string) (bool, error)
	GetFilteredRooms(filters map[string]string, paginationEnabled bool, limit, offset int) ([]models.Room, int64, error)
	WithTx(tx *gorm.DB) RoomRepository
}

// Implementations
type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) WithTx(tx *gorm.DB) RoomRepository {
	return &roomRepository{db: tx}
}

func (r *roomRepository) CreateRoom(room *models.Room) (*models.Room, error) {
	if err := r.db.Create(room).Error; err != nil {
		return nil, fmt.Errorf("failed to create room in database: %w", err)
	}
	return room, nil
}

func (r *roomRepository) GetRoomByID(id string) (*models.Room, error) {
	var room models.Room
	err := r.db.Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) GetRoomByName(name string) (*models.Room, error) {
	var room models.Room
	err := r.db.Where("name = ?", name).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) GetAllRooms() ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Order("name ASC").Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) GetActiveRooms() ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&rooms).Error
	return rooms, err
}

// UpdateRoom applies the already-validated field map. Every update stamps
// updated_at even when GORM would skip it for an unchanged value set.
func (r *roomRepository) UpdateRoom(id string, updates map[string]interface{}) (bool, error) {
	if len(updates) == 0 {
		return false, nil
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.Model(&models.Room{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *roomRepository) DeleteRoom(id string) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&models.Room{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// roomsQueryBuilder builds queries for room filtering
type roomsQueryBuilder struct {
	query   *gorm.DB
	filters map[string]string
}

func newRoomsQueryBuilder(db *gorm.DB, filters map[string]string) *roomsQueryBuilder {
	return &roomsQueryBuilder{
		query:   db.Model(&models.Room{}),
		filters: filters,
	}
}

func (rqb *roomsQueryBuilder) applyBasicRoomFilters() *roomsQueryBuilder {
	if active, ok := rqb.filters["is_active"]; ok && active != "" {
		rqb.query = rqb.query.Where("is_active = ?", active == "true")
	}
	if capacity, ok := rqb.filters["capacity"]; ok && capacity != "" {
		rqb.query = rqb.query.Where("capacity = ?", capacity)
	}
	return rqb
}

func (rqb *roomsQueryBuilder) applyNameOrder() *roomsQueryBuilder {
	rqb.query = rqb.query.Order("name ASC")
	return rqb
}

// GetFilteredRooms returns filtered rooms with pagination
func (r *roomRepository) GetFilteredRooms(filters map[string]string, paginationEnabled bool, limit, offset int) ([]models.Room, int64, error) {
	rqb := newRoomsQueryBuilder(r.db, filters).applyBasicRoomFilters().applyNameOrder()
	countQuery := newRoomsQueryBuilder(r.db, filters).applyBasicRoomFilters()

	if paginationEnabled {
		rqb.query = rqb.query.Limit(limit).Offset(offset)
	}

	var rooms []models.Room
	if err := rqb.query.Find(&rooms).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := countQuery.query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return rooms, total, nil
}
