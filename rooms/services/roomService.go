package services

import (
	"fmt"

	"dorm-reservation-backend/config"
	"dorm-reservation-backend/db/models"
	reservation_repositories "dorm-reservation-backend/reservations/repositories"
	"dorm-reservation-backend/rooms/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoomService owns the room registry rules: create rejects outright on any
// invalid field, update silently drops invalid fields, delete is guarded by
// existing reservations of any status.
type RoomService struct {
	roomRepo        repositories.RoomRepository
	reservationRepo reservation_repositories.ReservationRepository
}

func NewRoomService(roomRepo repositories.RoomRepository, reservationRepo reservation_repositories.ReservationRepository) *RoomService {
	return &RoomService{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
	}
}

// CreateRoom validates every field and rejects the whole create when any
// one of them is invalid. A zero capacity means "not provided" and
// defaults to 1.
func (s *RoomService) CreateRoom(name, description string, capacity int, createdBy string) (*models.Room, error) {
	cleanName := ValidateRoomName(name)
	if cleanName == "" {
		return nil, fmt.Errorf("invalid room name")
	}

	cleanDescription, ok := ValidateRoomDescription(description)
	if !ok {
		return nil, fmt.Errorf("invalid room description")
	}

	if capacity == 0 {
		capacity = 1
	}
	if !ValidateRoomCapacity(capacity) {
		return nil, fmt.Errorf("capacity must be between 1 and 10")
	}

	room := &models.Room{
		Name:        cleanName,
		Description: cleanDescription,
		Capacity:    capacity,
		IsActive:    true,
		CreatedBy:   createdBy,
	}

	created, err := s.roomRepo.CreateRoom(room)
	if err != nil {
		config.Logger.Error("Failed to create room", zap.String("name", cleanName), zap.Error(err))
		return nil, err
	}
	return created, nil
}

// RoomUpdateInput carries the raw update payload; nil pointers mean the
// field was not submitted.
type RoomUpdateInput struct {
	Name        *string
	Description *string
	Capacity    *int
	IsActive    *bool
}

// UpdateRoom applies the valid subset of the submitted fields. Invalid
// fields are dropped; when nothing valid remains the update fails without
// touching the record.
func (s *RoomService) UpdateRoom(roomID string, input RoomUpdateInput, updatedBy string) (bool, error) {
	updates := map[string]interface{}{}

	if input.Name != nil {
		if cleanName := ValidateRoomName(*input.Name); cleanName != "" {
			updates["name"] = cleanName
		}
	}
	if input.Description != nil {
		if cleanDescription, ok := ValidateRoomDescription(*input.Description); ok {
			updates["description"] = cleanDescription
		}
	}
	if input.Capacity != nil && ValidateRoomCapacity(*input.Capacity) {
		updates["capacity"] = *input.Capacity
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) == 0 {
		return false, nil
	}
	updates["updated_by"] = updatedBy

	return s.roomRepo.UpdateRoom(roomID, updates)
}

// DeleteRoom hard-deletes a room only when no reservation of any status has
// ever referenced it. This referential guard lives here, not in the store.
func (s *RoomService) DeleteRoom(roomID string) (bool, error) {
	room, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		return false, err
	}
	if room == nil {
		return false, nil
	}

	id, err := uuid.Parse(roomID)
	if err != nil {
		return false, fmt.Errorf("invalid room id: %w", err)
	}

	hasReservations, err := s.reservationRepo.HasReservationsForRoom(id)
	if err != nil {
		return false, err
	}
	if hasReservations {
		config.Logger.Info("Refusing to delete room with reservation history",
			zap.String("room_id", roomID),
			zap.String("room_name", room.Name),
		)
		return false, nil
	}

	return s.roomRepo.DeleteRoom(roomID)
}
