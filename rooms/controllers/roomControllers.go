package controllers

import (
	"context"

	"dorm-reservation-backend/audit"
	bleve_repositories "dorm-reservation-backend/bleve/repositories"
	"dorm-reservation-backend/config"
	"dorm-reservation-backend/rooms/repositories"
	"dorm-reservation-backend/rooms/services"
	"dorm-reservation-backend/token"
	"dorm-reservation-backend/utils"
	"dorm-reservation-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// availabilityCacheResource is the redis key prefix for cached calendars;
// any room mutation invalidates the whole resource.
const availabilityCacheResource = "availability"

type RoomController struct {
	RoomService *services.RoomService
	RoomRepo    repositories.RoomRepository
	DB          *gorm.DB
	Ctx         context.Context
	RedisClient *redis.Client
	BleveRepo   bleve_repositories.BleveRepositoryInterface
}

func (rc *RoomController) CreateRoomController(c *fiber.Ctx) error {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "Authentication required",
		})
	}

	type CreateRoomRequest struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Capacity    int    `json:"capacity"`
	}

	var req CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "Invalid request format.",
		})
	}

	existing, err := rc.RoomRepo.GetRoomByName(services.ValidateRoomName(req.Name))
	if err != nil {
		config.Logger.Error("Failed to check for duplicate room name", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create room",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Failed to create room",
			"data":    nil,
			"error":   "A room with that name already exists.",
		})
	}

	room, err := rc.RoomService.CreateRoom(req.Name, req.Description, req.Capacity, payload.Email)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Failed to create room",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if err := rc.BleveRepo.IndexSingleRoom(*room); err != nil {
		config.Logger.Error("Failed to index new room", zap.String("room_id", room.ID.String()), zap.Error(err))
	}
	utils.InvalidateCacheAsync(availabilityCacheResource)

	audit.Record(rc.DB, &payload.UserID, "room_created", map[string]interface{}{
		"room_id":   room.ID.String(),
		"room_name": room.Name,
	}, utils.ClientIP(c))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Room created successfully",
		"data":    room,
		"error":   nil,
	})
}

func (rc *RoomController) GetFilteredRoomsController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid pagination parameters",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	offset := (params.Page - 1) * params.PageSize
	rooms, total, err := rc.RoomRepo.GetFilteredRooms(params.Filters, true, params.PageSize, offset)
	if err != nil {
		config.Logger.Error("Failed to fetch paginated rooms", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch rooms",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Rooms fetched successfully",
		"data":    pagination.NewPaginatedResponse(c, rooms, total, params),
		"error":   nil,
	})
}

// GetActiveRoomsController lists only the rooms currently open for booking;
// this is what customers browse.
func (rc *RoomController) GetActiveRoomsController(c *fiber.Ctx) error {
	rooms, err := rc.RoomRepo.GetActiveRooms()
	if err != nil {
		config.Logger.Error("Failed to fetch active rooms", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch rooms",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Rooms fetched successfully",
		"data":    rooms,
		"error":   nil,
	})
}

func (rc *RoomController) GetSingleRoomController(c *fiber.Ctx) error {
	room, err := rc.RoomRepo.GetRoomByID(c.Params("id"))
	if err != nil {
		config.Logger.Error("Failed to fetch room", zap.String("id", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch room",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}
	if room == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Room not found",
			"data":    nil,
			"error":   "No room with that id.",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Room fetched successfully",
		"data":    room,
		"error":   nil,
	})
}

func (rc *RoomController) UpdateRoomController(c *fiber.Ctx) error {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "Authentication required",
		})
	}

	var input services.RoomUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "Invalid request format.",
		})
	}

	roomID := c.Params("id")
	updated, err := rc.RoomService.UpdateRoom(roomID, input, payload.Email)
	if err != nil {
		config.Logger.Error("Failed to update room", zap.String("id", roomID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update room",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}
	if !updated {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Failed to update room",
			"data":    nil,
			"error":   "No valid fields to update, or room does not exist.",
		})
	}

	room, err := rc.RoomRepo.GetRoomByID(roomID)
	if err == nil && room != nil {
		if err := rc.BleveRepo.UpdateRoom(*room); err != nil {
			config.Logger.Error("Failed to reindex updated room", zap.String("room_id", roomID), zap.Error(err))
		}
	}
	utils.InvalidateCacheAsync(availabilityCacheResource)

	audit.Record(rc.DB, &payload.UserID, "room_updated", map[string]interface{}{
		"room_id": roomID,
	}, utils.ClientIP(c))

	return c.JSON(fiber.Map{
		"message": "Room updated successfully",
		"data":    room,
		"error":   nil,
	})
}

// DeleteRoomController hard-deletes a room that has never been reserved.
// Rooms with history should be deactivated instead.
func (rc *RoomController) DeleteRoomController(c *fiber.Ctx) error {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "Authentication required",
		})
	}

	roomID := c.Params("id")
	deleted, err := rc.RoomService.DeleteRoom(roomID)
	if err != nil {
		config.Logger.Error("Failed to delete room", zap.String("id", roomID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete room",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}
	if !deleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Failed to delete room",
			"data":    nil,
			"error":   "Room does not exist or has reservation history. Deactivate it instead.",
		})
	}

	if err := rc.BleveRepo.DeleteRoom(roomID); err != nil {
		config.Logger.Error("Failed to remove room from index", zap.String("room_id", roomID), zap.Error(err))
	}
	utils.InvalidateCacheAsync(availabilityCacheResource)

	audit.Record(rc.DB, &payload.UserID, "room_deleted", map[string]interface{}{
		"room_id": roomID,
	}, utils.ClientIP(c))

	return c.JSON(fiber.Map{
		"message": "Room deleted successfully",
		"data":    nil,
		"error":   nil,
	})
}

// ExportRoomsController writes the full room list to an excel file and
// sends it as a download.
func (rc *RoomController) ExportRoomsController(c *fiber.Ctx) error {
	rooms, err := rc.RoomRepo.GetAllRooms()
	if err != nil {
		config.Logger.Error("Failed to fetch rooms for export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to export rooms",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	headers := []string{"ID", "Name", "Description", "Capacity", "Active", "Created At"}
	rows := make([][]interface{}, 0, len(rooms))
	for _, room := range rooms {
		rows = append(rows, []interface{}{
			room.ID.String(),
			room.Name,
			room.Description,
			room.Capacity,
			room.IsActive,
			room.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	filePath, err := utils.GenerateExcel("rooms", headers, rows)
	if err != nil {
		config.Logger.Error("Failed to generate rooms excel file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to export rooms",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	return c.Download(filePath)
}
