package controllers

import (
	"context"
	"errors"

	"dorm-reservation-backend/audit"
	bleve_repositories "dorm-reservation-backend/bleve/repositories"
	"dorm-reservation-backend/config"
	"dorm-reservation-backend/db/models"
	"dorm-reservation-backend/reservations/services"
	"dorm-reservation-backend/token"
	"dorm-reservation-backend/utils"
	"dorm-reservation-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const availabilityCacheResource = "availability"

type ReservationController struct {
	BookingService      *services.BookingService
	AvailabilityService *services.AvailabilityService
	Notifier            services.ReservationNotifier
	BleveRepo           bleve_repositories.BleveRepositoryInterface
	DB                  *gorm.DB
	Ctx                 context.Context
	RedisClient         *redis.Client
}

// bookingErrorResponse maps the booking sentinel errors onto HTTP statuses
// and user-facing messages. Unknown errors fall through to a 500.
func bookingErrorResponse(c *fiber.Ctx, err error) error {
	type mapping struct {
		target error
		status int
		reason string
	}
	mappings := []mapping{
		{services.ErrRoomNotFound, fiber.StatusNotFound, "Room not found."},
		{services.ErrRoomInactive, fiber.StatusConflict, "Room is not available for booking."},
		{services.ErrInvalidDate, fiber.StatusBadRequest, "Invalid date format."},
		{services.ErrMinStay, fiber.StatusBadRequest, "Check-out must be after check-in."},
		{services.ErrPastCheckIn, fiber.StatusBadRequest, "Check-in date cannot be in the past."},
		{services.ErrRoomUnavailable, fiber.StatusConflict, "Room is already booked for those dates."},
		{services.ErrConflictDuringCommit, fiber.StatusConflict, "Room was just booked by someone else. Please try again."},
		{services.ErrReservationNotFound, fiber.StatusNotFound, "Reservation not found."},
		{services.ErrNotOwner, fiber.StatusForbidden, "This reservation belongs to another user."},
		{services.ErrNotPending, fiber.StatusConflict, "Only pending reservations can be cancelled."},
		{services.ErrInvalidStatus, fiber.StatusBadRequest, "Invalid reservation status."},
	}
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(fiber.Map{
				"message": "Request failed",
				"data":    nil,
				"error":   m.reason,
			})
		}
	}

	config.Logger.Error("Unexpected booking error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Something went wrong",
		"data":    nil,
		"error":   "An internal server error occurred.",
	})
}

func (rc *ReservationController) CreateReservationController(c *fiber.Ctx) error {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "Authentication required",
		})
	}

	type CreateReservationRequest struct {
		RoomID   string `json:"room_id"`
		DateFrom string `json:"date_from"`
		DateTo   string `json:"date_to"`
	}

	var req CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "Invalid request format.",
		})
	}

	reservation, err := rc.BookingService.CreateReservation(payload.UserID, req.RoomID, req.DateFrom, req.DateTo)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	utils.InvalidateCacheAsync(availabilityCacheResource)

	// Reload with room and user attached for the index and the email
	loaded, loadErr := rc.BookingService.GetReservationByID(reservation.ID.String())
	if loadErr == nil && loaded != nil {
		if rc.BleveRepo != nil {
			if err := rc.BleveRepo.IndexSingleReservation(*loaded); err != nil {
				config.Logger.Error("Failed to index new reservation",
					zap.String("reservation_id", loaded.ID.String()), zap.Error(err))
			}
		}
		if rc.Notifier != nil && loaded.Room != nil {
			rc.Notifier.NotifyReservationStatus(
				payload.Email,
				loaded.Room.Name,
				reservation.DateFrom.String(),
				reservation.DateTo.String(),
				models.PendingReservationStatus,
			)
		}
	}

	audit.Record(rc.DB, &payload.UserID, "reservation_created", map[string]interface{}{
		"reservation_id": reservation.ID.String(),
		"room_id":        reservation.RoomID.String(),
		"date_from":      reservation.DateFrom.String(),
		"date_to":        reservation.DateTo.String(),
	}, utils.ClientIP(c))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Reservation created successfully",
		"data":    reservation,
		"error":   nil,
	})
}

// GetMyReservationsController lists the calling user's reservations with
// room details attached.
func (rc *ReservationController) GetMyReservationsController(c *fiber.Ctx) error {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "Authentication required",
		})
	}

	reservations, err := rc.BookingService.GetUserReservations(payload.UserID)
	if err != nil {
		config.Logger.Error("Failed to fetch user reservations",
			zap.String("user_id", payload.UserID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch reservations",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Reservations fetched successfully",
		"data":    reservations,
		"error":   nil,
	})
}

func (rc *ReservationController) GetFilteredReservationsController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid pagination parameters",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	offset := (params.Page - 1) * params.PageSize
	reservations, total, err := rc.BookingService.GetFilteredReservations(params.Filters, true, params.PageSize, offset)
	if err != nil {
		config.Logger.Error("Failed to fetch paginated reservations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch reservations",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Reservations fetched successfully",
		"data":    pagination.NewPaginatedResponse(c, reservations, total, params),
		"error":   nil,
	})
}

// GetSingleReservationController returns one reservation. Customers can
// only see their own; staff can see any.
func (rc *ReservationController) GetSingleReservationController(c *fiber.Ctx) error {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "Authentication required",
		})
	}

	reservation, err := rc.BookingService.GetReservationByID(c.Params("id"))
	if err != nil {
		config.Logger.Error("Failed to fetch reservation", zap.String("id", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch reservation",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}
	if reservation == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Reservation not found",
			"data":    nil,
			"error":   "No reservation with that id.",
		})
	}

	if payload.Role == models.CustomerRole && reservation.UserID != payload.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden",
			"data":    nil,
			"error":   "This reservation belongs to another user.",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Reservation fetched successfully",
		"data":    reservation,
		"error":   nil,
	})
}

func (rc *ReservationController) UpdateReservationStatusController(c *fiber.Ctx) error {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "Authentication required",
		})
	}

	type UpdateStatusRequest struct {
		Status models.ReservationStatus `json:"status"`
	}
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "Invalid request format.",
		})
	}

	reservation, err := rc.BookingService.UpdateReservationStatus(payload.UserID, c.Params("id"), req.Status)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	utils.InvalidateCacheAsync(availabilityCacheResource)

	if rc.BleveRepo != nil {
		if err := rc.BleveRepo.UpdateReservation(*reservation); err != nil {
			config.Logger.Error("Failed to reindex reservation after status change",
				zap.String("reservation_id", reservation.ID.String()), zap.Error(err))
		}
	}

	audit.Record(rc.DB, &payload.UserID, "reservation_status_updated", map[string]interface{}{
		"reservation_id": reservation.ID.String(),
		"new_status":     string(req.Status),
	}, utils.ClientIP(c))

	return c.JSON(fiber.Map{
		"message": "Reservation status updated successfully",
		"data":    reservation,
		"error":   nil,
	})
}

// DeleteReservationController lets a customer withdraw their own pending
// request.
func (rc *ReservationController) DeleteReservationController(c *fiber.Ctx) error {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "Authentication required",
		})
	}

	reservationID := c.Params("id")
	if err := rc.BookingService.DeleteReservation(reservationID, payload.UserID); err != nil {
		return bookingErrorResponse(c, err)
	}

	utils.InvalidateCacheAsync(availabilityCacheResource)

	if rc.BleveRepo != nil {
		if err := rc.BleveRepo.DeleteReservation(reservationID); err != nil {
			config.Logger.Error("Failed to remove reservation from index",
				zap.String("reservation_id", reservationID), zap.Error(err))
		}
	}

	audit.Record(rc.DB, &payload.UserID, "reservation_deleted", map[string]interface{}{
		"reservation_id": reservationID,
	}, utils.ClientIP(c))

	return c.JSON(fiber.Map{
		"message": "Reservation cancelled successfully",
		"data":    nil,
		"error":   nil,
	})
}

// ExportReservationsController writes the filtered reservation list to an
// excel file and sends it as a download.
func (rc *ReservationController) ExportReservationsController(c *fiber.Ctx) error {
	filters := make(map[string]string)
	for _, key := range []string{"status", "room_id", "user_id", "start_date", "end_date"} {
		if value := c.Query(key); value != "" {
			filters[key] = value
		}
	}

	reservations, _, err := rc.BookingService.GetFilteredReservations(filters, false, 0, 0)
	if err != nil {
		config.Logger.Error("Failed to fetch reservations for export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to export reservations",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	headers := []string{"ID", "Room", "User Email", "Check-in", "Check-out", "Status", "Created At"}
	rows := make([][]interface{}, 0, len(reservations))
	for _, reservation := range reservations {
		rows = append(rows, []interface{}{
			reservation.ID.String(),
			reservation.RoomName,
			reservation.UserEmail,
			reservation.DateFrom.String(),
			reservation.DateTo.String(),
			string(reservation.Status),
			reservation.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	filePath, err := utils.GenerateExcel("reservations", headers, rows)
	if err != nil {
		config.Logger.Error("Failed to generate reservations excel file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to export reservations",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	return c.Download(filePath)
}
