package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"dorm-reservation-backend/config"
	"dorm-reservation-backend/reservations/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// calendarCacheTTL bounds staleness between mutations and the async cache
// invalidation that follows them.
const calendarCacheTTL = 10 * time.Minute

// GetRoomCalendarController serves the month availability grid, cached in
// redis per room and month.
func (rc *ReservationController) GetRoomCalendarController(c *fiber.Ctx) error {
	roomID := c.Params("id")
	now := time.Now().UTC()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())

	// Out-of-range months wrap into the neighboring year, so month=13
	// of 2025 means January 2026.
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}

	cacheKey := fmt.Sprintf("availability:%s:%d-%02d", roomID, year, month)
	if cached, err := rc.RedisClient.Get(rc.Ctx, cacheKey).Result(); err == nil {
		var calendar services.RoomAvailabilityCalendar
		if err := json.Unmarshal([]byte(cached), &calendar); err == nil {
			return c.JSON(fiber.Map{
				"message": "Availability fetched successfully",
				"data":    calendar,
				"error":   nil,
			})
		}
	}

	calendar, err := rc.AvailabilityService.GetRoomAvailabilityCalendar(roomID, month, year)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	if encoded, err := json.Marshal(calendar); err == nil {
		if err := rc.RedisClient.Set(rc.Ctx, cacheKey, encoded, calendarCacheTTL).Err(); err != nil {
			config.Logger.Warn("Failed to cache availability calendar",
				zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return c.JSON(fiber.Map{
		"message": "Availability fetched successfully",
		"data":    calendar,
		"error":   nil,
	})
}

// GetAvailableRangesController returns the bookable date ranges for a room
// over the coming weeks.
func (rc *ReservationController) GetAvailableRangesController(c *fiber.Ctx) error {
	roomID := c.Params("id")
	days := c.QueryInt("days", 0)

	ranges, err := rc.AvailabilityService.FindAvailableDateRanges(roomID, days, time.Now())
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Available ranges fetched successfully",
		"data":    ranges,
		"error":   nil,
	})
}

// DebugRoomAvailabilityController lists every reservation blocking a
// candidate range. Staff-only; meant for support troubleshooting.
func (rc *ReservationController) DebugRoomAvailabilityController(c *fiber.Ctx) error {
	roomID := c.Params("id")
	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")

	debug, err := rc.AvailabilityService.DebugRoomAvailability(roomID, dateFrom, dateTo)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Availability debug fetched successfully",
		"data":    debug,
		"error":   nil,
	})
}
