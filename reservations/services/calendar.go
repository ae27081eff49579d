package services

import (
	"fmt"
	"time"

	"dorm-reservation-backend/db/models"
)

// DayAvailability is one day of a room's monthly calendar.
type DayAvailability struct {
	Date         string `json:"date"`
	Available    bool   `json:"available"`
	ConflictInfo string `json:"conflict_info,omitempty"`
}

// RoomAvailabilityCalendar is the month grid for one room, keyed by
// day-of-month.
type RoomAvailabilityCalendar struct {
	Room  *models.Room            `json:"room"`
	Month int                     `json:"month"`
	Year  int                     `json:"year"`
	Days  map[int]DayAvailability `json:"calendar"`
}

// GetRoomAvailabilityCalendar projects the room's active reservations onto
// every day of the given month. A day is unavailable when it falls inside
// any pending/approved stay; the checkout day itself stays available.
func (s *AvailabilityService) GetRoomAvailabilityCalendar(roomID string, month, year int) (*RoomAvailabilityCalendar, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidDate
	}

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

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	daysInMonth := monthEnd.Day()

	reservations, err := s.reservationRepo.GetActiveReservationsInRange(room.ID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	calendar := &RoomAvailabilityCalendar{
		Room:  room,
		Month: month,
		Year:  year,
		Days:  make(map[int]DayAvailability, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		entry := DayAvailability{
			Date:      FormatDate(date),
			Available: true,
		}
		for _, reservation := range reservations {
			if !date.Before(reservation.DateFrom.Time()) && date.Before(reservation.DateTo.Time()) {
				entry.Available = false
				entry.ConflictInfo = fmt.Sprintf("Booked until %s", reservation.DateTo.String())
				break
			}
		}
		calendar.Days[day] = entry
	}

	return calendar, nil
}

// AvailableDateRange is a maximal run of consecutive bookable days.
type AvailableDateRange struct {
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	Days     int    `json:"days"`
}

const defaultAvailabilityWindowDays = 30

// FindAvailableDateRanges scans the next daysAhead days starting today and
// coalesces consecutive free days into ranges. daysAhead <= 0 falls back to
// the default 30-day window.
func (s *AvailabilityService) FindAvailableDateRanges(roomID string, daysAhead int, now time.Time) ([]AvailableDateRange, error) {
	if daysAhead <= 0 {
		daysAhead = defaultAvailabilityWindowDays
	}

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

	windowStart := truncateToDate(now.UTC())
	windowEnd := windowStart.AddDate(0, 0, daysAhead)

	reservations, err := s.reservationRepo.GetActiveReservationsInRange(room.ID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	booked := func(date time.Time) bool {
		for _, reservation := range reservations {
			if !date.Before(reservation.DateFrom.Time()) && date.Before(reservation.DateTo.Time()) {
				return true
			}
		}
		return false
	}

	ranges := []AvailableDateRange{}
	var runStart time.Time
	runDays := 0

	flush := func() {
		if runDays == 0 {
			return
		}
		ranges = append(ranges, AvailableDateRange{
			DateFrom: FormatDate(runStart),
			DateTo:   FormatDate(runStart.AddDate(0, 0, runDays-1)),
			Days:     runDays,
		})
		runDays = 0
	}

	for offset := 0; offset < daysAhead; offset++ {
		date := windowStart.AddDate(0, 0, offset)
		if booked(date) {
			flush()
			continue
		}
		if runDays == 0 {
			runStart = date
		}
		runDays++
	}
	flush()

	return ranges, nil
}
