package services

import (
	"strings"
	"time"
)

// strictDateLayouts are the formats a date string may arrive in, tried in
// order. ISO comes first; the US month-first forms are deliberately tried
// before the day-first forms, so an ambiguous "01/02/2025" reads as
// January 2nd. Changing market conventions means reordering this slice.
var strictDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"2006.01.02",
	"01-02-2006",
	"02-01-2006",
}

// lenientDateLayouts are only consulted when no strict layout matched.
var lenientDateLayouts = []string{
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// NormalizeDate parses heterogeneous date input into a canonical calendar
// date at midnight UTC. A strict layout only matches when the string parses
// exactly under it: time.Parse rejects day-of-month overflow and partial
// matches outright, so "2025-02-30" and "2025-13-40" are invalid rather
// than rolled forward.
func NormalizeDate(input string) (time.Time, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, false
	}

	for _, layout := range strictDateLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return truncateToDate(t), true
		}
	}

	for _, layout := range lenientDateLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return truncateToDate(t), true
		}
	}

	return time.Time{}, false
}

func truncateToDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a canonical date back to ISO YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
