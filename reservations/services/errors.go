package services

import "errors"

// Booking failures are sentinel errors so handlers can translate each kind
// into its own user-facing message instead of a blanket "booking failed".
var (
	// ErrRoomNotFound: the room id does not resolve to any room.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomInactive: the room exists but is not bookable.
	ErrRoomInactive = errors.New("room is not active")

	// ErrInvalidDate: a date string matched none of the accepted formats.
	ErrInvalidDate = errors.New("invalid date")

	// ErrMinStay: check-out must be strictly after check-in (one night minimum).
	ErrMinStay = errors.New("stay must be at least one night")

	// ErrPastCheckIn: check-in date is before today.
	ErrPastCheckIn = errors.New("check-in date is in the past")

	// ErrRoomUnavailable: an overlapping pending/approved reservation exists.
	ErrRoomUnavailable = errors.New("room not available on selected dates")

	// ErrConflictDuringCommit: the conflict check passed but the insert was
	// rejected by the store's range constraint, meaning a concurrent request
	// won the race. Callers may retry once.
	ErrConflictDuringCommit = errors.New("conflicting reservation committed concurrently")

	// ErrNotOwner: the reservation exists but belongs to another user.
	ErrNotOwner = errors.New("reservation is not owned by this user")

	// ErrNotPending: only pending reservations can be cancelled by their owner.
	ErrNotPending = errors.New("reservation is no longer pending")

	// ErrReservationNotFound: the reservation id does not resolve.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidStatus: the requested status is not an assignable one.
	ErrInvalidStatus = errors.New("invalid reservation status")
)
