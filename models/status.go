package models

import "fmt"

// RoomType separates standard rooms from suites.
type RoomType string

const (
	RoomTypeRoom  RoomType = "room"
	RoomTypeSuite RoomType = "suite"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeRoom, RoomTypeSuite:
		return true
	}
	return false
}

// ParseRoomType validates a room type coming from a request.
func ParseRoomType(s string) (RoomType, error) {
	t := RoomType(s)
	if !t.Valid() {
		return "", fmt.Errorf("invalid room type %q", s)
	}
	return t, nil
}

// ManualStatus is the admin-controlled availability flag of a room.
type ManualStatus string

const (
	ManualStatusAvailable ManualStatus = "available"
	ManualStatusTaken     ManualStatus = "taken"
)

func (s ManualStatus) Valid() bool {
	switch s {
	case ManualStatusAvailable, ManualStatusTaken:
		return true
	}
	return false
}

// ParseManualStatus validates a manual status coming from a request.
func ParseManualStatus(s string) (ManualStatus, error) {
	st := ManualStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid room status %q", s)
	}
	return st, nil
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// AllBookingStatuses lists every status in lifecycle order.
var AllBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCheckedIn,
	BookingStatusCheckedOut,
	BookingStatusCancelled,
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn,
		BookingStatusCheckedOut, BookingStatusCancelled:
		return true
	}
	return false
}

// Occupying reports whether a booking in this status claims its calendar days.
func (s BookingStatus) Occupying() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn:
		return true
	case BookingStatusCheckedOut, BookingStatusCancelled:
		return false
	}
	return false
}

// OccupyingStatuses returns the statuses that block availability.
func OccupyingStatuses() []BookingStatus {
	return []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn}
}

// ParseBookingStatus validates a booking status coming from a request.
func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid booking status %q", s)
	}
	return st, nil
}
