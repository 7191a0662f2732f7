package models

import "time"

type Booking struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	RoomID          uint          `json:"roomId" gorm:"index;not null"`
	CheckInDate     time.Time     `json:"checkInDate" gorm:"type:date;index;not null"`
	CheckOutDate    time.Time     `json:"checkOutDate" gorm:"type:date;index;not null"`
	GuestName       string        `json:"guestName" gorm:"size:128"`
	GuestEmail      string        `json:"guestEmail" gorm:"size:256"`
	GuestPhone      string        `json:"guestPhone" gorm:"size:32"`
	Guests          int           `json:"guests"`
	Status          BookingStatus `json:"status" gorm:"size:16;index;not null;default:pending"`
	TotalPrice      float64       `json:"totalPrice"`
	SpecialRequests string        `json:"specialRequests" gorm:"type:text"`
	CreatedAt       time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Occupying reports whether the booking currently claims its dates.
func (b *Booking) Occupying() bool {
	return b.Status.Occupying()
}

// Overlaps reports whether the booking's stay intersects [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.CheckInDate, b.CheckOutDate, start, end)
}

// CoversDay reports whether the guest stays the night of day.
func (b *Booking) CoversDay(day time.Time) bool {
	return !day.Before(b.CheckInDate) && day.Before(b.CheckOutDate)
}

// Nights is the length of stay.
func (b *Booking) Nights() int {
	return Nights(b.CheckInDate, b.CheckOutDate)
}
