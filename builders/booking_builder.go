package builders

import (
	"strings"
	"time"

	"hotelsite/models"
)

// BookingBuilder giúp tạo booking theo từng bước
type BookingBuilder struct {
	booking *models.Booking
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{Status: models.BookingStatusPending},
	}
}

func (b *BookingBuilder) WithRoom(roomID uint) *BookingBuilder {
	b.booking.RoomID = roomID
	return b
}

// WithStay sets the half-open stay [checkIn, checkOut) as calendar dates.
func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time) *BookingBuilder {
	b.booking.CheckInDate = models.DateOf(checkIn)
	b.booking.CheckOutDate = models.DateOf(checkOut)
	return b
}

func (b *BookingBuilder) WithGuestInfo(name, email, phone string) *BookingBuilder {
	b.booking.GuestName = strings.TrimSpace(name)
	b.booking.GuestEmail = strings.ToLower(strings.TrimSpace(email))
	b.booking.GuestPhone = strings.TrimSpace(phone)
	return b
}

func (b *BookingBuilder) WithGuests(guests int) *BookingBuilder {
	b.booking.Guests = guests
	return b
}

func (b *BookingBuilder) WithSpecialRequests(requests string) *BookingBuilder {
	b.booking.SpecialRequests = strings.TrimSpace(requests)
	return b
}

// PricedPerNight sets the total to nights × nightly price. Call it after WithStay.
func (b *BookingBuilder) PricedPerNight(pricePerNight float64) *BookingBuilder {
	b.booking.TotalPrice = float64(b.booking.Nights()) * pricePerNight
	return b
}

// Build tạo booking hoàn chỉnh
func (b *BookingBuilder) Build() *models.Booking {
	return b.booking
}
