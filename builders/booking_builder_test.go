package builders

import (
	"testing"
	"time"

	"hotelsite/models"

	"github.com/stretchr/testify/assert"
)

func TestBookingBuilder(t *testing.T) {
	checkIn := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)
	b := NewBookingBuilder().
		WithRoom(3).
		WithStay(checkIn, models.MustDate("2024-06-13")).
		WithGuestInfo("  An Nguyen ", " An@Example.com", "0901234567").
		WithGuests(2).
		WithSpecialRequests(" late arrival ").
		PricedPerNight(40000).
		Build()

	assert.Equal(t, uint(3), b.RoomID)
	assert.Equal(t, models.MustDate("2024-06-10"), b.CheckInDate)
	assert.Equal(t, 3, b.Nights())
	assert.Equal(t, 120000.0, b.TotalPrice)
	assert.Equal(t, "An Nguyen", b.GuestName)
	assert.Equal(t, "an@example.com", b.GuestEmail)
	assert.Equal(t, "late arrival", b.SpecialRequests)
	assert.Equal(t, models.BookingStatusPending, b.Status)
}
