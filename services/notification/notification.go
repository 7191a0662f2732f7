package notification

import (
	"context"
	"fmt"

	"hotelsite/models"

	"github.com/rs/zerolog"
)

// Event names a booking lifecycle change.
type Event string

const (
	EventBookingCreated   Event = "booking.created"
	EventBookingStatus    Event = "booking.status_changed"
	EventBookingCancelled Event = "booking.cancelled"
)

// Service delivers booking notifications to guests or staff. Delivery failures
// are reported to the caller but never undo the booking write.
type Service interface {
	Notify(ctx context.Context, event Event, booking *models.Booking) error
}

// LogService writes notifications to the log. Email delivery lives outside this service.
type LogService struct {
	log zerolog.Logger
}

func NewLogService(log zerolog.Logger) *LogService {
	return &LogService{log: log}
}

func (s *LogService) Notify(_ context.Context, event Event, booking *models.Booking) error {
	if booking == nil {
		return fmt.Errorf("notify %s: nil booking", event)
	}
	s.log.Info().
		Str("event", string(event)).
		Uint("booking_id", booking.ID).
		Uint("room_id", booking.RoomID).
		Str("guest_email", booking.GuestEmail).
		Msg(NewMessageBuilder(event, booking).Build())
	return nil
}

type MessageBuilder struct {
	event   Event
	booking *models.Booking
}

func NewMessageBuilder(event Event, booking *models.Booking) *MessageBuilder {
	return &MessageBuilder{
		event:   event,
		booking: booking,
	}
}

func (b *MessageBuilder) Build() string {
	in := b.booking.CheckInDate.Format(models.DateLayout)
	out := b.booking.CheckOutDate.Format(models.DateLayout)
	switch b.event {
	case EventBookingCreated:
		return fmt.Sprintf("Booking #%d received for room %d, %s to %s, total %.2f.",
			b.booking.ID, b.booking.RoomID, in, out, b.booking.TotalPrice)
	case EventBookingCancelled:
		return fmt.Sprintf("Booking #%d for room %d, %s to %s, was cancelled.",
			b.booking.ID, b.booking.RoomID, in, out)
	default:
		return fmt.Sprintf("Booking #%d is now %s.", b.booking.ID, b.booking.Status)
	}
}
