package services

import (
	"context"
	"testing"
	"time"

	"hotelsite/models"
	"hotelsite/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testToday = models.MustDate("2024-06-01")

type fixture struct {
	store     *repository.MemoryStore
	cache     Cache
	cal       Calendar
	avail     *AvailabilityService
	rooms     *RoomService
	bookings  *BookingService
	dashboard *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithCache(t, NoopCache{})
}

func newFixtureWithCache(t *testing.T, cache Cache) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	cal := FixedCalendar(testToday)
	log := zerolog.Nop()
	return &fixture{
		store:     store,
		cache:     cache,
		cal:       cal,
		avail:     NewAvailabilityService(store, cache, log),
		rooms:     NewRoomService(store, cache, cal, log),
		bookings:  NewBookingService(store, NewLocalRoomLocker(), cache, nil, cal, log),
		dashboard: NewDashboardService(store, cache, log),
	}
}

func d(s string) time.Time { return models.MustDate(s) }

func dp(s string) *time.Time {
	v := d(s)
	return &v
}

type roomOpt func(*models.Room)

func suite() roomOpt { return func(r *models.Room) { r.RoomType = models.RoomTypeSuite } }

func capacity(n int) roomOpt { return func(r *models.Room) { r.Capacity = n } }

func named(name string) roomOpt { return func(r *models.Room) { r.Name = name } }

func taken(from, until *time.Time) roomOpt {
	return func(r *models.Room) {
		r.ManualStatus = models.ManualStatusTaken
		r.TakenFrom, r.TakenUntil = from, until
	}
}

func (f *fixture) addRoom(t *testing.T, number string, price float64, opts ...roomOpt) *models.Room {
	t.Helper()
	room := &models.Room{
		Name:          "Room " + number,
		RoomNumber:    number,
		RoomType:      models.RoomTypeRoom,
		Capacity:      2,
		PricePerNight: price,
		ManualStatus:  models.ManualStatusAvailable,
	}
	for _, opt := range opts {
		opt(room)
	}
	require.NoError(t, f.store.Rooms().Create(context.Background(), room))
	return room
}

// addBooking writes straight to the store, bypassing the writer's checks.
func (f *fixture) addBooking(t *testing.T, roomID uint, in, out string, status models.BookingStatus, total float64) *models.Booking {
	t.Helper()
	b := &models.Booking{
		RoomID:       roomID,
		CheckInDate:  d(in),
		CheckOutDate: d(out),
		GuestName:    "Guest",
		GuestEmail:   "guest@example.com",
		Status:       status,
		TotalPrice:   total,
	}
	require.NoError(t, f.store.Bookings().Create(context.Background(), b))
	return b
}

func bookingInput(roomID uint, in, out string) CreateBookingInput {
	return CreateBookingInput{
		RoomID:     roomID,
		CheckIn:    d(in),
		CheckOut:   d(out),
		GuestName:  "An Nguyen",
		GuestEmail: "an@example.com",
		GuestPhone: "0901234567",
		Guests:     2,
	}
}

func roomIDs(rooms []models.Room) []uint {
	ids := make([]uint, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	return ids
}
