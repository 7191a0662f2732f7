package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	apperrors "hotelsite/errors"
	"hotelsite/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return NewGormStore(db)
}

func eachStore(t *testing.T, fn func(t *testing.T, store Store)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryStore()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, newSQLiteStore(t)) })
}

func d(s string) time.Time { return models.MustDate(s) }

func dp(s string) *time.Time {
	v := d(s)
	return &v
}

func seedRoom(t *testing.T, store Store, number string, price float64) *models.Room {
	t.Helper()
	room := &models.Room{
		Name:          "Room " + number,
		RoomNumber:    number,
		RoomType:      models.RoomTypeRoom,
		Capacity:      2,
		PricePerNight: price,
		ManualStatus:  models.ManualStatusAvailable,
		Features:      []string{"wifi"},
	}
	require.NoError(t, store.Rooms().Create(context.Background(), room))
	return room
}

func seedBooking(t *testing.T, store Store, roomID uint, in, out string, status models.BookingStatus) *models.Booking {
	t.Helper()
	b := &models.Booking{
		RoomID:       roomID,
		CheckInDate:  d(in),
		CheckOutDate: d(out),
		GuestName:    "Guest",
		GuestEmail:   "guest@example.com",
		Status:       status,
		TotalPrice:   100,
	}
	require.NoError(t, store.Bookings().Create(context.Background(), b))
	return b
}

func TestRoomRepository(t *testing.T) {
	eachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		cheap := seedRoom(t, store, "101", 30000)
		pricey := seedRoom(t, store, "201", 90000)

		got, err := store.Rooms().GetByID(ctx, cheap.ID)
		require.NoError(t, err)
		assert.Equal(t, "101", got.RoomNumber)
		assert.Equal(t, []string{"wifi"}, []string(got.Features))

		_, err = store.Rooms().GetByID(ctx, 999)
		assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)

		pricey.ManualStatus = models.ManualStatusTaken
		pricey.TakenFrom = dp("2024-07-01")
		require.NoError(t, store.Rooms().Update(ctx, pricey))

		taken, err := store.Rooms().GetByID(ctx, pricey.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ManualStatusTaken, taken.ManualStatus)
		require.NotNil(t, taken.TakenFrom)
		assert.True(t, d("2024-07-01").Equal(*taken.TakenFrom))

		pricey.ClearTakenWindow()
		require.NoError(t, store.Rooms().Update(ctx, pricey))
		got, err = store.Rooms().GetByID(ctx, pricey.ID)
		require.NoError(t, err)
		assert.Nil(t, got.TakenFrom, "cleared window must be persisted")

		all, err := store.Rooms().List(ctx, RoomFilter{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, cheap.ID, all[0].ID, "rooms are listed cheapest first")

		dup := &models.Room{Name: "Dup", RoomNumber: "101", RoomType: models.RoomTypeRoom, Capacity: 1, PricePerNight: 1}
		assert.ErrorIs(t, store.Rooms().Create(ctx, dup), apperrors.ErrDuplicateRoomNumber)

		require.NoError(t, store.Rooms().Delete(ctx, cheap.ID))
		assert.ErrorIs(t, store.Rooms().Delete(ctx, cheap.ID), apperrors.ErrRoomNotFound)
	})
}

func TestBookingRepositoryOverlapFilter(t *testing.T) {
	eachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		room := seedRoom(t, store, "101", 40000)
		b1 := seedBooking(t, store, room.ID, "2024-06-10", "2024-06-12", models.BookingStatusConfirmed)
		seedBooking(t, store, room.ID, "2024-06-12", "2024-06-14", models.BookingStatusCancelled)
		b3 := seedBooking(t, store, room.ID, "2024-06-20", "2024-06-22", models.BookingStatusPending)

		got, err := store.Bookings().List(ctx, BookingFilter{
			RoomID:       room.ID,
			Statuses:     models.OccupyingStatuses(),
			OverlapsFrom: dp("2024-06-11"),
			OverlapsTo:   dp("2024-06-21"),
		})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, b1.ID, got[0].ID)
		assert.Equal(t, b3.ID, got[1].ID)

		got, err = store.Bookings().List(ctx, BookingFilter{
			RoomID:       room.ID,
			Statuses:     models.OccupyingStatuses(),
			OverlapsFrom: dp("2024-06-12"),
			OverlapsTo:   dp("2024-06-14"),
		})
		require.NoError(t, err)
		assert.Empty(t, got, "checkout day is free and cancelled stays never block")

		got, err = store.Bookings().List(ctx, BookingFilter{RoomID: room.ID, ExcludeID: b1.ID, OverlapsTo: dp("2024-06-20")})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestBookingRepositoryUpdateStatus(t *testing.T) {
	eachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		room := seedRoom(t, store, "101", 40000)
		b := seedBooking(t, store, room.ID, "2024-06-10", "2024-06-12", models.BookingStatusPending)

		require.NoError(t, store.Bookings().UpdateStatus(ctx, b.ID, models.BookingStatusCheckedIn))
		got, err := store.Bookings().GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCheckedIn, got.Status)
		assert.True(t, d("2024-06-10").Equal(got.CheckInDate))

		assert.ErrorIs(t, store.Bookings().UpdateStatus(ctx, 404, models.BookingStatusCancelled), apperrors.ErrBookingNotFound)
		_, err = store.Bookings().GetByID(ctx, 404)
		assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
	})
}

func TestWithRoomLock(t *testing.T) {
	eachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		room := seedRoom(t, store, "101", 40000)

		err := store.WithRoomLock(ctx, 999, func(tx Store) error { return nil })
		assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)

		err = store.WithRoomLock(ctx, room.ID, func(tx Store) error {
			b := &models.Booking{RoomID: room.ID, CheckInDate: d("2024-06-10"), CheckOutDate: d("2024-06-11"), Status: models.BookingStatusPending}
			return tx.Bookings().Create(ctx, b)
		})
		require.NoError(t, err)

		got, err := store.Bookings().List(ctx, BookingFilter{RoomID: room.ID})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
