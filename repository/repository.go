package repository

import (
	"context"
	"time"

	"hotelsite/models"
)

// RoomFilter narrows room listings. Zero values mean "no constraint".
type RoomFilter struct {
	RoomType    models.RoomType
	MinCapacity int
}

// BookingFilter narrows booking listings. Zero values mean "no constraint".
//
// OverlapsFrom/OverlapsTo select bookings whose [check_in, check_out) intersects the
// range; either side may be nil for an open bound.
type BookingFilter struct {
	RoomID       uint
	RoomIDs      []uint
	Statuses     []models.BookingStatus
	ExcludeID    uint
	OverlapsFrom *time.Time
	OverlapsTo   *time.Time
}

type RoomRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Room, error)
	List(ctx context.Context, filter RoomFilter) ([]models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id uint) error
}

type BookingRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	UpdateStatus(ctx context.Context, id uint, status models.BookingStatus) error
}

// Store is the persistence boundary of the booking core.
type Store interface {
	Rooms() RoomRepository
	Bookings() BookingRepository
	// WithRoomLock runs fn in a transaction that holds an exclusive lock on the
	// room row. Repositories handed to fn are bound to that transaction.
	WithRoomLock(ctx context.Context, roomID uint, fn func(tx Store) error) error
}
