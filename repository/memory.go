package repository

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	apperrors "hotelsite/errors"
	"hotelsite/models"
)

// MemoryStore is an in-process Store used for local runs and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	rooms     map[uint]models.Room
	bookings  map[uint]models.Booking
	nextRoom  uint
	nextBook  uint
	roomLocks sync.Map // uint -> *sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:    make(map[uint]models.Room),
		bookings: make(map[uint]models.Booking),
	}
}

func (s *MemoryStore) Rooms() RoomRepository {
	return memoryRooms{s}
}

func (s *MemoryStore) Bookings() BookingRepository {
	return memoryBookings{s}
}

func (s *MemoryStore) WithRoomLock(ctx context.Context, roomID uint, fn func(tx Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lock, _ := s.roomLocks.LoadOrStore(roomID, &sync.Mutex{})
	mu := lock.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	s.mu.RLock()
	_, ok := s.rooms[roomID]
	s.mu.RUnlock()
	if !ok {
		return apperrors.ErrRoomNotFound
	}
	return fn(s)
}

type memoryRooms struct{ s *MemoryStore }

func (r memoryRooms) GetByID(_ context.Context, id uint) (*models.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	return cloneRoom(room), nil
}

func (r memoryRooms) List(_ context.Context, filter RoomFilter) ([]models.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rooms := make([]models.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		if filter.RoomType != "" && room.RoomType != filter.RoomType {
			continue
		}
		if filter.MinCapacity > 0 && room.Capacity < filter.MinCapacity {
			continue
		}
		rooms = append(rooms, *cloneRoom(room))
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].PricePerNight != rooms[j].PricePerNight {
			return rooms[i].PricePerNight < rooms[j].PricePerNight
		}
		return rooms[i].ID < rooms[j].ID
	})
	return rooms, nil
}

func (r memoryRooms) Create(_ context.Context, room *models.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.roomNumberTaken(room.RoomNumber, 0) {
		return apperrors.ErrDuplicateRoomNumber
	}
	r.s.nextRoom++
	now := time.Now()
	room.ID = r.s.nextRoom
	room.CreatedAt, room.UpdatedAt = now, now
	if room.ManualStatus == "" {
		room.ManualStatus = models.ManualStatusAvailable
	}
	r.s.rooms[room.ID] = *cloneRoom(*room)
	return nil
}

func (r memoryRooms) Update(_ context.Context, room *models.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.rooms[room.ID]
	if !ok {
		return apperrors.ErrRoomNotFound
	}
	if r.s.roomNumberTaken(room.RoomNumber, room.ID) {
		return apperrors.ErrDuplicateRoomNumber
	}
	room.CreatedAt = existing.CreatedAt
	room.UpdatedAt = time.Now()
	r.s.rooms[room.ID] = *cloneRoom(*room)
	return nil
}

func (r memoryRooms) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rooms[id]; !ok {
		return apperrors.ErrRoomNotFound
	}
	delete(r.s.rooms, id)
	return nil
}

func (s *MemoryStore) roomNumberTaken(number string, exceptID uint) bool {
	for id, room := range s.rooms {
		if id != exceptID && room.RoomNumber == number {
			return true
		}
	}
	return false
}

type memoryBookings struct{ s *MemoryStore }

func (b memoryBookings) GetByID(_ context.Context, id uint) (*models.Booking, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	booking, ok := b.s.bookings[id]
	if !ok {
		return nil, apperrors.ErrBookingNotFound
	}
	return &booking, nil
}

func (b memoryBookings) List(_ context.Context, filter BookingFilter) ([]models.Booking, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	bookings := make([]models.Booking, 0)
	for _, booking := range b.s.bookings {
		if matchBooking(booking, filter) {
			bookings = append(bookings, booking)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].CheckInDate.Equal(bookings[j].CheckInDate) {
			return bookings[i].CheckInDate.Before(bookings[j].CheckInDate)
		}
		return bookings[i].ID < bookings[j].ID
	})
	return bookings, nil
}

func matchBooking(b models.Booking, f BookingFilter) bool {
	if f.RoomID != 0 && b.RoomID != f.RoomID {
		return false
	}
	if len(f.RoomIDs) > 0 && !slices.Contains(f.RoomIDs, b.RoomID) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, b.Status) {
		return false
	}
	if f.ExcludeID != 0 && b.ID == f.ExcludeID {
		return false
	}
	if f.OverlapsTo != nil && !b.CheckInDate.Before(*f.OverlapsTo) {
		return false
	}
	if f.OverlapsFrom != nil && !b.CheckOutDate.After(*f.OverlapsFrom) {
		return false
	}
	return true
}

func (b memoryBookings) Create(_ context.Context, booking *models.Booking) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	b.s.nextBook++
	now := time.Now()
	booking.ID = b.s.nextBook
	booking.CreatedAt, booking.UpdatedAt = now, now
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	b.s.bookings[booking.ID] = *booking
	return nil
}

func (b memoryBookings) UpdateStatus(_ context.Context, id uint, status models.BookingStatus) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	booking, ok := b.s.bookings[id]
	if !ok {
		return apperrors.ErrBookingNotFound
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	b.s.bookings[id] = booking
	return nil
}

func cloneRoom(room models.Room) *models.Room {
	if room.TakenFrom != nil {
		from := *room.TakenFrom
		room.TakenFrom = &from
	}
	if room.TakenUntil != nil {
		until := *room.TakenUntil
		room.TakenUntil = &until
	}
	room.Features = slices.Clone(room.Features)
	return &room
}
