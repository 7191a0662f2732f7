package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "hotelsite/errors"
	"hotelsite/models"
	"hotelsite/repository"
	"hotelsite/validator"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// AvailabilityQuery filters the public room listing. CheckIn and CheckOut are set
// together or not at all.
type AvailabilityQuery struct {
	CheckIn     *time.Time
	CheckOut    *time.Time
	RoomType    models.RoomType
	MinCapacity int
	Search      string
}

type AvailabilityService struct {
	store repository.Store
	cache Cache
	log   zerolog.Logger
	group singleflight.Group
}

func NewAvailabilityService(store repository.Store, cache Cache, log zerolog.Logger) *AvailabilityService {
	if cache == nil {
		cache = NoopCache{}
	}
	return &AvailabilityService{store: store, cache: cache, log: log}
}

// IsAvailable reports whether the room can be booked for [start, end). Bookings with
// excludeBookingID are ignored so an existing booking can be re-checked against the rest.
func (s *AvailabilityService) IsAvailable(ctx context.Context, roomID uint, start, end time.Time, excludeBookingID uint) (bool, error) {
	if err := validator.ValidateDateRange(start, end); err != nil {
		return false, err
	}
	room, err := s.store.Rooms().GetByID(ctx, roomID)
	if err != nil {
		return false, wrapStoreError(err)
	}
	return checkAvailability(ctx, s.store, room, start, end, excludeBookingID)
}

// checkAvailability runs against whatever store it is given, so the booking writer can
// call it inside its locked transaction.
func checkAvailability(ctx context.Context, store repository.Store, room *models.Room, start, end time.Time, excludeBookingID uint) (bool, error) {
	if room.BlocksRange(start, end) {
		return false, nil
	}
	bookings, err := store.Bookings().List(ctx, repository.BookingFilter{
		RoomID:       room.ID,
		Statuses:     models.OccupyingStatuses(),
		ExcludeID:    excludeBookingID,
		OverlapsFrom: &start,
		OverlapsTo:   &end,
	})
	if err != nil {
		return false, apperrors.Internal("failed to load bookings", err)
	}
	return roomFree(room, bookings, start, end, excludeBookingID), nil
}

// roomFree is the availability rule over already loaded bookings.
func roomFree(room *models.Room, bookings []models.Booking, start, end time.Time, excludeBookingID uint) bool {
	if room.BlocksRange(start, end) {
		return false
	}
	for i := range bookings {
		b := &bookings[i]
		if b.RoomID != room.ID || b.ID == excludeBookingID || !b.Occupying() {
			continue
		}
		if b.Overlaps(start, end) {
			return false
		}
	}
	return true
}

// ListAvailable returns the public room listing.
//
// With a date range only rooms free for the whole stay are returned, cheapest first.
// Without one every matching room is returned, rooms flagged available ahead of rooms
// flagged taken, each group cheapest first.
func (s *AvailabilityService) ListAvailable(ctx context.Context, q AvailabilityQuery) ([]models.Room, error) {
	if (q.CheckIn == nil) != (q.CheckOut == nil) {
		return nil, apperrors.Validation("check-in and check-out must be given together", apperrors.ErrMissingRequired)
	}
	if q.CheckIn != nil {
		if err := validator.ValidateDateRange(*q.CheckIn, *q.CheckOut); err != nil {
			return nil, err
		}
	}
	if q.RoomType != "" && !q.RoomType.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid room type %q", q.RoomType), apperrors.ErrInvalidInput)
	}

	rooms, err := s.catalog(ctx, repository.RoomFilter{RoomType: q.RoomType, MinCapacity: q.MinCapacity})
	if err != nil {
		return nil, err
	}
	rooms = filterSearch(rooms, q.Search)

	if q.CheckIn == nil {
		sortByManualStatus(rooms)
		return rooms, nil
	}
	return s.freeRooms(ctx, rooms, *q.CheckIn, *q.CheckOut)
}

func (s *AvailabilityService) freeRooms(ctx context.Context, rooms []models.Room, start, end time.Time) ([]models.Room, error) {
	if len(rooms) == 0 {
		return rooms, nil
	}
	ids := make([]uint, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	bookings, err := s.store.Bookings().List(ctx, repository.BookingFilter{
		RoomIDs:      ids,
		Statuses:     models.OccupyingStatuses(),
		OverlapsFrom: &start,
		OverlapsTo:   &end,
	})
	if err != nil {
		return nil, apperrors.Internal("failed to load bookings", err)
	}

	byRoom := make(map[uint][]models.Booking, len(rooms))
	for _, b := range bookings {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}
	free := make([]models.Room, 0, len(rooms))
	for i := range rooms {
		if roomFree(&rooms[i], byRoom[rooms[i].ID], start, end, 0) {
			free = append(free, rooms[i])
		}
	}
	sort.SliceStable(free, func(i, j int) bool { return cheaper(free[i], free[j]) })
	return free, nil
}

// catalog loads the room list through the read cache. Concurrent misses for the same
// filter share one store query.
func (s *AvailabilityService) catalog(ctx context.Context, filter repository.RoomFilter) ([]models.Room, error) {
	key := fmt.Sprintf("%s%s:%d", roomListKeyPrefix, filter.RoomType, filter.MinCapacity)

	var rooms []models.Room
	if ok, err := s.cache.Get(ctx, key, &rooms); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("room list cache read failed")
	} else if ok {
		return rooms, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// the result is shared by every waiter on key, so it outlives the first caller
		loadCtx := context.WithoutCancel(ctx)
		rooms, err := s.store.Rooms().List(loadCtx, filter)
		if err != nil {
			return nil, apperrors.Internal("failed to load rooms", err)
		}
		if err := s.cache.Set(loadCtx, key, rooms, roomListTTL); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("room list cache write failed")
		}
		return rooms, nil
	})
	if err != nil {
		return nil, err
	}
	shared := v.([]models.Room)
	// callers sort and filter in place
	out := make([]models.Room, len(shared))
	copy(out, shared)
	return out, nil
}

func normalizeSearch(s string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(s)))
}

func filterSearch(rooms []models.Room, search string) []models.Room {
	needle := normalizeSearch(search)
	if needle == "" {
		return rooms
	}
	out := rooms[:0]
	for _, r := range rooms {
		if strings.Contains(normalizeSearch(r.Name), needle) || strings.Contains(normalizeSearch(r.RoomNumber), needle) {
			out = append(out, r)
		}
	}
	return out
}

func cheaper(a, b models.Room) bool {
	if a.PricePerNight != b.PricePerNight {
		return a.PricePerNight < b.PricePerNight
	}
	return a.ID < b.ID
}

// sortByManualStatus groups on the stored flag; a taken window that has expired or not
// started yet still sorts with the taken rooms.
func sortByManualStatus(rooms []models.Room) {
	sort.SliceStable(rooms, func(i, j int) bool {
		ai := rooms[i].ManualStatus == models.ManualStatusAvailable
		aj := rooms[j].ManualStatus == models.ManualStatusAvailable
		if ai != aj {
			return ai
		}
		return cheaper(rooms[i], rooms[j])
	})
}

// wrapStoreError maps repository sentinels onto application errors.
func wrapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, apperrors.ErrRoomNotFound):
		return apperrors.NotFound("room not found", err)
	case errors.Is(err, apperrors.ErrBookingNotFound):
		return apperrors.NotFound("booking not found", err)
	case errors.Is(err, apperrors.ErrRoomNotAvailable):
		return apperrors.Conflict("room is no longer available for these dates", err)
	case errors.Is(err, apperrors.ErrDuplicateRoomNumber):
		return apperrors.Conflict("room number already exists", err)
	default:
		return apperrors.Internal("database error", err)
	}
}
