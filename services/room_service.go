package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "hotelsite/errors"
	"hotelsite/models"
	"hotelsite/repository"
	"hotelsite/services/metrics"
	"hotelsite/validator"

	"github.com/rs/zerolog"
)

// RoomInput carries the admin-editable fields of a room.
type RoomInput struct {
	Name          string
	RoomNumber    string
	RoomType      models.RoomType
	Capacity      int
	PricePerNight float64
	Features      []string
	Description   string
}

type RoomService struct {
	store repository.Store
	cache Cache
	cal   Calendar
	log   zerolog.Logger
}

func NewRoomService(store repository.Store, cache Cache, cal Calendar, log zerolog.Logger) *RoomService {
	if cache == nil {
		cache = NoopCache{}
	}
	return &RoomService{store: store, cache: cache, cal: cal, log: log}
}

func (in RoomInput) apply(room *models.Room) {
	room.Name = strings.TrimSpace(in.Name)
	room.RoomNumber = strings.TrimSpace(in.RoomNumber)
	room.RoomType = in.RoomType
	room.Capacity = in.Capacity
	room.PricePerNight = in.PricePerNight
	room.Features = append([]string{}, in.Features...)
	room.Description = in.Description
}

func (s *RoomService) CreateRoom(ctx context.Context, in RoomInput) (*models.Room, error) {
	room := &models.Room{ManualStatus: models.ManualStatusAvailable}
	in.apply(room)
	if err := validator.ValidateRoom(room); err != nil {
		return nil, err
	}
	if err := s.store.Rooms().Create(ctx, room); err != nil {
		return nil, wrapStoreError(err)
	}
	s.log.Info().Uint("room_id", room.ID).Str("room_number", room.RoomNumber).Msg("room created")
	s.invalidate(ctx)
	return room, nil
}

// UpdateRoom replaces the editable fields and keeps the manual override as it is.
func (s *RoomService) UpdateRoom(ctx context.Context, roomID uint, in RoomInput) (*models.Room, error) {
	return s.mutate(ctx, roomID, func(room *models.Room) error {
		in.apply(room)
		return validator.ValidateRoom(room)
	})
}

func (s *RoomService) GetRoom(ctx context.Context, roomID uint) (*models.Room, error) {
	room, err := s.store.Rooms().GetByID(ctx, roomID)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	return room, nil
}

// ListRooms is the admin listing: every room, cheapest first, no availability logic.
func (s *RoomService) ListRooms(ctx context.Context, roomType models.RoomType) ([]models.Room, error) {
	if roomType != "" && !roomType.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid room type %q", roomType), apperrors.ErrInvalidInput)
	}
	rooms, err := s.store.Rooms().List(ctx, repository.RoomFilter{RoomType: roomType})
	if err != nil {
		return nil, wrapStoreError(err)
	}
	return rooms, nil
}

// DeleteRoom removes the room. Its bookings stay in the ledger.
func (s *RoomService) DeleteRoom(ctx context.Context, roomID uint) error {
	if err := s.store.Rooms().Delete(ctx, roomID); err != nil {
		return wrapStoreError(err)
	}
	s.log.Info().Uint("room_id", roomID).Msg("room deleted")
	s.invalidate(ctx)
	return nil
}

// SetManualStatus writes the manual override. It never refuses because of bookings;
// when the new state contradicts live occupying bookings the write goes through and an
// OverrideWarning listing them is returned next to the room.
func (s *RoomService) SetManualStatus(ctx context.Context, roomID uint, status models.ManualStatus, takenFrom, takenUntil *time.Time) (*models.Room, *apperrors.OverrideWarning, error) {
	if !status.Valid() {
		return nil, nil, apperrors.Validation(fmt.Sprintf("invalid room status %q", status), apperrors.ErrInvalidInput)
	}
	from, until := dateOrNil(takenFrom), dateOrNil(takenUntil)
	if status == models.ManualStatusTaken {
		if err := validator.ValidateTakenWindow(from, until); err != nil {
			return nil, nil, err
		}
	}

	var warning *apperrors.OverrideWarning
	room, err := s.mutate(ctx, roomID, func(room *models.Room) error {
		if status == models.ManualStatusAvailable {
			room.ClearTakenWindow()
			return nil
		}
		room.ManualStatus = models.ManualStatusTaken
		room.TakenFrom, room.TakenUntil = from, until
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	warning, err = s.overrideWarning(ctx, room)
	if err != nil {
		// the status change is committed; a failed cross-check only loses the warning
		s.log.Warn().Err(err).Uint("room_id", roomID).Msg("override cross-check failed")
		return room, nil, nil
	}
	if warning != nil {
		metrics.IncOverrideWarning()
		s.log.Warn().Uint("room_id", roomID).Uints("booking_ids", warning.BookingIDs).Msg(warning.Message)
	}
	return room, warning, nil
}

func (s *RoomService) overrideWarning(ctx context.Context, room *models.Room) (*apperrors.OverrideWarning, error) {
	filter := repository.BookingFilter{RoomID: room.ID, Statuses: models.OccupyingStatuses()}
	var message string
	if w, taken := room.TakenWindow(); taken {
		filter.OverlapsFrom, filter.OverlapsTo = w.From, w.Until
		message = "room marked taken while bookings occupy the window"
	} else {
		today := s.cal.Today()
		filter.OverlapsFrom = &today
		message = "room marked available while bookings still occupy it"
	}
	bookings, err := s.store.Bookings().List(ctx, filter)
	if err != nil || len(bookings) == 0 {
		return nil, err
	}
	ids := make([]uint, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	return &apperrors.OverrideWarning{RoomID: room.ID, BookingIDs: ids, Message: message}, nil
}

func (s *RoomService) UpdatePrice(ctx context.Context, roomID uint, price float64) (*models.Room, error) {
	if err := validator.ValidatePrice(price); err != nil {
		return nil, err
	}
	return s.mutate(ctx, roomID, func(room *models.Room) error {
		room.PricePerNight = price
		return nil
	})
}

// mutate is a read-modify-write of one room under its row lock.
func (s *RoomService) mutate(ctx context.Context, roomID uint, fn func(room *models.Room) error) (*models.Room, error) {
	var updated *models.Room
	err := s.store.WithRoomLock(ctx, roomID, func(tx repository.Store) error {
		room, err := tx.Rooms().GetByID(ctx, roomID)
		if err != nil {
			return err
		}
		if err := fn(room); err != nil {
			return err
		}
		if err := tx.Rooms().Update(ctx, room); err != nil {
			return err
		}
		updated = room
		return nil
	})
	if err != nil {
		return nil, wrapStoreError(err)
	}
	s.log.Info().Uint("room_id", roomID).Msg("room updated")
	s.invalidate(ctx)
	return updated, nil
}

func (s *RoomService) invalidate(ctx context.Context) {
	for _, pattern := range []string{roomListKeyPrefix + "*", dashboardKeyPrefix + "*"} {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			s.log.Warn().Err(err).Str("pattern", pattern).Msg("cache invalidation failed")
		}
	}
}

func dateOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := models.DateOf(*t)
	return &d
}
