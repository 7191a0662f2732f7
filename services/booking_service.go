package services

import (
	"context"
	"errors"
	"time"

	"hotelsite/builders"
	apperrors "hotelsite/errors"
	"hotelsite/models"
	"hotelsite/repository"
	"hotelsite/services/metrics"
	"hotelsite/services/notification"
	"hotelsite/validator"

	"github.com/rs/zerolog"
)

type CreateBookingInput struct {
	RoomID          uint
	CheckIn         time.Time
	CheckOut        time.Time
	GuestName       string `validate:"max=128"`
	GuestEmail      string `validate:"max=256"`
	GuestPhone      string
	Guests          int    `validate:"gte=0"`
	SpecialRequests string `validate:"max=2000"`
}

// BookingListFilter narrows the back-office booking list. From/To select stays that
// intersect [From, To).
type BookingListFilter struct {
	RoomID uint
	Status models.BookingStatus
	From   *time.Time
	To     *time.Time
}

// BookingService is the only writer of bookings. Every write that can make a booking
// occupying runs under the room lock, so occupying stays of a room never overlap.
type BookingService struct {
	store    repository.Store
	locker   RoomLocker
	cache    Cache
	notifier notification.Service
	cal      Calendar
	log      zerolog.Logger
}

func NewBookingService(store repository.Store, locker RoomLocker, cache Cache, notifier notification.Service, cal Calendar, log zerolog.Logger) *BookingService {
	if locker == nil {
		locker = NewLocalRoomLocker()
	}
	if cache == nil {
		cache = NoopCache{}
	}
	if notifier == nil {
		notifier = notification.NewLogService(log)
	}
	return &BookingService{store: store, locker: locker, cache: cache, notifier: notifier, cal: cal, log: log}
}

// CreateBooking checks availability and inserts the booking as one unit per room.
// A stay that is taken by the time the lock is held fails with a Conflict error.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	checkIn, checkOut := models.DateOf(in.CheckIn), models.DateOf(in.CheckOut)
	if err := validator.ValidateStay(checkIn, checkOut, s.cal.Today()); err != nil {
		return nil, err
	}
	if err := validator.ValidateGuest(in.GuestName, in.GuestEmail, in.GuestPhone); err != nil {
		return nil, err
	}
	if err := validator.ValidateStruct(in); err != nil {
		return nil, err
	}
	room, err := s.store.Rooms().GetByID(ctx, in.RoomID)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	if err := validator.ValidateGuests(in.Guests, room.Capacity); err != nil {
		return nil, err
	}

	var booking *models.Booking
	err = s.withRoom(ctx, room.ID, func(tx repository.Store) error {
		locked, err := tx.Rooms().GetByID(ctx, room.ID)
		if err != nil {
			return err
		}
		ok, err := checkAvailability(ctx, tx, locked, checkIn, checkOut, 0)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.Conflict("room is no longer available for these dates", apperrors.ErrRoomNotAvailable)
		}
		booking = builders.NewBookingBuilder().
			WithRoom(locked.ID).
			WithStay(checkIn, checkOut).
			WithGuestInfo(in.GuestName, in.GuestEmail, in.GuestPhone).
			WithGuests(in.Guests).
			WithSpecialRequests(in.SpecialRequests).
			PricedPerNight(locked.PricePerNight).
			Build()
		return tx.Bookings().Create(ctx, booking)
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeConflict) {
			metrics.IncBookingConflict()
			s.log.Info().Uint("room_id", room.ID).
				Str("check_in", checkIn.Format(models.DateLayout)).
				Str("check_out", checkOut.Format(models.DateLayout)).
				Msg("booking rejected, room not available")
		}
		return nil, err
	}

	metrics.IncBookingCreated()
	s.log.Info().Uint("booking_id", booking.ID).Uint("room_id", booking.RoomID).Msg("booking created")
	s.afterWrite(ctx, notification.EventBookingCreated, booking)
	return booking, nil
}

// UpdateStatus moves a booking to another status without touching its dates. Every
// status write runs under the room lock and decides on the status read inside it; a
// booking that becomes occupying again is re-checked against the other bookings of its
// room.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID uint, status models.BookingStatus) (*models.Booking, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("invalid booking status", apperrors.ErrInvalidInput)
	}
	current, err := s.store.Bookings().GetByID(ctx, bookingID)
	if err != nil {
		return nil, wrapStoreError(err)
	}

	previous := current.Status
	err = s.withRoom(ctx, current.RoomID, func(tx repository.Store) error {
		fresh, err := tx.Bookings().GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		previous = fresh.Status
		if fresh.Status == status {
			return nil
		}
		if !fresh.Occupying() && status.Occupying() {
			return reinstate(ctx, tx, fresh, status)
		}
		return tx.Bookings().UpdateStatus(ctx, bookingID, status)
	})
	if errors.Is(err, apperrors.ErrRoomNotFound) && !status.Occupying() {
		// the room is gone; a stay that stops occupying cannot overlap anything
		previous = current.Status
		err = wrapStoreError(s.store.Bookings().UpdateStatus(ctx, bookingID, status))
	}
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeConflict) {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	updated, err := s.store.Bookings().GetByID(ctx, bookingID)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	if previous == status {
		return updated, nil
	}
	metrics.IncBookingStatusChanged(string(status))
	s.log.Info().Uint("booking_id", bookingID).
		Str("from", string(previous)).
		Str("to", string(status)).
		Msg("booking status changed")

	event := notification.EventBookingStatus
	if status == models.BookingStatusCancelled {
		event = notification.EventBookingCancelled
	}
	s.afterWrite(ctx, event, updated)
	return updated, nil
}

// reinstate makes a non-occupying booking occupying again if no other occupying booking
// claims its nights. The caller holds the room lock.
func reinstate(ctx context.Context, tx repository.Store, b *models.Booking, status models.BookingStatus) error {
	others, err := tx.Bookings().List(ctx, repository.BookingFilter{
		RoomID:       b.RoomID,
		Statuses:     models.OccupyingStatuses(),
		ExcludeID:    b.ID,
		OverlapsFrom: &b.CheckInDate,
		OverlapsTo:   &b.CheckOutDate,
	})
	if err != nil {
		return err
	}
	if len(others) > 0 {
		return apperrors.Conflict("another booking now occupies these dates", apperrors.ErrRoomNotAvailable)
	}
	return tx.Bookings().UpdateStatus(ctx, b.ID, status)
}

// CancelBooking frees the stay. Cancelling a cancelled booking is a no-op.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	return s.UpdateStatus(ctx, bookingID, models.BookingStatusCancelled)
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	b, err := s.store.Bookings().GetByID(ctx, bookingID)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	return b, nil
}

func (s *BookingService) ListBookings(ctx context.Context, filter BookingListFilter) ([]models.Booking, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.Validation("invalid booking status", apperrors.ErrInvalidInput)
	}
	if filter.From != nil && filter.To != nil {
		if err := validator.ValidateDateRange(*filter.From, *filter.To); err != nil {
			return nil, err
		}
	}
	f := repository.BookingFilter{
		RoomID:       filter.RoomID,
		OverlapsFrom: filter.From,
		OverlapsTo:   filter.To,
	}
	if filter.Status != "" {
		f.Statuses = []models.BookingStatus{filter.Status}
	}
	bookings, err := s.store.Bookings().List(ctx, f)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	return bookings, nil
}

// withRoom holds the room locker and the store's row lock around fn.
func (s *BookingService) withRoom(ctx context.Context, roomID uint, fn func(tx repository.Store) error) error {
	unlock, err := s.locker.Lock(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrLockTimeout) {
			return apperrors.Conflict("room is busy, please retry", err)
		}
		return err
	}
	defer unlock()
	return wrapStoreError(s.store.WithRoomLock(ctx, roomID, fn))
}

// afterWrite runs the non-fatal follow-ups of a committed booking write.
func (s *BookingService) afterWrite(ctx context.Context, event notification.Event, booking *models.Booking) {
	if err := s.cache.DeletePattern(ctx, dashboardKeyPrefix+"*"); err != nil {
		s.log.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}
	if err := s.notifier.Notify(ctx, event, booking); err != nil {
		s.log.Warn().Err(err).Uint("booking_id", booking.ID).Msg("booking notification failed")
	}
}
