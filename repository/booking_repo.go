package repository

import (
	"context"
	"errors"
	"fmt"

	apperrors "hotelsite/errors"
	"hotelsite/models"

	"gorm.io/gorm"
)

type BookingRepo struct {
	db *gorm.DB
}

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// List returns bookings matching the filter ordered by check-in date
func (r *BookingRepo) List(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{})
	if filter.RoomID != 0 {
		q = q.Where("room_id = ?", filter.RoomID)
	}
	if len(filter.RoomIDs) > 0 {
		q = q.Where("room_id IN ?", filter.RoomIDs)
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("status IN ?", filter.Statuses)
	}
	if filter.ExcludeID != 0 {
		q = q.Where("id <> ?", filter.ExcludeID)
	}
	// half-open overlap: existing.start < to AND from < existing.end
	if filter.OverlapsTo != nil {
		q = q.Where("check_in_date < ?", *filter.OverlapsTo)
	}
	if filter.OverlapsFrom != nil {
		q = q.Where("check_out_date > ?", *filter.OverlapsFrom)
	}

	var bookings []models.Booking
	err := q.Order("check_in_date ASC, id ASC").Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		if isExclusionViolation(err) {
			return fmt.Errorf("%w: %v", apperrors.ErrRoomNotAvailable, err)
		}
		return err
	}
	return nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		if isExclusionViolation(res.Error) {
			return fmt.Errorf("%w: %v", apperrors.ErrRoomNotAvailable, res.Error)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrBookingNotFound
	}
	return nil
}
