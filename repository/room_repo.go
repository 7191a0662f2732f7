package repository

import (
	"context"
	"errors"
	"fmt"

	apperrors "hotelsite/errors"
	"hotelsite/models"

	"gorm.io/gorm"
)

type RoomRepo struct {
	db *gorm.DB
}

func NewRoomRepo(db *gorm.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// GetByID retrieves a room by ID
func (r *RoomRepo) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// List returns rooms matching the filter, cheapest first
func (r *RoomRepo) List(ctx context.Context, filter RoomFilter) ([]models.Room, error) {
	q := r.db.WithContext(ctx).Model(&models.Room{})
	if filter.RoomType != "" {
		q = q.Where("room_type = ?", filter.RoomType)
	}
	if filter.MinCapacity > 0 {
		q = q.Where("capacity >= ?", filter.MinCapacity)
	}

	var rooms []models.Room
	err := q.Order("price_per_night ASC, id ASC").Find(&rooms).Error
	return rooms, err
}

func (r *RoomRepo) Create(ctx context.Context, room *models.Room) error {
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		return mapRoomWriteError(err)
	}
	return nil
}

// Update saves every column, including cleared taken_from/taken_until
func (r *RoomRepo) Update(ctx context.Context, room *models.Room) error {
	res := r.db.WithContext(ctx).Model(room).Select("*").Omit("created_at").Updates(room)
	if res.Error != nil {
		return mapRoomWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRoomNotFound
	}
	return nil
}

// Delete removes the room. Its bookings are kept and keep pointing at the old id.
func (r *RoomRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Room{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRoomNotFound
	}
	return nil
}

func mapRoomWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", apperrors.ErrDuplicateRoomNumber, err)
	}
	return err
}
