package repository

import (
	"context"
	"errors"
	"strings"

	apperrors "hotelsite/errors"
	"hotelsite/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// GormStore implements Store on top of gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Rooms() RoomRepository {
	return NewRoomRepo(s.db)
}

func (s *GormStore) Bookings() BookingRepository {
	return NewBookingRepo(s.db)
}

// WithRoomLock opens a transaction and takes a row lock on the room with
// SELECT ... FOR UPDATE. sqlite has no row locks; its single-writer transaction
// serializes the work instead.
func (s *GormStore) WithRoomLock(ctx context.Context, roomID uint, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if supportsRowLocks(tx) {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var room models.Room
		if err := q.Select("id").First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrRoomNotFound
			}
			return err
		}
		return fn(&GormStore{db: tx})
	})
}

func supportsRowLocks(db *gorm.DB) bool {
	switch db.Dialector.Name() {
	case "postgres", "mysql":
		return true
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}
