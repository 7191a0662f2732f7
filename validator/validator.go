package validator

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"hotelsite/errors"
	"hotelsite/models"

	playground "github.com/go-playground/validator/v10"
)

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

	validate = playground.New()
)

// ValidateStruct checks `validate` struct tags and reports the first failing field.
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(playground.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.Validation(fmt.Sprintf("%s failed the %q rule", fe.Field(), fe.Tag()), errors.ErrInvalidInput)
	}
	return errors.Validation("invalid request", err)
}

// ValidateEmail kiểm tra email hợp lệ
func ValidateEmail(email string) error {
	if err := validate.Var(email, "email"); err != nil {
		return errors.Validation("invalid email", errors.ErrInvalidFormat)
	}
	return nil
}

// ValidatePhone kiểm tra số điện thoại hợp lệ
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return errors.Validation("invalid phone number", errors.ErrInvalidFormat)
	}
	return nil
}

// ValidateGuest requires a name and an email; the phone is optional.
func ValidateGuest(name, email, phone string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Validation("guest name is required", errors.ErrMissingRequired)
	}
	if strings.TrimSpace(email) == "" {
		return errors.Validation("guest email is required", errors.ErrMissingRequired)
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if phone != "" {
		return ValidatePhone(phone)
	}
	return nil
}

// ValidateDateRange requires start < end.
func ValidateDateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errors.Validation("check-in and check-out dates are required", errors.ErrMissingRequired)
	}
	if !start.Before(end) {
		return errors.Validation("check-out must be after check-in", errors.ErrInvalidDateRange)
	}
	return nil
}

// ValidateStay checks a new stay: a valid range that does not start in the past.
func ValidateStay(checkIn, checkOut, today time.Time) error {
	if err := ValidateDateRange(checkIn, checkOut); err != nil {
		return err
	}
	if checkIn.Before(today) {
		return errors.Validation("check-in date cannot be in the past", errors.ErrInvalidDateRange)
	}
	return nil
}

// ValidateGuests bounds the party size by the room capacity; 0 means unspecified.
func ValidateGuests(guests, capacity int) error {
	if guests < 0 {
		return errors.Validation("number of guests cannot be negative", errors.ErrInvalidInput)
	}
	if guests > capacity {
		return errors.Validation(fmt.Sprintf("room holds at most %d guests", capacity), errors.ErrInvalidInput)
	}
	return nil
}

// ValidatePrice rejects zero, negative and non-finite prices.
func ValidatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return errors.Validation("price must be positive", errors.ErrInvalidPrice)
	}
	return nil
}

// ValidateRoom checks the editable fields of a room.
func ValidateRoom(room *models.Room) error {
	if strings.TrimSpace(room.Name) == "" {
		return errors.Validation("room name is required", errors.ErrMissingRequired)
	}
	if strings.TrimSpace(room.RoomNumber) == "" {
		return errors.Validation("room number is required", errors.ErrMissingRequired)
	}
	if !room.RoomType.Valid() {
		return errors.Validation(fmt.Sprintf("invalid room type %q", room.RoomType), errors.ErrInvalidInput)
	}
	if room.Capacity <= 0 {
		return errors.Validation("capacity must be positive", errors.ErrInvalidInput)
	}
	if err := ValidatePrice(room.PricePerNight); err != nil {
		return err
	}
	if !room.ManualStatus.Valid() {
		return errors.Validation(fmt.Sprintf("invalid room status %q", room.ManualStatus), errors.ErrInvalidInput)
	}
	return nil
}

// ValidateTakenWindow rejects a window whose bounds are both set and out of order.
func ValidateTakenWindow(from, until *time.Time) error {
	if from != nil && until != nil && !from.Before(*until) {
		return errors.Validation("taken until must be after taken from", errors.ErrInvalidDateRange)
	}
	return nil
}
