package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies application errors for callers and the HTTP layer.
type ErrorCode string

const (
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeConflict        ErrorCode = "CONFLICT"
	ErrCodeOverrideWarning ErrorCode = "OVERRIDE_WARNING"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeDBError         ErrorCode = "DB_ERROR"
)

// AppError carries a code, a user-facing message and the wrapped cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation reports malformed or inconsistent input.
func Validation(message string, err error) *AppError {
	return NewAppError(ErrCodeValidation, message, err)
}

// NotFound reports an unknown room or booking.
func NotFound(message string, err error) *AppError {
	return NewAppError(ErrCodeNotFound, message, err)
}

// Conflict reports that the target became unavailable between check and commit.
func Conflict(message string, err error) *AppError {
	return NewAppError(ErrCodeConflict, message, err)
}

// Internal wraps a persistence failure.
func Internal(message string, err error) *AppError {
	return NewAppError(ErrCodeDBError, message, err)
}

// IsAppError reports whether err wraps an AppError.
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError returns the outermost AppError in err's chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// CodeOf returns the code of err, or "" when err is not an AppError.
func CodeOf(err error) ErrorCode {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// OverrideWarning is returned next to a successful manual status change that
// contradicts live occupying bookings. It never blocks the write.
type OverrideWarning struct {
	RoomID     uint   `json:"roomId"`
	BookingIDs []uint `json:"bookingIds"`
	Message    string `json:"message"`
}

func (w *OverrideWarning) Error() string {
	ids := make([]string, 0, len(w.BookingIDs))
	for _, id := range w.BookingIDs {
		ids = append(ids, fmt.Sprint(id))
	}
	return fmt.Sprintf("[%s] room %d: %s (bookings %s)", ErrCodeOverrideWarning, w.RoomID, w.Message, strings.Join(ids, ", "))
}

var (
	// Room errors
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomNotAvailable    = errors.New("room not available")
	ErrDuplicateRoomNumber = errors.New("room number already exists")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")

	// Validation errors
	ErrInvalidDateRange = errors.New("check-out must be after check-in")
	ErrInvalidPrice     = errors.New("price must be positive")
	ErrInvalidInput     = errors.New("invalid input")
	ErrMissingRequired  = errors.New("missing required field")
	ErrInvalidFormat    = errors.New("invalid format")
)
