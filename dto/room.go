package dto

import (
	"hotelsite/errors"
	"hotelsite/models"
)

// RoomRequest là DTO cho request tạo và cập nhật room
type RoomRequest struct {
	Name          string   `json:"name" binding:"required"`
	RoomNumber    string   `json:"roomNumber" binding:"required"`
	RoomType      string   `json:"roomType" binding:"required,oneof=room suite"`
	Capacity      int      `json:"capacity" binding:"required,gt=0"`
	PricePerNight float64  `json:"pricePerNight" binding:"required,gt=0"`
	Features      []string `json:"features"`
	Description   string   `json:"description"`
}

// RoomStatusRequest sets the manual override. Dates are YYYY-MM-DD and optional.
type RoomStatusRequest struct {
	Status     string `json:"status" binding:"required,oneof=available taken"`
	TakenFrom  string `json:"takenFrom"`
	TakenUntil string `json:"takenUntil"`
}

type RoomPriceRequest struct {
	PricePerNight float64 `json:"pricePerNight" binding:"required"`
}

type RoomStatusResponse struct {
	Room    *models.Room            `json:"room"`
	Warning *errors.OverrideWarning `json:"warning,omitempty"`
}

type AvailabilityResponse struct {
	RoomID    uint   `json:"roomId"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	Available bool   `json:"available"`
}
