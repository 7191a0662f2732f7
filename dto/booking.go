package dto

// CreateBookingRequest là DTO cho request đặt phòng
type CreateBookingRequest struct {
	RoomID          uint   `json:"roomId" binding:"required"`
	CheckIn         string `json:"checkIn" binding:"required"`
	CheckOut        string `json:"checkOut" binding:"required"`
	GuestName       string `json:"guestName" binding:"required"`
	GuestEmail      string `json:"guestEmail" binding:"required,email"`
	GuestPhone      string `json:"guestPhone"`
	Guests          int    `json:"guests" binding:"gte=0"`
	SpecialRequests string `json:"specialRequests" binding:"max=2000"`
}

type BookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
