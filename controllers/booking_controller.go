package controllers

import (
	"hotelsite/dto"
	"hotelsite/errors"
	"hotelsite/models"
	"hotelsite/response"
	"hotelsite/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type BookingController struct {
	bookings *services.BookingService
	log      zerolog.Logger
}

func NewBookingController(bookings *services.BookingService, log zerolog.Logger) *BookingController {
	return &BookingController{bookings: bookings, log: log}
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bc.log, bindError(err))
		return
	}
	checkIn, err := parseDate(req.CheckIn, "checkIn")
	if err != nil {
		respondError(c, bc.log, err)
		return
	}
	checkOut, err := parseDate(req.CheckOut, "checkOut")
	if err != nil {
		respondError(c, bc.log, err)
		return
	}

	booking, err := bc.bookings.CreateBooking(c.Request.Context(), services.CreateBookingInput{
		RoomID:          req.RoomID,
		CheckIn:         *checkIn,
		CheckOut:        *checkOut,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		Guests:          req.Guests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondError(c, bc.log, err)
		return
	}
	response.Created(c, booking)
}

func (bc *BookingController) ListBookings(c *gin.Context) {
	filter, err := bookingFilterFromQuery(c)
	if err != nil {
		respondError(c, bc.log, err)
		return
	}
	bookings, err := bc.bookings.ListBookings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, bc.log, err)
		return
	}
	page, limit := parsePaging(c)
	response.SuccessWithPagination(c, paginate(bookings, page, limit), page, limit, len(bookings))
}

func bookingFilterFromQuery(c *gin.Context) (services.BookingListFilter, error) {
	var filter services.BookingListFilter
	if roomStr := c.Query("roomId"); roomStr != "" {
		id, err := parseID(roomStr, "roomId")
		if err != nil {
			return filter, err
		}
		filter.RoomID = id
	}
	if status := c.Query("status"); status != "" {
		st, err := models.ParseBookingStatus(status)
		if err != nil {
			return filter, errors.Validation(err.Error(), errors.ErrInvalidInput)
		}
		filter.Status = st
	}
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return filter, err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return filter, err
	}
	filter.From, filter.To = from, to
	return filter, nil
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, bc.log, err)
		return
	}
	booking, err := bc.bookings.GetBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, bc.log, err)
		return
	}
	response.Success(c, booking)
}

func (bc *BookingController) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, bc.log, err)
		return
	}
	var req dto.BookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bc.log, bindError(err))
		return
	}
	status, err := models.ParseBookingStatus(req.Status)
	if err != nil {
		respondError(c, bc.log, errors.Validation(err.Error(), errors.ErrInvalidInput))
		return
	}
	booking, err := bc.bookings.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, bc.log, err)
		return
	}
	response.Success(c, booking)
}

func (bc *BookingController) CancelBooking(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, bc.log, err)
		return
	}
	booking, err := bc.bookings.CancelBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, bc.log, err)
		return
	}
	response.Success(c, booking)
}
