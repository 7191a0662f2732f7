package controllers

import (
	"strconv"

	"hotelsite/dto"
	"hotelsite/errors"
	"hotelsite/models"
	"hotelsite/response"
	"hotelsite/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type RoomController struct {
	availability *services.AvailabilityService
	rooms        *services.RoomService
	log          zerolog.Logger
}

func NewRoomController(availability *services.AvailabilityService, rooms *services.RoomService, log zerolog.Logger) *RoomController {
	return &RoomController{availability: availability, rooms: rooms, log: log}
}

// ListAvailable serves the public room listing.
func (rc *RoomController) ListAvailable(c *gin.Context) {
	checkIn, err := parseDateQuery(c, "checkIn")
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	checkOut, err := parseDateQuery(c, "checkOut")
	if err != nil {
		respondError(c, rc.log, err)
		return
	}

	query := services.AvailabilityQuery{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		RoomType: models.RoomType(c.Query("type")),
		Search:   c.Query("q"),
	}
	if capStr := c.Query("minCapacity"); capStr != "" {
		minCapacity, err := strconv.Atoi(capStr)
		if err != nil || minCapacity < 0 {
			response.BadRequest(c, "minCapacity must be a non-negative integer")
			return
		}
		query.MinCapacity = minCapacity
	}

	rooms, err := rc.availability.ListAvailable(c.Request.Context(), query)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	response.Success(c, rooms)
}

func (rc *RoomController) GetRoom(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	room, err := rc.rooms.GetRoom(c.Request.Context(), id)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	response.Success(c, room)
}

// CheckAvailability answers whether one room is free for [checkIn, checkOut).
func (rc *RoomController) CheckAvailability(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	checkIn, err := parseDateQuery(c, "checkIn")
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	checkOut, err := parseDateQuery(c, "checkOut")
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	if checkIn == nil || checkOut == nil {
		response.BadRequest(c, "checkIn and checkOut are required")
		return
	}

	ok, err := rc.availability.IsAvailable(c.Request.Context(), id, *checkIn, *checkOut, 0)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	response.Success(c, dto.AvailabilityResponse{
		RoomID:    id,
		CheckIn:   checkIn.Format(models.DateLayout),
		CheckOut:  checkOut.Format(models.DateLayout),
		Available: ok,
	})
}

func (rc *RoomController) ListRooms(c *gin.Context) {
	rooms, err := rc.rooms.ListRooms(c.Request.Context(), models.RoomType(c.Query("type")))
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	page, limit := parsePaging(c)
	response.SuccessWithPagination(c, paginate(rooms, page, limit), page, limit, len(rooms))
}

func toRoomInput(req dto.RoomRequest) services.RoomInput {
	return services.RoomInput{
		Name:          req.Name,
		RoomNumber:    req.RoomNumber,
		RoomType:      models.RoomType(req.RoomType),
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		Features:      req.Features,
		Description:   req.Description,
	}
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, rc.log, bindError(err))
		return
	}
	room, err := rc.rooms.CreateRoom(c.Request.Context(), toRoomInput(req))
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	response.Created(c, room)
}

func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, rc.log, bindError(err))
		return
	}
	room, err := rc.rooms.UpdateRoom(c.Request.Context(), id, toRoomInput(req))
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	response.Success(c, room)
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	if err := rc.rooms.DeleteRoom(c.Request.Context(), id); err != nil {
		respondError(c, rc.log, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

// SetStatus writes the manual override and passes any OverrideWarning through.
func (rc *RoomController) SetStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	var req dto.RoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, rc.log, bindError(err))
		return
	}
	from, err := parseDate(req.TakenFrom, "takenFrom")
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	until, err := parseDate(req.TakenUntil, "takenUntil")
	if err != nil {
		respondError(c, rc.log, err)
		return
	}

	room, warning, err := rc.rooms.SetManualStatus(c.Request.Context(), id, models.ManualStatus(req.Status), from, until)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	response.Success(c, dto.RoomStatusResponse{Room: room, Warning: warning})
}

func (rc *RoomController) UpdatePrice(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	var req dto.RoomPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// a zero price fails "required"; report it the way the service would
		respondError(c, rc.log, errors.Validation("price must be positive", errors.ErrInvalidPrice))
		return
	}
	room, err := rc.rooms.UpdatePrice(c.Request.Context(), id, req.PricePerNight)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	response.Success(c, room)
}
