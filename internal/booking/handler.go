package booking

import (
	"net/http"

	"pitchlink/internal/api"
	"pitchlink/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        filter query string false "all, today, upcoming or pending" default(all)
// @Success      200 {array} booking.BookingWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Router       /v1/bookings [get]
func (h *Handler) List(c *gin.Context) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return
	}

	bookings, err := h.service.GetBookings(c.Request.Context(), id, c.Query("filter"))
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary      Search bookings by status and date
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Booking status"
// @Param        date   query string false "YYYY-MM-DD"
// @Success      200 {array} booking.BookingWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Router       /v1/bookings/search [get]
func (h *Handler) Search(c *gin.Context) {
	bookings, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// @Summary      Get a booking
// @Description  id may be the numeric id or the public reference (PL-...).
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID or reference"
// @Success      200 {object} booking.BookingWithDetails
// @Failure      404 {object} api.ErrorResponse
// @Router       /v1/bookings/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// @Summary      Change booking status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID or reference"
// @Param        request body booking.UpdateStatusRequest true "New status"
// @Success      200 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /v1/bookings/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !api.Bind(c, &req) {
		return
	}

	b, err := h.service.UpdateBookingStatus(c.Request.Context(), id, c.Param("id"), req.Status)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// @Summary      Request a booking
// @Description  Any signed-in user may ask for a slot. The booking starts pending. Overnight slots are rejected.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Pitch ID"
// @Param        request body booking.RequestBookingRequest true "Slot and contact details"
// @Success      201 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /v1/pitches/{id}/bookings [post]
func (h *Handler) Request(c *gin.Context) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return
	}

	pitchID, err := api.ParamID(c, "id")
	if err != nil {
		api.Fail(c, err)
		return
	}

	var req RequestBookingRequest
	if !api.Bind(c, &req) {
		return
	}

	b, err := h.service.RequestBooking(c.Request.Context(), id, pitchID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// @Summary      List bookings (envelope)
// @Tags         api
// @Produce      json
// @Security     BearerAuth
// @Param        owner_id query int    false "Must equal the caller"
// @Param        status   query string false "Booking status"
// @Param        date     query string false "YYYY-MM-DD"
// @Success      200 {object} api.Envelope{data=[]booking.BookingWithDetails}
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Router       /api/bookings [get]
func (h *Handler) APIList(c *gin.Context) {
	bookings, ok := h.filtered(c)
	if !ok {
		return
	}
	api.OK(c, http.StatusOK, bookings)
}

// @Summary      Create a manual booking (envelope)
// @Description  The total is computed from the pitch rate. An end time at or before the start time runs past midnight.
// @Tags         api
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body booking.CreateBookingRequest true "Booking payload"
// @Success      201 {object} api.Envelope{data=booking.Booking}
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/bookings [post]
func (h *Handler) APICreate(c *gin.Context) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if !api.Bind(c, &req) {
		return
	}

	b, err := h.service.CreateManualBooking(c.Request.Context(), id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, http.StatusCreated, b)
}

func (h *Handler) filtered(c *gin.Context) ([]BookingWithDetails, bool) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return nil, false
	}
	if err := auth.CheckOwnerParam(c, id); err != nil {
		api.Fail(c, err)
		return nil, false
	}

	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		api.Fail(c, api.BindingError(err))
		return nil, false
	}

	bookings, err := h.service.GetFilteredBookings(c.Request.Context(), id, q.Status, q.Date)
	if err != nil {
		api.Fail(c, err)
		return nil, false
	}
	return bookings, true
}
