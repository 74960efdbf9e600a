package payment

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

// @Summary      Record a payment
// @Description  A completed payment marks the booking confirmed, refunded and failed are copied over.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID or reference"
// @Param        request body payment.RecordPaymentRequest true "Payment"
// @Success      201 {object} payment.Receipt
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /v1/bookings/{id}/payments [post]
func (h *Handler) Record(c *gin.Context) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if !api.Bind(c, &req) {
		return
	}

	receipt, err := h.service.RecordPayment(c.Request.Context(), id, c.Param("id"), req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

// @Summary      List payments for a booking
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID or reference"
// @Success      200 {array} payment.Payment
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /v1/bookings/{id}/payments [get]
func (h *Handler) List(c *gin.Context) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return
	}

	payments, err := h.service.ListPayments(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}
