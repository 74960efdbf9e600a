package api

import (
	"errors"
	"net/http"

	"pitchlink/internal/apperr"
	"pitchlink/internal/logger"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Success bool                     `json:"success" example:"false"`
	Error   string                   `json:"error" example:"something went wrong"`
	Field   string                   `json:"field,omitempty" example:"booking_date"`
	Details []apperr.ValidationError `json:"details,omitempty"`
}

// Envelope is the {success, data, error} shape of the /api endpoints.
type Envelope struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

// StatusFor maps an error kind to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Fail writes err with the status of its kind. Internal errors are logged and hidden.
func Fail(c *gin.Context, err error) {
	status := StatusFor(err)
	resp := ErrorResponse{Error: err.Error()}

	var ve *apperr.ValidationError
	var ae *apperr.Error
	switch {
	case errors.As(err, &ve):
		resp.Error = ve.Message
		resp.Field = ve.Field
	case errors.As(err, &ae):
		resp.Error = ae.Message
	}

	switch status {
	case http.StatusInternalServerError:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		resp.Error = "internal server error"
	case http.StatusServiceUnavailable:
		logger.Warn("dependency unavailable", "path", c.FullPath(), "error", err)
		c.Header("Retry-After", "5")
		resp.Error = "service temporarily unavailable"
	}

	c.AbortWithStatusJSON(status, resp)
}

// Abort writes a plain error message with an explicit status.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// OK writes data inside the success envelope.
func OK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}
