package dashboard

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

// @Summary      Owner dashboard (envelope)
// @Description  Earnings count confirmed payments only. Recomputed on every request.
// @Tags         api
// @Produce      json
// @Security     BearerAuth
// @Param        owner_id query int false "Must equal the caller"
// @Success      200 {object} api.Envelope{data=dashboard.Dashboard}
// @Failure      403 {object} api.ErrorResponse
// @Router       /api/dashboard [get]
func (h *Handler) APIGet(c *gin.Context) {
	d, ok := h.get(c)
	if !ok {
		return
	}
	api.OK(c, http.StatusOK, d)
}

// @Summary      Owner dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dashboard.Dashboard
// @Failure      403 {object} api.ErrorResponse
// @Router       /v1/dashboard [get]
func (h *Handler) Get(c *gin.Context) {
	d, ok := h.get(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) get(c *gin.Context) (*Dashboard, bool) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return nil, false
	}
	if err := auth.CheckOwnerParam(c, id); err != nil {
		api.Fail(c, err)
		return nil, false
	}

	d, err := h.service.GetDashboard(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return nil, false
	}
	return d, true
}
