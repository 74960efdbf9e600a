package analytics

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

// @Summary      Daily revenue and booking rollups
// @Description  Served from the analytics table, which the rollup worker keeps current.
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "YYYY-MM-DD, defaults to 29 days before to"
// @Param        to   query string false "YYYY-MM-DD, defaults to today"
// @Success      200 {object} analytics.Report
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Router       /v1/analytics [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return
	}

	var q RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		api.Fail(c, api.BindingError(err))
		return
	}

	report, err := h.service.GetAnalytics(c.Request.Context(), id, q.From, q.To)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
