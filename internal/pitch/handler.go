package pitch

import (
	"net/http"

	"pitchlink/internal/api"
	"pitchlink/internal/auth"

	"github.com/gin-gonic/gin"
)

// Handler serves both the /api envelope routes and the /v1 routes.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      List my pitches
// @Tags         pitches
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} pitch.Pitch
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Router       /v1/pitches [get]
func (h *Handler) List(c *gin.Context) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return
	}

	pitches, err := h.service.GetPitches(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, pitches)
}

// @Summary      Get a pitch
// @Tags         pitches
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Pitch ID"
// @Success      200 {object} pitch.Pitch
// @Failure      404 {object} api.ErrorResponse
// @Router       /v1/pitches/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	p, ok := h.get(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Create a pitch
// @Tags         pitches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body pitch.CreatePitchRequest true "Pitch payload"
// @Success      201 {object} pitch.Pitch
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Router       /v1/pitches [post]
func (h *Handler) Create(c *gin.Context) {
	p, ok := h.create(c)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary      Update a pitch
// @Description  Merge patch: only the fields present in the body change.
// @Tags         pitches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Pitch ID"
// @Param        request body pitch.UpdatePitchRequest true "Fields to change"
// @Success      200 {object} pitch.Pitch
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /v1/pitches/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	p, ok := h.update(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Delete a pitch
// @Tags         pitches
// @Security     BearerAuth
// @Param        id path int true "Pitch ID"
// @Success      204
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /v1/pitches/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return
	}

	pitchID, err := api.ParamID(c, "id")
	if err != nil {
		api.Fail(c, err)
		return
	}

	if err := h.service.DeletePitch(c.Request.Context(), id, pitchID); err != nil {
		api.Fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary      List pitches (envelope)
// @Tags         api
// @Produce      json
// @Security     BearerAuth
// @Param        owner_id query int false "Must equal the caller"
// @Success      200 {object} api.Envelope{data=[]pitch.Pitch}
// @Failure      403 {object} api.ErrorResponse
// @Router       /api/pitches [get]
func (h *Handler) APIList(c *gin.Context) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return
	}
	if err := auth.CheckOwnerParam(c, id); err != nil {
		api.Fail(c, err)
		return
	}

	pitches, err := h.service.GetPitches(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, http.StatusOK, pitches)
}

// @Summary      Get a pitch (envelope)
// @Tags         api
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Pitch ID"
// @Success      200 {object} api.Envelope{data=pitch.Pitch}
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/pitches/{id} [get]
func (h *Handler) APIGet(c *gin.Context) {
	p, ok := h.get(c)
	if !ok {
		return
	}
	api.OK(c, http.StatusOK, p)
}

// @Summary      Create a pitch (envelope)
// @Tags         api
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body pitch.CreatePitchRequest true "Pitch payload"
// @Success      201 {object} api.Envelope{data=pitch.Pitch}
// @Failure      400 {object} api.ErrorResponse
// @Router       /api/pitches [post]
func (h *Handler) APICreate(c *gin.Context) {
	p, ok := h.create(c)
	if !ok {
		return
	}
	api.OK(c, http.StatusCreated, p)
}

// @Summary      Update a pitch (envelope)
// @Tags         api
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Pitch ID"
// @Param        request body pitch.UpdatePitchRequest true "Fields to change"
// @Success      200 {object} api.Envelope{data=pitch.Pitch}
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/pitches/{id} [put]
func (h *Handler) APIUpdate(c *gin.Context) {
	p, ok := h.update(c)
	if !ok {
		return
	}
	api.OK(c, http.StatusOK, p)
}

func (h *Handler) get(c *gin.Context) (*Pitch, bool) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return nil, false
	}

	pitchID, err := api.ParamID(c, "id")
	if err != nil {
		api.Fail(c, err)
		return nil, false
	}

	p, err := h.service.GetPitch(c.Request.Context(), id, pitchID)
	if err != nil {
		api.Fail(c, err)
		return nil, false
	}
	return p, true
}

func (h *Handler) create(c *gin.Context) (*Pitch, bool) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return nil, false
	}

	var req CreatePitchRequest
	if !api.Bind(c, &req) {
		return nil, false
	}

	p, err := h.service.CreatePitch(c.Request.Context(), id, req)
	if err != nil {
		api.Fail(c, err)
		return nil, false
	}
	return p, true
}

func (h *Handler) update(c *gin.Context) (*Pitch, bool) {
	id, ok := auth.RequireIdentity(c)
	if !ok {
		return nil, false
	}

	pitchID, err := api.ParamID(c, "id")
	if err != nil {
		api.Fail(c, err)
		return nil, false
	}

	var req UpdatePitchRequest
	if !api.Bind(c, &req) {
		return nil, false
	}

	p, err := h.service.UpdatePitch(c.Request.Context(), id, pitchID, req)
	if err != nil {
		api.Fail(c, err)
		return nil, false
	}
	return p, true
}
