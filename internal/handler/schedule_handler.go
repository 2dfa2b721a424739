package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openlingua/academy-api/internal/dto"
	appErrors "github.com/openlingua/academy-api/pkg/errors"
	"github.com/openlingua/academy-api/pkg/response"
)

type scheduleService interface {
	Get(ctx context.Context, teacherID string) (*dto.ScheduleResponse, error)
	Upsert(ctx context.Context, teacherID string, req dto.UpsertScheduleRequest) (*dto.ScheduleResponse, error)
}

// ScheduleHandler wires weekly schedule management to HTTP routes.
type ScheduleHandler struct {
	schedules scheduleService
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(schedules scheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// Get godoc
// @Summary Get a teacher's weekly schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/schedule [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	schedule, err := h.schedules.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// Upsert godoc
// @Summary Replace a teacher's weekly schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body dto.UpsertScheduleRequest true "Weekly schedule"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/schedule [put]
func (h *ScheduleHandler) Upsert(c *gin.Context) {
	var req dto.UpsertScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}
	schedule, err := h.schedules.Upsert(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}
