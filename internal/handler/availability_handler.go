package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openlingua/academy-api/internal/availability"
	"github.com/openlingua/academy-api/internal/dto"
	"github.com/openlingua/academy-api/internal/middleware"
	appErrors "github.com/openlingua/academy-api/pkg/errors"
	"github.com/openlingua/academy-api/pkg/response"
)

type availabilityService interface {
	Slots(ctx context.Context, req dto.SlotListRequest) ([]dto.SlotResponse, bool, error)
	Overview(ctx context.Context, req dto.WeekOverviewRequest) (*dto.WeekOverviewResponse, bool, error)
	Validate(ctx context.Context, req dto.ValidateClassTimeRequest) (*dto.ValidateClassTimeResponse, error)
}

// AvailabilityHandler wires availability computations to HTTP routes.
type AvailabilityHandler struct {
	availability availabilityService
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(availability availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// Slots godoc
// @Summary List bookable slots for a teacher
// @Tags Availability
// @Produce json
// @Param id path string true "Teacher ID"
// @Param student_id query string false "Student requesting the feed"
// @Param weeks query int false "Weeks ahead (default 8)"
// @Param duration query int false "Slot duration in minutes (default 60)"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/availability/slots [get]
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	req := dto.SlotListRequest{
		TeacherID: c.Param("id"),
		StudentID: c.Query("student_id"),
	}
	if weeks, err := strconv.Atoi(c.DefaultQuery("weeks", "0")); err == nil {
		req.Weeks = weeks
	}
	if duration, err := strconv.Atoi(c.DefaultQuery("duration", "0")); err == nil {
		req.Duration = duration
	}

	slots, cached, err := h.availability.Slots(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, slots, nil, middleware.ExtractMeta(c))
}

// Week godoc
// @Summary Weekly availability overview for a teacher
// @Tags Availability
// @Produce json
// @Param id path string true "Teacher ID"
// @Param start query string false "Range start (YYYY-MM-DD)"
// @Param end query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/availability/week [get]
func (h *AvailabilityHandler) Week(c *gin.Context) {
	req := dto.WeekOverviewRequest{TeacherID: c.Param("id")}
	var err error
	if req.StartDate, err = parseDateQuery(c, "start"); err != nil {
		response.Error(c, err)
		return
	}
	if req.EndDate, err = parseDateQuery(c, "end"); err != nil {
		response.Error(c, err)
		return
	}

	overview, cached, err := h.availability.Overview(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, overview, nil, middleware.ExtractMeta(c))
}

// Validate godoc
// @Summary Validate a candidate class time
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body dto.ValidateClassTimeRequest true "Candidate class time"
// @Success 200 {object} response.Envelope
// @Router /bookings/validate [post]
func (h *AvailabilityHandler) Validate(c *gin.Context) {
	var req dto.ValidateClassTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid validation payload"))
		return
	}
	verdict, err := h.availability.Validate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, verdict, nil)
}

func parseDateQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(availability.DateLayout, raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid "+key+" date, expected YYYY-MM-DD")
	}
	return &parsed, nil
}
