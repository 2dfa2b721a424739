package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openlingua/academy-api/internal/dto"
	"github.com/openlingua/academy-api/internal/service"
	"github.com/openlingua/academy-api/pkg/response"
)

type exportService interface {
	WeekOverview(ctx context.Context, req dto.WeekOverviewRequest, format string) (*service.ExportResult, error)
}

// ExportHandler serves downloadable availability documents.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Week godoc
// @Summary Download a weekly availability overview
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Teacher ID"
// @Param format query string false "Export format (csv or pdf)"
// @Param start query string false "Range start (YYYY-MM-DD)"
// @Param end query string false "Range end (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Router /teachers/{id}/availability/week/export [get]
func (h *ExportHandler) Week(c *gin.Context) {
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

	result, err := h.exports.WeekOverview(c.Request.Context(), req, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
