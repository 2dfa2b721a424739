package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/openlingua/academy-api/internal/dto"
	appErrors "github.com/openlingua/academy-api/pkg/errors"
	"github.com/openlingua/academy-api/pkg/export"
)

type overviewProvider interface {
	Overview(ctx context.Context, req dto.WeekOverviewRequest) (*dto.WeekOverviewResponse, bool, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult carries a rendered document ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders weekly availability overviews as downloadable
// CSV or PDF documents.
type ExportService struct {
	overviews overviewProvider
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(overviews overviewProvider, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{overviews: overviews, csv: csv, pdf: pdf, logger: logger}
}

// WeekOverview renders a teacher's weekly overview in the given format.
// Supported formats are "csv" and "pdf".
func (s *ExportService) WeekOverview(ctx context.Context, req dto.WeekOverviewRequest, format string) (*ExportResult, error) {
	overview, _, err := s.overviews.Overview(ctx, req)
	if err != nil {
		return nil, err
	}

	dataset := overviewDataset(overview)
	base := "availability-week"
	if len(overview.Days) > 0 {
		base = fmt.Sprintf("availability-week-%s", overview.Days[0].Date)
	}

	switch strings.ToLower(format) {
	case "csv", "":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Filename: base + ".csv", ContentType: "text/csv", Content: content}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset, "Weekly Availability")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Filename: base + ".pdf", ContentType: "application/pdf", Content: content}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format "+format)
	}
}

func overviewDataset(overview *dto.WeekOverviewResponse) export.Dataset {
	headers := []string{"Date", "Weekday", "Status", "Free", "Breaks", "Classes"}
	rows := make([]map[string]string, 0, len(overview.Days))
	for _, day := range overview.Days {
		status := "working"
		if day.Holiday {
			status = "holiday"
		}
		rows = append(rows, map[string]string{
			"Date":    day.Date,
			"Weekday": day.Weekday,
			"Status":  status,
			"Free":    joinRanges(day.Free),
			"Breaks":  joinRanges(day.Breaks),
			"Classes": joinRanges(day.Classes),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func joinRanges(ranges []dto.TimeRange) string {
	if len(ranges) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		parts = append(parts, r.StartTime+"-"+r.EndTime)
	}
	return strings.Join(parts, "; ")
}
