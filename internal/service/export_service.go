package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kampus/orari/internal/models"
	"github.com/kampus/orari/internal/timetable"
	appErrors "github.com/kampus/orari/pkg/errors"
	"github.com/kampus/orari/pkg/export"
)

type scheduleExportSource interface {
	ListDetailed(ctx context.Context) ([]models.ScheduleDetail, error)
}

// ExportResult is a rendered schedule document ready to be served.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the public timetable as a PDF, CSV or XLSX document.
type ExportService struct {
	schedules scheduleExportSource
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(schedules scheduleExportSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{schedules: schedules, logger: logger, now: time.Now}
}

var scheduleExportHeaders = []string{"Lënda", "Kodi", "Programi", "Lloji", "ECTS", "Mësimdhënës", "Ditë", "Orë", "Salla"}

// Schedule renders every schedule, ordered by weekday, in the given format.
func (s *ExportService) Schedule(ctx context.Context, format string) (*ExportResult, error) {
	exporter, ok := export.ForFormat(format)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	details, err := s.schedules.ListDetailed(ctx)
	if err != nil {
		return nil, repoError(err, entitySchedule, "list")
	}
	timetable.SortByDay(details)

	now := s.now()
	dataset := export.Dataset{
		Title:   "Orari i mësimit",
		Headers: scheduleExportHeaders,
		Rows:    make([][]string, 0, len(details)),
	}
	for _, d := range details {
		row := ScheduleRow(d, now)
		instructor := row.InstructorName
		if row.InstructorTitle != "" {
			instructor += ", " + row.InstructorTitle
		}
		dataset.Rows = append(dataset.Rows, []string{
			row.CourseName,
			row.CourseCode,
			row.ProgramName,
			row.SessionLabel,
			strconv.Itoa(row.ECTSCredits),
			instructor,
			row.DayName,
			row.TimeRange,
			row.RoomName,
		})
	}

	payload, err := exporter.Render(dataset)
	if err != nil {
		s.logger.Error("render schedule export failed", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("orari_%s.%s", now.UTC().Format("20060102_150405"), exporter.Extension()),
		ContentType: exporter.ContentType(),
		Payload:     payload,
	}, nil
}
