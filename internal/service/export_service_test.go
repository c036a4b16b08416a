package service

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kampus/orari/internal/models"
	appErrors "github.com/kampus/orari/pkg/errors"
)

type exportSourceStub struct {
	rows []models.ScheduleDetail
	err  error
}

func (s exportSourceStub) ListDetailed(ctx context.Context) ([]models.ScheduleDetail, error) {
	return s.rows, s.err
}

func TestExportServiceScheduleCSV(t *testing.T) {
	title := "Professor"
	start, end := "08:00:00", "09:30:00"
	src := exportSourceStub{rows: []models.ScheduleDetail{
		{
			Schedule:   models.Schedule{ID: "s2", DayOfWeek: 3},
			Course:     &models.CourseRef{Name: "Networks", Code: "NET_002", ECTSCredits: 5},
			Instructor: &models.InstructorRef{Name: "Dora"},
		},
		{
			Schedule:   models.Schedule{ID: "s1", DayOfWeek: 1, StartTime: &start, EndTime: &end},
			Course:     &models.CourseRef{Name: "Databases", Code: "DB_001", ECTSCredits: 6, Program: &models.ProgramRef{Name: "Computer Science"}},
			Instructor: &models.InstructorRef{Name: "Ana", Title: &title},
			Room:       &models.RoomRef{Name: "A1"},
		},
	}}
	svc := NewExportService(src, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC) }

	res, err := svc.Schedule(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "orari_20240306_100000.csv", res.Filename)
	assert.Contains(t, res.ContentType, "text/csv")

	records, err := csv.NewReader(strings.NewReader(string(res.Payload))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Databases", "DB_001", "Computer Science", "Ligjerate", "6", "Ana, Professor", "Monday", "08:00-09:30", "A1"}, records[1])
	assert.Equal(t, []string{"Networks", "NET_002", "", "Ushrime", "5", "Dora", "Wednesday", "—", ""}, records[2])
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(exportSourceStub{}, nil)
	_, err := svc.Schedule(context.Background(), "docx")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestExportServiceReadFailure(t *testing.T) {
	svc := NewExportService(exportSourceStub{err: errors.New("db down")}, nil)
	_, err := svc.Schedule(context.Background(), "pdf")
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}
