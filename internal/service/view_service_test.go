package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kampus/orari/internal/models"
	"github.com/kampus/orari/internal/timetable"
	appErrors "github.com/kampus/orari/pkg/errors"
)

type viewFixture struct {
	programs      []models.Program
	courses       []models.Course
	instructors   []models.Instructor
	rooms         []models.Room
	details       []models.ScheduleDetail
	recent        []models.ScheduleDetail
	days          []int
	notifications []models.Notification
	failSchedules error
	calls         int32
}

func (f *viewFixture) hit() { atomic.AddInt32(&f.calls, 1) }

type viewPrograms struct{ *viewFixture }

func (v viewPrograms) List(ctx context.Context) ([]models.Program, error) {
	v.hit()
	return v.programs, nil
}

type viewCourses struct{ *viewFixture }

func (v viewCourses) ListWithProgram(ctx context.Context) ([]models.Course, error) {
	v.hit()
	return v.courses, nil
}

func (v viewCourses) Count(ctx context.Context) (int, error) {
	v.hit()
	return len(v.courses), nil
}

type viewInstructors struct{ *viewFixture }

func (v viewInstructors) List(ctx context.Context) ([]models.Instructor, error) {
	v.hit()
	return v.instructors, nil
}

func (v viewInstructors) Count(ctx context.Context) (int, error) {
	v.hit()
	return len(v.instructors), nil
}

type viewRooms struct{ *viewFixture }

func (v viewRooms) List(ctx context.Context) ([]models.Room, error) {
	v.hit()
	return v.rooms, nil
}

func (v viewRooms) Count(ctx context.Context) (int, error) {
	v.hit()
	return len(v.rooms), nil
}

type viewSchedules struct{ *viewFixture }

func (v viewSchedules) ListDetailed(ctx context.Context) ([]models.ScheduleDetail, error) {
	v.hit()
	if v.failSchedules != nil {
		return nil, v.failSchedules
	}
	out := make([]models.ScheduleDetail, len(v.details))
	copy(out, v.details)
	return out, nil
}

func (v viewSchedules) Recent(ctx context.Context, limit int) ([]models.ScheduleDetail, error) {
	v.hit()
	return v.recent, nil
}

func (v viewSchedules) DaysOfWeek(ctx context.Context) ([]int, error) {
	v.hit()
	return v.days, nil
}

func (v viewSchedules) Count(ctx context.Context) (int, error) {
	v.hit()
	return len(v.details), nil
}

type viewNotifications struct{ *viewFixture }

func (v viewNotifications) List(ctx context.Context) ([]models.Notification, error) {
	v.hit()
	return v.notifications, nil
}

func (v viewNotifications) ListActive(ctx context.Context) ([]models.Notification, error) {
	v.hit()
	var out []models.Notification
	for _, n := range v.notifications {
		if n.IsActive {
			out = append(out, n)
		}
	}
	return out, nil
}

func newViewService(f *viewFixture, metrics *MetricsService) *ViewService {
	return NewViewService(ViewServiceParams{
		Programs:      viewPrograms{f},
		Courses:       viewCourses{f},
		Instructors:   viewInstructors{f},
		Rooms:         viewRooms{f},
		Schedules:     viewSchedules{f},
		Notifications: viewNotifications{f},
		Metrics:       metrics,
	})
}

func detail(id string, day int, code string, created time.Time) models.ScheduleDetail {
	return models.ScheduleDetail{
		Schedule: models.Schedule{ID: id, DayOfWeek: day, CreatedAt: created},
		Course:   &models.CourseRef{Name: "Course " + id, Code: code, Credits: 3},
	}
}

func TestViewServicePublicSchedule(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	updated := base.Add(48 * time.Hour)
	wed := detail("w", 3, "X_001", base)
	wed.UpdatedAt = updated
	f := &viewFixture{
		details: []models.ScheduleDetail{wed, detail("m2", 1, "Y_002", base), detail("m1", 1, "Z", base)},
		notifications: []models.Notification{
			{ID: "n1", Title: "Exam week", Message: "Bring **ID**", IsActive: true},
			{ID: "n2", Title: "Old", Message: "hidden", IsActive: false},
		},
	}
	svc := newViewService(f, nil)
	wednesday := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

	view, err := svc.PublicSchedule(context.Background(), wednesday)
	require.NoError(t, err)
	require.Len(t, view.Rows, 3)
	assert.Equal(t, []string{"m2", "m1", "w"}, []string{view.Rows[0].ID, view.Rows[1].ID, view.Rows[2].ID})
	assert.Equal(t, 3, view.CurrentDay)
	assert.True(t, view.Rows[2].IsCurrentDay)
	assert.False(t, view.Rows[0].IsCurrentDay)
	assert.Equal(t, "Ushrime", view.Rows[0].SessionLabel)
	assert.Equal(t, timetable.LabelMixed, view.Rows[1].SessionLabel)
	assert.Equal(t, "H", view.Rows[0].DayShort)
	assert.Equal(t, "04-03-2024", view.Rows[0].Date)
	assert.Equal(t, timetable.Placeholder, view.Rows[0].TimeRange)
	require.NotNil(t, view.LastUpdated)
	assert.True(t, updated.Equal(*view.LastUpdated))

	require.Len(t, view.Notifications, 1)
	assert.Contains(t, string(view.Notifications[0].MessageHTML), "<strong>ID</strong>")
}

func TestViewServicePublicScheduleFailsWhole(t *testing.T) {
	metrics := NewMetricsService()
	f := &viewFixture{failSchedules: errors.New("connection refused")}
	svc := newViewService(f, metrics)

	view, err := svc.PublicSchedule(context.Background(), time.Now())
	assert.Nil(t, view)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.readDuration))
}

func TestViewServiceDashboard(t *testing.T) {
	start, end := "09:00:00", "10:30:00"
	recent := detail("r1", 2, "A_001", time.Now())
	recent.StartTime, recent.EndTime = &start, &end
	recent.Room = &models.RoomRef{Name: "B2"}
	f := &viewFixture{
		courses:     make([]models.Course, 4),
		instructors: make([]models.Instructor, 2),
		rooms:       make([]models.Room, 3),
		details:     make([]models.ScheduleDetail, 6),
		recent:      []models.ScheduleDetail{recent},
		days:        []int{1, 1, 3, 5, 7, 9},
	}
	svc := newViewService(f, nil)

	view, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, view.Counts.Courses)
	assert.Equal(t, 2, view.Counts.Instructors)
	assert.Equal(t, 3, view.Counts.Rooms)
	assert.Equal(t, 6, view.Counts.Schedules)
	assert.EqualValues(t, 6, atomic.LoadInt32(&f.calls))

	require.Len(t, view.Recent, 1)
	assert.Equal(t, "Tue", view.Recent[0].DayAbbrev)
	assert.Equal(t, "09:00-10:30", view.Recent[0].TimeRange)
	assert.Equal(t, "B2", view.Recent[0].RoomName)

	assert.Equal(t, 2, view.ByDay[0].Count)
	assert.Equal(t, 0, view.ByDay[1].Count)
	assert.Equal(t, 1, view.ByDay[6].Count)
	assert.Equal(t, "Sun", view.ByDay[6].Name)
}

func TestViewServiceConsole(t *testing.T) {
	f := &viewFixture{
		programs:      []models.Program{{ID: "p1"}},
		courses:       []models.Course{{ID: "c1"}},
		instructors:   []models.Instructor{{ID: "i1"}},
		rooms:         []models.Room{{ID: "r1"}},
		details:       []models.ScheduleDetail{detail("s1", 1, "", time.Now())},
		notifications: []models.Notification{{ID: "n1"}, {ID: "n2", IsActive: true}},
	}
	svc := newViewService(f, nil)

	data, err := svc.Console(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Programs, 1)
	assert.Len(t, data.Courses, 1)
	assert.Len(t, data.Instructors, 1)
	assert.Len(t, data.Rooms, 1)
	assert.Len(t, data.Schedules, 1)
	assert.Len(t, data.Notifications, 2)
	assert.EqualValues(t, 6, atomic.LoadInt32(&f.calls))
}

func TestRenderMarkdownEscapesHTML(t *testing.T) {
	out := string(RenderMarkdown("hi <script>alert(1)</script>"))
	assert.NotContains(t, out, "<script>")
}
