package service

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kampus/orari/internal/dto"
	"github.com/kampus/orari/internal/models"
	"github.com/kampus/orari/internal/timetable"
	appErrors "github.com/kampus/orari/pkg/errors"
)

const (
	viewPublic    = "public"
	viewDashboard = "dashboard"
	viewConsole   = "console"

	recentSchedulesLimit = 5
)

// Raw HTML in messages is escaped because WithUnsafe is not set.
var markdown = goldmark.New(goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()))

type scheduleViewReader interface {
	ListDetailed(ctx context.Context) ([]models.ScheduleDetail, error)
	Recent(ctx context.Context, limit int) ([]models.ScheduleDetail, error)
	DaysOfWeek(ctx context.Context) ([]int, error)
	Count(ctx context.Context) (int, error)
}

type notificationViewReader interface {
	List(ctx context.Context) ([]models.Notification, error)
	ListActive(ctx context.Context) ([]models.Notification, error)
}

type courseViewReader interface {
	ListWithProgram(ctx context.Context) ([]models.Course, error)
	Count(ctx context.Context) (int, error)
}

type instructorViewReader interface {
	List(ctx context.Context) ([]models.Instructor, error)
	Count(ctx context.Context) (int, error)
}

type roomViewReader interface {
	List(ctx context.Context) ([]models.Room, error)
	Count(ctx context.Context) (int, error)
}

type programViewReader interface {
	List(ctx context.Context) ([]models.Program, error)
}

// ViewServiceParams groups constructor dependencies.
type ViewServiceParams struct {
	Programs      programViewReader
	Courses       courseViewReader
	Instructors   instructorViewReader
	Rooms         roomViewReader
	Schedules     scheduleViewReader
	Notifications notificationViewReader
	Metrics       *MetricsService
	Logger        *zap.Logger
}

// ViewService composes the read-only views from parallel reads. A view is
// all-or-nothing: if any read fails the whole view fails. Nothing is cached.
type ViewService struct {
	programs      programViewReader
	courses       courseViewReader
	instructors   instructorViewReader
	rooms         roomViewReader
	schedules     scheduleViewReader
	notifications notificationViewReader
	metrics       *MetricsService
	logger        *zap.Logger
}

// NewViewService constructs a ViewService.
func NewViewService(params ViewServiceParams) *ViewService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewService{
		programs:      params.Programs,
		courses:       params.Courses,
		instructors:   params.Instructors,
		rooms:         params.Rooms,
		schedules:     params.Schedules,
		notifications: params.Notifications,
		metrics:       params.Metrics,
		logger:        logger,
	}
}

// PublicSchedule builds the public timetable as seen at now.
func (s *ViewService) PublicSchedule(ctx context.Context, now time.Time) (view *dto.ScheduleView, err error) {
	defer s.observe(viewPublic, time.Now(), &err)

	var (
		details []models.ScheduleDetail
		active  []models.Notification
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		details, err = s.schedules.ListDetailed(gctx)
		return err
	})
	g.Go(func() (err error) {
		active, err = s.notifications.ListActive(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.readError(viewPublic, err)
	}

	timetable.SortByDay(details)
	today := timetable.DayOfWeek(now)
	view = &dto.ScheduleView{
		Rows:          make([]dto.ScheduleRow, 0, len(details)),
		LastUpdated:   timetable.LatestUpdate(details),
		Notifications: make([]dto.NotificationBanner, 0, len(active)),
		CurrentDay:    today,
	}
	for _, d := range details {
		view.Rows = append(view.Rows, ScheduleRow(d, now))
	}
	for _, n := range active {
		view.Notifications = append(view.Notifications, banner(n))
	}
	return view, nil
}

// Dashboard builds the counts, the recent list and the weekday histogram.
func (s *ViewService) Dashboard(ctx context.Context) (view *dto.DashboardView, err error) {
	defer s.observe(viewDashboard, time.Now(), &err)

	var (
		counts dto.DashboardCounts
		recent []models.ScheduleDetail
		days   []int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts.Courses, err = s.courses.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Instructors, err = s.instructors.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Rooms, err = s.rooms.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Schedules, err = s.schedules.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.schedules.Recent(gctx, recentSchedulesLimit)
		return err
	})
	g.Go(func() (err error) {
		days, err = s.schedules.DaysOfWeek(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.readError(viewDashboard, err)
	}

	view = &dto.DashboardView{
		Counts: counts,
		Recent: make([]dto.RecentSchedule, 0, len(recent)),
		ByDay:  timetable.Histogram(days),
	}
	for _, d := range recent {
		item := dto.RecentSchedule{
			ID:        d.ID,
			DayAbbrev: timetable.DayAbbrev(d.DayOfWeek),
			TimeRange: timetable.TimeRange(d.StartTime, d.EndTime),
			CreatedAt: d.CreatedAt,
		}
		if d.Course != nil {
			item.CourseName, item.CourseCode = d.Course.Name, d.Course.Code
		}
		if d.Instructor != nil {
			item.InstructorName = d.Instructor.Name
		}
		if d.Room != nil {
			item.RoomName = d.Room.Name
		}
		view.Recent = append(view.Recent, item)
	}
	return view, nil
}

// Console loads every collection listed by the management console.
func (s *ViewService) Console(ctx context.Context) (data *dto.ConsoleData, err error) {
	defer s.observe(viewConsole, time.Now(), &err)

	data = &dto.ConsoleData{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Programs, err = s.programs.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Courses, err = s.courses.ListWithProgram(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Instructors, err = s.instructors.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Rooms, err = s.rooms.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Schedules, err = s.schedules.ListDetailed(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Notifications, err = s.notifications.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.readError(viewConsole, err)
	}
	return data, nil
}

// ScheduleRow shapes one joined schedule for display relative to now.
func ScheduleRow(d models.ScheduleDetail, now time.Time) dto.ScheduleRow {
	row := dto.ScheduleRow{
		ID:           d.ID,
		SessionLabel: timetable.SessionLabel(nil),
		Day:          d.DayOfWeek,
		DayShort:     timetable.DayShort(d.DayOfWeek),
		DayName:      timetable.DayName(d.DayOfWeek),
		Date:         timetable.DateForWeekday(d.DayOfWeek, now),
		TimeRange:    timetable.TimeRange(d.StartTime, d.EndTime),
		SessionType:  string(d.SessionType),
		IsCurrentDay: d.DayOfWeek == timetable.DayOfWeek(now),
	}
	if c := d.Course; c != nil {
		code := c.Code
		row.CourseName = c.Name
		row.CourseCode = c.Code
		row.SessionLabel = timetable.SessionLabel(&code)
		row.Credits = c.Credits
		row.ECTSCredits = c.ECTSCredits
		if c.Program != nil {
			row.ProgramName = c.Program.Name
		}
	}
	if i := d.Instructor; i != nil {
		row.InstructorName = i.Name
		if i.Title != nil {
			row.InstructorTitle = *i.Title
		}
	}
	if r := d.Room; r != nil {
		row.RoomName = r.Name
	}
	return row
}

func banner(n models.Notification) dto.NotificationBanner {
	return dto.NotificationBanner{
		ID:          n.ID,
		Title:       n.Title,
		MessageHTML: RenderMarkdown(n.Message),
		Severity:    n.Severity,
		CreatedAt:   n.CreatedAt,
	}
}

// RenderMarkdown converts a notification message to HTML. Input that fails
// to convert is shown escaped.
func RenderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}

func (s *ViewService) observe(view string, started time.Time, err *error) {
	s.metrics.ObserveRead(view, *err, time.Since(started))
}

func (s *ViewService) readError(view string, err error) error {
	s.logger.Error("view read failed", zap.String("view", view), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+view+" data")
}
