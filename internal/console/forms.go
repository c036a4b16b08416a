package console

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kampus/orari/internal/models"
	"github.com/kampus/orari/internal/service"
)

// DateTimeLocal is the layout posted by datetime-local inputs.
const DateTimeLocal = "2006-01-02T15:04"

// Variant styles a notice.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notice is the transient message shown after an action.
type Notice struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

func success(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: VariantDefault}
}

func failure(description string) Notice {
	return Notice{Title: "Error", Description: description, Variant: VariantDestructive}
}

// ErrBusy is returned while a previous submission of the same form is running.
var ErrBusy = errors.New("console: submission already in progress")

// Guard admits one in-flight submission per key.
type Guard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewGuard creates an empty guard.
func NewGuard() *Guard {
	return &Guard{active: make(map[string]struct{})}
}

// Begin claims key, returning the release func, or ErrBusy when taken.
func (g *Guard) Begin(key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return nil, ErrBusy
	}
	g.active[key] = struct{}{}
	return func() {
		g.mu.Lock()
		delete(g.active, key)
		g.mu.Unlock()
	}, nil
}

// InFlight reports whether key is claimed.
func (g *Guard) InFlight(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.active[key]
	return busy
}

type programWriter interface {
	Create(ctx context.Context, req service.ProgramRequest) (*models.Program, error)
	Update(ctx context.Context, id string, req service.ProgramRequest) (*models.Program, error)
	Delete(ctx context.Context, id string) error
}

type courseWriter interface {
	Create(ctx context.Context, req service.CourseRequest) (*models.Course, error)
	Update(ctx context.Context, id string, req service.CourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id string) error
}

type instructorWriter interface {
	Create(ctx context.Context, req service.InstructorRequest) (*models.Instructor, error)
	Update(ctx context.Context, id string, req service.InstructorRequest) (*models.Instructor, error)
	Delete(ctx context.Context, id string) error
}

type roomWriter interface {
	Create(ctx context.Context, req service.RoomRequest) (*models.Room, error)
	Update(ctx context.Context, id string, req service.RoomRequest) (*models.Room, error)
	Delete(ctx context.Context, id string) error
}

type scheduleWriter interface {
	Create(ctx context.Context, req service.ScheduleRequest) (*models.Schedule, error)
	Update(ctx context.Context, id string, req service.ScheduleRequest) (*models.Schedule, error)
	Delete(ctx context.Context, id string) error
}

type notificationWriter interface {
	Create(ctx context.Context, req service.NotificationRequest) (*models.Notification, error)
	Update(ctx context.Context, id string, req service.NotificationRequest) (*models.Notification, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// Params groups the writers behind the console.
type Params struct {
	Programs      programWriter
	Courses       courseWriter
	Instructors   instructorWriter
	Rooms         roomWriter
	Schedules     scheduleWriter
	Notifications notificationWriter
	Location      *time.Location
	Logger        *zap.Logger
}

// Console performs the mutations behind the management console.
type Console struct {
	programs      programWriter
	courses       courseWriter
	instructors   instructorWriter
	rooms         roomWriter
	schedules     scheduleWriter
	notifications notificationWriter
	location      *time.Location
	guard         *Guard
	logger        *zap.Logger
}

// New constructs a Console. A nil Location means UTC.
func New(params Params) *Console {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Console{
		programs:      params.Programs,
		courses:       params.Courses,
		instructors:   params.Instructors,
		rooms:         params.Rooms,
		schedules:     params.Schedules,
		notifications: params.Notifications,
		location:      loc,
		guard:         NewGuard(),
		logger:        logger,
	}
}

// Location is the zone datetime-local inputs are interpreted in.
func (c *Console) Location() *time.Location { return c.location }

// InFlight reports whether a create submission for key is still running.
func (c *Console) InFlight(key string) bool { return c.guard.InFlight(key) }

// CreateResult is the outcome of a create submission. On success Values is
// nil so the form renders empty and the caller refreshes the page data. On
// failure Values holds the submitted input for correction.
type CreateResult struct {
	Notice  Notice
	OK      bool
	Refresh bool
	Values  url.Values
}

// Create submits one creation form. key identifies the submitter and form so
// that a duplicate submission is refused while the first one runs.
func (c *Console) Create(ctx context.Context, key string, entity Entity, values url.Values) (CreateResult, error) {
	release, err := c.guard.Begin(key + "|" + string(entity))
	if err != nil {
		return CreateResult{}, err
	}
	defer release()

	if err := c.create(ctx, entity, values); err != nil {
		c.logger.Warn("console create failed", zap.String("entity", string(entity)), zap.Error(err))
		description := "Failed to add " + entity.Noun()
		if entity == Notifications {
			description = "Failed to create notification"
		}
		return CreateResult{Notice: failure(description), Values: cloneValues(values)}, nil
	}

	if entity == Notifications {
		return CreateResult{Notice: success("Saved", "Notification created"), OK: true, Refresh: true}, nil
	}
	return CreateResult{Notice: success("Success", entity.Title()+" added successfully"), OK: true, Refresh: true}, nil
}

func (c *Console) create(ctx context.Context, entity Entity, values url.Values) error {
	switch entity {
	case Programs:
		_, err := c.programs.Create(ctx, DecodeProgram(values))
		return err
	case Courses:
		req, err := DecodeCourse(values)
		if err != nil {
			return err
		}
		_, err = c.courses.Create(ctx, req)
		return err
	case Instructors:
		_, err := c.instructors.Create(ctx, DecodeInstructor(values))
		return err
	case Rooms:
		req, err := DecodeRoom(values)
		if err != nil {
			return err
		}
		_, err = c.rooms.Create(ctx, req)
		return err
	case Schedules:
		req, err := DecodeSchedule(values)
		if err != nil {
			return err
		}
		_, err = c.schedules.Create(ctx, req)
		return err
	case Notifications:
		req, err := DecodeNotification(values, c.location)
		if err != nil {
			return err
		}
		_, err = c.notifications.Create(ctx, req)
		return err
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
}

// DecodeProgram reads the program form.
func DecodeProgram(values url.Values) service.ProgramRequest {
	return service.ProgramRequest{
		Name:  values.Get("name"),
		Code:  values.Get("code"),
		Level: models.ProgramLevel(values.Get("level")),
	}
}

// DecodeCourse reads the course form, coercing the numeric fields.
func DecodeCourse(values url.Values) (service.CourseRequest, error) {
	req := service.CourseRequest{
		ProgramID: values.Get("program_id"),
		Name:      values.Get("name"),
		Code:      values.Get("code"),
	}
	ints := []struct {
		field string
		dst   *int
	}{
		{"credits", &req.Credits},
		{"ects_credits", &req.ECTSCredits},
		{"lecture_hours", &req.LectureHours},
		{"lab_hours", &req.LabHours},
		{"semester", &req.Semester},
		{"year", &req.Year},
	}
	for _, f := range ints {
		n, err := intField(values, f.field)
		if err != nil {
			return req, err
		}
		*f.dst = n
	}
	return req, nil
}

// DecodeInstructor reads the instructor form. Blank email and title are NULL.
func DecodeInstructor(values url.Values) service.InstructorRequest {
	return service.InstructorRequest{
		Name:  values.Get("name"),
		Email: optionalField(values, "email"),
		Title: optionalField(values, "title"),
	}
}

// DecodeRoom reads the room form. Blank capacity and type are NULL.
func DecodeRoom(values url.Values) (service.RoomRequest, error) {
	req := service.RoomRequest{
		Name: values.Get("name"),
		Code: values.Get("code"),
	}
	if raw := optionalField(values, "capacity"); raw != nil {
		n, err := strconv.Atoi(*raw)
		if err != nil {
			return req, fmt.Errorf("capacity: %w", err)
		}
		req.Capacity = &n
	}
	if raw := optionalField(values, "room_type"); raw != nil {
		rt := models.RoomType(*raw)
		req.RoomType = &rt
	}
	return req, nil
}

// DecodeSchedule reads the schedule form. A checked no_start_time or
// no_end_time box submits that time as NULL whatever the input holds.
func DecodeSchedule(values url.Values) (service.ScheduleRequest, error) {
	day, err := intField(values, "day_of_week")
	if err != nil {
		return service.ScheduleRequest{}, err
	}
	req := service.ScheduleRequest{
		CourseID:     values.Get("course_id"),
		InstructorID: values.Get("instructor_id"),
		RoomID:       values.Get("room_id"),
		DayOfWeek:    day,
		SessionType:  models.SessionType(values.Get("session_type")),
	}
	if !checked(values, "no_start_time") {
		req.StartTime = optionalField(values, "start_time")
	}
	if !checked(values, "no_end_time") {
		req.EndTime = optionalField(values, "end_time")
	}
	return req, nil
}

// DecodeNotification reads the notification form. The window inputs are
// local date-times in loc; blank means NULL.
func DecodeNotification(values url.Values, loc *time.Location) (service.NotificationRequest, error) {
	active := checked(values, "is_active")
	req := service.NotificationRequest{
		Title:    values.Get("title"),
		Message:  values.Get("message"),
		Severity: models.Severity(values.Get("severity")),
		IsActive: &active,
	}
	var err error
	if req.StartAt, err = localTime(values, "start_at", loc); err != nil {
		return req, err
	}
	if req.EndAt, err = localTime(values, "end_at", loc); err != nil {
		return req, err
	}
	return req, nil
}

func intField(values url.Values, field string) (int, error) {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return n, nil
}

func optionalField(values url.Values, field string) *string {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return nil
	}
	return &raw
}

func checked(values url.Values, field string) bool {
	switch strings.ToLower(values.Get(field)) {
	case "on", "true", "1":
		return true
	}
	return false
}

func localTime(values url.Values, field string, loc *time.Location) (*time.Time, error) {
	raw := optionalField(values, field)
	if raw == nil {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateTimeLocal, *raw, loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	utc := t.UTC()
	return &utc, nil
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, v := range values {
		out[k] = append([]string(nil), v...)
	}
	return out
}
