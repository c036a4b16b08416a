package console

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kampus/orari/internal/dto"
	"github.com/kampus/orari/internal/models"
	"github.com/kampus/orari/internal/service"
)

var errBackend = errors.New("backend failure")

type fakeWriters struct {
	courseCreates    []service.CourseRequest
	courseUpdates    []service.CourseRequest
	scheduleCreates  []service.ScheduleRequest
	scheduleUpdates  []service.ScheduleRequest
	notificationReqs []service.NotificationRequest
	setActiveCalls   []bool
	deletes          []string
	fail             bool
	block            chan struct{}
}

func (f *fakeWriters) err() error {
	if f.fail {
		return errBackend
	}
	return nil
}

type fakePrograms struct{ *fakeWriters }

func (f fakePrograms) Create(ctx context.Context, req service.ProgramRequest) (*models.Program, error) {
	return &models.Program{ID: "p-new", Name: req.Name}, f.err()
}

func (f fakePrograms) Update(ctx context.Context, id string, req service.ProgramRequest) (*models.Program, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	return &models.Program{ID: id, Name: req.Name, Code: req.Code, Level: req.Level}, nil
}

func (f fakePrograms) Delete(ctx context.Context, id string) error {
	f.deletes = append(f.deletes, "programs/"+id)
	return f.err()
}

type fakeCourses struct{ *fakeWriters }

func (f fakeCourses) Create(ctx context.Context, req service.CourseRequest) (*models.Course, error) {
	if f.block != nil {
		<-f.block
	}
	f.courseCreates = append(f.courseCreates, req)
	if err := f.err(); err != nil {
		return nil, err
	}
	return &models.Course{ID: "c-new"}, nil
}

func (f fakeCourses) Update(ctx context.Context, id string, req service.CourseRequest) (*models.Course, error) {
	f.courseUpdates = append(f.courseUpdates, req)
	if err := f.err(); err != nil {
		return nil, err
	}
	programID := req.ProgramID
	return &models.Course{ID: id, ProgramID: &programID, Name: req.Name, Code: req.Code, Credits: req.Credits}, nil
}

func (f fakeCourses) Delete(ctx context.Context, id string) error {
	f.deletes = append(f.deletes, "courses/"+id)
	return f.err()
}

type fakeInstructors struct{ *fakeWriters }

func (f fakeInstructors) Create(ctx context.Context, req service.InstructorRequest) (*models.Instructor, error) {
	return &models.Instructor{ID: "i-new"}, f.err()
}

func (f fakeInstructors) Update(ctx context.Context, id string, req service.InstructorRequest) (*models.Instructor, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	return &models.Instructor{ID: id, Name: req.Name, Email: req.Email, Title: req.Title}, nil
}

func (f fakeInstructors) Delete(ctx context.Context, id string) error {
	f.deletes = append(f.deletes, "instructors/"+id)
	return f.err()
}

type fakeRooms struct{ *fakeWriters }

func (f fakeRooms) Create(ctx context.Context, req service.RoomRequest) (*models.Room, error) {
	return &models.Room{ID: "r-new"}, f.err()
}

func (f fakeRooms) Update(ctx context.Context, id string, req service.RoomRequest) (*models.Room, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	return &models.Room{ID: id, Name: req.Name, Code: req.Code, Capacity: req.Capacity, RoomType: req.RoomType}, nil
}

func (f fakeRooms) Delete(ctx context.Context, id string) error {
	f.deletes = append(f.deletes, "rooms/"+id)
	return f.err()
}

type fakeSchedules struct{ *fakeWriters }

func (f fakeSchedules) Create(ctx context.Context, req service.ScheduleRequest) (*models.Schedule, error) {
	f.scheduleCreates = append(f.scheduleCreates, req)
	return &models.Schedule{ID: "s-new"}, f.err()
}

func (f fakeSchedules) Update(ctx context.Context, id string, req service.ScheduleRequest) (*models.Schedule, error) {
	f.scheduleUpdates = append(f.scheduleUpdates, req)
	if err := f.err(); err != nil {
		return nil, err
	}
	return &models.Schedule{ID: id, CourseID: req.CourseID, InstructorID: req.InstructorID, RoomID: req.RoomID, DayOfWeek: req.DayOfWeek, StartTime: req.StartTime, EndTime: req.EndTime, SessionType: req.SessionType}, nil
}

func (f fakeSchedules) Delete(ctx context.Context, id string) error {
	f.deletes = append(f.deletes, "schedules/"+id)
	return f.err()
}

type fakeNotifications struct{ *fakeWriters }

func (f fakeNotifications) Create(ctx context.Context, req service.NotificationRequest) (*models.Notification, error) {
	f.notificationReqs = append(f.notificationReqs, req)
	return &models.Notification{ID: "n-new"}, f.err()
}

func (f fakeNotifications) Update(ctx context.Context, id string, req service.NotificationRequest) (*models.Notification, error) {
	f.notificationReqs = append(f.notificationReqs, req)
	if err := f.err(); err != nil {
		return nil, err
	}
	return &models.Notification{ID: id, Title: req.Title, Message: req.Message, Severity: req.Severity, IsActive: *req.IsActive}, nil
}

func (f fakeNotifications) SetActive(ctx context.Context, id string, active bool) error {
	f.setActiveCalls = append(f.setActiveCalls, active)
	return f.err()
}

func (f fakeNotifications) Delete(ctx context.Context, id string) error {
	f.deletes = append(f.deletes, "notifications/"+id)
	return f.err()
}

func newTestConsole(f *fakeWriters, loc *time.Location) *Console {
	return New(Params{
		Programs:      fakePrograms{f},
		Courses:       fakeCourses{f},
		Instructors:   fakeInstructors{f},
		Rooms:         fakeRooms{f},
		Schedules:     fakeSchedules{f},
		Notifications: fakeNotifications{f},
		Location:      loc,
	})
}

func strPtr(s string) *string { return &s }

func seedTables() *Tables {
	return NewTables(&dto.ConsoleData{
		Programs: []models.Program{
			{ID: "p1", Name: "Computer Science", Code: "CS"},
			{ID: "p2", Name: "Mathematics", Code: "MA"},
		},
		Courses: []models.Course{
			{ID: "c1", ProgramID: strPtr("p1"), Name: "Databases", Code: "DB_001", Credits: 3, Program: &models.ProgramRef{ID: "p1", Name: "Computer Science"}},
		},
		Instructors: []models.Instructor{{ID: "i1", Name: "Ana Kelmendi", Title: strPtr("Professor")}},
		Rooms:       []models.Room{{ID: "r1", Name: "A1"}},
		Schedules: []models.ScheduleDetail{
			{Schedule: models.Schedule{ID: "s1", CourseID: "c1", InstructorID: "i1", RoomID: "r1", DayOfWeek: 1, StartTime: strPtr("08:00:00")}},
		},
		Notifications: []models.Notification{{ID: "n1", Title: "Exams", IsActive: true}},
	})
}

func TestCreateCourseScenario(t *testing.T) {
	f := &fakeWriters{}
	c := newTestConsole(f, nil)
	values := url.Values{
		"name": {"Databases"}, "code": {"DB_001"}, "credits": {"3"}, "ects_credits": {"6"},
		"lecture_hours": {"2"}, "lab_hours": {"2"}, "semester": {"3"}, "year": {"2025"}, "program_id": {"p1"},
	}

	res, err := c.Create(context.Background(), "u1", Courses, values)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.True(t, res.Refresh)
	assert.Nil(t, res.Values)
	assert.Equal(t, Notice{Title: "Success", Description: "Course added successfully", Variant: VariantDefault}, res.Notice)

	require.Len(t, f.courseCreates, 1)
	assert.Equal(t, service.CourseRequest{ProgramID: "p1", Name: "Databases", Code: "DB_001", Credits: 3, ECTSCredits: 6, LectureHours: 2, LabHours: 2, Semester: 3, Year: 2025}, f.courseCreates[0])
}

func TestCreateFailureKeepsValues(t *testing.T) {
	f := &fakeWriters{fail: true}
	c := newTestConsole(f, nil)
	values := url.Values{"name": {"Lab"}, "code": {"L1"}}

	res, err := c.Create(context.Background(), "u1", Rooms, values)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.False(t, res.Refresh)
	assert.Equal(t, "Failed to add room", res.Notice.Description)
	assert.Equal(t, VariantDestructive, res.Notice.Variant)
	assert.Equal(t, "Lab", res.Values.Get("name"))

	res.Values.Set("name", "changed")
	assert.Equal(t, "Lab", values.Get("name"))
}

func TestCreateRejectsNonNumeric(t *testing.T) {
	f := &fakeWriters{}
	c := newTestConsole(f, nil)

	res, err := c.Create(context.Background(), "u1", Courses, url.Values{"credits": {"three"}})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Empty(t, f.courseCreates)
}

func TestCreateRefusesDuplicateWhileInFlight(t *testing.T) {
	f := &fakeWriters{block: make(chan struct{})}
	c := newTestConsole(f, nil)
	values := url.Values{"name": {"X"}, "credits": {"1"}}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Create(context.Background(), "u1", Courses, values)
	}()

	require.Eventually(t, func() bool { return c.InFlight("u1|courses") }, time.Second, time.Millisecond)
	_, err := c.Create(context.Background(), "u1", Courses, values)
	assert.ErrorIs(t, err, ErrBusy)

	close(f.block)
	<-done
	assert.False(t, c.InFlight("u1|courses"))
	assert.Len(t, f.courseCreates, 1)
}

func TestDecodeScheduleNoTimeCheckboxes(t *testing.T) {
	req, err := DecodeSchedule(url.Values{
		"course_id": {"c1"}, "instructor_id": {"i1"}, "room_id": {"r1"}, "day_of_week": {"2"},
		"start_time": {"09:00"}, "no_start_time": {"on"}, "end_time": {"10:30"}, "session_type": {"LAB"},
	})
	require.NoError(t, err)
	assert.Nil(t, req.StartTime)
	require.NotNil(t, req.EndTime)
	assert.Equal(t, "10:30", *req.EndTime)
	assert.Equal(t, 2, req.DayOfWeek)
}

func TestDecodeNotificationWindow(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	req, err := DecodeNotification(url.Values{
		"title": {"t"}, "message": {"m"}, "severity": {"info"},
		"start_at": {"2024-03-01T09:30"}, "end_at": {""},
	}, loc)
	require.NoError(t, err)
	require.NotNil(t, req.IsActive)
	assert.False(t, *req.IsActive)
	require.NotNil(t, req.StartAt)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC), *req.StartAt)
	assert.Nil(t, req.EndAt)

	_, err = DecodeNotification(url.Values{"start_at": {"tomorrow"}}, loc)
	assert.Error(t, err)
}

func TestCreateNotificationNotice(t *testing.T) {
	f := &fakeWriters{}
	c := newTestConsole(f, nil)

	res, err := c.Create(context.Background(), "u1", Notifications, url.Values{"title": {"t"}, "message": {"m"}, "severity": {"info"}, "is_active": {"on"}})
	require.NoError(t, err)
	assert.Equal(t, Notice{Title: "Saved", Description: "Notification created", Variant: VariantDefault}, res.Notice)
	require.Len(t, f.notificationReqs, 1)
	assert.True(t, *f.notificationReqs[0].IsActive)

	f.fail = true
	res, err = c.Create(context.Background(), "u1", Notifications, url.Values{"title": {"t"}})
	require.NoError(t, err)
	assert.Equal(t, "Failed to create notification", res.Notice.Description)
}

func TestEntityLabels(t *testing.T) {
	assert.Equal(t, "Adding Course...", Courses.BusyLabel())
	assert.Equal(t, "Add Schedule", Schedules.SubmitLabel())
	assert.Equal(t, "Saving...", Notifications.BusyLabel())
	assert.Equal(t, "instructor", Instructors.Noun())

	e, ok := ParseEntity("rooms")
	assert.True(t, ok)
	assert.Equal(t, Rooms, e)
	_, ok = ParseEntity("users")
	assert.False(t, ok)
}

func TestTableOperations(t *testing.T) {
	seed := []models.Room{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	table := NewTable(seed, func(r models.Room) string { return r.ID })

	assert.True(t, table.Patch("b", models.Room{ID: "b", Name: "B"}))
	assert.Equal(t, "", seed[1].Name)
	assert.True(t, table.Remove("a"))
	assert.False(t, table.Remove("a"))
	assert.Equal(t, 2, table.Len())
	_, ok := table.Find("a")
	assert.False(t, ok)

	table.Reset(seed)
	assert.Equal(t, 3, table.Len())
}

func TestEditCourseReResolvesProgram(t *testing.T) {
	f := &fakeWriters{}
	c := newTestConsole(f, nil)
	tables := seedTables()
	state, ok := c.EditState(tables, Courses, "c1")
	require.True(t, ok)
	state.Values.Set("program_id", "p2")
	state.Values.Set("ects_credits", "6")
	state.Values.Set("semester", "1")
	state.Values.Set("year", "2024")

	before, _ := tables.Courses.Find("c1")
	assert.Equal(t, "p1", *before.ProgramID)

	res := c.Edit(context.Background(), tables, Courses, "c1", state.Values)
	require.True(t, res.OK)
	assert.Equal(t, Notice{Title: "Saved", Description: "Course updated", Variant: VariantDefault}, res.Notice)
	require.Len(t, f.courseUpdates, 1)

	after, _ := tables.Courses.Find("c1")
	require.NotNil(t, after.Program)
	assert.Equal(t, "Mathematics", after.Program.Name)
	assert.Equal(t, 1, tables.Courses.Len())
}

func TestEditFailureLeavesTable(t *testing.T) {
	f := &fakeWriters{fail: true}
	c := newTestConsole(f, nil)
	tables := seedTables()

	res := c.Edit(context.Background(), tables, Rooms, "r1", url.Values{"name": {"B7"}})
	assert.False(t, res.OK)
	assert.Equal(t, "Failed to update room", res.Notice.Description)
	assert.Equal(t, "B7", res.Values.Get("name"))
	r, _ := tables.Rooms.Find("r1")
	assert.Equal(t, "A1", r.Name)
}

func TestEditScheduleResolvesJoins(t *testing.T) {
	f := &fakeWriters{}
	c := newTestConsole(f, nil)
	tables := seedTables()
	state, ok := c.EditState(tables, Schedules, "s1")
	require.True(t, ok)
	assert.Equal(t, "08:00", state.Values.Get("start_time"))
	assert.Equal(t, "on", state.Values.Get("no_end_time"))

	res := c.Edit(context.Background(), tables, Schedules, "s1", state.Values)
	require.True(t, res.OK)
	require.Len(t, f.scheduleUpdates, 1)
	assert.Nil(t, f.scheduleUpdates[0].EndTime)

	s, _ := tables.Schedules.Find("s1")
	require.NotNil(t, s.Course)
	assert.Equal(t, "Databases", s.Course.Name)
	require.NotNil(t, s.Instructor)
	assert.Equal(t, "Ana Kelmendi", s.Instructor.Name)
	require.NotNil(t, s.Room)
	assert.Equal(t, "A1", s.Room.Name)
}

func TestDeleteRequiresConfirmationForCourses(t *testing.T) {
	f := &fakeWriters{}
	c := newTestConsole(f, nil)
	tables := seedTables()

	res := c.Delete(context.Background(), tables, Courses, "c1", false)
	assert.Equal(t, `This action cannot be undone. This will permanently delete "Databases".`, res.Confirm)
	assert.Nil(t, res.Notice)
	assert.Empty(t, f.deletes)

	res = c.Delete(context.Background(), tables, Courses, "c1", true)
	assert.True(t, res.OK)
	assert.Equal(t, "Course removed", res.Notice.Description)
	assert.Equal(t, 0, tables.Courses.Len())
}

func TestDeleteReferencedInstructorStays(t *testing.T) {
	f := &fakeWriters{fail: true}
	c := newTestConsole(f, nil)
	tables := seedTables()

	res := c.Delete(context.Background(), tables, Instructors, "i1", true)
	assert.False(t, res.OK)
	require.NotNil(t, res.Notice)
	assert.Equal(t, "Failed to delete instructor. They may be referenced by schedules.", res.Notice.Description)
	assert.Equal(t, 1, tables.Instructors.Len())
}

func TestDeleteImmediateEntities(t *testing.T) {
	f := &fakeWriters{}
	c := newTestConsole(f, nil)
	tables := seedTables()

	for _, tc := range []struct {
		entity Entity
		id     string
	}{{Rooms, "r1"}, {Schedules, "s1"}, {Programs, "p1"}, {Notifications, "n1"}} {
		res := c.Delete(context.Background(), tables, tc.entity, tc.id, false)
		assert.True(t, res.OK, string(tc.entity))
		assert.Empty(t, res.Confirm)
	}
	assert.Equal(t, []string{"rooms/r1", "schedules/s1", "programs/p1", "notifications/n1"}, f.deletes)

	f.fail = true
	tables = seedTables()
	res := c.Delete(context.Background(), tables, Rooms, "r1", false)
	assert.Equal(t, "Failed to delete", res.Notice.Description)
}

func TestToggleRequiresIdentity(t *testing.T) {
	f := &fakeWriters{}
	c := newTestConsole(f, nil)
	tables := seedTables()

	notice, ok := c.Toggle(context.Background(), tables, nil, "n1", false)
	assert.False(t, ok)
	assert.Equal(t, "Not signed in", notice.Title)
	assert.Equal(t, "You must be logged in to update notifications.", notice.Description)
	assert.Empty(t, f.setActiveCalls)
}

func TestToggleTwiceRestoresState(t *testing.T) {
	f := &fakeWriters{}
	c := newTestConsole(f, nil)
	tables := seedTables()
	identity := &models.Identity{UserID: "u1"}

	notice, ok := c.Toggle(context.Background(), tables, identity, "n1", false)
	require.True(t, ok)
	assert.Equal(t, "Notification is now inactive.", notice.Description)
	n, _ := tables.Notifications.Find("n1")
	assert.False(t, n.IsActive)

	notice, ok = c.Toggle(context.Background(), tables, identity, "n1", true)
	require.True(t, ok)
	assert.Equal(t, "Notification is now active.", notice.Description)
	n, _ = tables.Notifications.Find("n1")
	assert.True(t, n.IsActive)
	assert.Equal(t, []bool{false, true}, f.setActiveCalls)

	f.fail = true
	notice, ok = c.Toggle(context.Background(), tables, identity, "n1", false)
	assert.False(t, ok)
	assert.Equal(t, "Failed to update status", notice.Description)
	n, _ = tables.Notifications.Find("n1")
	assert.True(t, n.IsActive)
}

func TestEditStateNotificationUsesLocation(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	c := newTestConsole(&fakeWriters{}, loc)
	start := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	tables := NewTables(&dto.ConsoleData{Notifications: []models.Notification{{ID: "n1", IsActive: true, StartAt: &start}}})

	state, ok := c.EditState(tables, Notifications, "n1")
	require.True(t, ok)
	assert.Equal(t, "2024-03-01T09:30", state.Values.Get("start_at"))
	assert.Equal(t, "on", state.Values.Get("is_active"))

	_, ok = c.EditState(tables, Notifications, "missing")
	assert.False(t, ok)
	assert.Equal(t, fmt.Sprint(loc), fmt.Sprint(c.Location()))
}
