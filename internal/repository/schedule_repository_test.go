package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kampus/orari/internal/models"
	"github.com/kampus/orari/internal/timetable"
)

var scheduleDetailColumns = []string{
	"id", "course_id", "instructor_id", "room_id", "day_of_week", "start_time", "end_time", "session_type", "created_at", "updated_at",
	"course_name", "course_code", "course_credits", "course_ects_credits",
	"program_id", "program_name", "program_code",
	"instructor_name", "instructor_title",
	"room_name", "room_code",
}

func TestListDetailedBuildsJoins(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(scheduleDetailColumns).
		AddRow("s1", "c1", "i1", "r1", 1, "08:00:00", "09:30:00", "LECTURE", now, now,
			"Databases", "DB_001", 3, 6, "p1", "Computer Science", "CS", "Ana Berisha", "Professor", "Amfiteatri", "A1").
		AddRow("s2", "c9", "i9", "r9", 2, nil, nil, "LAB", now, now,
			nil, nil, nil, nil, nil, nil, nil, "Besa Krasniqi", nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY s.day_of_week, s.start_time")).WillReturnRows(rows)

	details, err := repo.ListDetailed(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 2)

	first := details[0]
	require.NotNil(t, first.Course)
	assert.Equal(t, "DB_001", first.Course.Code)
	require.NotNil(t, first.Course.Program)
	assert.Equal(t, "Computer Science", first.Course.Program.Name)
	require.NotNil(t, first.Instructor.Title)
	assert.Equal(t, "Professor", *first.Instructor.Title)
	assert.Equal(t, "Amfiteatri", first.Room.Name)
	require.NotNil(t, first.StartTime)
	assert.Equal(t, "08:00:00", *first.StartTime)

	second := details[1]
	assert.Nil(t, second.Course)
	assert.Nil(t, second.Room)
	require.NotNil(t, second.Instructor)
	assert.Nil(t, second.Instructor.Title)
	assert.Nil(t, second.StartTime)
	assert.Equal(t, models.SessionLab, second.SessionType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// lib/pq hands TIME columns back as time.Time values on day zero.
func pqClock(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04:05", value)
	require.NoError(t, err)
	return parsed
}

func TestListDetailedFormatsTimeColumns(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(scheduleDetailColumns).
		AddRow("s1", "c1", "i1", "r1", 1, pqClock(t, "08:00:00"), pqClock(t, "09:30:00"), "LECTURE", now, now,
			"Databases", "DB_001", 3, 6, "p1", "Computer Science", "CS", "Ana Berisha", nil, "Amfiteatri", "A1").
		AddRow("s2", "c1", "i1", "r1", 2, []byte("10:15:00"), nil, "LAB", now, now,
			"Databases", "DB_001", 3, 6, "p1", "Computer Science", "CS", "Ana Berisha", nil, "Amfiteatri", "A1")
	mock.ExpectQuery("FROM schedules s").WillReturnRows(rows)

	details, err := repo.ListDetailed(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 2)

	require.NotNil(t, details[0].StartTime)
	assert.Equal(t, "08:00:00", *details[0].StartTime)
	assert.Equal(t, "09:30:00", *details[0].EndTime)
	assert.Equal(t, "08:00-09:30", timetable.TimeRange(details[0].StartTime, details[0].EndTime))

	assert.Equal(t, "10:15:00", *details[1].StartTime)
	assert.Nil(t, details[1].EndTime)
	assert.Equal(t, "10:15-—", timetable.TimeRange(details[1].StartTime, details[1].EndTime))
}

func TestFindScheduleFormatsTimeColumns(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM schedules WHERE id = $1")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "instructor_id", "room_id", "day_of_week", "start_time", "end_time", "session_type", "created_at", "updated_at"}).
			AddRow("s1", "c1", "i1", "r1", 4, pqClock(t, "13:45:00"), pqClock(t, "15:00:00"), "SEMINAR", now, now))

	schedule, err := repo.FindByID(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, schedule.StartTime)
	assert.Equal(t, "13:45:00", *schedule.StartTime)
	assert.Equal(t, "15:00:00", *schedule.EndTime)
	assert.Equal(t, models.SessionSeminar, schedule.SessionType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDetailedRejectsBadDay(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(scheduleDetailColumns).
		AddRow("s1", "c1", "i1", "r1", 0, nil, nil, "LECTURE", now, now,
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery("FROM schedules s").WillReturnRows(rows)

	_, err := repo.ListDetailed(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "day_of_week 0 out of range")
}

func TestRecentSchedulesDefaultsLimit(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY s.created_at DESC LIMIT $1")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(scheduleDetailColumns))

	details, err := repo.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, details)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDaysOfWeek(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT day_of_week FROM schedules")).
		WillReturnRows(sqlmock.NewRows([]string{"day_of_week"}).AddRow(1).AddRow(1).AddRow(5))

	days, err := repo.DaysOfWeek(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 5}, days)
}

func TestCreateScheduleWritesExplicitNullTimes(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec("INSERT INTO schedules").
		WithArgs(sqlmock.AnyArg(), "c1", "i1", "r1", 3, nil, nil, "EXAM", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	schedule := &models.Schedule{CourseID: "c1", InstructorID: "i1", RoomID: "r1", DayOfWeek: 3, SessionType: models.SessionExam}
	require.NoError(t, repo.Create(context.Background(), schedule))
	assert.NoError(t, mock.ExpectationsWereMet())
}
