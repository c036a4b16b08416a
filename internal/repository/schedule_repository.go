package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kampus/orari/internal/models"
)

const scheduleColumns = `id, course_id, instructor_id, room_id, day_of_week, start_time, end_time, session_type, created_at, updated_at`

const scheduleDetailSelect = `SELECT s.id, s.course_id, s.instructor_id, s.room_id, s.day_of_week, s.start_time, s.end_time, s.session_type, s.created_at, s.updated_at,
	c.name AS course_name, c.code AS course_code, c.credits AS course_credits, c.ects_credits AS course_ects_credits,
	p.id AS program_id, p.name AS program_name, p.code AS program_code,
	i.name AS instructor_name, i.title AS instructor_title,
	r.name AS room_name, r.code AS room_code
FROM schedules s
LEFT JOIN courses c ON c.id = s.course_id
LEFT JOIN programs p ON p.id = c.program_id
LEFT JOIN instructors i ON i.id = s.instructor_id
LEFT JOIN rooms r ON r.id = s.room_id`

// ScheduleRepository stores schedule slots.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates the repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// clock scans a TIME column. lib/pq decodes TIME into a time.Time on day
// zero, so the value is reformatted as HH:MM:SS.
type clock struct {
	value *string
}

func (c *clock) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		c.value = nil
		return nil
	case time.Time:
		s = v.Format("15:04:05")
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("scan clock: unsupported type %T", src)
	}
	c.value = &s
	return nil
}

type scheduleRow struct {
	ID           string             `db:"id"`
	CourseID     string             `db:"course_id"`
	InstructorID string             `db:"instructor_id"`
	RoomID       string             `db:"room_id"`
	DayOfWeek    int                `db:"day_of_week"`
	StartTime    clock              `db:"start_time"`
	EndTime      clock              `db:"end_time"`
	SessionType  models.SessionType `db:"session_type"`
	CreatedAt    time.Time          `db:"created_at"`
	UpdatedAt    time.Time          `db:"updated_at"`
}

func (row scheduleRow) model() models.Schedule {
	return models.Schedule{
		ID:           row.ID,
		CourseID:     row.CourseID,
		InstructorID: row.InstructorID,
		RoomID:       row.RoomID,
		DayOfWeek:    row.DayOfWeek,
		StartTime:    row.StartTime.value,
		EndTime:      row.EndTime.value,
		SessionType:  row.SessionType,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

// scheduleDetailRow is the flat shape of a joined schedule read. Every joined
// column is nullable because each LEFT JOIN may miss.
type scheduleDetailRow struct {
	scheduleRow
	CourseName        sql.NullString `db:"course_name"`
	CourseCode        sql.NullString `db:"course_code"`
	CourseCredits     sql.NullInt64  `db:"course_credits"`
	CourseECTSCredits sql.NullInt64  `db:"course_ects_credits"`
	ProgramID         sql.NullString `db:"program_id"`
	ProgramName       sql.NullString `db:"program_name"`
	ProgramCode       sql.NullString `db:"program_code"`
	InstructorName    sql.NullString `db:"instructor_name"`
	InstructorTitle   sql.NullString `db:"instructor_title"`
	RoomName          sql.NullString `db:"room_name"`
	RoomCode          sql.NullString `db:"room_code"`
}

func (row scheduleDetailRow) detail() (models.ScheduleDetail, error) {
	if row.DayOfWeek < 1 || row.DayOfWeek > 7 {
		return models.ScheduleDetail{}, fmt.Errorf("schedule %s: day_of_week %d out of range", row.ID, row.DayOfWeek)
	}
	d := models.ScheduleDetail{Schedule: row.model()}
	if row.CourseName.Valid {
		d.Course = &models.CourseRef{
			ID:          row.CourseID,
			Name:        row.CourseName.String,
			Code:        row.CourseCode.String,
			Credits:     int(row.CourseCredits.Int64),
			ECTSCredits: int(row.CourseECTSCredits.Int64),
		}
		if row.ProgramID.Valid {
			d.Course.Program = &models.ProgramRef{ID: row.ProgramID.String, Name: row.ProgramName.String, Code: row.ProgramCode.String}
		}
	}
	if row.InstructorName.Valid {
		d.Instructor = &models.InstructorRef{ID: row.InstructorID, Name: row.InstructorName.String}
		if row.InstructorTitle.Valid {
			title := row.InstructorTitle.String
			d.Instructor.Title = &title
		}
	}
	if row.RoomName.Valid {
		d.Room = &models.RoomRef{ID: row.RoomID, Name: row.RoomName.String, Code: row.RoomCode.String}
	}
	return d, nil
}

func (r *ScheduleRepository) selectDetailed(ctx context.Context, op, query string, args ...interface{}) ([]models.ScheduleDetail, error) {
	var rows []scheduleDetailRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrap(op, err)
	}
	details := make([]models.ScheduleDetail, 0, len(rows))
	for _, row := range rows {
		d, err := row.detail()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		details = append(details, d)
	}
	return details, nil
}

// List returns schedules without joins, ordered by day then start time.
func (r *ScheduleRepository) List(ctx context.Context) ([]models.Schedule, error) {
	var rows []scheduleRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+scheduleColumns+` FROM schedules ORDER BY day_of_week, start_time`); err != nil {
		return nil, wrap("list schedules", err)
	}
	schedules := make([]models.Schedule, 0, len(rows))
	for _, row := range rows {
		schedules = append(schedules, row.model())
	}
	return schedules, nil
}

// ListDetailed returns every schedule with its joins, ordered by day then
// start time. Rows without a start time sort last within their day.
func (r *ScheduleRepository) ListDetailed(ctx context.Context) ([]models.ScheduleDetail, error) {
	return r.selectDetailed(ctx, "list detailed schedules", scheduleDetailSelect+` ORDER BY s.day_of_week, s.start_time`)
}

// Recent returns the newest schedules by creation time.
func (r *ScheduleRepository) Recent(ctx context.Context, limit int) ([]models.ScheduleDetail, error) {
	if limit <= 0 {
		limit = 5
	}
	return r.selectDetailed(ctx, "list recent schedules", scheduleDetailSelect+` ORDER BY s.created_at DESC LIMIT $1`, limit)
}

// DaysOfWeek returns the day value of every schedule.
func (r *ScheduleRepository) DaysOfWeek(ctx context.Context) ([]int, error) {
	days := []int{}
	if err := r.db.SelectContext(ctx, &days, `SELECT day_of_week FROM schedules ORDER BY day_of_week`); err != nil {
		return nil, wrap("list schedule days", err)
	}
	return days, nil
}

// Count returns the number of schedules.
func (r *ScheduleRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM schedules`); err != nil {
		return 0, wrap("count schedules", err)
	}
	return total, nil
}

// FindByID returns sql.ErrNoRows when the schedule does not exist.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	var row scheduleRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+scheduleColumns+` FROM schedules WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, wrap("find schedule", err)
	}
	schedule := row.model()
	return &schedule, nil
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now

	const query = `INSERT INTO schedules (id, course_id, instructor_id, room_id, day_of_week, start_time, end_time, session_type, created_at, updated_at)
VALUES (:id, :course_id, :instructor_id, :room_id, :day_of_week, :start_time, :end_time, :session_type, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return wrap("create schedule", err)
	}
	return nil
}

func (r *ScheduleRepository) Update(ctx context.Context, schedule *models.Schedule) error {
	schedule.UpdatedAt = time.Now().UTC()
	const query = `UPDATE schedules SET course_id = :course_id, instructor_id = :instructor_id, room_id = :room_id, day_of_week = :day_of_week,
	start_time = :start_time, end_time = :end_time, session_type = :session_type, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, schedule)
	if err != nil {
		return wrap("update schedule", err)
	}
	return affectedOne("update schedule", res)
}

func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return wrap("delete schedule", err)
	}
	return affectedOne("delete schedule", res)
}
