package models

import "time"

// SessionType classifies a scheduled slot.
type SessionType string

const (
	SessionLecture SessionType = "LECTURE"
	SessionLab     SessionType = "LAB"
	SessionSeminar SessionType = "SEMINAR"
	SessionExam    SessionType = "EXAM"
)

// SessionTypes lists the selectable session types in form order.
var SessionTypes = []SessionType{SessionLecture, SessionLab, SessionSeminar, SessionExam}

// Schedule places a course session in a room on a weekday. DayOfWeek runs
// from 1 (Monday) to 7 (Sunday). Start and end times are optional so that
// slots can be published before their hours are decided.
type Schedule struct {
	ID           string      `db:"id" json:"id"`
	CourseID     string      `db:"course_id" json:"course_id"`
	InstructorID string      `db:"instructor_id" json:"instructor_id"`
	RoomID       string      `db:"room_id" json:"room_id"`
	DayOfWeek    int         `db:"day_of_week" json:"day_of_week"`
	StartTime    *string     `db:"start_time" json:"start_time"`
	EndTime      *string     `db:"end_time" json:"end_time"`
	SessionType  SessionType `db:"session_type" json:"session_type"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// ScheduleDetail is a schedule with its joined course, instructor and room.
// Any join may be missing when the referenced row is gone.
type ScheduleDetail struct {
	Schedule
	Course     *CourseRef     `json:"course"`
	Instructor *InstructorRef `json:"instructor"`
	Room       *RoomRef       `json:"room"`
}

// LastTouched returns UpdatedAt, or CreatedAt when the row was never updated.
func (s Schedule) LastTouched() time.Time {
	if s.UpdatedAt.IsZero() {
		return s.CreatedAt
	}
	return s.UpdatedAt
}
